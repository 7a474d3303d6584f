package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/shipload/internal/config"
	"github.com/vvka-141/shipload/internal/files/filesystem"
	"github.com/vvka-141/shipload/internal/logging"
	"github.com/vvka-141/shipload/internal/services"
	"github.com/vvka-141/shipload/internal/store"
	"github.com/vvka-141/shipload/internal/tui"
	"github.com/vvka-141/shipload/pkg/shipload"
)

// Environment variables consulted for the destination, in order.
var destinationEnvVars = []string{"SHIPLOAD_DATABASE_URL", "DATABASE_URL"}

type loadFlagValues struct {
	shipments, products, locations string
	destination                    string
	configPath                     string
	timeout                        time.Duration
}

var loadFlags loadFlagValues

func init() {
	rootCmd.Flags().StringVar(&loadFlags.shipments, "shipments", "",
		"Shipments source: origin, destination, product, quantity\n"+
			"(default: "+shipload.DefaultShipmentsSource+")")
	rootCmd.Flags().StringVar(&loadFlags.products, "products", "",
		"Products source: shipping_identifier, product, quantity\n"+
			"(default: "+shipload.DefaultProductsSource+")")
	rootCmd.Flags().StringVar(&loadFlags.locations, "locations", "",
		"Locations source: shipping_identifier, origin, destination\n"+
			"(default: "+shipload.DefaultLocationsSource+")")
	rootCmd.Flags().StringVarP(&loadFlags.destination, "db", "d", "",
		"Destination database: SQLite path, PostgreSQL URI or ADO.NET string, or mysql:// DSN\n"+
			"Precedence: --db > $SHIPLOAD_DATABASE_URL > $DATABASE_URL > shipload.yaml > "+shipload.DefaultDestination)
	rootCmd.Flags().StringVar(&loadFlags.configPath, "config", "",
		"Path to a config file (default: ./"+config.ConfigFileName+" if present)")
	rootCmd.Flags().DurationVar(&loadFlags.timeout, "timeout", 0,
		"Abort and roll back if the run takes longer (0 = no limit)\n"+
			"Examples: 30s, 5m")
}

// buildLoadConfig resolves the run configuration from flags, environment,
// the config file and defaults, in that order of precedence.
// Extracted from runLoad for testability.
func buildLoadConfig(cmd *cobra.Command, logger shipload.Logger) (shipload.LoadConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := loadProjectConfig(loadFlags.configPath)
	if err != nil {
		return shipload.LoadConfig{}, err
	}
	if projectCfg == nil {
		projectCfg = &config.ProjectConfig{}
	}

	cfg := shipload.LoadConfig{
		Sources: shipload.Sources{
			Shipments: firstNonEmpty(loadFlags.shipments, projectCfg.Sources.Shipments, shipload.DefaultShipmentsSource),
			Products:  firstNonEmpty(loadFlags.products, projectCfg.Sources.Products, shipload.DefaultProductsSource),
			Locations: firstNonEmpty(loadFlags.locations, projectCfg.Sources.Locations, shipload.DefaultLocationsSource),
		},
		Destination: resolveDestination(loadFlags.destination, projectCfg.Destination),
		Timeout:     loadFlags.timeout,
		Verbose:     getVerboseFlag(cmd),
	}

	if !cmd.Flags().Changed("timeout") && projectCfg.Timeout != "" {
		cfg.Timeout, err = projectCfg.TimeoutDuration()
		if err != nil {
			return shipload.LoadConfig{}, fmt.Errorf("%s: %w", err, shipload.ErrInvalidConfig)
		}
	}

	logger.Verbose("Configuration resolved:")
	logger.Verbose("  Shipments: %s", cfg.Sources.Shipments)
	logger.Verbose("  Products: %s", cfg.Sources.Products)
	logger.Verbose("  Locations: %s", cfg.Sources.Locations)
	logger.Verbose("  Timeout: %s", cfg.Timeout)

	return cfg, cfg.Validate()
}

// loadProjectConfig returns nil when no config file exists at the default
// location. An explicitly named file must exist.
func loadProjectConfig(path string) (*config.ProjectConfig, error) {
	explicit := path != ""
	if !explicit {
		path = "."
	}

	projectCfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !explicit {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %v: %w", path, err, shipload.ErrInvalidConfig)
	}
	return projectCfg, nil
}

func resolveDestination(flagValue, fileValue string) string {
	if flagValue != "" {
		return flagValue
	}
	for _, name := range destinationEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return firstNonEmpty(fileValue, shipload.DefaultDestination)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func runLoad(cmd *cobra.Command, args []string) error {
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))

	cfg, err := buildLoadConfig(cmd, logger)
	if err != nil {
		return err
	}

	svc := services.NewLoadService(store.Open, filesystem.NewDefaultRouter(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals (Ctrl+C, SIGTERM); the open transaction is rolled back
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling load...")
			cancel()
		case <-ctx.Done():
		}
	}()

	summary, err := svc.Load(ctx, cfg)
	if err != nil {
		logger.Error("%s", services.DescribeFailure(err))
		return &reportedError{err: err}
	}

	return tui.RenderSummary(cmd.OutOrStdout(), summary, tui.DetectMode(os.Stdout))
}
