package db

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/vvka-141/shipload/pkg/shipload"
)

const (
	defaultPostgresPort = 5432
	defaultMySQLPort    = 3306
)

// PostgresConfig holds the parsed parts of a PostgreSQL connection string.
type PostgresConfig struct {
	Host           string
	Port           int
	Database       string
	Username       string
	Password       string
	SSLMode        string
	AppName        string
	ConnectTimeout time.Duration
	Params         map[string]string
}

// ParseDestination classifies a destination string and returns the driver,
// a driver-native DSN and the informational host, port and database.
func ParseDestination(s string) (shipload.Destination, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return shipload.Destination{}, fmt.Errorf("destination is empty: %w", shipload.ErrInvalidConfig)
	}

	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		cfg, err := parsePostgresURI(s)
		if err != nil {
			return shipload.Destination{}, err
		}
		return postgresDestination(cfg), nil

	case strings.HasPrefix(lower, "mysql://"):
		return parseMySQL(s[len("mysql://"):])

	case strings.HasPrefix(lower, "sqlite:"):
		return sqliteDestination(strings.TrimPrefix(s[len("sqlite:"):], "//"))

	case strings.HasPrefix(lower, "file:"):
		return sqliteDestination(strings.TrimPrefix(s[len("file:"):], "//"))

	case strings.Contains(s, "://"):
		scheme := s[:strings.Index(s, "://")]
		return shipload.Destination{}, fmt.Errorf("%q: %w", scheme, shipload.ErrUnsupportedDestination)

	case strings.Contains(s, "=") && strings.Contains(s, ";"):
		cfg, err := parseADONET(s)
		if err != nil {
			return shipload.Destination{}, err
		}
		return postgresDestination(cfg), nil
	}

	return sqliteDestination(s)
}

func sqliteDestination(path string) (shipload.Destination, error) {
	if path == "" {
		return shipload.Destination{}, fmt.Errorf("sqlite destination has no path: %w", shipload.ErrInvalidConfig)
	}
	return shipload.Destination{Driver: shipload.DriverSQLite, Path: path}, nil
}

func postgresDestination(cfg *PostgresConfig) shipload.Destination {
	return shipload.Destination{
		Driver:   shipload.DriverPostgres,
		DSN:      BuildConnectionString(cfg),
		Host:     cfg.Host,
		Port:     cfg.Port,
		Database: cfg.Database,
	}
}

func newPostgresConfig() *PostgresConfig {
	return &PostgresConfig{
		Host:     "localhost",
		Port:     defaultPostgresPort,
		Database: "postgres",
		Params:   make(map[string]string),
	}
}

// parsePostgresURI parses postgresql://[user[:password]@][host][:port][/dbname][?params].
func parsePostgresURI(s string) (*PostgresConfig, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid PostgreSQL URI: %w", shipload.ErrInvalidConfig)
	}

	cfg := newPostgresConfig()
	if u.Hostname() != "" {
		cfg.Host = u.Hostname()
	}
	if u.Port() != "" {
		port, err := strconv.Atoi(u.Port())
		if err != nil {
			return nil, fmt.Errorf("invalid port %q: %w", u.Port(), shipload.ErrInvalidConfig)
		}
		cfg.Port = port
	}
	if u.User != nil {
		cfg.Username = u.User.Username()
		cfg.Password, _ = u.User.Password()
	}
	if db := strings.TrimPrefix(u.Path, "/"); db != "" {
		cfg.Database = db
	}

	for key, values := range u.Query() {
		if len(values) > 0 {
			cfg.set(key, values[0])
		}
	}
	return cfg, nil
}

// parseADONET parses Host=...;Port=...;Database=...;Username=...;Password=...
func parseADONET(s string) (*PostgresConfig, error) {
	cfg := newPostgresConfig()

	for _, part := range strings.Split(s, ";") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "host", "server":
			cfg.Host = value
		case "port":
			port, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid port %q in ADO.NET string: %w", value, shipload.ErrInvalidConfig)
			}
			cfg.Port = port
		case "database", "initial catalog":
			cfg.Database = value
		case "username", "user id", "uid":
			cfg.Username = value
		case "password", "pwd":
			cfg.Password = value
		case "ssl mode":
			cfg.SSLMode = value
		case "application name":
			cfg.AppName = value
		case "timeout", "connect timeout":
			cfg.set("connect_timeout", value)
		default:
			cfg.set(key, value)
		}
	}
	return cfg, nil
}

func (c *PostgresConfig) set(key, value string) {
	switch strings.ToLower(key) {
	case "sslmode":
		c.SSLMode = value
	case "application_name", "applicationname":
		c.AppName = value
	case "connect_timeout", "connecttimeout":
		if secs, err := strconv.Atoi(value); err == nil {
			c.ConnectTimeout = time.Duration(secs) * time.Second
		}
	default:
		c.Params[key] = value
	}
}

// BuildConnectionString renders cfg as a PostgreSQL URI for pgx.
// application_name defaults to shipload.
func BuildConnectionString(cfg *PostgresConfig) string {
	u := &url.URL{
		Scheme: "postgresql",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Database,
	}
	switch {
	case cfg.Username != "" && cfg.Password != "":
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	case cfg.Username != "":
		u.User = url.User(cfg.Username)
	}

	query := url.Values{}
	for key, value := range cfg.Params {
		query.Set(key, value)
	}
	if cfg.SSLMode != "" {
		query.Set("sslmode", cfg.SSLMode)
	}
	appName := cfg.AppName
	if appName == "" {
		appName = shipload.AppName
	}
	query.Set("application_name", appName)
	if cfg.ConnectTimeout > 0 {
		query.Set("connect_timeout", strconv.Itoa(int(cfg.ConnectTimeout.Seconds())))
	}

	u.RawQuery = query.Encode()
	return u.String()
}

// parseMySQL parses a go-sql-driver DSN: user:pass@tcp(host:port)/db?params.
func parseMySQL(dsn string) (shipload.Destination, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return shipload.Destination{}, fmt.Errorf("invalid MySQL DSN: %v: %w", err, shipload.ErrInvalidConfig)
	}
	if cfg.DBName == "" {
		return shipload.Destination{}, fmt.Errorf("MySQL DSN names no database: %w", shipload.ErrInvalidConfig)
	}

	host, port := cfg.Addr, defaultMySQLPort
	if h, p, err := net.SplitHostPort(cfg.Addr); err == nil {
		host = h
		if n, err := strconv.Atoi(p); err == nil {
			port = n
		}
	}

	return shipload.Destination{
		Driver:   shipload.DriverMySQL,
		DSN:      cfg.FormatDSN(),
		Host:     host,
		Port:     port,
		Database: cfg.DBName,
	}, nil
}
