package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode selects how the run summary is rendered.
type Mode int

const (
	// ModePlain is used for CI, pipes and redirected output.
	ModePlain Mode = iota
	// ModeStyled is used when a human is watching a terminal.
	ModeStyled
)

// DetectMode determines how output written to f should be rendered.
//
// Returns ModePlain if:
//   - SHIPLOAD_PLAIN=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set
//   - f is not a terminal
func DetectMode(f *os.File) Mode {
	if os.Getenv("SHIPLOAD_PLAIN") == "1" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return ModePlain
	}
	return ModeStyled
}
