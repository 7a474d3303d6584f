package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/shipload/pkg/shipload"
)

// RenderSummary writes the outcome of a committed run to w.
func RenderSummary(w io.Writer, s *shipload.RunSummary, mode Mode) error {
	if mode == ModeStyled {
		_, err := fmt.Fprintln(w, styledSummary(s))
		return err
	}
	_, err := io.WriteString(w, plainSummary(s))
	return err
}

func plainSummary(s *shipload.RunSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s (%s) finished in %s\n", s.RunID, s.Destination, s.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "  cleared %d, inserted %d, skipped %d, table now holds %d rows\n",
		s.Cleared, s.Inserted(), s.Skipped(), s.Total)
	for _, src := range s.Sources {
		fmt.Fprintf(&b, "  %s: %s\n", src.Source, sourceLine(src))
	}
	return b.String()
}

func styledSummary(s *shipload.RunSummary) string {
	var lines []string
	lines = append(lines,
		TitleStyle.Render(SymbolCheck+" Load committed"),
		MutedStyle.Render(fmt.Sprintf("run %s", s.RunID)),
		"",
		row("destination", s.Destination.String()),
		row("cleared", fmt.Sprint(s.Cleared)),
		row("inserted", SuccessStyle.Render(fmt.Sprint(s.Inserted()))),
		row("skipped", skippedText(s.Skipped())),
		row("total rows", fmt.Sprint(s.Total)),
		row("duration", s.Duration.Round(time.Millisecond).String()),
	)

	if len(s.Sources) > 0 {
		lines = append(lines, "")
		for _, src := range s.Sources {
			lines = append(lines, LabelStyle.Render(src.Source)+": "+sourceLine(src))
		}
	}
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func row(label, value string) string {
	return LabelStyle.Width(12).Render(label) + " " + value
}

func skippedText(n int) string {
	if n == 0 {
		return fmt.Sprint(n)
	}
	return WarningStyle.Render(fmt.Sprintf("%d %s", n, SymbolWarn))
}

// sourceLine describes one source: missing, or rows read with what became of them.
func sourceLine(src *shipload.SourceStats) string {
	if src.Missing {
		return "missing"
	}

	parts := []string{fmt.Sprintf("%d rows", src.Rows)}
	if src.Indexed > 0 {
		parts = append(parts, fmt.Sprintf("%d indexed", src.Indexed))
	} else {
		parts = append(parts, fmt.Sprintf("%d inserted", src.Inserted))
	}
	for _, reason := range shipload.SkipReasons {
		if n := src.Skipped[reason]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, reason))
		}
	}
	return strings.Join(parts, ", ")
}
