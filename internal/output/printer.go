// Package output formats command-line results and errors.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// ColorMode selects when output is colored.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses "auto", "always" or "never".
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors decides whether to color output. Auto honors NO_COLOR and
// TERM=dumb.
func ResolveColors(mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		return os.Getenv("TERM") != "dumb"
	}
}

// Printer writes human and machine output for one command invocation.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter writes results to out and diagnostics to errOut.
func NewPrinter(out, errOut io.Writer, mode ColorMode) *Printer {
	return &Printer{out: out, err: errOut, useColors: ResolveColors(mode)}
}

func (p *Printer) Out() io.Writer { return p.out }

// Print writes a plain line.
func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Success writes a confirmation line.
func (p *Printer) Success(format string, args ...any) {
	if p.useColors {
		color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, "[OK] "+format+"\n", args...)
}

// Warning writes to the diagnostic stream.
func (p *Printer) Warning(format string, args ...any) {
	if p.useColors {
		color.New(color.FgYellow).Fprintf(p.err, "⚠ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.err, "[WARN] "+format+"\n", args...)
}

// Header writes a section title with an underline.
func (p *Printer) Header(title string) {
	if p.useColors {
		color.New(color.FgWhite, color.Bold).Fprintf(p.out, "\n%s\n", title)
		color.New(color.FgWhite).Fprintf(p.out, "%s\n", strings.Repeat("─", len([]rune(title))))
		return
	}
	fmt.Fprintf(p.out, "\n%s\n%s\n", title, strings.Repeat("-", len([]rune(title))))
}

// JSON writes v as indented JSON.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func (p *Printer) Bold(text string) string {
	if p.useColors {
		return color.New(color.Bold).Sprint(text)
	}
	return text
}

func (p *Printer) Dim(text string) string {
	if p.useColors {
		return color.New(color.Faint).Sprint(text)
	}
	return text
}

// Level colors text by a coarse level: "high", "medium", "low" or anything
// else for neutral.
func (p *Printer) Level(text, level string) string {
	if !p.useColors {
		return text
	}
	switch level {
	case "high":
		return color.GreenString(text)
	case "medium":
		return color.YellowString(text)
	case "low":
		return color.RedString(text)
	default:
		return text
	}
}

// StatusBadge renders a service or run status.
func (p *Printer) StatusBadge(ok bool, label string) string {
	if !p.useColors {
		return "[" + label + "]"
	}
	if ok {
		return color.GreenString("● ") + label
	}
	return color.YellowString("● ") + label
}
