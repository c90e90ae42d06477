package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/kamusis/deck-cli/internal/config"
	"github.com/mattn/go-isatty"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// All commands use these functions to ensure consistent icon usage and
// indentation throughout deck's CLI output.
//
// Icon semantics:
//   ✓  success / healthy
//   ✗  error / failure          (written to stderr)
//   ⚠  warning
//   ○  skipped / not applicable
//   -  not found / missing
//   ~  neutral info / state change
//   ★  favorite

var (
	styleSection = lipgloss.NewStyle().Bold(true)
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleStar    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

var colorEnabled bool

// setupColor enables styling when stdout is a terminal and neither
// --no-color, NO_COLOR nor DECK_NO_COLOR asks otherwise.
func setupColor(noColor bool) {
	colorEnabled = wantColor(noColor, isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}

func wantColor(noColor, tty bool) bool {
	if noColor || !tty {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if v, _ := config.GetConfigValue(config.EnvNoColor); v != "" && v != "0" && v != "false" {
		return false
	}
	return true
}

// paint renders s with style when colour is enabled.
func paint(style lipgloss.Style, s string) string {
	if !colorEnabled {
		return s
	}
	return style.Render(s)
}

// printSection prints a top-level section header, e.g. "=== Favorites ===".
func printSection(title string) {
	fmt.Printf("\n%s\n", paint(styleSection, "=== "+title+" ==="))
}

// printBullet prints a grouped-section bullet, e.g. "● Hidden:".
func printBullet(title string) {
	fmt.Printf("\n● %s\n", title)
}

// printLine prints "  <icon>  msg" or "  <icon>  [name] msg".
func printLine(icon, name, msg string) {
	if name == "" {
		fmt.Printf("  %s  %s\n", icon, msg)
	} else {
		fmt.Printf("  %s  [%s] %s\n", icon, name, msg)
	}
}

// printOK prints a success line.
//   name = "" → "  ✓  msg"
//   name set  → "  ✓  [name] msg"
func printOK(name, msg string) { printLine(paint(styleOK, "✓"), name, msg) }

// printErr prints an error line to stderr.
func printErr(name, msg string) {
	icon := paint(styleErr, "✗")
	if name == "" {
		fmt.Fprintf(os.Stderr, "  %s  %s\n", icon, msg)
	} else {
		fmt.Fprintf(os.Stderr, "  %s  [%s] %s\n", icon, name, msg)
	}
}

// printWarn prints a warning line.
func printWarn(name, msg string) { printLine(paint(styleWarn, "⚠"), name, msg) }

// printSkip prints a skipped / not-applicable line.
func printSkip(name, msg string) { printLine(paint(styleMuted, "○"), name, msg) }

// printMiss prints a not-found / missing line.
func printMiss(name, msg string) { printLine(paint(styleMuted, "-"), name, msg) }

// printInfo prints a neutral informational / state-change line.
func printInfo(name, msg string) { printLine(paint(styleInfo, "~"), name, msg) }

// favMark returns the marker shown next to favorite apps.
func favMark(fav bool) string {
	if !fav {
		return " "
	}
	return paint(styleStar, "★")
}
