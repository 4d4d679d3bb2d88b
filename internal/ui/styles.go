// Package ui provides terminal styling for mont CLI output.
// Uses the Ayu color theme with adaptive light/dark mode support.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Ayu theme color palette
// Dark: https://terminalcolors.com/themes/ayu/dark/
// Light: https://terminalcolors.com/themes/ayu/light/
var (
	ColorPass = lipgloss.AdaptiveColor{
		Light: "#86b300", // ayu light bright green
		Dark:  "#c2d94c", // ayu dark bright green
	}
	ColorWarn = lipgloss.AdaptiveColor{
		Light: "#f2ae49", // ayu light bright yellow
		Dark:  "#ffb454", // ayu dark bright yellow
	}
	ColorFail = lipgloss.AdaptiveColor{
		Light: "#f07171", // ayu light bright red
		Dark:  "#f07178", // ayu dark bright red
	}
	ColorMuted = lipgloss.AdaptiveColor{
		Light: "#828c99", // ayu light muted
		Dark:  "#6c7680", // ayu dark muted
	}
	ColorAccent = lipgloss.AdaptiveColor{
		Light: "#399ee6", // ayu light bright blue
		Dark:  "#59c2ff", // ayu dark bright blue
	}
	ColorValidator = lipgloss.AdaptiveColor{
		Light: "#a37acc", // ayu light purple
		Dark:  "#d2a6ff", // ayu dark purple
	}
)

// Status styles - consistent across all commands
var (
	PassStyle      = lipgloss.NewStyle().Foreground(ColorPass)
	WarnStyle      = lipgloss.NewStyle().Foreground(ColorWarn)
	FailStyle      = lipgloss.NewStyle().Foreground(ColorFail)
	MutedStyle     = lipgloss.NewStyle().Foreground(ColorMuted)
	AccentStyle    = lipgloss.NewStyle().Foreground(ColorAccent)
	ValidatorStyle = lipgloss.NewStyle().Foreground(ColorValidator)
)

// CategoryStyle for section headers - bold with accent color
var CategoryStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

// Task markers used throughout graph and list output.
const (
	MarkerReady      = "◉"
	MarkerBlocked    = "○"
	MarkerInProgress = "◐"
	MarkerComplete   = "●"
	MarkerJot        = "◇"
	MarkerValidator  = "◈"
)

// Gate status icons
const (
	IconPass = "✓"
	IconFail = "✗"
	IconSkip = "-"
	IconWait = "·"
)

// ShouldUseColor reports whether styled output is appropriate. Honors
// NO_COLOR and falls back to plain text on dumb terminals and pipes.
func ShouldUseColor() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

// RenderPass renders text with pass (green) styling
func RenderPass(s string) string {
	return render(PassStyle, s)
}

// RenderWarn renders text with warning (yellow) styling
func RenderWarn(s string) string {
	return render(WarnStyle, s)
}

// RenderFail renders text with fail (red) styling
func RenderFail(s string) string {
	return render(FailStyle, s)
}

// RenderMuted renders text with muted (gray) styling
func RenderMuted(s string) string {
	return render(MutedStyle, s)
}

// RenderAccent renders text with accent (blue) styling
func RenderAccent(s string) string {
	return render(AccentStyle, s)
}

// RenderValidator renders text with validator (purple) styling
func RenderValidator(s string) string {
	return render(ValidatorStyle, s)
}

// RenderCategory renders a category header in uppercase with accent color
func RenderCategory(s string) string {
	return render(CategoryStyle, strings.ToUpper(s))
}

func render(style lipgloss.Style, s string) string {
	if !ShouldUseColor() {
		return s
	}
	return style.Render(s)
}
