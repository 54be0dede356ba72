package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"autolight/internal/ui/theme"
)

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Background()).
		Background(theme.Current().Primary()).
		Bold(true).
		Padding(0, 1)
}

func styleLabel() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted()).
		Background(theme.Current().Background())
}

func styleLabelFocused() lipgloss.Style {
	return styleLabel().Foreground(theme.Current().Primary()).Bold(true)
}

func styleInput(focused bool) lipgloss.Style {
	border := theme.Current().BorderNormal()
	if focused {
		border = theme.Current().BorderFocused()
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		BorderBackground(theme.Current().Background()).
		Background(theme.Current().Background())
}

func styleStatus() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Success()).
		Background(theme.Current().Background())
}

func styleKeyHint() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Accent()).
		Background(theme.Current().Background())
}

// buildMarkdownRenderer returns a glamour renderer for format ("dark",
// "light", "notty", ...), falling back to word wrapping when format is
// "plain" or glamour cannot be set up.
func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wrapPlain(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	if style == "" || style == "rich" {
		style = "dark"
	}
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
