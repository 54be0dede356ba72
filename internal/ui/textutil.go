package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
)

func maxLineWidth(lines []string) int {
	max := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > max {
			max = w
		}
	}
	return max
}

// blockDimensions returns the width and height a rendered block occupies.
func blockDimensions(content string) (int, int) {
	lines := splitLines(content)
	if len(lines) == 0 {
		return 0, 0
	}
	return maxLineWidth(lines), len(lines)
}

// cropLeft drops the first n cells of a styled line.
func cropLeft(line string, n int) string {
	w := ansi.StringWidth(line)
	if n >= w {
		return ""
	}
	return ansi.Cut(line, n, w)
}

// wrapPlain word-wraps text for terminals where markdown rendering is off.
func wrapPlain(text string, width int) string {
	if width <= 0 {
		return text
	}
	return strings.TrimRight(wordwrap.String(text, width), "\n")
}
