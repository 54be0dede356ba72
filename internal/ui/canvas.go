package ui

import (
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// Canvas is a lightweight helper around cellbuf.Screen that lets us compose
// lipgloss-rendered strings into a cell buffer before turning the frame back
// into a string for Bubble Tea.
type Canvas struct {
	screen *cellbuf.Screen
	writer *cellbuf.ScreenWriter
	width  int
	height int
}

func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{
		ShowCursor: false,
		AltScreen:  false,
	})
	return &Canvas{
		screen: screen,
		writer: cellbuf.NewScreenWriter(screen),
		width:  width,
		height: height,
	}
}

// Width of the canvas in cells.
func (c *Canvas) Width() int { return c.width }

// Height of the canvas in cells.
func (c *Canvas) Height() int { return c.height }

// Fill paints the entire canvas with the provided background color.
func (c *Canvas) Fill(bg lipgloss.TerminalColor) {
	if c == nil {
		return
	}
	fill := lipgloss.NewStyle().
		Background(bg).
		Width(c.width).
		Height(c.height).
		Render("")
	c.DrawStringAt(0, 0, fill)
}

// DrawStringAt writes block with its top-left corner at x,y. Every line
// starts at column x; cells outside the canvas are cropped.
func (c *Canvas) DrawStringAt(x, y int, block string) {
	if block == "" || c == nil || c.writer == nil {
		return
	}
	for i, line := range splitLines(block) {
		row := y + i
		if row < 0 {
			continue
		}
		if row >= c.height {
			break
		}
		if line == "" {
			continue
		}
		if x < 0 {
			line = cropLeft(line, -x)
			c.writer.PrintCropAt(0, row, line, "")
			continue
		}
		c.writer.PrintCropAt(x, row, line, "")
	}
}

// Overlay is a block drawn over the base frame at a screen position.
// Higher Z draws later; equal Z keeps insertion order.
type Overlay struct {
	X, Y    int
	Z       int
	Content string
}

// DrawOverlays paints overlays in ascending Z order.
func (c *Canvas) DrawOverlays(overlays []Overlay) {
	ordered := append([]Overlay(nil), overlays...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Z < ordered[j].Z })
	for _, o := range ordered {
		c.DrawStringAt(o.X, o.Y, o.Content)
	}
}

// Render returns the composed frame as a newline-delimited string suitable for
// Bubble Tea consumption.
func (c *Canvas) Render() string {
	if c == nil || c.screen == nil {
		return ""
	}
	raw := cellbuf.Render(c.screen)
	_ = c.screen.Close()
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(normalized, "\n")
}
