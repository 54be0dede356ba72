package autocomplete

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"autolight/internal/ui/theme"
)

// maxBoxWidth caps how far long labels widen the box past the input.
const maxBoxWidth = 60

// boxSize returns the outer width and height of the box including borders.
func (c *Controller) boxSize() (width, height int) {
	return c.innerWidth() + 2, c.visibleRows() + 2
}

func (c *Controller) visibleRows() int {
	n := len(c.box.choices)
	if n == 0 {
		if c.box.text != "" {
			return 1
		}
		return 0
	}
	if n > c.cfg.MaxVisible {
		return c.cfg.MaxVisible
	}
	return n
}

func (c *Controller) innerWidth() int {
	widest := 0
	for _, ch := range c.box.choices {
		if w := ansi.StringWidth(ch.text); w > widest {
			widest = w
		}
	}
	if len(c.box.choices) == 0 {
		widest = ansi.StringWidth(c.box.text)
	}
	want := widest + 2 // row prefix
	if want > maxBoxWidth {
		want = maxBoxWidth
	}
	if inner := c.box.pos.Width - 2; inner > want {
		want = inner
	}
	if want < 3 {
		want = 3
	}
	return want
}

// View renders the box, or "" while hidden.
func (c *Controller) View() string {
	if !c.box.visible || c.box.Empty() {
		return ""
	}
	inner := c.innerWidth()
	labelWidth := uint(inner - 2)

	var rows []string
	if len(c.box.choices) == 0 {
		rows = append(rows, styleBoxText().Width(inner).Render("  "+truncate.StringWithTail(c.box.text, labelWidth, "…")))
	}
	start := c.box.scrollOffset
	end := start + c.visibleRows()
	if end > len(c.box.choices) {
		end = len(c.box.choices)
	}
	for i := start; i < end; i++ {
		label := truncate.StringWithTail(c.box.choices[i].text, labelWidth, "…")
		if i == c.box.highlight {
			rows = append(rows, styleBoxHighlight().Width(inner).Render("▸ "+label))
		} else {
			rows = append(rows, styleBoxChoice().Width(inner).Render("  "+label))
		}
	}
	return styleBox().Render(strings.Join(rows, "\n"))
}

// Indicator renders the pending-request spinner, or "" when idle.
func (c *Controller) Indicator() string {
	if c.inflight == nil {
		return ""
	}
	return styleIndicator().Render(c.spinner.View())
}

func styleBox() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderFocused()).
		Background(theme.Current().BackgroundSecondary())
}

func styleBoxChoice() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Text()).
		Background(theme.Current().BackgroundSecondary())
}

func styleBoxHighlight() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary()).
		Background(theme.Current().BackgroundSecondary()).
		Bold(true)
}

func styleBoxText() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted()).
		Background(theme.Current().BackgroundSecondary()).
		Italic(true)
}

func styleIndicator() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent())
}
