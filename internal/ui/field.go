package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"autolight/internal/layout"
)

// fieldHeight is the bordered input plus its label line.
const fieldHeight = 4

// Field is a labelled text input placed in the page layout. It implements
// autocomplete.Input.
type Field struct {
	Label string

	input textinput.Model
	el    *layout.Element
}

// NewField creates a field. Attributes on the returned element configure an
// autocomplete bound to it (see autocomplete.AttributeOptions).
func NewField(id, label string) *Field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 100
	return &Field{
		Label: label,
		input: ti,
		el:    layout.NewElement(id, nil),
	}
}

// Element is the input's node in the page layout.
func (f *Field) Element() *layout.Element { return f.el }

// Value is the current text.
func (f *Field) Value() string { return f.input.Value() }

// SetValue replaces the text and moves the cursor to the end.
func (f *Field) SetValue(v string) {
	f.input.SetValue(v)
	f.input.CursorEnd()
}

// SetPlaceholder sets the text shown while empty.
func (f *Field) SetPlaceholder(p string) { f.input.Placeholder = p }

// Focused reports whether the field has keyboard focus.
func (f *Field) Focused() bool { return f.input.Focused() }

func (f *Field) focus() tea.Cmd { return f.input.Focus() }

func (f *Field) blur() { f.input.Blur() }

// place attaches the field to parent at the given bounds. The input box is
// drawn below the label, so the element starts one row lower.
func (f *Field) place(parent *layout.Element, left, top, width int) {
	f.el.Parent = parent
	f.el.WithBounds(left, top+1, width, 3)
	f.input.Width = max(width-3, 1)
}

// update forwards msg to the text input and reports whether the value changed.
func (f *Field) update(msg tea.Msg) (tea.Cmd, bool) {
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd, f.input.Value() != before
}

// contains reports whether the screen cell lies on the bordered input.
func (f *Field) contains(x, y int) bool {
	px, py := layout.PageOffset(f.el)
	return x >= px && x < px+f.el.Width && y >= py && y < py+f.el.Height
}

// View renders the label line and the bordered input, with indicator
// appended to the right of the input.
func (f *Field) View(indicator string) string {
	label := styleLabel().Render(f.Label)
	if f.Focused() {
		label = styleLabelFocused().Render(f.Label)
	}
	box := styleInput(f.Focused()).Width(f.el.Width - 2).Render(f.input.View())
	if indicator != "" {
		box = lipgloss.JoinHorizontal(lipgloss.Center, box, " ", indicator)
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, box)
}
