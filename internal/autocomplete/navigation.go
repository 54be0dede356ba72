package autocomplete

import tea "github.com/charmbracelet/bubbletea"

// Direction of a keyboard move through the choices.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Highlighted returns the highlighted choice, if any.
func (c *Controller) Highlighted() (Choice, bool) {
	i := c.box.highlight
	if i < 0 || i >= len(c.box.choices) {
		return Choice{}, false
	}
	return c.box.choices[i], true
}

// initialHighlight runs after every population. A choice the server
// already marked with the highlight class is kept; otherwise the first
// choice is highlighted.
func (c *Controller) initialHighlight() {
	for i, ch := range c.box.choices {
		if ch.HasClass(c.cfg.HighlightClass) {
			c.box.highlight = i
			c.adjustScrollOffset()
			return
		}
	}
	if len(c.box.choices) > 0 {
		c.setHighlight(0)
	}
}

// Move highlights the next or previous choice, wrapping at either end.
// Moves are always intercepted so the cursor does not jump in the input,
// but do nothing while the query is below the minimum length.
func (c *Controller) Move(dir Direction) (tea.Cmd, bool) {
	if !c.ShouldQuery() {
		return nil, true
	}
	cmd := c.RequestShow()

	n := len(c.box.choices)
	if n == 0 {
		return cmd, true
	}

	var target int
	if current, ok := c.Highlighted(); ok {
		if dir == Up {
			target = (current.index - 1 + n) % n
		} else {
			target = (current.index + 1) % n
		}
		c.box.highlight = -1
		c.bus.dehighlight(current, c)
	} else if dir == Up {
		target = n - 1
	} else {
		target = 0
	}
	c.setHighlight(target)
	return cmd, true
}

// Select emits a select notification for the highlighted choice. It
// reports false when nothing is highlighted.
func (c *Controller) Select() bool {
	choice, ok := c.Highlighted()
	if !ok {
		return false
	}
	c.logf("select %q", choice.Text())
	c.bus.selectChoice(choice, c)
	return true
}

// hoverChoice is a mouse entering choice i.
func (c *Controller) hoverChoice(i int) {
	if current, ok := c.Highlighted(); ok {
		c.box.highlight = -1
		c.bus.dehighlight(current, c)
	}
	c.setHighlight(i)
}

// clearHighlight dehighlights the current choice, if any.
func (c *Controller) clearHighlight() {
	current, ok := c.Highlighted()
	if !ok {
		return
	}
	c.box.highlight = -1
	c.bus.dehighlight(current, c)
}

func (c *Controller) setHighlight(i int) {
	if i < 0 || i >= len(c.box.choices) {
		return
	}
	c.box.highlight = i
	c.adjustScrollOffset()
	c.bus.highlight(c.box.choices[i], c)
}

// adjustScrollOffset keeps the highlighted row inside the visible window.
func (c *Controller) adjustScrollOffset() {
	b := c.box
	maxVisible := c.cfg.MaxVisible
	if b.highlight >= 0 {
		if b.highlight < b.scrollOffset {
			b.scrollOffset = b.highlight
		}
		if b.highlight >= b.scrollOffset+maxVisible {
			b.scrollOffset = b.highlight - maxVisible + 1
		}
	}
	maxOffset := len(b.choices) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if b.scrollOffset > maxOffset {
		b.scrollOffset = maxOffset
	}
	if b.scrollOffset < 0 {
		b.scrollOffset = 0
	}
}
