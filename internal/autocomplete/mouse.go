package autocomplete

import tea "github.com/charmbracelet/bubbletea"

// choiceAt maps a screen cell to a choice index, reporting whether the
// cell lies anywhere on the box (borders included).
func (c *Controller) choiceAt(x, y int) (index int, onBox bool) {
	pos := c.box.pos
	width, height := c.boxSize()
	if x < pos.X || x >= pos.X+width || y < pos.Y || y >= pos.Y+height {
		return -1, false
	}
	row := y - pos.Y - 1
	if row < 0 || row >= c.visibleRows() || x == pos.X || x == pos.X+width-1 {
		return -1, true
	}
	i := c.box.scrollOffset + row
	if i >= len(c.box.choices) {
		return -1, true
	}
	return i, true
}

// Contains reports whether the screen cell is covered by the visible box.
func (c *Controller) Contains(x, y int) bool {
	if !c.box.visible {
		return false
	}
	_, on := c.choiceAt(x, y)
	return on
}

// HandleMouse turns pointer motion and clicks into enter/leave/select
// transitions. handled is true when the event landed on the box.
func (c *Controller) HandleMouse(msg tea.MouseMsg) (tea.Cmd, bool) {
	if c.destroyed || !c.box.visible {
		return nil, false
	}
	i, onBox := c.choiceAt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		if !onBox {
			if c.mouseInside {
				c.mouseInside = false
				c.hovered = -1
				c.clearHighlight()
			}
			return nil, false
		}
		c.mouseInside = true
		if i >= 0 && i != c.hovered {
			c.hovered = i
			c.hoverChoice(i)
		}
		return nil, true

	case tea.MouseActionPress:
		if !onBox {
			return nil, false
		}
		if msg.Button == tea.MouseButtonLeft && i >= 0 {
			if c.box.highlight != i {
				c.hovered = i
				c.hoverChoice(i)
			}
			c.Select()
		}
		return nil, true
	}
	return nil, onBox
}
