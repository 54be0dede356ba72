package layout

// Position is where an overlay anchored below an element should be drawn,
// in absolute screen cells.
type Position struct {
	X      int
	Y      int
	Width  int
	ZIndex int
}

// PageOffset returns the element's absolute offset from the screen origin,
// subtracting the scroll offset of every ancestor scroll container.
func PageOffset(e *Element) (x, y int) {
	if e == nil {
		return 0, 0
	}
	x, y = e.Left, e.Top
	for p := e.Parent; p != nil; p = p.Parent {
		x += p.Left - p.ScrollLeft
		y += p.Top - p.ScrollTop
	}
	return x, y
}

// PositioningAncestor returns the nearest ancestor with absolute or fixed
// positioning, falling back to the root of the tree.
func PositioningAncestor(e *Element) *Element {
	if e == nil {
		return nil
	}
	for _, p := range e.Ancestors() {
		if p.Position == Absolute || p.Position == Fixed {
			return p
		}
	}
	return e.Root()
}

// StackingZIndex returns the z-index of the nearest ancestor that opens a
// stacking context, or 0 when none does.
func StackingZIndex(e *Element) int {
	for _, p := range e.Ancestors() {
		if p.ZIndex != 0 {
			return p.ZIndex
		}
	}
	return 0
}

// ComputePosition places an overlay directly below e, at least as wide as e.
func ComputePosition(e *Element) Position {
	if e == nil {
		return Position{}
	}
	x, y := PageOffset(e)
	return Position{
		X:      x,
		Y:      y + e.Height,
		Width:  e.Width,
		ZIndex: StackingZIndex(e),
	}
}
