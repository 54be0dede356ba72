// Package layout models the element tree a terminal form is drawn from and
// computes absolute screen positions for overlays anchored to an element.
package layout

// PositionKind mirrors the CSS position property for the purposes of
// choosing which ancestor an overlay is attached to.
type PositionKind int

const (
	// Static elements are laid out in flow and never host overlays.
	Static PositionKind = iota
	// Relative elements are offset from their flow position.
	Relative
	// Absolute elements are positioned against their containing block.
	Absolute
	// Fixed elements are positioned against the screen.
	Fixed
)

// Element is a node in the layout tree. Geometry is expressed in terminal
// cells. Left and Top are relative to the parent's content origin; an
// ancestor's ScrollLeft/ScrollTop shift every descendant.
type Element struct {
	ID     string
	Parent *Element
	Attrs  map[string]string

	Left, Top             int
	Width, Height         int
	ScrollLeft, ScrollTop int

	Position PositionKind
	// ZIndex of 0 means the element does not open a stacking context.
	ZIndex int
	Hidden bool
}

// NewElement creates an element attached to parent (nil for a root).
func NewElement(id string, parent *Element) *Element {
	return &Element{
		ID:     id,
		Parent: parent,
		Attrs:  map[string]string{},
	}
}

// WithBounds sets the element's offset and size and returns it.
func (e *Element) WithBounds(left, top, width, height int) *Element {
	e.Left = left
	e.Top = top
	e.Width = width
	e.Height = height
	return e
}

// Attr returns the attribute value for key, or "" when unset.
func (e *Element) Attr(key string) string {
	if e == nil || e.Attrs == nil {
		return ""
	}
	return e.Attrs[key]
}

// SetAttr sets an attribute, allocating the map on first use.
func (e *Element) SetAttr(key, value string) {
	if e.Attrs == nil {
		e.Attrs = map[string]string{}
	}
	e.Attrs[key] = value
}

// Ancestors returns the parent chain from the nearest parent to the root.
func (e *Element) Ancestors() []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for p := e.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	return out
}

// Root returns the topmost ancestor (the element itself when detached).
func (e *Element) Root() *Element {
	if e == nil {
		return nil
	}
	root := e
	for root.Parent != nil {
		root = root.Parent
	}
	return root
}

// Visible reports whether neither the element nor any ancestor is hidden.
func (e *Element) Visible() bool {
	if e == nil {
		return false
	}
	for n := e; n != nil; n = n.Parent {
		if n.Hidden {
			return false
		}
	}
	return true
}
