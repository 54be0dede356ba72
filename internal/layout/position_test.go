package layout

import "testing"

func buildTree() (root, panel, input *Element) {
	root = NewElement("document", nil).WithBounds(0, 0, 120, 40)
	panel = NewElement("panel", root).WithBounds(4, 2, 60, 20)
	input = NewElement("city", panel).WithBounds(10, 5, 30, 3)
	return root, panel, input
}

func TestPageOffset(t *testing.T) {
	t.Run("SumsOffsets", func(t *testing.T) {
		_, _, input := buildTree()
		x, y := PageOffset(input)
		if x != 14 || y != 7 {
			t.Fatalf("expected (14,7), got (%d,%d)", x, y)
		}
	})

	t.Run("SubtractsAncestorScroll", func(t *testing.T) {
		root, panel, input := buildTree()
		panel.ScrollTop = 3
		root.ScrollLeft = 2
		x, y := PageOffset(input)
		if x != 12 || y != 4 {
			t.Fatalf("expected (12,4), got (%d,%d)", x, y)
		}
	})

	t.Run("IgnoresOwnScroll", func(t *testing.T) {
		_, _, input := buildTree()
		input.ScrollLeft = 9
		x, _ := PageOffset(input)
		if x != 14 {
			t.Fatalf("expected input scroll to be ignored, got x=%d", x)
		}
	})

	t.Run("Nil", func(t *testing.T) {
		x, y := PageOffset(nil)
		if x != 0 || y != 0 {
			t.Fatalf("expected zero offset for nil element, got (%d,%d)", x, y)
		}
	})
}

func TestPositioningAncestor(t *testing.T) {
	root, panel, input := buildTree()
	if got := PositioningAncestor(input); got != root {
		t.Fatalf("expected root fallback, got %q", got.ID)
	}

	panel.Position = Relative
	if got := PositioningAncestor(input); got != root {
		t.Fatalf("relative ancestors must not host overlays, got %q", got.ID)
	}

	panel.Position = Absolute
	if got := PositioningAncestor(input); got != panel {
		t.Fatalf("expected absolute panel, got %q", got.ID)
	}

	inner := NewElement("inner", panel)
	inner.Position = Fixed
	field := NewElement("field", inner)
	if got := PositioningAncestor(field); got != inner {
		t.Fatalf("expected nearest fixed ancestor, got %q", got.ID)
	}
}

func TestStackingZIndex(t *testing.T) {
	root, panel, input := buildTree()
	if z := StackingZIndex(input); z != 0 {
		t.Fatalf("expected 0 without stacking contexts, got %d", z)
	}
	root.ZIndex = 1
	if z := StackingZIndex(input); z != 1 {
		t.Fatalf("expected root z-index 1, got %d", z)
	}
	panel.ZIndex = 30
	if z := StackingZIndex(input); z != 30 {
		t.Fatalf("expected nearest z-index 30, got %d", z)
	}
	input.ZIndex = 99
	if z := StackingZIndex(input); z != 30 {
		t.Fatalf("own z-index must not count, got %d", z)
	}
}

func TestComputePosition(t *testing.T) {
	_, panel, input := buildTree()
	panel.ZIndex = 5

	got := ComputePosition(input)
	want := Position{X: 14, Y: 10, Width: 30, ZIndex: 5}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	// Idempotent: recomputing without geometry changes yields the same result.
	if again := ComputePosition(input); again != got {
		t.Fatalf("expected idempotent result, got %+v then %+v", got, again)
	}

	panel.Left = 20
	moved := ComputePosition(input)
	if moved.X != 30 {
		t.Fatalf("expected relocated x=30, got %d", moved.X)
	}
}

func TestVisible(t *testing.T) {
	_, panel, input := buildTree()
	if !input.Visible() {
		t.Fatal("expected input to be visible")
	}
	panel.Hidden = true
	if input.Visible() {
		t.Fatal("expected input hidden when an ancestor is hidden")
	}
	var nilElement *Element
	if nilElement.Visible() {
		t.Fatal("nil element must not be visible")
	}
}
