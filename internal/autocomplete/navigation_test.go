package autocomplete

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

// populated returns a controller showing Lille, Lyon and Lorient with no
// highlight, and a log subscribed to its notifications.
func populated(t *testing.T, opts ...Option) (*Controller, *fakeInput, *eventLog) {
	t.Helper()
	f := &fakeFetcher{respond: choicesFor("Lille", "Lyon", "Lorient")}
	c, input := newTestController(t, f, opts...)
	log := &eventLog{}
	c.Subscribe(log.listener())

	typeText(c, input, "lo")
	settle(c)
	c.clearHighlight()
	log.reset()
	return c, input, log
}

func highlightedText(c *Controller) string {
	ch, ok := c.Highlighted()
	if !ok {
		return ""
	}
	return ch.Text()
}

func TestPopulate_HighlightsFirst(t *testing.T) {
	f := &fakeFetcher{respond: choicesFor("Lille", "Lyon")}
	c, input := newTestController(t, f)
	log := &eventLog{}
	c.Subscribe(log.listener())

	typeText(c, input, "li")
	settle(c)

	if got := highlightedText(c); got != "Lille" {
		t.Fatalf("expected first choice highlighted, got %q", got)
	}
	if diff := cmp.Diff([]string{"highlight:Lille"}, log.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if !c.Box().Choices()[0].HasClass(DefaultHighlightClass) {
		t.Fatal("expected the highlight class on the first choice")
	}
}

func TestPopulate_KeepsServerHighlight(t *testing.T) {
	f := &fakeFetcher{}
	f.respond = func(*Params) (Response, error) {
		return Response{Status: 200, Body: `<span class="choice">Lille</span><span class="choice hilight">Lyon</span>`}, nil
	}
	c, input := newTestController(t, f)
	log := &eventLog{}
	c.Subscribe(log.listener())

	typeText(c, input, "ly")
	settle(c)

	if got := highlightedText(c); got != "Lyon" {
		t.Fatalf("expected the pre-marked choice kept, got %q", got)
	}
	if len(log.events) != 0 {
		t.Fatalf("expected no notification for a pre-marked choice, got %v", log.events)
	}
}

func TestMove(t *testing.T) {
	t.Run("DownFromNoneThenWraps", func(t *testing.T) {
		c, _, _ := populated(t)
		var got []string
		for range 4 {
			c.Move(Down)
			got = append(got, highlightedText(c))
		}
		want := []string{"Lille", "Lyon", "Lorient", "Lille"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("highlight sequence mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("UpFromFirstWrapsToLast", func(t *testing.T) {
		c, _, _ := populated(t)
		c.Move(Down)
		c.Move(Up)
		if got := highlightedText(c); got != "Lorient" {
			t.Fatalf("expected wrap to last, got %q", got)
		}
	})

	t.Run("UpFromNoneGoesToLast", func(t *testing.T) {
		c, _, _ := populated(t)
		c.Move(Up)
		if got := highlightedText(c); got != "Lorient" {
			t.Fatalf("expected last, got %q", got)
		}
	})

	t.Run("DehighlightBeforeHighlight", func(t *testing.T) {
		c, _, log := populated(t)
		c.Move(Down)
		c.Move(Down)
		want := []string{"highlight:Lille", "dehighlight:Lille", "highlight:Lyon"}
		if diff := cmp.Diff(want, log.events); diff != "" {
			t.Fatalf("events mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ExactlyOneHighlighted", func(t *testing.T) {
		c, _, _ := populated(t)
		for range 5 {
			c.Move(Down)
			n := 0
			for _, ch := range c.Box().Choices() {
				if ch.HasClass(DefaultHighlightClass) {
					n++
				}
			}
			if n != 1 {
				t.Fatalf("expected exactly one highlighted choice, got %d", n)
			}
		}
	})

	t.Run("BelowMinimumInterceptsButDoesNothing", func(t *testing.T) {
		c, input, log := populated(t)
		typeText(c, input, "l")
		log.reset()

		cmd, handled := c.Move(Down)
		if !handled || cmd != nil {
			t.Fatalf("expected an intercepted no-op, handled=%v cmd=%v", handled, cmd != nil)
		}
		if len(log.events) != 0 {
			t.Fatalf("expected no notifications, got %v", log.events)
		}
	})

	t.Run("RevealsHiddenBox", func(t *testing.T) {
		c, _, _ := populated(t)
		c.Hide()
		c.Move(Down)
		if !c.Box().Visible() {
			t.Fatal("expected a move to show the box")
		}
	})
}

func TestMove_ScrollsWindow(t *testing.T) {
	f := &fakeFetcher{respond: choicesFor("a1", "a2", "a3", "a4", "a5")}
	c, input := newTestController(t, f, WithMaxVisible(2))
	typeText(c, input, "aa")
	settle(c)

	for range 3 {
		c.Move(Down)
	}
	if c.box.highlight != 3 || c.box.scrollOffset != 2 {
		t.Fatalf("expected highlight 3 at offset 2, got %d at %d", c.box.highlight, c.box.scrollOffset)
	}
	c.Move(Down)
	c.Move(Down)
	if c.box.highlight != 0 || c.box.scrollOffset != 0 {
		t.Fatalf("expected wrap to top, got %d at %d", c.box.highlight, c.box.scrollOffset)
	}
}

func TestHandleKey(t *testing.T) {
	t.Run("EnterSelectsOnce", func(t *testing.T) {
		c, _, log := populated(t)
		c.Move(Down)
		log.reset()

		_, handled := c.HandleKey(key(tea.KeyEnter))
		if !handled {
			t.Fatal("expected Enter to be consumed")
		}
		if diff := cmp.Diff([]string{"select:Lille"}, log.events); diff != "" {
			t.Fatalf("events mismatch (-want +got):\n%s", diff)
		}
		if c.Box().Visible() {
			t.Fatal("expected box hidden after select")
		}
		if _, ok := c.Highlighted(); ok {
			t.Fatal("expected no highlight after select")
		}
	})

	t.Run("EnterWithoutHighlightFallsThrough", func(t *testing.T) {
		c, _, log := populated(t)
		if _, handled := c.HandleKey(key(tea.KeyEnter)); handled {
			t.Fatal("expected Enter to fall through with no highlight")
		}
		if len(log.events) != 0 {
			t.Fatalf("expected no notifications, got %v", log.events)
		}
	})

	t.Run("TabSelects", func(t *testing.T) {
		c, _, log := populated(t)
		c.Move(Up)
		log.reset()
		if _, handled := c.HandleKey(key(tea.KeyTab)); !handled {
			t.Fatal("expected Tab to be consumed")
		}
		if diff := cmp.Diff([]string{"select:Lorient"}, log.events); diff != "" {
			t.Fatalf("events mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("EscapeHidesWithoutDehighlight", func(t *testing.T) {
		c, _, log := populated(t)
		c.Move(Down)
		log.reset()

		if _, handled := c.HandleKey(key(tea.KeyEsc)); !handled {
			t.Fatal("expected Escape to be consumed while the box is visible")
		}
		if c.Box().Visible() {
			t.Fatal("expected box hidden")
		}
		if len(log.events) != 0 {
			t.Fatalf("expected no notifications on Escape, got %v", log.events)
		}
		if got := highlightedText(c); got != "Lille" {
			t.Fatalf("expected highlight to survive Escape, got %q", got)
		}
	})

	t.Run("EscapeWhileHiddenFallsThrough", func(t *testing.T) {
		c, _, _ := populated(t)
		c.Hide()
		if _, handled := c.HandleKey(key(tea.KeyEsc)); handled {
			t.Fatal("expected Escape to fall through while hidden")
		}
	})

	t.Run("TypingFallsThrough", func(t *testing.T) {
		c, _, _ := populated(t)
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}
		if _, handled := c.HandleKey(msg); handled {
			t.Fatal("expected printable keys to reach the input")
		}
	})

	t.Run("HiddenInputIgnored", func(t *testing.T) {
		c, input, _ := populated(t)
		input.el.Hidden = true
		if _, handled := c.HandleKey(key(tea.KeyDown)); handled {
			t.Fatal("expected keys on a hidden input to be ignored")
		}
	})
}
