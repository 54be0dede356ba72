package autocomplete

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRefresh_BelowMinimum(t *testing.T) {
	t.Run("NeverFetches", func(t *testing.T) {
		f := &fakeFetcher{respond: choicesFor("Paris")}
		c, input := newTestController(t, f)

		if cmd := typeText(c, input, "p"); cmd != nil {
			t.Fatal("expected no command below the minimum")
		}
		if c.pendingTimer != 0 || c.inflight != nil {
			t.Fatal("expected no pending work")
		}
		if len(f.Calls()) != 0 {
			t.Fatalf("expected no fetch, got %v", f.Calls())
		}
	})

	t.Run("CancelsPendingTimer", func(t *testing.T) {
		f := &fakeFetcher{respond: choicesFor("Paris")}
		c, input := newTestController(t, f)

		typeText(c, input, "pa")
		stale := c.pendingTimer
		typeText(c, input, "p")
		c.Update(debounceMsg{address: c.addr, seq: stale})

		if c.inflight != nil || len(f.Calls()) != 0 {
			t.Fatalf("expected the canceled timer to issue nothing, got %v", f.Calls())
		}
	})

	t.Run("AbortsInflight", func(t *testing.T) {
		f := &fakeFetcher{respond: choicesFor("Paris")}
		c, input := newTestController(t, f)

		typeText(c, input, "pa")
		fireTimer(c)
		req := c.inflight
		typeText(c, input, "p")

		if req.ctx.Err() == nil {
			t.Fatal("expected the in-flight request context to be canceled")
		}
		c.Update(fetchDoneMsg{address: c.addr, seq: req.seq, resp: Response{Status: 200, Body: `<span class="choice">Paris</span>`}})
		if c.Box().Visible() || c.Box().Len() != 0 {
			t.Fatal("expected the aborted response to be dropped")
		}
	})

	t.Run("HidesVisibleBox", func(t *testing.T) {
		f := &fakeFetcher{respond: choicesFor("Paris", "Parma")}
		c, input := newTestController(t, f)
		typeText(c, input, "pa")
		settle(c)
		if !c.Box().Visible() {
			t.Fatal("expected box visible after population")
		}

		typeText(c, input, "p")
		if c.Box().Visible() {
			t.Fatal("expected box hidden below the minimum")
		}
	})
}

func TestRefresh_Debounce(t *testing.T) {
	f := &fakeFetcher{respond: choicesFor("Paris")}
	c, input := newTestController(t, f)

	var timers []int
	for _, v := range []string{"pa", "par", "pari"} {
		typeText(c, input, v)
		timers = append(timers, c.pendingTimer)
	}
	for _, seq := range timers[:len(timers)-1] {
		c.Update(debounceMsg{address: c.addr, seq: seq})
		if c.inflight != nil {
			t.Fatalf("superseded timer %d started a request", seq)
		}
	}
	settle(c)

	want := []string{"/choices?q=pari"}
	if diff := cmp.Diff(want, f.Calls()); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestRefresh_SameValueDoesNotRefetch(t *testing.T) {
	f := &fakeFetcher{respond: choicesFor("Paris")}
	c, input := newTestController(t, f)
	typeText(c, input, "pa")
	settle(c)

	typeText(c, input, "pa")
	if c.pendingTimer != 0 {
		t.Fatal("expected no timer for an unchanged query")
	}
	if len(f.Calls()) != 1 {
		t.Fatalf("expected a single call, got %v", f.Calls())
	}
}

func TestHandleResponse_Stale(t *testing.T) {
	f := &fakeFetcher{respond: choicesFor("Paris")}
	c, input := newTestController(t, f)

	typeText(c, input, "pa")
	fireTimer(c)
	oldSeq := c.inflight.seq

	typeText(c, input, "par")
	fireTimer(c)

	c.Update(fetchDoneMsg{address: c.addr, seq: oldSeq, resp: Response{Status: 200, Body: `<span class="choice">Stale</span>`}})
	if c.Box().Len() != 0 {
		t.Fatal("expected the superseded response to be ignored")
	}
	if c.inflight == nil {
		t.Fatal("expected the current request to stay in flight")
	}

	complete(c)
	if got := c.Box().Choices()[0].Text(); got != "Paris" {
		t.Fatalf("expected current response applied, got %q", got)
	}
}

func TestHandleResponse_AbortIsSilent(t *testing.T) {
	f := &fakeFetcher{}
	f.respond = func(*Params) (Response, error) { return Response{}, context.Canceled }
	c, input := newTestController(t, f)

	typeText(c, input, "pa")
	fireTimer(c)
	complete(c)

	if c.Box().Visible() {
		t.Fatal("expected nothing shown for an aborted request")
	}
	if c.inflight != nil {
		t.Fatal("expected request cleared")
	}
}

func TestHandleResponse_TransportError(t *testing.T) {
	fail := true
	f := &fakeFetcher{}
	f.respond = func(p *Params) (Response, error) {
		if fail {
			return Response{}, errors.New("connection refused")
		}
		return choicesFor("Paris")(p)
	}
	c, input := newTestController(t, f)

	typeText(c, input, "pa")
	settle(c)
	if c.Box().Visible() {
		t.Fatal("expected box hidden after a transport error")
	}

	// The failed snapshot must not count as answered.
	fail = false
	c.Focus()
	settle(c)
	if !c.Box().Visible() || c.Box().Len() != 1 {
		t.Fatalf("expected retry to populate, visible=%v len=%d", c.Box().Visible(), c.Box().Len())
	}
	if len(f.Calls()) != 2 {
		t.Fatalf("expected two calls, got %v", f.Calls())
	}
}

func TestHandleResponse_ErrorStatusRendersBody(t *testing.T) {
	f := &fakeFetcher{}
	f.respond = func(*Params) (Response, error) {
		return Response{Status: 500, Body: "<p>Lookup unavailable</p>"}, nil
	}
	c, input := newTestController(t, f)

	typeText(c, input, "pa")
	settle(c)

	if !c.Box().Visible() {
		t.Fatal("expected the error body to be shown")
	}
	if c.Box().Len() != 0 || c.Box().Text() != "Lookup unavailable" {
		t.Fatalf("unexpected box content: len=%d text=%q", c.Box().Len(), c.Box().Text())
	}
}

func TestHandleResponse_EmptyHides(t *testing.T) {
	f := &fakeFetcher{}
	f.respond = func(*Params) (Response, error) { return Response{Status: 200, Body: "  "}, nil }
	c, input := newTestController(t, f)

	typeText(c, input, "zz")
	settle(c)
	if c.Box().Visible() {
		t.Fatal("expected an empty response to keep the box hidden")
	}
}

func TestRequestShow_ParametersChanged(t *testing.T) {
	f := &fakeFetcher{respond: choicesFor("Lyon")}
	c, input := newTestController(t, f)

	typeText(c, input, "ly")
	settle(c)
	c.Hide()

	t.Run("UnchangedReveals", func(t *testing.T) {
		c.Focus()
		if c.pendingTimer != 0 {
			t.Fatal("expected no fetch when parameters are unchanged")
		}
		if !c.Box().Visible() {
			t.Fatal("expected the cached box to be revealed")
		}
	})

	t.Run("ChangedRefetches", func(t *testing.T) {
		c.Hide()
		c.SetParam("country", "fr")
		c.Focus()
		settle(c)

		want := []string{"/choices?q=ly", "/choices?q=ly&country=fr"}
		if diff := cmp.Diff(want, f.Calls()); diff != "" {
			t.Fatalf("calls mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestUpdate_IgnoresOtherControllers(t *testing.T) {
	f := &fakeFetcher{respond: choicesFor("Paris")}
	c, input := newTestController(t, f)
	typeText(c, input, "pa")

	c.Update(debounceMsg{address: address{id: "someone-else", gen: c.addr.gen}, seq: c.pendingTimer})
	if c.inflight != nil {
		t.Fatal("expected a message for another controller to be ignored")
	}
}
