package autocomplete

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"autolight/internal/layout"
)

type fakeInput struct {
	el    *layout.Element
	value string
}

func (f *fakeInput) Element() *layout.Element { return f.el }
func (f *fakeInput) Value() string            { return f.value }

func newFakeInput(id string) *fakeInput {
	root := layout.NewElement("document", nil).WithBounds(0, 0, 80, 24)
	return &fakeInput{el: layout.NewElement(id, root).WithBounds(2, 1, 30, 1)}
}

// fakeFetcher records every request and answers from respond.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   []string
	respond func(params *Params) (Response, error)
}

func (f *fakeFetcher) Fetch(ctx context.Context, endpoint string, params *Params) (Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, endpoint+"?"+params.Encode())
	respond := f.respond
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	if respond == nil {
		return Response{Status: 200}, nil
	}
	return respond(params)
}

func (f *fakeFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// choicesFor answers with one choice per label, echoing the query.
func choicesFor(labels ...string) func(*Params) (Response, error) {
	return func(p *Params) (Response, error) {
		var b strings.Builder
		for _, l := range labels {
			fmt.Fprintf(&b, `<span class="choice">%s</span>`, l)
		}
		return Response{Status: 200, Body: b.String()}, nil
	}
}

func newTestController(t *testing.T, fetcher *fakeFetcher, opts ...Option) (*Controller, *fakeInput) {
	t.Helper()
	input := newFakeInput("city")
	reg := NewRegistry(WithURL("/choices"), WithFetcher(fetcher))
	c, err := reg.Acquire(input, opts...)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	return c, input
}

// typeText sets the input value and notifies the controller.
func typeText(c *Controller, input *fakeInput, value string) tea.Cmd {
	input.value = value
	return c.InputChanged()
}

// fireTimer delivers the pending debounce timer, if any, and reports
// whether a request was started.
func fireTimer(c *Controller) bool {
	if c.pendingTimer == 0 {
		return false
	}
	c.Update(debounceMsg{address: c.addr, seq: c.pendingTimer})
	return c.inflight != nil
}

// complete runs the in-flight request and delivers its response.
func complete(c *Controller) {
	if c.inflight == nil {
		return
	}
	msg := c.fetchCmd(c.inflight)()
	c.Update(msg)
}

// settle fires the pending timer and completes the resulting request.
func settle(c *Controller) {
	if fireTimer(c) {
		complete(c)
	}
}

// eventLog records notifications as "kind:text".
type eventLog struct {
	events []string
}

func (l *eventLog) listener() Listener {
	return ListenerFuncs{
		OnHighlight:   func(ch Choice, _ *Controller) { l.events = append(l.events, "highlight:"+ch.Text()) },
		OnDehighlight: func(ch Choice, _ *Controller) { l.events = append(l.events, "dehighlight:"+ch.Text()) },
		OnSelect:      func(ch Choice, _ *Controller) { l.events = append(l.events, "select:"+ch.Text()) },
	}
}

func (l *eventLog) reset() { l.events = nil }

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }
