// Package autocomplete binds a text input to a server endpoint that returns
// choices as HTML, and drives the overlay box listing them: debounced and
// cancelable fetching, keyboard and mouse navigation, and positioning.
//
// Everything runs inside a Bubble Tea update loop. Timers and requests are
// commands whose messages carry the controller address plus a sequence number;
// cancellation invalidates the sequence (timers) or cancels the request
// context (requests), so superseded work never touches controller state.
package autocomplete

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"autolight/internal/debug"
	"autolight/internal/layout"
)

// Input is the text input a controller is bound to. The controller reads
// it but does not own it.
type Input interface {
	Element() *layout.Element
	Value() string
}

// request is the single in-flight GET.
type request struct {
	seq    int
	ctx    context.Context
	cancel context.CancelFunc
	params *Params
}

// Controller coordinates query tracking, fetching, navigation and
// positioning for one input.
type Controller struct {
	id     string
	addr   address
	input  Input
	cfg    Config
	markup *markup
	logf   func(format string, v ...any)

	value    string
	lastSent *Params

	box *Box
	bus bus

	seq          int
	pendingTimer int // sequence of the live debounce timer, 0 for none
	inflight     *request

	spinner     spinner.Model
	focused     bool
	hovered     int
	mouseInside bool
	initialized bool
	destroyed   bool
}

func newController(input Input, cfg Config) (*Controller, error) {
	m, err := newMarkup(cfg.ChoiceSelector)
	if err != nil {
		return nil, err
	}
	if cfg.Fetcher == nil {
		cfg.Fetcher = NewHTTPFetcher(nil)
	}
	if cfg.Params == nil {
		cfg.Params = NewParams()
	}
	el := input.Element()
	return &Controller{
		id:      el.ID,
		addr:    address{id: el.ID, gen: uuid.NewString()},
		input:   input,
		cfg:     cfg,
		markup:  m,
		logf:    debug.Scoped("autocomplete[" + el.ID + "]"),
		box:     newBox(layout.PositioningAncestor(el)),
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		hovered: -1,
	}, nil
}

// initialize installs the built-in behaviour and seeds the query variable.
func (c *Controller) initialize() {
	if c.initialized {
		return
	}
	c.bus.defaults = defaultBehavior{}
	if _, ok := c.cfg.Params.Get(c.cfg.QueryVariable); !ok {
		c.cfg.Params.Set(c.cfg.QueryVariable, "")
	}
	c.initialized = true
	c.logf("initialized url=%s min=%d wait=%s", c.cfg.URL, c.cfg.MinimumCharacters, c.cfg.XHRWait)
}

// teardown detaches listeners and drops pending work. The box is left as is.
func (c *Controller) teardown() {
	c.cancelTimer()
	c.abort()
	c.bus.reset()
	c.destroyed = true
	c.initialized = false
	c.logf("destroyed")
}

// ID is the identity of the bound input.
func (c *Controller) ID() string { return c.id }

// Input returns the bound input.
func (c *Controller) Input() Input { return c.input }

// Config returns a copy of the active configuration.
func (c *Controller) Config() Config { return c.cfg }

// Box returns the results box.
func (c *Controller) Box() *Box { return c.box }

// Focused reports whether the input currently has focus.
func (c *Controller) Focused() bool { return c.focused }

// Pending reports an in-flight request.
func (c *Controller) Pending() bool { return c.inflight != nil }

// Subscribe registers l for highlight, dehighlight and select
// notifications. The returned func unsubscribes.
func (c *Controller) Subscribe(l Listener) func() {
	return c.bus.subscribe(l)
}

// SetParam sets an extra GET parameter. The next show re-fetches when the
// parameters differ from the last request.
func (c *Controller) SetParam(key, value string) {
	c.cfg.Params.Set(key, value)
}

// DeleteParam removes an extra GET parameter.
func (c *Controller) DeleteParam(key string) {
	if key == c.cfg.QueryVariable {
		return
	}
	c.cfg.Params.Delete(key)
}

// Param returns an extra GET parameter.
func (c *Controller) Param(key string) (string, bool) {
	return c.cfg.Params.Get(key)
}

// UpdateQuery records raw as the current input value and returns it.
func (c *Controller) UpdateQuery(raw string) string {
	c.value = raw
	return c.value
}

// Value is the last value read from the input.
func (c *Controller) Value() string { return c.value }

// ShouldQuery reports whether the value is long enough to query.
func (c *Controller) ShouldQuery() bool {
	return utf8.RuneCountInString(c.value) >= c.cfg.MinimumCharacters
}

// ParametersChanged compares the live parameters, query included, with the
// snapshot of the last request.
func (c *Controller) ParametersChanged() bool {
	return !c.liveParams().Equal(c.lastSent)
}

func (c *Controller) liveParams() *Params {
	live := c.cfg.Params.Clone()
	live.Set(c.cfg.QueryVariable, c.value)
	return live
}

// Focus marks the input focused and shows the box when the query is long
// enough.
func (c *Controller) Focus() tea.Cmd {
	c.focused = true
	c.UpdateQuery(c.input.Value())
	if !c.ShouldQuery() {
		return nil
	}
	return c.RequestShow()
}

// Blur marks the input unfocused and hides the box after HideAfter, giving
// a click on a choice time to be delivered first.
func (c *Controller) Blur() tea.Cmd {
	c.focused = false
	addr := c.addr
	return tea.Tick(c.cfg.HideAfter, func(_ time.Time) tea.Msg {
		return blurHideMsg{address: addr}
	})
}

// InputChanged must be called after the input's value changed.
func (c *Controller) InputChanged() tea.Cmd {
	return c.Refresh()
}

// Hide hides the box without touching the highlight.
func (c *Controller) Hide() {
	if c.box.visible {
		c.logf("hide")
	}
	c.box.visible = false
	c.mouseInside = false
	c.hovered = -1
}

// dismiss dehighlights the current choice, then hides.
func (c *Controller) dismiss() {
	c.clearHighlight()
	c.Hide()
}

func (c *Controller) reveal() {
	c.box.visible = true
}

// fixPosition places the box below the input.
func (c *Controller) fixPosition() {
	c.box.pos = layout.ComputePosition(c.input.Element())
}

// Update handles controller-addressed messages and window resizes.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	if c.destroyed {
		return nil
	}
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.address == c.addr {
			return c.handleDebounce(msg)
		}
	case fetchDoneMsg:
		if msg.address == c.addr {
			return c.handleResponse(msg)
		}
	case blurHideMsg:
		if msg.address == c.addr {
			c.dismiss()
		}
	case tea.WindowSizeMsg:
		if c.box.visible {
			c.fixPosition()
		}
	case spinner.TickMsg:
		if c.inflight == nil {
			return nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		cmd, _ := c.HandleKey(msg)
		return cmd
	case tea.MouseMsg:
		cmd, _ := c.HandleMouse(msg)
		return cmd
	}
	return nil
}

// HandleKey processes a key press on the input. handled is false when the
// key should fall through to the input and the host (typing, Enter
// submitting a form, Tab moving focus).
func (c *Controller) HandleKey(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	if c.destroyed || !c.input.Element().Visible() {
		return nil, false
	}
	switch msg.Type {
	case tea.KeyUp:
		return c.Move(Up)
	case tea.KeyDown:
		return c.Move(Down)
	case tea.KeyEnter, tea.KeyTab:
		if !c.box.visible {
			return nil, false
		}
		if _, ok := c.Highlighted(); !ok {
			return nil, false
		}
		c.Select()
		return nil, true
	case tea.KeyEsc:
		if !c.box.visible {
			return nil, false
		}
		// Display-only: the highlight survives, no dehighlight is emitted.
		c.Hide()
		return nil, true
	}
	return nil, false
}
