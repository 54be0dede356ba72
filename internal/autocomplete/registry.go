package autocomplete

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	appErrors "autolight/internal/errors"
)

// Registry maps inputs to their controllers. At most one controller exists
// per input; acquiring twice returns the same one.
type Registry struct {
	mu          sync.Mutex
	base        []Option
	controllers map[string]*Controller
	order       []string
}

// NewRegistry creates a registry. base options apply to every controller
// before element attributes and per-call options.
func NewRegistry(base ...Option) *Registry {
	return &Registry{
		base:        base,
		controllers: make(map[string]*Controller),
	}
}

// Acquire returns the controller bound to input, creating and initializing
// it on first use. Options apply in order: defaults, registry base options,
// the element's autocomplete-* attributes, then opts. A missing URL is a
// configuration error and nothing is registered.
func (r *Registry) Acquire(input Input, opts ...Option) (*Controller, error) {
	el := input.Element()
	if el == nil {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "input has no element", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if el.ID == "" {
		el.ID = uuid.NewString()
	}
	if c, ok := r.controllers[el.ID]; ok {
		return c, nil
	}

	cfg := DefaultConfig()
	for _, opt := range r.base {
		opt(&cfg)
	}
	attrOpts, err := AttributeOptions(el.Attrs)
	if err != nil {
		return nil, fmt.Errorf("autocomplete %s: %w", el.ID, err)
	}
	for _, opt := range attrOpts {
		opt(&cfg)
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("autocomplete %s: %w", el.ID, err)
	}

	c, err := newController(input, cfg)
	if err != nil {
		return nil, fmt.Errorf("autocomplete %s: %w", el.ID, err)
	}
	c.initialize()
	r.controllers[el.ID] = c
	r.order = append(r.order, el.ID)
	return c, nil
}

// Lookup returns the controller bound to input without creating one.
func (r *Registry) Lookup(input Input) (*Controller, bool) {
	el := input.Element()
	if el == nil || el.ID == "" {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.controllers[el.ID]
	return c, ok
}

// Destroy tears the controller down and forgets it; a later Acquire builds
// a fresh one. It reports whether a controller existed.
func (r *Registry) Destroy(input Input) bool {
	el := input.Element()
	if el == nil {
		return false
	}
	r.mu.Lock()
	c, ok := r.controllers[el.ID]
	if ok {
		delete(r.controllers, el.ID)
		for i, id := range r.order {
			if id == el.ID {
				r.order = append(r.order[:i:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.mu.Unlock()

	if ok {
		c.teardown()
	}
	return ok
}

// Len is the number of live controllers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}

// Controllers returns the live controllers in acquisition order.
func (r *Registry) Controllers() []*Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Controller, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.controllers[id])
	}
	return out
}

// Route delivers timer, response and resize messages to the controllers
// they concern. Key and mouse events are left to the host, which knows
// which input has focus.
func (r *Registry) Route(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case addressed:
		r.mu.Lock()
		c, ok := r.controllers[m.controllerID()]
		r.mu.Unlock()
		if !ok {
			return nil
		}
		return c.Update(msg)
	case tea.WindowSizeMsg, spinner.TickMsg:
		var cmds []tea.Cmd
		for _, c := range r.Controllers() {
			cmds = append(cmds, c.Update(msg))
		}
		return tea.Batch(cmds...)
	}
	return nil
}
