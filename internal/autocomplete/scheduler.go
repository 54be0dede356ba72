package autocomplete

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// address names one controller instance: the input ID plus a generation
// that differs for each controller built on that input.
type address struct {
	id  string
	gen string
}

func (a address) controllerID() string { return a.id }

// debounceMsg fires when a debounce timer elapses.
type debounceMsg struct {
	address
	seq int
}

// fetchDoneMsg carries a completed, failed or aborted request.
type fetchDoneMsg struct {
	address
	seq  int
	resp Response
	err  error
}

// blurHideMsg fires HideAfter after the input lost focus.
type blurHideMsg struct {
	address
}

// addressed is implemented by messages meant for a single controller.
type addressed interface {
	controllerID() string
}

// RequestShow is the single entry point for anything that may need fresh
// results on screen. It always repositions the box; it fetches when the
// box has no choices or the parameters changed and nothing is pending,
// and otherwise reveals a non-empty box.
func (c *Controller) RequestShow() tea.Cmd {
	c.fixPosition()

	if (c.box.Len() == 0 || c.ParametersChanged()) && c.pendingTimer == 0 && c.inflight == nil {
		return c.scheduleFetch()
	}
	if !c.box.Empty() {
		c.reveal()
	}
	return nil
}

// Refresh reacts to a new input value.
func (c *Controller) Refresh() tea.Cmd {
	c.UpdateQuery(c.input.Value())

	if !c.ShouldQuery() {
		if c.pendingTimer != 0 || c.inflight != nil {
			// The abandoned snapshot was never answered.
			c.lastSent = nil
		}
		c.cancelTimer()
		c.abort()
		c.dismiss()
		return nil
	}
	c.cfg.Params.Set(c.cfg.QueryVariable, c.value)
	if !c.ParametersChanged() {
		return c.RequestShow()
	}
	return c.scheduleFetch()
}

// scheduleFetch replaces any pending timer and in-flight request with a
// new debounce timer for the current parameters.
func (c *Controller) scheduleFetch() tea.Cmd {
	c.cancelTimer()
	c.abort()

	c.lastSent = c.liveParams()
	c.seq++
	c.pendingTimer = c.seq

	addr, seq := c.addr, c.seq
	c.logf("scheduled fetch seq=%d params=%s", seq, c.lastSent.Encode())
	return tea.Tick(c.cfg.XHRWait, func(_ time.Time) tea.Msg {
		return debounceMsg{address: addr, seq: seq}
	})
}

func (c *Controller) cancelTimer() {
	if c.pendingTimer != 0 {
		c.logf("canceled timer seq=%d", c.pendingTimer)
	}
	c.pendingTimer = 0
}

// abort cancels the in-flight request; its response is dropped on arrival.
func (c *Controller) abort() {
	if c.inflight == nil {
		return
	}
	c.logf("aborted request seq=%d", c.inflight.seq)
	c.inflight.cancel()
	c.inflight = nil
}

func (c *Controller) handleDebounce(msg debounceMsg) tea.Cmd {
	if msg.seq != c.pendingTimer {
		return nil
	}
	c.pendingTimer = 0

	ctx, cancel := context.WithCancel(context.Background())
	req := &request{seq: msg.seq, ctx: ctx, cancel: cancel, params: c.lastSent.Clone()}
	c.inflight = req
	c.logf("issuing request seq=%d", req.seq)
	return tea.Batch(c.fetchCmd(req), c.spinner.Tick)
}

// fetchCmd performs req off the update loop.
func (c *Controller) fetchCmd(req *request) tea.Cmd {
	addr, fetcher, endpoint := c.addr, c.cfg.Fetcher, c.cfg.URL
	return func() tea.Msg {
		resp, err := fetcher.Fetch(req.ctx, endpoint, req.params)
		if err == nil && req.ctx.Err() != nil {
			err = req.ctx.Err()
		}
		return fetchDoneMsg{address: addr, seq: req.seq, resp: resp, err: err}
	}
}

func (c *Controller) handleResponse(msg fetchDoneMsg) tea.Cmd {
	if c.inflight == nil || c.inflight.seq != msg.seq {
		// Aborted or superseded.
		return nil
	}
	c.inflight.cancel()
	c.inflight = nil

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return nil
		}
		c.logf("request seq=%d failed: %v", msg.seq, msg.err)
		c.lastSent = nil
		c.dismiss()
		return nil
	}
	if !msg.resp.OK() {
		c.logf("request seq=%d returned status %d, rendering body", msg.seq, msg.resp.Status)
	}
	c.populate(msg.resp.Body)
	return nil
}

// populate replaces the box content, places the initial highlight, then
// reveals or hides the box.
func (c *Controller) populate(body string) {
	c.hovered = -1
	if err := c.markup.fill(c.box, body); err != nil {
		c.logf("%v", err)
	}
	c.logf("populated %d choices", c.box.Len())
	c.initialHighlight()

	c.fixPosition()
	if c.box.Empty() {
		c.Hide()
		return
	}
	c.reveal()
}
