package autocomplete

// Listener receives the three notifications a controller emits. Listeners
// may call back into the controller (SetParam, Hide, SetValue on the input)
// but must not assume a pending fetch has completed.
type Listener interface {
	HighlightChoice(choice Choice, c *Controller)
	DehighlightChoice(choice Choice, c *Controller)
	SelectChoice(choice Choice, c *Controller)
}

// ListenerFuncs adapts plain functions to a Listener. Nil fields are skipped.
type ListenerFuncs struct {
	OnHighlight   func(Choice, *Controller)
	OnDehighlight func(Choice, *Controller)
	OnSelect      func(Choice, *Controller)
}

// HighlightChoice implements Listener.
func (f ListenerFuncs) HighlightChoice(choice Choice, c *Controller) {
	if f.OnHighlight != nil {
		f.OnHighlight(choice, c)
	}
}

// DehighlightChoice implements Listener.
func (f ListenerFuncs) DehighlightChoice(choice Choice, c *Controller) {
	if f.OnDehighlight != nil {
		f.OnDehighlight(choice, c)
	}
}

// SelectChoice implements Listener.
func (f ListenerFuncs) SelectChoice(choice Choice, c *Controller) {
	if f.OnSelect != nil {
		f.OnSelect(choice, c)
	}
}

type subscription struct {
	id       int
	listener Listener
}

// bus fans notifications out to subscribers in subscription order, then to
// the controller's built-in behaviour.
type bus struct {
	next     int
	subs     []subscription
	defaults Listener
}

func (b *bus) subscribe(l Listener) func() {
	b.next++
	id := b.next
	b.subs = append(b.subs, subscription{id: id, listener: l})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

func (b *bus) reset() {
	b.subs = nil
	b.defaults = nil
}

// snapshot lets listeners unsubscribe while a notification is delivered.
func (b *bus) snapshot() []Listener {
	out := make([]Listener, 0, len(b.subs)+1)
	for _, s := range b.subs {
		out = append(out, s.listener)
	}
	if b.defaults != nil {
		out = append(out, b.defaults)
	}
	return out
}

func (b *bus) highlight(choice Choice, c *Controller) {
	for _, l := range b.snapshot() {
		l.HighlightChoice(choice, c)
	}
}

func (b *bus) dehighlight(choice Choice, c *Controller) {
	for _, l := range b.snapshot() {
		l.DehighlightChoice(choice, c)
	}
}

func (b *bus) selectChoice(choice Choice, c *Controller) {
	for _, l := range b.snapshot() {
		l.SelectChoice(choice, c)
	}
}

// defaultBehavior keeps the highlight class in step with notifications and
// hides the box once a choice is selected.
type defaultBehavior struct{}

func (defaultBehavior) HighlightChoice(choice Choice, c *Controller) {
	choice.addClass(c.cfg.HighlightClass)
}

func (defaultBehavior) DehighlightChoice(choice Choice, c *Controller) {
	choice.removeClass(c.cfg.HighlightClass)
}

func (defaultBehavior) SelectChoice(choice Choice, c *Controller) {
	choice.removeClass(c.cfg.HighlightClass)
	if c.box.highlight == choice.index {
		c.box.highlight = -1
	}
	c.Hide()
}
