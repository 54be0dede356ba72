package ui

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"autolight/internal/autocomplete"
	"autolight/internal/layout"
	"autolight/internal/ui/theme"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	maxFieldWidth = 48
	minFieldWidth = 12
	helpZ         = 1 << 10
)

// FormConfig configures a Form.
type FormConfig struct {
	Title string
	// Help is markdown shown on F1.
	Help string
	// HelpFormat selects the glamour style ("dark", "light", "notty",
	// "plain").
	HelpFormat string
	// OnSubmit runs when Enter reaches the form. Values are keyed by field ID.
	OnSubmit func(values map[string]string) tea.Cmd
}

// Form is the Bubble Tea model hosting inputs and their autocompletes. It
// owns the page layout and decides which field receives input.
type Form struct {
	cfg      FormConfig
	registry *autocomplete.Registry

	page   *layout.Element
	panel  *layout.Element
	fields []*Field
	focus  int

	width  int
	height int

	renderHelp func(string) string
	showHelp   bool
	status     string
	submitted  bool
}

// NewForm creates an empty form backed by registry.
func NewForm(registry *autocomplete.Registry, cfg FormConfig) *Form {
	page := layout.NewElement("page", nil)
	panel := layout.NewElement("form", page)
	panel.Position = layout.Relative
	panel.ZIndex = 1

	m := &Form{
		cfg:      cfg,
		registry: registry,
		page:     page,
		panel:    panel,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.relayout()
	return m
}

// AddField appends a plain field.
func (m *Form) AddField(f *Field) {
	m.fields = append(m.fields, f)
	m.relayout()
}

// Bind appends f if needed and acquires its autocomplete. The form reports
// selections in its status line.
func (m *Form) Bind(f *Field, opts ...autocomplete.Option) (*autocomplete.Controller, error) {
	if m.indexOf(f) < 0 {
		m.AddField(f)
	}
	ctl, err := m.registry.Acquire(f, opts...)
	if err != nil {
		return nil, err
	}
	ctl.Subscribe(autocomplete.ListenerFuncs{
		OnSelect: func(choice autocomplete.Choice, _ *autocomplete.Controller) {
			m.status = fmt.Sprintf("%s: %s", f.Label, choice.Text())
		},
	})
	return ctl, nil
}

// Unbind destroys the autocomplete of f; the field stays.
func (m *Form) Unbind(f *Field) bool {
	return m.registry.Destroy(f)
}

// Fields returns the fields in tab order.
func (m *Form) Fields() []*Field { return m.fields }

// Focused returns the field with keyboard focus.
func (m *Form) Focused() *Field {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return nil
	}
	return m.fields[m.focus]
}

// Status is the last status line message.
func (m *Form) Status() string { return m.status }

// Submitted reports whether the form was submitted.
func (m *Form) Submitted() bool { return m.submitted }

// Values returns the field values keyed by element ID.
func (m *Form) Values() map[string]string {
	out := make(map[string]string, len(m.fields))
	for _, f := range m.fields {
		out[f.el.ID] = f.Value()
	}
	return out
}

func (m *Form) Init() tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	return m.focusField(0)
}

func (m *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.relayout()
		return m, m.registry.Route(msg)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}

	cmd := m.registry.Route(msg)
	if f := m.Focused(); f != nil {
		// Cursor blink.
		blink, _ := f.update(msg)
		cmd = tea.Batch(cmd, blink)
	}
	return m, cmd
}

func (m *Form) controllerFor(f *Field) *autocomplete.Controller {
	if f == nil {
		return nil
	}
	ctl, ok := m.registry.Lookup(f)
	if !ok {
		return nil
	}
	return ctl
}

func (m *Form) indexOf(f *Field) int {
	for i, candidate := range m.fields {
		if candidate == f {
			return i
		}
	}
	return -1
}

func (m *Form) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "f1":
		m.showHelp = !m.showHelp
		return nil
	case "ctrl+t":
		m.status = "Theme: " + theme.CycleTheme()
		return nil
	}

	f := m.Focused()
	if f == nil {
		return nil
	}
	ctl := m.controllerFor(f)
	if ctl != nil {
		if cmd, handled := ctl.HandleKey(msg); handled {
			return cmd
		}
	}

	switch msg.Type {
	case tea.KeyTab:
		return m.focusField((m.focus + 1) % len(m.fields))
	case tea.KeyShiftTab:
		return m.focusField((m.focus - 1 + len(m.fields)) % len(m.fields))
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyEsc:
		if m.showHelp {
			m.showHelp = false
			return nil
		}
		return tea.Quit
	}

	cmd, changed := f.update(msg)
	if changed && ctl != nil {
		cmd = tea.Batch(cmd, ctl.InputChanged())
	}
	return cmd
}

func (m *Form) submit() tea.Cmd {
	m.submitted = true
	m.status = "Submitted"
	if m.cfg.OnSubmit == nil {
		return nil
	}
	return m.cfg.OnSubmit(m.Values())
}

// focusField moves keyboard focus to field i, blurring the previous one.
func (m *Form) focusField(i int) tea.Cmd {
	next := m.fields[i]
	if i == m.focus && next.Focused() {
		return nil
	}
	var cmds []tea.Cmd
	if cur := m.Focused(); cur != nil && cur != next && cur.Focused() {
		cur.blur()
		if ctl := m.controllerFor(cur); ctl != nil {
			cmds = append(cmds, ctl.Blur())
		}
	}
	m.focus = i
	cmds = append(cmds, next.focus())
	if ctl := m.controllerFor(next); ctl != nil {
		cmds = append(cmds, ctl.Focus())
	}
	return tea.Batch(cmds...)
}

// boxesTopFirst returns controllers with a visible box, topmost first.
func (m *Form) boxesTopFirst() []*autocomplete.Controller {
	var out []*autocomplete.Controller
	for _, ctl := range m.registry.Controllers() {
		if ctl.Box().Visible() {
			out = append(out, ctl)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Box().Position().ZIndex > out[j].Box().Position().ZIndex
	})
	return out
}

func (m *Form) handleMouse(msg tea.MouseMsg) tea.Cmd {
	var cmds []tea.Cmd
	boxes := m.boxesTopFirst()

	if msg.Action == tea.MouseActionMotion {
		for _, ctl := range boxes {
			cmd, _ := ctl.HandleMouse(msg)
			cmds = append(cmds, cmd)
		}
		return tea.Batch(cmds...)
	}

	for _, ctl := range boxes {
		if !ctl.Contains(msg.X, msg.Y) {
			continue
		}
		cmd, _ := ctl.HandleMouse(msg)
		return cmd
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		for i, f := range m.fields {
			if f.contains(msg.X, msg.Y) {
				return m.focusField(i)
			}
		}
	}
	return nil
}

// relayout places the fields for the current window size.
func (m *Form) relayout() {
	m.page.WithBounds(0, 0, m.width, m.height)
	m.panel.WithBounds(1, 2, m.width-2, len(m.fields)*fieldHeight)

	width := m.width - 6
	if width > maxFieldWidth {
		width = maxFieldWidth
	}
	if width < minFieldWidth {
		width = minFieldWidth
	}
	for i, f := range m.fields {
		f.place(m.panel, 1, i*fieldHeight, width)
	}
	m.renderHelp = nil
}

func (m *Form) View() string {
	bg := theme.Current().Background()
	canvas := NewCanvas(m.width, m.height)
	canvas.Fill(bg)

	canvas.DrawStringAt(1, 0, styleTitle().Render(m.cfg.Title))

	var overlays []Overlay
	for _, f := range m.fields {
		indicator := ""
		ctl := m.controllerFor(f)
		if ctl != nil {
			indicator = ctl.Indicator()
		}
		x, y := layout.PageOffset(f.el)
		canvas.DrawStringAt(x, y-1, f.View(indicator))

		if ctl != nil {
			if box := ctl.View(); box != "" {
				pos := ctl.Box().Position()
				overlays = append(overlays, Overlay{X: pos.X, Y: pos.Y, Z: pos.ZIndex, Content: box})
			}
		}
	}

	_, panelY := layout.PageOffset(m.panel)
	statusY := panelY + m.panel.Height + 1
	if m.status != "" {
		canvas.DrawStringAt(2, statusY, styleStatus().Render(m.status))
	}
	canvas.DrawStringAt(1, m.height-1, m.hints())

	if m.showHelp && m.cfg.Help != "" {
		overlays = append(overlays, m.helpOverlay())
	}
	canvas.DrawOverlays(overlays)
	return canvas.Render()
}

func (m *Form) hints() string {
	hint := styleKeyHint().Render
	muted := styleLabel().Render
	return lipgloss.JoinHorizontal(lipgloss.Top,
		hint("↑/↓"), muted(" choose  "),
		hint("enter"), muted(" select/submit  "),
		hint("tab"), muted(" next  "),
		hint("f1"), muted(" help  "),
		hint("ctrl+t"), muted(" theme  "),
		hint("esc"), muted(" quit"),
	)
}

func (m *Form) helpOverlay() Overlay {
	if m.renderHelp == nil {
		m.renderHelp = buildMarkdownRenderer(m.cfg.HelpFormat, min(m.width-8, 72))
	}
	body := m.renderHelp(m.cfg.Help)
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderFocused()).
		Padding(0, 1).
		Render(body)
	w, h := blockDimensions(panel)
	x := max((m.width-w)/2, 0)
	y := max((m.height-h)/2, 0)
	return Overlay{X: x, Y: y, Z: helpZ, Content: panel}
}
