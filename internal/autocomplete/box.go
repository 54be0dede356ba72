package autocomplete

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	appErrors "autolight/internal/errors"
	"autolight/internal/layout"
)

// Choice is one selectable element of the results box. The controller
// locates and tags choices; their content belongs to the server.
type Choice struct {
	index int
	node  *html.Node
	text  string
}

// Index is the choice's position in document order.
func (c Choice) Index() int { return c.index }

// Text is the whitespace-collapsed text content.
func (c Choice) Text() string { return c.text }

// Attr returns an attribute of the choice element.
func (c Choice) Attr(name string) string {
	if c.node == nil {
		return ""
	}
	for _, a := range c.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val
		}
	}
	return ""
}

// Value returns data-value when present, otherwise the text.
func (c Choice) Value() string {
	if v := c.Attr("data-value"); v != "" {
		return v
	}
	return c.text
}

// HasClass reports whether the element carries class.
func (c Choice) HasClass(class string) bool {
	for _, f := range strings.Fields(c.Attr("class")) {
		if f == class {
			return true
		}
	}
	return false
}

// HTML returns the element's outer HTML.
func (c Choice) HTML() string {
	if c.node == nil {
		return ""
	}
	var b strings.Builder
	if err := html.Render(&b, c.node); err != nil {
		return ""
	}
	return b.String()
}

func (c Choice) addClass(class string) {
	if c.node == nil || class == "" || c.HasClass(class) {
		return
	}
	for i, a := range c.node.Attr {
		if a.Namespace == "" && a.Key == "class" {
			c.node.Attr[i].Val = strings.TrimSpace(a.Val + " " + class)
			return
		}
	}
	c.node.Attr = append(c.node.Attr, html.Attribute{Key: "class", Val: class})
}

func (c Choice) removeClass(class string) {
	if c.node == nil || class == "" {
		return
	}
	for i, a := range c.node.Attr {
		if a.Namespace != "" || a.Key != "class" {
			continue
		}
		fields := strings.Fields(a.Val)
		kept := fields[:0]
		for _, f := range fields {
			if f != class {
				kept = append(kept, f)
			}
		}
		c.node.Attr[i].Val = strings.Join(kept, " ")
		return
	}
}

// Box is the overlay container holding the current choices.
type Box struct {
	container *layout.Element
	root      *html.Node
	choices   []Choice
	text      string
	visible   bool
	pos       layout.Position

	highlight    int
	scrollOffset int
}

func newBox(container *layout.Element) *Box {
	return &Box{container: container, highlight: -1}
}

// Container is the positioning ancestor the box is attached to.
func (b *Box) Container() *layout.Element { return b.container }

// Visible reports whether the box is shown.
func (b *Box) Visible() bool { return b.visible }

// Position is where the box was last placed.
func (b *Box) Position() layout.Position { return b.pos }

// Choices returns the choices in document order.
func (b *Box) Choices() []Choice { return b.choices }

// Len returns the number of choices.
func (b *Box) Len() int { return len(b.choices) }

// Empty reports a box with neither choices nor any other text.
func (b *Box) Empty() bool { return len(b.choices) == 0 && b.text == "" }

// Text is the text content of the whole fragment; shown when the server
// answers with markup that holds no choices.
func (b *Box) Text() string { return b.text }

// markup parses server responses into choices. The fragment is matched as
// sent; only text is ever drawn.
type markup struct {
	selector cascadia.Selector
}

func newMarkup(choiceSelector string) (*markup, error) {
	sel, err := cascadia.Compile(choiceSelector)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "invalid choice selector "+choiceSelector, err)
	}
	return &markup{selector: sel}, nil
}

// fill replaces the box content with body. Highlight and scroll reset.
func (m *markup) fill(b *Box, body string) error {
	b.root = nil
	b.choices = nil
	b.text = ""
	b.highlight = -1
	b.scrollOffset = 0

	parent := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(body), parent)
	if err != nil {
		return appErrors.New(appErrors.CodeInvalidMarkup, "parse choices", err)
	}
	// A document node never matches a selector, so only fragment elements can.
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	b.root = root
	b.text = textContent(root)
	for i, n := range m.selector.MatchAll(root) {
		b.choices = append(b.choices, Choice{index: i, node: n, text: textContent(n)})
	}
	return nil
}

// textContent returns the visible text of n with whitespace collapsed.
// Block elements and <br> separate words; script-like content is skipped.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if hiddenElements[n.DataAtom] {
				return
			}
		}
		block := n.Type == html.ElementNode && blockElements[n.DataAtom]
		if block {
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			b.WriteByte(' ')
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

var hiddenElements = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Template: true,
	atom.Noscript: true, atom.Head: true, atom.Title: true,
}

var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Br: true, atom.Dd: true, atom.Details: true,
	atom.Div: true, atom.Dl: true, atom.Dt: true, atom.Fieldset: true,
	atom.Figcaption: true, atom.Figure: true, atom.Footer: true, atom.Form: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.Optgroup: true, atom.Option: true, atom.P: true, atom.Pre: true,
	atom.Section: true, atom.Select: true, atom.Summary: true, atom.Table: true,
	atom.Td: true, atom.Th: true, atom.Tr: true, atom.Ul: true,
}
