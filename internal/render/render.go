package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/algodeck/internal/content"
	"github.com/gerunddev/algodeck/internal/styles"
)

// DefaultFormatter is the chroma formatter used for terminals
const DefaultFormatter = "terminal256"

// Renderer turns content nodes into styled terminal text
type Renderer struct {
	theme          styles.Theme
	width          int
	formatter      string
	deepDiveBodies bool
}

// Option configures a Renderer
type Option func(*Renderer)

// WithWidth wraps text at w columns. Zero disables wrapping.
func WithWidth(w int) Option {
	return func(r *Renderer) {
		if w < 0 {
			w = 0
		}
		r.width = w
	}
}

// WithFormatter selects the chroma formatter for code blocks
func WithFormatter(name string) Option {
	return func(r *Renderer) {
		r.formatter = name
	}
}

// WithDeepDiveBodies appends the full text of every deep dive after the
// section, for output that cannot open a modal
func WithDeepDiveBodies(on bool) Option {
	return func(r *Renderer) {
		r.deepDiveBodies = on
	}
}

// New creates a renderer for the given theme
func New(theme styles.Theme, opts ...Option) *Renderer {
	r := &Renderer{
		theme:     theme,
		formatter: DefaultFormatter,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Theme returns the theme the renderer draws with
func (r *Renderer) Theme() styles.Theme {
	return r.theme
}

// Render renders nodes followed by the tooltip notes they reference
func (r *Renderer) Render(nodes []content.Node) string {
	p := &pass{Renderer: r}
	var b strings.Builder
	b.WriteString(p.blocks(nodes, r.width))

	if len(p.notes) > 0 {
		b.WriteString("\n\n")
		b.WriteString(r.theme.Dim().Render("Notes"))
		for i, n := range p.notes {
			line := fmt.Sprintf("[%d] %s: %s", i+1, n.Trigger, n.Content)
			b.WriteString("\n")
			b.WriteString(r.wrap(r.theme.Dim(), r.width).Render(strings.TrimSpace(line)))
		}
	}

	if len(p.dives) > 0 {
		b.WriteString("\n\n")
		b.WriteString(r.theme.Dim().Render("Deep dives"))
		for _, d := range p.dives {
			b.WriteString("\n")
			b.WriteString(r.theme.Fg(r.theme.Palette.Blue).Bold(true).Render("ⓘ " + d.Title))
			if r.deepDiveBodies {
				b.WriteString("\n")
				b.WriteString(r.DeepDiveBody(d))
			}
		}
	}

	return b.String()
}

// DeepDiveBody renders the explanation text of a deep dive. The text uses
// the same markup as sections but carries no triggers of its own.
func (r *Renderer) DeepDiveBody(d content.DeepDive) string {
	nodes := content.Parse(d.Content, content.Options{})
	p := &pass{Renderer: r}
	return p.blocks(nodes, r.width)
}

// pass holds the footnotes collected during one Render call. A trigger
// that appears more than once shares one note.
type pass struct {
	*Renderer
	notes    []content.Tooltip
	noteRefs map[string]int
	dives    []content.DeepDive
	diveSeen map[string]bool
}

// note returns the footnote number for t, adding it on first use
func (p *pass) note(t content.Tooltip) int {
	if p.noteRefs == nil {
		p.noteRefs = make(map[string]int)
	}
	if n, ok := p.noteRefs[t.Key()]; ok {
		return n
	}
	p.notes = append(p.notes, t)
	p.noteRefs[t.Key()] = len(p.notes)
	return len(p.notes)
}

func (p *pass) addDive(d content.DeepDive) {
	if p.diveSeen == nil {
		p.diveSeen = make(map[string]bool)
	}
	if !p.diveSeen[d.Key()] {
		p.diveSeen[d.Key()] = true
		p.dives = append(p.dives, d)
	}
}

func (p *pass) blocks(nodes []content.Node, width int) string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, p.block(n, width))
	}
	return strings.Join(out, "\n")
}

func (p *pass) block(n content.Node, width int) string {
	t := p.theme

	switch n := n.(type) {
	case content.Heading:
		return t.Title().Render(n.Text)

	case content.Paragraph:
		return p.wrap(t.Text(), width).Render(p.inline(n.Inline))

	case content.ListItem:
		marker := "  • "
		if n.Ordered {
			marker = "  " + strconv.Itoa(n.Number) + ". "
		}
		markerWidth := lipgloss.Width(marker)
		body := p.wrap(t.Text(), width-markerWidth).Render(p.inline(n.Inline))
		return lipgloss.JoinHorizontal(lipgloss.Top, t.Dim().Render(marker), body)

	case content.Callout:
		return p.callout(n, width)

	case content.CodeBlock:
		return p.code(n, width)

	case content.LineBreak:
		return ""
	}

	return ""
}

func (p *pass) callout(c content.Callout, width int) string {
	t := p.theme
	color, icon := calloutLook(t, c.Kind)

	label := icon + " " + strings.ToUpper(string(c.Kind))
	if c.Title != "" {
		label += ": " + c.Title
	}

	inner := 0
	if width > 0 {
		inner = max(width-4, 1)
	}
	body := t.Fg(color).Bold(true).Render(label)
	if len(c.Body) > 0 {
		body += "\n" + p.blocks(c.Body, inner)
	}

	box := t.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 1)
	if width > 0 {
		box = box.Width(max(width-2, 1))
	}
	return box.Render(body)
}

func (p *pass) code(c content.CodeBlock, width int) string {
	t := p.theme
	header := t.Dim().Render(c.Language)
	code := Highlight(c.Code, c.Language, t.ChromaStyle, p.formatter)

	block := t.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(t.Palette.Border)).
		PaddingLeft(1)
	if width > 0 {
		block = block.MaxWidth(width)
	}
	return header + "\n" + block.Render(code)
}

func (p *pass) inline(spans []content.Span) string {
	t := p.theme
	var b strings.Builder
	for _, s := range spans {
		switch s := s.(type) {
		case content.Text:
			b.WriteString(s.Text)
		case content.Bold:
			b.WriteString(t.NewStyle().Bold(true).Render(s.Text))
		case content.Tooltip:
			n := p.note(s)
			b.WriteString(t.Fg(t.Palette.Cyan).Underline(true).Render(s.Trigger))
			b.WriteString(t.Dim().Render(fmt.Sprintf("[%d]", n)))
		case content.DeepDive:
			p.addDive(s)
			b.WriteString(t.Fg(t.Palette.Blue).Underline(true).Render("ⓘ " + s.Trigger))
		}
	}
	return b.String()
}

func (r *Renderer) wrap(s lipgloss.Style, width int) lipgloss.Style {
	if width > 0 {
		return s.Width(width)
	}
	return s
}

func calloutLook(t styles.Theme, kind content.CalloutKind) (color, icon string) {
	switch kind {
	case content.CalloutWarning:
		return t.Palette.Orange, "⚠"
	case content.CalloutTip:
		return t.Palette.Yellow, "✦"
	case content.CalloutDefinition:
		return t.Palette.Blue, "≡"
	case content.CalloutAlgorithm:
		return t.Palette.Green, "λ"
	default:
		return t.Palette.Cyan, "ℹ"
	}
}

// DeepDives collects the deep dives in nodes, in reading order. A deep dive
// triggered more than once is listed once.
func DeepDives(nodes []content.Node) []content.DeepDive {
	p := &pass{}
	content.Walk(nodes, func(n content.Node) bool {
		var spans []content.Span
		switch n := n.(type) {
		case content.Paragraph:
			spans = n.Inline
		case content.ListItem:
			spans = n.Inline
		}
		for _, s := range spans {
			if d, ok := s.(content.DeepDive); ok {
				p.addDive(d)
			}
		}
		return true
	})
	return p.dives
}
