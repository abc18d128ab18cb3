package content

import (
	"strconv"
	"strings"
)

// Format writes nodes back as canonical markup. Bullets are written as "- ",
// callout kinds in upper case and every code fence carries its language.
func Format(nodes []Node) string {
	var b strings.Builder
	writeNodes(&b, nodes, false)
	return b.String()
}

// writeNodes writes nodes one per line. A callout nested in another callout
// body runs to the end of that body, so it is written without a close marker.
func writeNodes(b *strings.Builder, nodes []Node, nested bool) {
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch n := n.(type) {
		case Heading:
			b.WriteString(boldMarker + n.Text + boldMarker)
		case Paragraph:
			b.WriteString(FormatInline(n.Inline))
		case ListItem:
			if n.Ordered {
				b.WriteString(strconv.Itoa(n.Number) + ". ")
			} else {
				b.WriteString("- ")
			}
			b.WriteString(FormatInline(n.Inline))
		case Callout:
			b.WriteString(calloutOpenPrefix + strings.ToUpper(string(n.Kind)))
			if n.Title != "" {
				b.WriteString(" " + n.Title)
			}
			b.WriteByte(']')
			if len(n.Body) > 0 {
				b.WriteByte('\n')
				writeNodes(b, n.Body, true)
			}
			if !nested {
				b.WriteString("\n" + calloutClose)
			}
		case CodeBlock:
			b.WriteString(codeFence + n.Language + "\n")
			if n.Code != "" {
				b.WriteString(n.Code + "\n")
			}
			b.WriteString(codeFence)
		case LineBreak:
		}
	}
}

// FormatInline writes spans back as markup. Triggers are written as their
// plain trigger text.
func FormatInline(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		switch s := s.(type) {
		case Text:
			b.WriteString(s.Text)
		case Bold:
			b.WriteString(boldMarker + s.Text + boldMarker)
		case Tooltip:
			b.WriteString(s.Trigger)
		case DeepDive:
			b.WriteString(s.Trigger)
		}
	}
	return b.String()
}
