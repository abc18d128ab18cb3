package content

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DeepDiveThreshold is the explanation length, in characters, above which a
// trigger opens a modal instead of a tooltip
const DeepDiveThreshold = 500

const (
	calloutOpenPrefix = "[CALLOUT:"
	calloutClose      = "[/CALLOUT]"
	codeFence         = "```"
	boldMarker        = "**"
)

// Options controls a single Parse call
type Options struct {
	// Section is the section being parsed; only explanations for it apply
	Section Section
	// Explanations may contain entries for every section, they are filtered here
	Explanations []Explanation
	// DefaultLanguage tags code fences that have no language of their own
	DefaultLanguage string
}

// scoped returns the explanations that apply to the current section, in order
func (o Options) scoped() []Explanation {
	var out []Explanation
	for _, e := range o.Explanations {
		if e.Section == o.Section {
			out = append(out, e)
		}
	}
	return out
}

// Parse converts one section's authored text into content nodes.
//
// Parse never fails: malformed markup degrades to paragraphs or to blocks
// that run to the end of the input.
func Parse(text string, opts Options) []Node {
	p := &parser{
		explanations:    opts.scoped(),
		defaultLanguage: opts.DefaultLanguage,
	}
	return p.parse(text)
}

type parser struct {
	explanations    []Explanation
	defaultLanguage string
}

func (p *parser) parse(text string) []Node {
	lines := splitLines(text)
	var nodes []Node

	for i := 0; i < len(lines); i++ {
		l := classify(lines[i])

		switch l.kind {
		case lineCalloutOpen:
			end := closingLine(lines, i+1, func(s string) bool {
				return strings.Contains(s, calloutClose)
			})
			body := strings.TrimSpace(strings.Join(lines[i+1:end], "\n"))
			nodes = append(nodes, Callout{
				Kind:  l.callout,
				Title: l.title,
				Body:  p.parse(body),
			})
			i = end

		case lineFence:
			end := closingLine(lines, i+1, isFence)
			lang := l.text
			if lang == "" {
				lang = p.defaultLanguage
			}
			nodes = append(nodes, CodeBlock{
				Language: lang,
				Code:     strings.Join(lines[i+1:end], "\n"),
			})
			i = end

		case lineHeading:
			nodes = append(nodes, Heading{Text: l.text})

		case lineBullet:
			nodes = append(nodes, ListItem{Inline: ParseInline(l.text, p.explanations)})

		case lineNumbered:
			nodes = append(nodes, ListItem{
				Ordered: true,
				Number:  l.number,
				Inline:  ParseInline(l.text, p.explanations),
			})

		case lineBlank:
			nodes = append(nodes, LineBreak{})

		default:
			nodes = append(nodes, Paragraph{Inline: ParseInline(l.text, p.explanations)})
		}
	}

	return nodes
}

// closingLine returns the index of the first line at or after start for
// which closes reports true, or len(lines) when the block is unterminated
func closingLine(lines []string, start int, closes func(string) bool) int {
	for j := start; j < len(lines); j++ {
		if closes(lines[j]) {
			return j
		}
	}
	return len(lines)
}

// splitLines splits text on newlines. A single trailing newline terminates
// the last line rather than starting an empty one.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

type lineKind int

const (
	lineParagraph lineKind = iota
	lineBlank
	lineCalloutOpen
	lineFence
	lineHeading
	lineBullet
	lineNumbered
)

// line is a single classified input line
type line struct {
	kind    lineKind
	text    string // payload: paragraph text, list item rest, heading text or fence language
	callout CalloutKind
	title   string
	number  int
}

// classify decides which construct a line opens. Precedence follows the
// order of the checks below.
func classify(raw string) line {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		return line{kind: lineBlank}
	}
	if kind, title, ok := calloutOpener(trimmed); ok {
		return line{kind: lineCalloutOpen, callout: kind, title: title}
	}
	if isFence(trimmed) {
		return line{kind: lineFence, text: strings.TrimSpace(trimmed[len(codeFence):])}
	}
	if text, ok := headingText(trimmed); ok {
		return line{kind: lineHeading, text: text}
	}
	if rest, ok := bulletText(trimmed); ok {
		return line{kind: lineBullet, text: rest}
	}
	if n, rest, ok := numberedText(trimmed); ok {
		return line{kind: lineNumbered, text: rest, number: n}
	}
	return line{kind: lineParagraph, text: trimmed}
}

// calloutOpener matches [CALLOUT:KIND] and [CALLOUT:KIND Title]
func calloutOpener(s string) (CalloutKind, string, bool) {
	if !strings.HasPrefix(s, calloutOpenPrefix) || !strings.HasSuffix(s, "]") {
		return "", "", false
	}
	inner := s[len(calloutOpenPrefix) : len(s)-1]
	name, title, _ := strings.Cut(inner, " ")
	kind, ok := ParseCalloutKind(name)
	if !ok {
		return "", "", false
	}
	return kind, strings.TrimSpace(title), true
}

func isFence(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), codeFence)
}

// headingText matches a line that is exactly one bold span
func headingText(s string) (string, bool) {
	if len(s) <= 2*len(boldMarker) || !strings.HasPrefix(s, boldMarker) || !strings.HasSuffix(s, boldMarker) {
		return "", false
	}
	inner := s[len(boldMarker) : len(s)-len(boldMarker)]
	if strings.Contains(inner, boldMarker) || strings.TrimSpace(inner) == "" {
		return "", false
	}
	return strings.TrimSpace(inner), true
}

func bulletText(s string) (string, bool) {
	for _, marker := range []string{"- ", "• "} {
		if strings.HasPrefix(s, marker) {
			return strings.TrimSpace(s[len(marker):]), true
		}
	}
	return "", false
}

// numberedText matches <digits>.<whitespace>
func numberedText(s string) (int, string, bool) {
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits+1 >= len(s) || s[digits] != '.' {
		return 0, "", false
	}
	r, _ := utf8.DecodeRuneInString(s[digits+1:])
	if !unicode.IsSpace(r) {
		return 0, "", false
	}
	n, err := strconv.Atoi(s[:digits])
	if err != nil {
		n = 0
	}
	return n, strings.TrimSpace(s[digits+1:]), true
}

// ParseInline resolves bold markers and at most one explanation trigger in a
// single line. explanations must already be scoped to the line's section.
func ParseInline(text string, explanations []Explanation) []Span {
	for _, e := range explanations {
		if e.Trigger == "" {
			continue
		}
		idx := strings.Index(text, e.Trigger)
		if idx < 0 {
			continue
		}
		spans := parseBold(text[:idx])
		spans = append(spans, triggerSpan(e))
		return append(spans, parseBold(text[idx+len(e.Trigger):])...)
	}
	return parseBold(text)
}

func triggerSpan(e Explanation) Span {
	if utf8.RuneCountInString(e.Content) > DeepDiveThreshold {
		title := e.Title
		if title == "" {
			title = e.Trigger
		}
		return DeepDive{Trigger: e.Trigger, Title: title, Content: e.Content, ExplanationID: e.ID}
	}
	return Tooltip{Trigger: e.Trigger, Content: e.Content, ExplanationID: e.ID}
}

// parseBold splits text on paired ** markers. An unpaired marker and an
// empty pair stay literal.
func parseBold(s string) []Span {
	var spans []Span
	for {
		open := strings.Index(s, boldMarker)
		if open < 0 {
			break
		}
		rel := strings.Index(s[open+len(boldMarker):], boldMarker)
		if rel < 0 {
			break
		}
		end := open + len(boldMarker) + rel

		spans = appendText(spans, s[:open])
		if inner := s[open+len(boldMarker) : end]; inner != "" {
			spans = append(spans, Bold{Text: inner})
		} else {
			spans = appendText(spans, s[open:end+len(boldMarker)])
		}
		s = s[end+len(boldMarker):]
	}
	return appendText(spans, s)
}

// appendText adds plain text, merging it into a preceding Text span
func appendText(spans []Span, s string) []Span {
	if s == "" {
		return spans
	}
	if n := len(spans); n > 0 {
		if prev, ok := spans[n-1].(Text); ok {
			spans[n-1] = Text{Text: prev.Text + s}
			return spans
		}
	}
	return append(spans, Text{Text: s})
}

// Walk visits nodes depth first, descending into callout bodies. Returning
// false from fn skips a callout's body.
func Walk(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		if c, ok := n.(Callout); ok {
			Walk(c.Body, fn)
		}
	}
}
