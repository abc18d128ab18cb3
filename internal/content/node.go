// Package content parses the inline markup used by algorithm entries into
// typed nodes for rendering.
package content

import "strings"

// Section is one of the four fixed content categories of an algorithm entry
type Section string

const (
	SectionProblem      Section = "problem"
	SectionAlgorithm    Section = "algorithm"
	SectionSolution     Section = "solution"
	SectionImprovements Section = "improvements"
)

// Sections returns all sections in display order
func Sections() []Section {
	return []Section{SectionProblem, SectionAlgorithm, SectionSolution, SectionImprovements}
}

// ParseSection converts a case-insensitive name to a Section
func ParseSection(s string) (Section, bool) {
	sec := Section(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Sections() {
		if sec == known {
			return sec, true
		}
	}
	return "", false
}

// Title returns the tab label for the section
func (s Section) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Explanation is supplementary text attached to a trigger substring in one section
type Explanation struct {
	ID      string  `yaml:"-"`
	Trigger string  `yaml:"trigger"`
	Section Section `yaml:"section"`
	Title   string  `yaml:"title,omitempty"`
	Content string  `yaml:"content"`
}

// CalloutKind is the intent of a callout block
type CalloutKind string

const (
	CalloutInfo       CalloutKind = "info"
	CalloutWarning    CalloutKind = "warning"
	CalloutTip        CalloutKind = "tip"
	CalloutDefinition CalloutKind = "definition"
	CalloutAlgorithm  CalloutKind = "algorithm"
)

var calloutKinds = map[string]CalloutKind{
	"info":       CalloutInfo,
	"warning":    CalloutWarning,
	"tip":        CalloutTip,
	"definition": CalloutDefinition,
	"algorithm":  CalloutAlgorithm,
}

// ParseCalloutKind resolves a callout kind case-insensitively
func ParseCalloutKind(s string) (CalloutKind, bool) {
	k, ok := calloutKinds[strings.ToLower(s)]
	return k, ok
}

// Node is a block-level content node. The set of implementations is closed.
type Node interface {
	node()
}

// Heading is a line entirely wrapped in bold markers
type Heading struct {
	Text string
}

// Paragraph is a regular line of text
type Paragraph struct {
	Inline []Span
}

// ListItem is a bulleted or numbered line. Number is zero for bullets.
type ListItem struct {
	Ordered bool
	Number  int
	Inline  []Span
}

// Callout is a block of nested content tagged with an intent
type Callout struct {
	Kind  CalloutKind
	Title string
	Body  []Node
}

// CodeBlock is a fenced block of verbatim source
type CodeBlock struct {
	Language string
	Code     string
}

// LineBreak is a blank separator line
type LineBreak struct{}

func (Heading) node()   {}
func (Paragraph) node() {}
func (ListItem) node()  {}
func (Callout) node()   {}
func (CodeBlock) node() {}
func (LineBreak) node() {}

// Span is an inline piece of a paragraph or list item. The set of implementations is closed.
type Span interface {
	span()
}

// Text is plain text
type Text struct {
	Text string
}

// Bold is text inside a pair of ** markers
type Bold struct {
	Text string
}

// Tooltip is a trigger with a short explanation shown inline
type Tooltip struct {
	Trigger       string
	Content       string
	ExplanationID string
}

// DeepDive is a trigger with a long explanation shown in a modal. Trigger
// spans carry the ID of the explanation they came from, if it has one.
type DeepDive struct {
	Trigger       string
	Title         string
	Content       string
	ExplanationID string
}

// Key identifies the explanation behind the tooltip. Explanations without
// an ID are told apart by their text.
func (t Tooltip) Key() string {
	if t.ExplanationID != "" {
		return t.ExplanationID
	}
	return t.Trigger + "\x00" + t.Content
}

// Key identifies the explanation behind the deep dive
func (d DeepDive) Key() string {
	if d.ExplanationID != "" {
		return d.ExplanationID
	}
	return d.Trigger + "\x00" + d.Content
}

func (Text) span()     {}
func (Bold) span()     {}
func (Tooltip) span()  {}
func (DeepDive) span() {}
