package content

import (
	"fmt"
	"strings"
)

// Severity ranks a lint finding
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is an authoring problem that Parse silently degrades.
// Line is 1-based; zero means the finding is not tied to a line.
type Diagnostic struct {
	Line     int
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string {
	if d.Line == 0 {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Severity, d.Message)
}

// Lint reports markup that parses, but probably not the way the author meant.
// It uses the same line classification as Parse and never changes its result.
func Lint(text string, opts Options) []Diagnostic {
	explanations := opts.scoped()
	lines := splitLines(text)
	applied := make(map[int]bool)

	var diags []Diagnostic
	report := func(line int, sev Severity, format string, args ...any) {
		diags = append(diags, Diagnostic{Line: line, Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	for i, e := range explanations {
		if e.Trigger == "" {
			report(0, SeverityError, "explanation %d in %s has an empty trigger", i+1, opts.Section)
		}
	}

	calloutOpen := 0
	for i := 0; i < len(lines); i++ {
		num := i + 1
		trimmed := strings.TrimSpace(lines[i])
		l := classify(lines[i])

		switch l.kind {
		case lineCalloutOpen:
			if calloutOpen > 0 {
				report(num, SeverityWarning, "nested callout: the enclosing callout ends at the first %s", calloutClose)
			}
			if closingLine(lines, i+1, func(s string) bool { return strings.Contains(s, calloutClose) }) == len(lines) {
				report(num, SeverityError, "callout %s is never closed and consumes the rest of the section", l.callout)
			}
			calloutOpen = num
			continue

		case lineFence:
			end := closingLine(lines, i+1, isFence)
			if end == len(lines) {
				report(num, SeverityError, "code fence is never closed and consumes the rest of the section")
			}
			i = end
			continue
		}

		if strings.Contains(trimmed, calloutClose) {
			if calloutOpen > 0 {
				calloutOpen = 0
				continue
			}
			report(num, SeverityWarning, "%s without an open callout is rendered as text", calloutClose)
		}

		switch l.kind {
		case lineParagraph, lineBullet, lineNumbered:
		default:
			continue
		}

		if l.kind == lineParagraph && strings.HasPrefix(trimmed, calloutOpenPrefix) && strings.HasSuffix(trimmed, "]") {
			name, _, _ := strings.Cut(trimmed[len(calloutOpenPrefix):len(trimmed)-1], " ")
			report(num, SeverityWarning, "unknown callout kind %q is rendered as text", name)
		}
		if strings.Count(l.text, boldMarker)%2 != 0 {
			report(num, SeverityWarning, "unpaired %s is rendered literally", boldMarker)
		}

		first := -1
		for j, e := range explanations {
			if e.Trigger == "" || !strings.Contains(l.text, e.Trigger) {
				continue
			}
			if first < 0 {
				first = j
				applied[j] = true
				continue
			}
			report(num, SeverityWarning, "trigger %q is ignored, %q already applies to this line",
				e.Trigger, explanations[first].Trigger)
		}
	}

	for j, e := range explanations {
		if e.Trigger != "" && !applied[j] {
			report(0, SeverityWarning, "trigger %q never applies in %s", e.Trigger, opts.Section)
		}
	}

	return diags
}

// HasErrors reports whether any diagnostic is an error
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
