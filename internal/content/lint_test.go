package content

import (
	"strings"
	"testing"
)

func TestLintClean(t *testing.T) {
	input := "**Steps**\n1. a\n[CALLOUT:TIP]\nuse **BFS**\n[/CALLOUT]\n```go\nx := \"**\"\n```"
	opts := Options{
		Section: SectionAlgorithm,
		Explanations: []Explanation{
			{Trigger: "BFS", Section: SectionAlgorithm, Content: "breadth first"},
			{Trigger: "DFS", Section: SectionSolution, Content: "other section"},
		},
	}

	if diags := Lint(input, opts); len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %v", diags)
	}
}

func TestLintFindings(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		explanations []Explanation
		wantLine     int
		wantSeverity Severity
		wantContains string
	}{
		{
			name:         "unknown callout kind",
			input:        "[CALLOUT:DANGER]\nx",
			wantLine:     1,
			wantSeverity: SeverityWarning,
			wantContains: `unknown callout kind "DANGER"`,
		},
		{
			name:         "unterminated callout",
			input:        "intro\n[CALLOUT:TIP]\nx",
			wantLine:     2,
			wantSeverity: SeverityError,
			wantContains: "never closed",
		},
		{
			name:         "unterminated fence",
			input:        "```go\nx := 1",
			wantLine:     1,
			wantSeverity: SeverityError,
			wantContains: "code fence is never closed",
		},
		{
			name:         "stray close",
			input:        "x\n[/CALLOUT]",
			wantLine:     2,
			wantSeverity: SeverityWarning,
			wantContains: "without an open callout",
		},
		{
			name:         "unpaired bold",
			input:        "ok\n- a **b",
			wantLine:     2,
			wantSeverity: SeverityWarning,
			wantContains: "unpaired",
		},
		{
			name:  "second trigger ignored",
			input: "queue and visited",
			explanations: []Explanation{
				{Trigger: "queue", Section: SectionAlgorithm, Content: "A"},
				{Trigger: "visited", Section: SectionAlgorithm, Content: "B"},
			},
			wantLine:     1,
			wantSeverity: SeverityWarning,
			wantContains: `trigger "visited" is ignored`,
		},
		{
			name:  "trigger never applies",
			input: "nothing here",
			explanations: []Explanation{
				{Trigger: "queue", Section: SectionAlgorithm, Content: "A"},
			},
			wantLine:     0,
			wantSeverity: SeverityWarning,
			wantContains: `trigger "queue" never applies`,
		},
		{
			name:  "empty trigger",
			input: "x",
			explanations: []Explanation{
				{Trigger: "", Section: SectionAlgorithm, Content: "A"},
			},
			wantLine:     0,
			wantSeverity: SeverityError,
			wantContains: "empty trigger",
		},
		{
			name:         "nested callout",
			input:        "[CALLOUT:TIP]\n[CALLOUT:INFO]\nx\n[/CALLOUT]\n[/CALLOUT]",
			wantLine:     2,
			wantSeverity: SeverityWarning,
			wantContains: "nested callout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := Lint(tt.input, Options{Section: SectionAlgorithm, Explanations: tt.explanations})

			var found bool
			for _, d := range diags {
				if d.Line == tt.wantLine && d.Severity == tt.wantSeverity && strings.Contains(d.Message, tt.wantContains) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %s at line %d containing %q, got %v", tt.wantSeverity, tt.wantLine, tt.wantContains, diags)
			}
		})
	}
}

func TestLintDoesNotLookInsideFences(t *testing.T) {
	input := "```\n[CALLOUT:NOPE]\n**odd\n[/CALLOUT]\n```"
	if diags := Lint(input, Options{}); len(diags) != 0 {
		t.Errorf("expected no diagnostics inside a fence, got %v", diags)
	}
}

func TestHasErrors(t *testing.T) {
	if HasErrors([]Diagnostic{{Severity: SeverityWarning}}) {
		t.Error("warnings alone should not count as errors")
	}
	if !HasErrors([]Diagnostic{{Severity: SeverityWarning}, {Severity: SeverityError}}) {
		t.Error("expected HasErrors to be true")
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Line: 3, Severity: SeverityWarning, Message: "unpaired ** is rendered literally"}
	if got, want := d.String(), "line 3: warning: unpaired ** is rendered literally"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
