package content

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatCanonical(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bullets become dashes",
			input: "• one\n- two",
			want:  "- one\n- two",
		},
		{
			name:  "callout kind upper cased",
			input: "[CALLOUT:tip]\n  **Hint**\n[/CALLOUT]",
			want:  "[CALLOUT:TIP]\n**Hint**\n[/CALLOUT]",
		},
		{
			name:  "callout title kept",
			input: "[CALLOUT:algorithm Queue]\nx\n[/CALLOUT]",
			want:  "[CALLOUT:ALGORITHM Queue]\nx\n[/CALLOUT]",
		},
		{
			name:  "fence gets default language",
			input: "```\nx := 1\n```",
			want:  "```go\nx := 1\n```",
		},
		{
			name:  "unterminated callout gets closed",
			input: "[CALLOUT:WARNING]\nrest",
			want:  "[CALLOUT:WARNING]\nrest\n[/CALLOUT]",
		},
		{
			name:  "blank lines and numbering",
			input: "**Steps**\n\n1. a\n2. b",
			want:  "**Steps**\n\n1. a\n2. b",
		},
		{
			name:  "empty callout",
			input: "[CALLOUT:INFO]\n[/CALLOUT]",
			want:  "[CALLOUT:INFO]\n[/CALLOUT]",
		},
		{
			name:  "nested callout has no close of its own",
			input: "[CALLOUT:INFO]\n[CALLOUT:tip]\nx\n[/CALLOUT]",
			want:  "[CALLOUT:INFO]\n[CALLOUT:TIP]\nx\n[/CALLOUT]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(Parse(tt.input, Options{DefaultLanguage: "go"}))
			if got != tt.want {
				t.Errorf("Format(Parse(%q)) =\n%s\nwant:\n%s", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatReparsesToSameNodes(t *testing.T) {
	opts := Options{
		Section:         SectionSolution,
		DefaultLanguage: "go",
		Explanations: []Explanation{
			{Trigger: "O(V)", Section: SectionSolution, Content: "queue plus visited set"},
		},
	}
	inputs := []string{
		"**Data Structures:**\n- Graph: map[string][]string\n• Visited: map[string]bool",
		"Space: O(V) with **care** and a ** stray marker",
		"[CALLOUT:DEFINITION Queue]\n\n- FIFO\n\n```\nq = append(q, n)\n\n```\n[/CALLOUT]\n\nafter",
		"[CALLOUT:NOPE]\n3. three\n10. ten",
		"[CALLOUT:INFO]\n[CALLOUT:TIP]\nx\n[/CALLOUT]\n[/CALLOUT]",
		"[CALLOUT:INFO Outer]\nbefore\n[CALLOUT:WARNING Inner]\n[/CALLOUT]\nafter",
	}

	for _, input := range inputs {
		first := Parse(input, opts)
		second := Parse(Format(first), opts)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("reparse of formatted %q differs (-first +second):\n%s", input, diff)
		}
	}
}

func TestFormatInlinePreservesText(t *testing.T) {
	for _, line := range []string{
		"plain",
		"a **b** c",
		"odd ** marker",
		"empty **** pair",
		"**x**y**z",
	} {
		if got := FormatInline(ParseInline(line, nil)); got != line {
			t.Errorf("FormatInline(ParseInline(%q)) = %q", line, got)
		}
	}
}
