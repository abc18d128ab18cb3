package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/gerunddev/algodeck/internal/catalog"
	"github.com/gerunddev/algodeck/internal/content"
	"github.com/gerunddev/algodeck/internal/styles"
)

// Unified creates a unified diff between two versions of a text. It is empty
// when the texts are equal.
func Unified(name, before, after string) string {
	before, after = withNewline(before), withNewline(after)
	edits := myers.ComputeEdits(span.URIFromPath(name), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(name, name+" (formatted)", before, edits))
}

// Generate diffs the authored text of a section against its canonical form
func Generate(a *catalog.Algorithm, section content.Section, defaultLanguage string) string {
	authored := a.Section(section)
	formatted := content.Format(a.Parse(section, defaultLanguage))
	return Unified(a.ID+"/"+string(section), authored, formatted)
}

// Render renders a unified diff for the terminal. Rendering problems fall
// back to the plain diff fence.
func Render(unified string, theme styles.Theme, width int) (string, error) {
	if unified == "" {
		return "", nil
	}

	// Wrap in diff code fence for syntax highlighting (+ in green, - in red)
	diffMarkdown := fmt.Sprintf("```diff\n%s```\n", unified)

	if width <= 0 {
		width = 120
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme.Name),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return diffMarkdown, nil
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return diffMarkdown, nil
	}

	return rendered, nil
}

func withNewline(s string) string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return s
	}
	return s + "\n"
}
