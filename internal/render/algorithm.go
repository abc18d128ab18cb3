package render

import (
	"github.com/gerunddev/algodeck/internal/catalog"
	"github.com/gerunddev/algodeck/internal/content"
)

// SectionNodes parses one section of an entry. The solution section also
// carries the entry's complexity and reference implementation.
func SectionNodes(a *catalog.Algorithm, section content.Section, defaultLanguage string) []content.Node {
	nodes := a.Parse(section, defaultLanguage)
	if section != content.SectionSolution {
		return nodes
	}

	if c := a.Complexity; c != nil && (c.Time != "" || c.Space != "") {
		nodes = append(nodes, content.LineBreak{}, content.Heading{Text: "Complexity"})
		if c.Time != "" {
			nodes = append(nodes, complexityLine("Time:", c.Time))
		}
		if c.Space != "" {
			nodes = append(nodes, complexityLine("Space:", c.Space))
		}
	}

	if a.Code != nil {
		lang := a.Code.Language
		if lang == "" {
			lang = defaultLanguage
		}
		nodes = append(nodes,
			content.LineBreak{},
			content.Heading{Text: "Implementation"},
			content.CodeBlock{Language: lang, Code: a.Code.Source},
		)
	}
	return nodes
}

func complexityLine(label, value string) content.Node {
	return content.ListItem{Inline: []content.Span{
		content.Bold{Text: label},
		content.Text{Text: " " + value},
	}}
}

// RenderAlgorithm renders one section of an entry
func (r *Renderer) RenderAlgorithm(a *catalog.Algorithm, section content.Section, defaultLanguage string) string {
	return r.Render(SectionNodes(a, section, defaultLanguage))
}
