package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gerunddev/algodeck/internal/content"
)

// Algorithm is one catalog entry
type Algorithm struct {
	ID           string                `yaml:"id"`
	Title        string                `yaml:"title"`
	Category     string                `yaml:"category"`
	Problem      string                `yaml:"problem"`
	Algorithm    string                `yaml:"algorithm"`
	Solution     string                `yaml:"solution"`
	Improvements string                `yaml:"improvements"`
	Code         *Code                 `yaml:"code,omitempty"`
	Complexity   *Complexity           `yaml:"complexity,omitempty"`
	Explanations []content.Explanation `yaml:"explanations,omitempty"`

	// Source is the file the entry was loaded from
	Source string `yaml:"-"`
}

// Code is a reference implementation shown under the solution
type Code struct {
	Language string `yaml:"language"`
	Source   string `yaml:"source"`
}

// Complexity describes time and space cost
type Complexity struct {
	Time  string `yaml:"time"`
	Space string `yaml:"space"`
}

// Category groups algorithms in the sidebar
type Category struct {
	ID         string
	Name       string
	Algorithms []*Algorithm
}

// Catalog is the full set of loaded entries, grouped by category
type Catalog struct {
	Categories []*Category
	byID       map[string]*Algorithm
}

// Finding is a lint diagnostic for one section of an entry
type Finding struct {
	Section content.Section
	content.Diagnostic
}

// explanationNamespace seeds name-based explanation IDs
var explanationNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("algodeck/explanations"))

// Section returns the raw authored text of a section
func (a *Algorithm) Section(s content.Section) string {
	switch s {
	case content.SectionProblem:
		return a.Problem
	case content.SectionAlgorithm:
		return a.Algorithm
	case content.SectionSolution:
		return a.Solution
	case content.SectionImprovements:
		return a.Improvements
	}
	return ""
}

// Options returns the parser options for one section of the entry
func (a *Algorithm) Options(s content.Section, defaultLanguage string) content.Options {
	return content.Options{
		Section:         s,
		Explanations:    a.Explanations,
		DefaultLanguage: defaultLanguage,
	}
}

// Parse parses one section with the entry's explanations
func (a *Algorithm) Parse(s content.Section, defaultLanguage string) []content.Node {
	return content.Parse(a.Section(s), a.Options(s, defaultLanguage))
}

// Lint checks all four sections
func (a *Algorithm) Lint() []Finding {
	var findings []Finding
	for _, s := range content.Sections() {
		for _, d := range content.Lint(a.Section(s), a.Options(s, "")) {
			findings = append(findings, Finding{Section: s, Diagnostic: d})
		}
	}
	return findings
}

// normalize fills derived fields and validates the entry
func (a *Algorithm) normalize() error {
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if a.ID == "" {
		a.ID = Slug(a.Title)
	}
	if a.ID == "" {
		return fmt.Errorf("cannot derive id from title %q", a.Title)
	}
	if a.Category == "" {
		return fmt.Errorf("category cannot be empty")
	}
	a.Category = Slug(a.Category)

	for i := range a.Explanations {
		e := &a.Explanations[i]
		s, ok := content.ParseSection(string(e.Section))
		if !ok {
			return fmt.Errorf("explanation %q has invalid section '%s': must be one of: problem, algorithm, solution, improvements", e.Trigger, e.Section)
		}
		e.Section = s
		e.ID = uuid.NewSHA1(explanationNamespace, []byte(a.ID+"/"+string(s)+"/"+e.Trigger)).String()
	}

	if a.Code != nil && strings.TrimSpace(a.Code.Source) == "" {
		a.Code = nil
	}
	return nil
}

// New builds a catalog from entries. defs fixes the order and names of known
// categories; any other category follows in alphabetical order.
func New(algorithms []*Algorithm, defs []CategoryDef) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Algorithm)}
	byCategory := make(map[string]*Category)

	for _, d := range defs {
		cat := &Category{ID: Slug(d.ID), Name: d.Name}
		if cat.Name == "" {
			cat.Name = categoryName(cat.ID)
		}
		byCategory[cat.ID] = cat
		c.Categories = append(c.Categories, cat)
	}

	var extra []*Category
	for _, a := range algorithms {
		if err := a.normalize(); err != nil {
			return nil, fmt.Errorf("invalid entry %s: %w", a.label(), err)
		}
		if prev, dup := c.byID[a.ID]; dup {
			return nil, fmt.Errorf("duplicate id %q in %s and %s", a.ID, prev.label(), a.label())
		}
		c.byID[a.ID] = a

		cat, ok := byCategory[a.Category]
		if !ok {
			cat = &Category{ID: a.Category, Name: categoryName(a.Category)}
			byCategory[a.Category] = cat
			extra = append(extra, cat)
		}
		cat.Algorithms = append(cat.Algorithms, a)
	}

	slices.SortFunc(extra, func(x, y *Category) int { return strings.Compare(x.ID, y.ID) })
	c.Categories = append(c.Categories, extra...)

	for _, cat := range c.Categories {
		slices.SortStableFunc(cat.Algorithms, func(x, y *Algorithm) int {
			return strings.Compare(x.Title, y.Title)
		})
	}

	return c, nil
}

func (a *Algorithm) label() string {
	if a.Source != "" {
		return a.Source
	}
	if a.Title != "" {
		return fmt.Sprintf("%q", a.Title)
	}
	return "(untitled)"
}

// Lookup finds an entry by ID
func (c *Catalog) Lookup(id string) (*Algorithm, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// All returns every entry in display order
func (c *Catalog) All() []*Algorithm {
	var out []*Algorithm
	for _, cat := range c.Categories {
		out = append(out, cat.Algorithms...)
	}
	return out
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.byID)
}

// Slug lower-cases s and joins its letter and digit runs with dashes
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

func categoryName(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "-", " "))
}
