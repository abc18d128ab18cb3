package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gerunddev/algodeck/internal/catalog"
	"github.com/gerunddev/algodeck/internal/content"
	"github.com/gerunddev/algodeck/internal/diff"
	"github.com/gerunddev/algodeck/internal/render"
	"github.com/gerunddev/algodeck/internal/styles"
)

// ErrLintFailed is returned when lint finds at least one error
var ErrLintFailed = errors.New("lint found errors")

// List prints every entry grouped by category
func List(ctx context.Context, env *Env) error {
	cat, err := env.LoadCatalog(ctx)
	if err != nil {
		return err
	}

	for i, c := range cat.Categories {
		if i > 0 {
			fmt.Fprintln(env.Out)
		}
		fmt.Fprintln(env.Out, styles.TitleStyle.Render(c.Name))
		for _, a := range c.Algorithms {
			fmt.Fprintf(env.Out, "  %-36s %s\n", a.Title, styles.DimStyle.Render(a.ID))
		}
	}
	return nil
}

// Render prints one entry. An empty section prints all four.
func Render(ctx context.Context, env *Env, id, section string) error {
	a, err := lookup(ctx, env, id)
	if err != nil {
		return err
	}

	sections := content.Sections()
	if section != "" {
		s, err := parseSection(section)
		if err != nil {
			return err
		}
		sections = []content.Section{s}
	}

	r := env.Renderer(render.WithDeepDiveBodies(true))
	fmt.Fprintln(env.Out, env.Theme.Title().Render(a.Title))
	for _, s := range sections {
		fmt.Fprintln(env.Out)
		fmt.Fprintln(env.Out, styles.HeaderStyle.Render(strings.ToUpper(s.Title())))
		fmt.Fprintln(env.Out, r.RenderAlgorithm(a, s, env.Config.DefaultLanguage))
		env.Log.SectionRendered(a.ID, string(s), env.Width())
	}
	return nil
}

// Lint checks the given entries, or all of them when ids is empty
func Lint(ctx context.Context, env *Env, ids []string) error {
	cat, err := env.LoadCatalog(ctx)
	if err != nil {
		return err
	}

	entries := cat.All()
	if len(ids) > 0 {
		entries = entries[:0:0]
		for _, id := range ids {
			a, ok := cat.Lookup(id)
			if !ok {
				return fmt.Errorf("no algorithm with id %q", id)
			}
			entries = append(entries, a)
		}
	}

	var warnings, errs int
	for _, a := range entries {
		findings := a.Lint()
		for _, f := range findings {
			printFinding(env, a.ID, f)
			if f.Severity == content.SeverityError {
				errs++
			} else {
				warnings++
			}
		}
	}

	summary := fmt.Sprintf("%d entries checked, %d errors, %d warnings", len(entries), errs, warnings)
	switch {
	case errs > 0:
		fmt.Fprintln(env.Out, styles.ErrorStyle.Render("✗ "+summary))
		return ErrLintFailed
	case warnings > 0:
		fmt.Fprintln(env.Out, styles.WarningStyle.Render("⚠ "+summary))
	default:
		fmt.Fprintln(env.Out, styles.SuccessStyle.Render("✓ "+summary))
	}
	return nil
}

// Fmt prints a section in canonical markup, or the diff to it
func Fmt(ctx context.Context, env *Env, id, section string, showDiff bool) error {
	a, err := lookup(ctx, env, id)
	if err != nil {
		return err
	}
	s, err := parseSection(section)
	if err != nil {
		return err
	}

	if !showDiff {
		fmt.Fprintln(env.Out, content.Format(a.Parse(s, env.Config.DefaultLanguage)))
		return nil
	}

	unified := diff.Generate(a, s, env.Config.DefaultLanguage)
	if unified == "" {
		fmt.Fprintln(env.Out, styles.SuccessStyle.Render("✓ "+a.ID+"/"+string(s)+" is already formatted"))
		return nil
	}
	out, err := diff.Render(unified, env.Theme, env.Width())
	if err != nil {
		return err
	}
	fmt.Fprint(env.Out, out)
	return nil
}

func lookup(ctx context.Context, env *Env, id string) (*catalog.Algorithm, error) {
	cat, err := env.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	a, ok := cat.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("no algorithm with id %q", id)
	}
	return a, nil
}

func parseSection(name string) (content.Section, error) {
	s, ok := content.ParseSection(name)
	if !ok {
		return "", fmt.Errorf("invalid section '%s': must be one of: problem, algorithm, solution, improvements", name)
	}
	return s, nil
}
