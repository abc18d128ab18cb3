package commands

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/algodeck/internal/catalog"
	"github.com/gerunddev/algodeck/internal/content"
	"github.com/gerunddev/algodeck/internal/styles"
	"github.com/gerunddev/algodeck/internal/watch"
)

// printFinding writes one lint finding as "id/section line N: sev: msg"
func printFinding(env *Env, id string, f catalog.Finding) {
	fmt.Fprintf(env.Out, "%s %s\n", styles.DimStyle.Render(id+"/"+string(f.Section)), findingStyle(f).Render(f.Diagnostic.String()))
	env.Log.LintFinding(id, string(f.Section), f.Line, f.Severity == content.SeverityError, f.Message)
}

// printResult writes the outcome of a watch check
func printResult(env *Env, r watch.Result) {
	switch {
	case r.Removed:
		fmt.Fprintln(env.Out, styles.DimStyle.Render("- "+r.File+" removed"))
	case r.Err != nil:
		fmt.Fprintln(env.Out, styles.ErrorStyle.Render("✗ "+r.Err.Error()))
	case len(r.Findings) == 0:
		fmt.Fprintln(env.Out, styles.SuccessStyle.Render("✓ "+r.File+" ("+r.Entry.ID+")")+modified(r))
	default:
		for _, f := range r.Findings {
			fmt.Fprintf(env.Out, "%s %s\n", styles.DimStyle.Render(r.Entry.ID+"/"+string(f.Section)), findingStyle(f).Render(f.Diagnostic.String()))
		}
	}
}

// modified formats the file time of a watch result, if known
func modified(r watch.Result) string {
	if r.Modified.IsZero() {
		return ""
	}
	return " " + styles.DimStyle.Render(r.Modified.Format(time.TimeOnly))
}

func findingStyle(f catalog.Finding) lipgloss.Style {
	if f.Severity == content.SeverityError {
		return styles.ErrorStyle
	}
	return styles.WarningStyle
}
