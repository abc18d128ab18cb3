package commands

import (
	"fmt"
	"os"

	"github.com/gerunddev/algodeck/internal/config"
	"github.com/gerunddev/algodeck/internal/styles"
)

// ConfigInit writes the default configuration unless one exists
func ConfigInit(env *Env, force bool) error {
	path := config.ConfigPath()
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintln(env.Out, styles.WarningStyle.Render("⚠ Config already exists: "+path))
		fmt.Fprintln(env.Out, styles.DimStyle.Render("Use --force to overwrite it"))
		return nil
	}

	if err := config.DefaultConfig().Save(); err != nil {
		return err
	}
	fmt.Fprintln(env.Out, styles.SuccessStyle.Render("✓ Wrote "+path))
	return nil
}

// ConfigShow prints the effective configuration
func ConfigShow(env *Env) error {
	cfg := env.Config
	catalogDir := cfg.CatalogDir
	if catalogDir == "" {
		catalogDir = "(builtin)"
	}

	rows := [][2]string{
		{"Config file", config.ConfigPath()},
		{"State file", config.StateFilePath()},
		{"Catalog", catalogDir},
		{"Log file", cfg.LogFile},
		{"Theme", cfg.Theme},
		{"Language", cfg.DefaultLanguage},
		{"Width", fmt.Sprintf("%d", env.Width())},
		{"Debounce", cfg.WatchDebounce.String()},
	}
	for _, r := range rows {
		fmt.Fprintf(env.Out, "%s %s\n", styles.DimStyle.Render(fmt.Sprintf("%-12s", r[0]+":")), r[1])
	}
	return nil
}
