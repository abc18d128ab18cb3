package commands

import (
	"context"
	"fmt"

	"github.com/gerunddev/algodeck/internal/config"
	"github.com/gerunddev/algodeck/internal/state"
	"github.com/gerunddev/algodeck/internal/styles"
	"github.com/gerunddev/algodeck/internal/tui"
	"github.com/gerunddev/algodeck/internal/watch"
)

// Browse opens the interactive browser. With a catalog directory the
// browser reloads whenever an entry file changes.
func Browse(ctx context.Context, env *Env) error {
	statePath := config.StateFilePath()
	st, err := state.Load(statePath)
	if err != nil {
		env.Log.StateError("load", err)
		st = state.NewState()
	}

	theme := env.Theme
	if !env.themeSet && st.Theme != "" {
		if t, err := styles.ThemeByName(st.Theme); err == nil {
			theme = t
		}
	}

	p := tui.NewProgram(tui.Options{
		Load:            env.LoadCatalog,
		Theme:           theme,
		DefaultLanguage: env.Config.DefaultLanguage,
		Width:           env.Config.Width,
		Session:         st,
		Logger:          env.Log,
	})

	var w *watch.Watcher
	if dir := env.Config.CatalogDir; dir != "" {
		w, err = watch.New(dir, st, env.Log, env.Config.WatchDebounce, func(watch.Result) {
			p.Send(tui.ReloadMsg{})
		})
		if err != nil {
			return err
		}
		defer w.Stop()
		if err := w.Start(ctx); err != nil {
			return err
		}
	}

	_, err = p.Run()
	if w != nil {
		w.Stop()
	}
	if err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}

	if err := st.Save(statePath); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
