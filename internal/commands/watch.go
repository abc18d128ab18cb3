package commands

import (
	"context"
	"fmt"
	"sync"

	"github.com/gerunddev/algodeck/internal/config"
	"github.com/gerunddev/algodeck/internal/state"
	"github.com/gerunddev/algodeck/internal/styles"
	"github.com/gerunddev/algodeck/internal/watch"
)

// Watch lints the catalog directory once, then again on every change,
// until ctx is cancelled
func Watch(ctx context.Context, env *Env) error {
	dir := env.Config.CatalogDir
	if dir == "" {
		return fmt.Errorf("watch needs a catalog directory: set catalog_dir in %s or pass --catalog", config.ConfigPath())
	}

	st, err := state.Load(config.StateFilePath())
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	// The first scan reports every file, so start from an empty file table
	st.Files = make(map[string]*state.FileState)

	var mu sync.Mutex
	w, err := watch.New(dir, st, env.Log, env.Config.WatchDebounce, func(r watch.Result) {
		mu.Lock()
		defer mu.Unlock()
		printResult(env, r)
	})
	if err != nil {
		return err
	}
	defer w.Stop()

	fmt.Fprintln(env.Out, styles.TitleStyle.Render("Watching ")+styles.HighlightStyle.Render(dir))
	fmt.Fprintln(env.Out, styles.HelpStyle.Render("Press Ctrl+C to stop"))
	if _, err := w.Scan(); err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	w.Stop()

	if err := st.Save(config.StateFilePath()); err != nil {
		env.Log.StateError("save", err)
	}
	return nil
}
