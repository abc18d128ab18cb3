package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gerunddev/algodeck/internal/catalog"
	"github.com/gerunddev/algodeck/internal/content"
	"github.com/gerunddev/algodeck/internal/logger"
	"github.com/gerunddev/algodeck/internal/state"
)

// Result is the outcome of checking one catalog file
type Result struct {
	File     string
	Entry    *catalog.Algorithm // nil when the file is invalid or removed
	Findings []catalog.Finding
	Err      error
	Removed  bool
	// Modified is the file's modification time as recorded in state
	Modified time.Time
}

// HasErrors reports whether the file failed to load or lints with errors
func (r Result) HasErrors() bool {
	if r.Err != nil {
		return true
	}
	for _, f := range r.Findings {
		if f.Severity == content.SeverityError {
			return true
		}
	}
	return false
}

// Handler receives every checked file
type Handler func(Result)

// Watcher re-checks catalog entries as they are edited
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	dir      string
	state    *state.State
	log      *logger.Logger
	handler  Handler
	pending  map[string]time.Time
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	closer   sync.Once
}

// New creates a watcher for a catalog directory. st records which file
// versions were already checked.
func New(dir string, st *state.State, log *logger.Logger, debounce time.Duration, handler Handler) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog path %s is not a directory", dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if handler == nil {
		handler = func(Result) {}
	}

	return &Watcher{
		watcher:  fw,
		dir:      dir,
		state:    st,
		log:      log,
		handler:  handler,
		pending:  make(map[string]time.Time),
		debounce: debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Scan checks every entry file in the directory once. Call it before Start.
func (w *Watcher) Scan() ([]Result, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	var results []Result
	for _, e := range entries {
		if e.IsDir() || !catalog.IsEntryFile(e.Name()) {
			continue
		}
		if r, ok := w.Check(filepath.Join(w.dir, e.Name())); ok {
			results = append(results, r)
		}
	}
	return results, nil
}

// Start begins watching the directory. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	if err := w.watcher.Add(w.dir); err != nil {
		w.mu.Unlock()
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.running = true
	w.mu.Unlock()

	w.log.WatchStarted(w.dir, w.debounce)
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}

	w.closer.Do(func() {
		if err := w.watcher.Close(); err != nil {
			w.log.Error("failed to close watcher", "error", err)
		}
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := max(w.debounce/3, 10*time.Millisecond)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("watch error", "error", err)

		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !catalog.IsEntryFile(filepath.Base(event.Name)) {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	w.log.FileChanged(event.Name, event.Op.String())

	w.mu.Lock()
	w.pending[event.Name] = time.Now()
	w.mu.Unlock()
}

// flush checks files whose last event is older than the debounce window
func (w *Watcher) flush() {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			settled = append(settled, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	sort.Strings(settled)
	for _, path := range settled {
		w.Check(path)
	}
}

// Check loads and lints one file and reports the result to the handler. It
// returns false when the file is unchanged since it was last checked.
func (w *Watcher) Check(path string) (Result, bool) {
	name := w.relative(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if _, known := w.state.Files[path]; !known {
			return Result{}, false
		}
		w.state.Forget(path)
		r := Result{File: name, Removed: true}
		w.handler(r)
		return r, true
	}

	changed, err := w.state.HasChanged(path)
	if err != nil {
		r := Result{File: name, Err: err}
		w.handler(r)
		return r, true
	}
	if !changed {
		w.log.Skipped(name, "unchanged")
		return Result{}, false
	}

	r := w.load(path, name)
	entryID := ""
	if r.Entry != nil {
		entryID = r.Entry.ID
	}
	if err := w.state.Update(path, entryID); err != nil {
		w.log.StateError("update", err)
	}
	r.Modified = w.state.GetMTime(path)

	w.handler(r)
	return r, true
}

func (w *Watcher) load(path, name string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{File: name, Err: fmt.Errorf("failed to read %s: %w", name, err)}
	}

	a, err := catalog.DecodeEntry(name, data)
	if err != nil {
		w.log.EntryInvalid(name, err)
		return Result{File: name, Err: err}
	}

	findings := a.Lint()
	for _, f := range findings {
		w.log.LintFinding(a.ID, string(f.Section), f.Line, f.Severity == content.SeverityError, f.Message)
	}
	return Result{File: name, Entry: a, Findings: findings}
}

func (w *Watcher) relative(path string) string {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
