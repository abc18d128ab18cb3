package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/gerunddev/algodeck/internal/catalog"
	"github.com/gerunddev/algodeck/internal/config"
	"github.com/gerunddev/algodeck/internal/logger"
	"github.com/gerunddev/algodeck/internal/render"
	"github.com/gerunddev/algodeck/internal/styles"
)

// defaultWidth is used when neither config nor flags set a width
const defaultWidth = 100

// Flags are the global command line overrides
type Flags struct {
	Theme      string
	Width      int
	CatalogDir string
	LogLevel   string
	Verbose    bool
}

// Env is what every command runs with
type Env struct {
	Config *config.Config
	Theme  styles.Theme
	Log    *logger.Logger
	Out    io.Writer

	// themeSet is true when the theme came from a flag
	themeSet bool
	cleanup  func()
}

// Setup loads the configuration, applies flag overrides and opens the log
func Setup(flags Flags, out io.Writer) (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if flags.CatalogDir != "" {
		cfg.CatalogDir = flags.CatalogDir
	}
	if flags.Theme != "" {
		cfg.Theme = flags.Theme
	}
	if flags.Width > 0 {
		cfg.Width = flags.Width
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	env := NewEnv(cfg, out)
	env.themeSet = flags.Theme != ""

	if l, cleanup, err := logger.NewFileLogger(cfg.LogFile, flags.level()); err == nil {
		env.Log = l
		env.cleanup = cleanup
	}
	env.Log.ConfigLoaded(cfg.CatalogDir, cfg.Theme)

	return env, nil
}

// level is the log level named by the flags. --verbose wins over --log-level.
func (f Flags) level() log.Level {
	if f.Verbose {
		return log.DebugLevel
	}
	return logger.ParseLevel(f.LogLevel)
}

// NewEnv builds an environment from an already loaded config. Logging is
// discarded until a logger is attached.
func NewEnv(cfg *config.Config, out io.Writer) *Env {
	theme, err := styles.ThemeByName(cfg.Theme)
	if err != nil {
		theme = styles.Dark()
	}
	return &Env{
		Config: cfg,
		Theme:  theme,
		Log:    logger.Discard(),
		Out:    out,
	}
}

// Close releases the log file
func (e *Env) Close() {
	if e.cleanup != nil {
		e.cleanup()
	}
}

// LoadCatalog loads the configured catalog directory, or the built-in one
func (e *Env) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	start := time.Now()
	source := e.Config.CatalogDir

	var (
		cat *catalog.Catalog
		err error
	)
	if source == "" {
		source = "builtin"
		cat, err = catalog.Builtin(ctx)
	} else {
		cat, err = catalog.LoadDir(ctx, source)
	}
	if err != nil {
		e.Log.EntryInvalid(source, err)
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	e.Log.CatalogLoaded(source, cat.Len(), len(cat.Categories), time.Since(start))
	return cat, nil
}

// Width is the text width for rendered output
func (e *Env) Width() int {
	if e.Config.Width > 0 {
		return e.Config.Width
	}
	return defaultWidth
}

// Renderer creates a content renderer for command output. Code is
// highlighted only when the terminal supports color.
func (e *Env) Renderer(opts ...render.Option) *render.Renderer {
	base := []render.Option{
		render.WithWidth(e.Width()),
		render.WithFormatter(render.FormatterFor(lipgloss.ColorProfile())),
	}
	return render.New(e.Theme, append(base, opts...)...)
}
