package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/algodeck/internal/config"
)

// testEnv returns an environment over catalogDir (empty for builtin) with
// config and state paths inside a temp dir
func testEnv(t *testing.T, catalogDir string) (*Env, *bytes.Buffer) {
	t.Helper()
	tmp := t.TempDir()

	origConfig, origState := config.ConfigPath, config.StateFilePath
	config.ConfigPath = func() string { return filepath.Join(tmp, "config.json") }
	config.StateFilePath = func() string { return filepath.Join(tmp, "state.json") }
	t.Cleanup(func() {
		config.ConfigPath, config.StateFilePath = origConfig, origState
	})

	cfg := config.DefaultConfig()
	cfg.CatalogDir = catalogDir
	cfg.WatchDebounce = 20 * time.Millisecond

	var out bytes.Buffer
	return NewEnv(cfg, &out), &out
}

func writeEntry(t *testing.T, dir, name, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0644))
}

func TestList(t *testing.T) {
	env, out := testEnv(t, "")
	require.NoError(t, List(context.Background(), env))

	s := out.String()
	assert.Contains(t, s, "Graphs")
	assert.Contains(t, s, "4.1 Route Between Nodes")
	assert.Contains(t, s, "route-between-nodes")
	assert.Contains(t, s, "Trees")
}

func TestRender(t *testing.T) {
	env, out := testEnv(t, "")
	require.NoError(t, Render(context.Background(), env, "route-between-nodes", ""))

	s := out.String()
	for _, want := range []string{"PROBLEM", "ALGORITHM", "SOLUTION", "IMPROVEMENTS", "Implementation", "Deep dives", "inverted once"} {
		assert.Contains(t, s, want)
	}

	out.Reset()
	require.NoError(t, Render(context.Background(), env, "route-between-nodes", "problem"))
	assert.NotContains(t, out.String(), "IMPROVEMENTS")

	assert.ErrorContains(t, Render(context.Background(), env, "nope", ""), `no algorithm with id "nope"`)
	assert.ErrorContains(t, Render(context.Background(), env, "route-between-nodes", "appendix"), "invalid section 'appendix'")
}

func TestLint(t *testing.T) {
	env, out := testEnv(t, "")
	require.NoError(t, Lint(context.Background(), env, nil))
	assert.Contains(t, out.String(), "4 entries checked, 0 errors, 0 warnings")

	dir := t.TempDir()
	writeEntry(t, dir, "ok.yaml", "title: OK\ncategory: g\nproblem: fine\n")
	writeEntry(t, dir, "warn.yaml", "title: Warn\ncategory: g\nproblem: \"a **b\"\n")
	writeEntry(t, dir, "bad.yaml", "title: Bad\ncategory: g\nsolution: \"[CALLOUT:TIP]\\nopen\"\n")

	env, out = testEnv(t, dir)
	err := Lint(context.Background(), env, nil)
	assert.ErrorIs(t, err, ErrLintFailed)
	s := out.String()
	assert.Contains(t, s, "bad/solution line 1: error: callout")
	assert.Contains(t, s, "warn/problem line 1: warning: unpaired")
	assert.Contains(t, s, "3 entries checked, 1 errors, 1 warnings")

	out.Reset()
	require.NoError(t, Lint(context.Background(), env, []string{"warn"}))
	assert.Contains(t, out.String(), "1 entries checked, 0 errors, 1 warnings")

	assert.Error(t, Lint(context.Background(), env, []string{"missing"}))
}

func TestFmt(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "bfs.yaml", "title: BFS\ncategory: graphs\nsolution: |\n  • visit\n  [CALLOUT:tip]\n  go wide\n  [/CALLOUT]\nproblem: already fine\n")

	env, out := testEnv(t, dir)
	require.NoError(t, Fmt(context.Background(), env, "bfs", "solution", false))
	assert.Equal(t, "- visit\n[CALLOUT:TIP]\ngo wide\n[/CALLOUT]\n", out.String())

	out.Reset()
	require.NoError(t, Fmt(context.Background(), env, "bfs", "problem", true))
	assert.Contains(t, out.String(), "already formatted")

	out.Reset()
	require.NoError(t, Fmt(context.Background(), env, "bfs", "solution", true))
	assert.NotEmpty(t, out.String())
}

func TestConfigInit(t *testing.T) {
	env, out := testEnv(t, "")
	require.NoError(t, ConfigInit(env, false))
	assert.Contains(t, out.String(), "Wrote")
	assert.FileExists(t, config.ConfigPath())

	out.Reset()
	require.NoError(t, ConfigInit(env, false))
	assert.Contains(t, out.String(), "already exists")

	out.Reset()
	require.NoError(t, ConfigShow(env))
	assert.Contains(t, out.String(), "(builtin)")
}

func TestFlagsLevel(t *testing.T) {
	tests := []struct {
		flags Flags
		want  log.Level
	}{
		{Flags{}, log.InfoLevel},
		{Flags{LogLevel: "warn"}, log.WarnLevel},
		{Flags{LogLevel: "nonsense"}, log.InfoLevel},
		{Flags{LogLevel: "error", Verbose: true}, log.DebugLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.flags.level(), "%+v", tt.flags)
	}
}

func TestWatchRequiresDirectory(t *testing.T) {
	env, _ := testEnv(t, "")
	assert.ErrorContains(t, Watch(context.Background(), env), "needs a catalog directory")
}

func TestWatchScansAndSaves(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "bfs.yaml", "title: BFS\ncategory: graphs\n")

	env, out := testEnv(t, dir)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, Watch(ctx, env))
	assert.Contains(t, out.String(), "Watching")
	assert.Contains(t, out.String(), dir)
	assert.Contains(t, out.String(), "✓ bfs.yaml (bfs)")

	info, err := os.Stat(filepath.Join(dir, "bfs.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), info.ModTime().Format(time.TimeOnly))
	assert.FileExists(t, config.StateFilePath())
}
