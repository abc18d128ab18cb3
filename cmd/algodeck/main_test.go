package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := out.String(); got != "algodeck v"+version+"\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestCommandsRegistered(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"list", "render", "browse", "lint", "fmt", "watch", "config", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}

	cmd, _, err := root.Find([]string{"config", "init"})
	if err != nil || cmd.Name() != "init" {
		t.Error("config init not registered")
	}

	if f := root.PersistentFlags().Lookup("theme"); f == nil || !strings.Contains(f.Usage, "dark") {
		t.Error("--theme flag missing")
	}
	if f := root.PersistentFlags().Lookup("log-level"); f == nil || f.DefValue != "info" {
		t.Error("--log-level flag missing")
	}
}
