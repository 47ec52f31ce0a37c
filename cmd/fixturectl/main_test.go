package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.toml")
	if _, err := execute(t, "config", "init", "--output", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := execute(t, "config", "init", "--output", path); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if _, err := execute(t, "config", "init", "--output", path, "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}

	out, err := execute(t, "config", "validate", "--config", path)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "packages=100") {
		t.Fatalf("unexpected validate output: %q", out)
	}
}

func TestGenerateForcedScheme(t *testing.T) {
	base := t.TempDir()
	out, err := execute(t, "generate",
		"--base-dir", base,
		"--app-name", "my_app",
		"--packages", "1",
		"--files-per-dir", "1",
		"--seed", "7",
		"--scheme", "package-config",
		"--skip-scaffold",
		"--skip-tools",
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, "generated 1 packages") || !strings.Contains(out, "seed 7") {
		t.Fatalf("unexpected output: %q", out)
	}

	appDir := filepath.Join(base, "my_app")
	packs, err := os.ReadDir(filepath.Join(appDir, "packs"))
	if err != nil || len(packs) != 1 {
		t.Fatalf("expected one pack, got %v err=%v", packs, err)
	}
	name := packs[0].Name()
	got, err := os.ReadFile(filepath.Join(appDir, "packs", name, "package.yml"))
	if err != nil {
		t.Fatalf("read package.yml: %v", err)
	}
	if string(got) != "owner: "+name+"-team\n" {
		t.Fatalf("unexpected package.yml: %q", got)
	}
	if _, err := os.Stat(filepath.Join(appDir, "config", "code_ownership.yml")); err != nil {
		t.Fatalf("missing code_ownership.yml: %v", err)
	}
}

func TestGenerateRejectsUnknownScheme(t *testing.T) {
	_, err := execute(t, "generate", "--base-dir", t.TempDir(), "--scheme", "codeowners", "--skip-scaffold", "--skip-tools")
	if err == nil || !strings.Contains(err.Error(), "unknown scheme") {
		t.Fatalf("expected unknown scheme error, got %v", err)
	}
}

func TestGenerateRejectsInvalidFlags(t *testing.T) {
	_, err := execute(t, "generate", "--base-dir", t.TempDir(), "--packages", "-2", "--skip-scaffold", "--skip-tools")
	if err == nil {
		t.Fatalf("expected validation error for negative packages")
	}
}
