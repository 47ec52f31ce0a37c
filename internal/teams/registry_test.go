package teams

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/fixturectl/internal/ownership"
	"github.com/danmuck/fixturectl/internal/testutil/testlog"
	"github.com/google/go-cmp/cmp"
)

func TestEnsureTeamDirCreatedThenAlreadyExists(t *testing.T) {
	testlog.Start(t)
	appDir := t.TempDir()
	reg := NewRegistry(appDir, "name: infra\n")

	first, err := reg.EnsureTeamDir("river-team")
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if first != Created {
		t.Fatalf("expected Created, got %v", first)
	}
	info, err := os.Stat(filepath.Join(appDir, "config", "teams", "river-team"))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected team dir, err=%v", err)
	}

	second, err := reg.EnsureTeamDir("river-team")
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if second != AlreadyExists {
		t.Fatalf("expected AlreadyExists, got %v", second)
	}
}

func TestEnsureTeamDirRejectsPathNames(t *testing.T) {
	reg := NewRegistry(t.TempDir(), "")
	for _, name := range []string{"", "../x", "a/b", ".hidden", " padded"} {
		if _, err := reg.EnsureTeamDir(name); !errors.Is(err, ErrInvalidTeamName) {
			t.Fatalf("expected ErrInvalidTeamName for %q, got %v", name, err)
		}
	}
}

func TestWriteTeamConfigWithoutGlobs(t *testing.T) {
	testlog.Start(t)
	reg := NewRegistry(t.TempDir(), "")
	if _, err := reg.EnsureTeamDir("river-team"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	for _, scheme := range []ownership.Scheme{ownership.Directory, ownership.FileAnnotation, ownership.PackageConfig} {
		if err := reg.WriteTeamConfig("river-team", scheme, filepath.Join("packs", "river")); err != nil {
			t.Fatalf("write %s: %v", scheme, err)
		}
		raw, err := os.ReadFile(reg.ConfigPath("river-team"))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if strings.Contains(string(raw), "owned_globs") {
			t.Fatalf("scheme %s wrote owned_globs:\n%s", scheme, raw)
		}
		desc, err := LoadDescriptor(reg.ConfigPath("river-team"))
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if diff := cmp.Diff(NewDescriptor("river-team"), desc); diff != "" {
			t.Fatalf("unexpected descriptor (-want +got):\n%s", diff)
		}
	}
}

func TestWriteTeamConfigTeamConfigScheme(t *testing.T) {
	testlog.Start(t)
	appDir := t.TempDir()
	reg := NewRegistry(appDir, "")
	if _, err := reg.EnsureTeamDir("river-team"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := reg.WriteTeamConfig("river-team", ownership.TeamConfig, filepath.Join("packs", "river")); err != nil {
		t.Fatalf("write: %v", err)
	}

	desc, err := LoadDescriptor(filepath.Join(appDir, "config", "teams", "river-team", "river-team-team.yml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if desc.Name != "river-team" || desc.GitHub.Team != "@river-team" {
		t.Fatalf("unexpected identity: %+v", desc)
	}
	if diff := cmp.Diff([]string{"packs/river/**"}, desc.OwnedGlobs); diff != "" {
		t.Fatalf("unexpected globs (-want +got):\n%s", diff)
	}
}

func TestEncodeDescriptorLayout(t *testing.T) {
	out, err := EncodeDescriptor(NewDescriptor("river-team"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text := string(out)
	for _, want := range []string{"name: river-team\n", "github:\n", "  team: '@river-team'\n", "river-team member\n"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in:\n%s", want, text)
		}
	}
}

func TestEnsureBootstrapTeamOverwrites(t *testing.T) {
	testlog.Start(t)
	appDir := t.TempDir()
	reg := NewRegistry(appDir, "name: infra\n")
	path := filepath.Join(appDir, "config", "teams", "infra", "infra.yml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed stale: %v", err)
	}

	for range 2 {
		if err := reg.EnsureBootstrapTeam(); err != nil {
			t.Fatalf("bootstrap: %v", err)
		}
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "name: infra\n" {
		t.Fatalf("unexpected bootstrap content: %q", got)
	}
}

func TestOwnedGlob(t *testing.T) {
	if got := OwnedGlob(filepath.Join("packs", "river")); got != "packs/river/**" {
		t.Fatalf("unexpected glob %q", got)
	}
}

func TestWriteTeamConfigFailsWithoutDir(t *testing.T) {
	reg := NewRegistry(t.TempDir(), "")
	if err := reg.WriteTeamConfig("river-team", ownership.Directory, "packs/river"); err == nil {
		t.Fatalf("expected write failure when team dir is missing")
	}
}
