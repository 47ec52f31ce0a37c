package packs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danmuck/fixturectl/internal/names"
	"github.com/danmuck/fixturectl/internal/ownership"
	"github.com/danmuck/fixturectl/internal/teams"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	// MarkerFile carries the team name for Directory ownership.
	MarkerFile = ".codeowner"
	// PackageFile carries owner: for PackageConfig ownership.
	PackageFile = "package.yml"
	// SourceExt is the extension of generated stubs.
	SourceExt = ".rb"
)

var ErrInvalidPackageName = errors.New("packs: invalid package name")

// Options fixes the layout shared by every package in a run.
type Options struct {
	AppDir          string
	CodeDirectories []string
	FilesPerDir     int
	SourceBody      string
}

// Package is the derived identity of one built package.
type Package struct {
	Name    string
	Team    string
	Scheme  ownership.Scheme
	Path    string
	RelPath string
}

// Result reports one Build call.
type Result struct {
	Package Package
	Skipped bool
	Files   int
}

// Builder writes packages under AppDir/packs.
type Builder struct {
	opts  Options
	teams *teams.Registry
	names names.Source
}

func NewBuilder(opts Options, registry *teams.Registry, source names.Source) *Builder {
	return &Builder{opts: opts, teams: registry, names: source}
}

// TeamName is the team derived from a package name.
func TeamName(pack string) string {
	return pack + "-team"
}

// Describe derives the Package for name without touching disk.
func (b *Builder) Describe(name string, scheme ownership.Scheme) Package {
	rel := filepath.Join("packs", name)
	return Package{
		Name:    name,
		Team:    TeamName(name),
		Scheme:  scheme,
		Path:    filepath.Join(b.opts.AppDir, rel),
		RelPath: rel,
	}
}

// Build provisions one package. If the team directory already exists the
// package is treated as provisioned and nothing is written.
func (b *Builder) Build(name string, scheme ownership.Scheme) (Result, error) {
	if err := validatePackageName(name); err != nil {
		return Result{}, err
	}
	if !scheme.Valid() {
		return Result{}, fmt.Errorf("packs: package %s: invalid %v", name, scheme)
	}
	pack := b.Describe(name, scheme)

	setup, err := b.teams.EnsureTeamDir(pack.Team)
	if err != nil {
		return Result{}, err
	}
	if setup == teams.AlreadyExists {
		log.Debug().Str("package", name).Str("team", pack.Team).Msg("team exists, skipping package")
		return Result{Package: pack, Skipped: true}, nil
	}

	if err := b.teams.WriteTeamConfig(pack.Team, scheme, pack.RelPath); err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(pack.Path, 0o755); err != nil {
		return Result{}, fmt.Errorf("create package dir %s: %w", pack.Path, err)
	}
	if err := writeOwnershipArtifact(pack); err != nil {
		return Result{}, err
	}
	files, err := b.generateSources(pack)
	if err != nil {
		return Result{}, err
	}

	log.Debug().
		Str("package", name).
		Str("team", pack.Team).
		Stringer("scheme", scheme).
		Int("files", files).
		Msg("package built")
	return Result{Package: pack, Files: files}, nil
}

func writeOwnershipArtifact(pack Package) error {
	switch pack.Scheme {
	case ownership.Directory:
		p := filepath.Join(pack.Path, MarkerFile)
		if err := os.WriteFile(p, []byte(pack.Team+"\n"), 0o644); err != nil {
			return fmt.Errorf("write marker %s: %w", p, err)
		}
	case ownership.PackageConfig:
		data, err := yaml.Marshal(packageConfig{Owner: pack.Team})
		if err != nil {
			return fmt.Errorf("encode package config for %s: %w", pack.Name, err)
		}
		p := filepath.Join(pack.Path, PackageFile)
		if err := os.WriteFile(p, data, 0o644); err != nil {
			return fmt.Errorf("write package config %s: %w", p, err)
		}
	case ownership.TeamConfig, ownership.FileAnnotation:
		// team file or per-file header carries ownership
	}
	return nil
}

type packageConfig struct {
	Owner string `yaml:"owner"`
}

func (b *Builder) generateSources(pack Package) (int, error) {
	annotate := pack.Scheme == ownership.FileAnnotation
	written := 0
	for _, dir := range b.opts.CodeDirectories {
		dirPath := filepath.Join(pack.Path, "app", "services", dir)
		if err := os.MkdirAll(dirPath, 0o755); err != nil {
			return written, fmt.Errorf("create source dir %s: %w", dirPath, err)
		}
		for range b.opts.FilesPerDir {
			ident := b.names.Name()
			p := filepath.Join(dirPath, ident+SourceExt)
			if err := os.WriteFile(p, []byte(SourceFile(ident, pack.Team, b.opts.SourceBody, annotate)), 0o644); err != nil {
				return written, fmt.Errorf("write source %s: %w", p, err)
			}
			written++
		}
	}
	return written, nil
}

// AnnotationHeader is the first line of a file under FileAnnotation.
func AnnotationHeader(team string) string {
	return "# @team " + team + "\n"
}

// SourceFile renders one stub.
func SourceFile(ident, team, body string, annotate bool) string {
	var b strings.Builder
	if annotate {
		b.WriteString(AnnotationHeader(team))
	}
	b.WriteString("class ")
	b.WriteString(ident)
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\nend\n")
	return b.String()
}

func validatePackageName(name string) error {
	if strings.TrimSpace(name) == "" || name != strings.TrimSpace(name) {
		return fmt.Errorf("%w: %q", ErrInvalidPackageName, name)
	}
	if strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidPackageName, name)
	}
	return nil
}
