package teams

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/danmuck/fixturectl/internal/ownership"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// BootstrapTeamName is the team written once per run regardless of packages.
const BootstrapTeamName = "infra"

var ErrInvalidTeamName = errors.New("teams: invalid team name")

// SetupResult reports what EnsureTeamDir found.
type SetupResult int

const (
	Created SetupResult = iota
	AlreadyExists
)

func (r SetupResult) String() string {
	switch r {
	case Created:
		return "created"
	case AlreadyExists:
		return "already_exists"
	default:
		return fmt.Sprintf("setup_result(%d)", int(r))
	}
}

// Descriptor is the on-disk team file shape.
type Descriptor struct {
	Name       string   `yaml:"name"`
	GitHub     GitHub   `yaml:"github"`
	OwnedGlobs []string `yaml:"owned_globs,omitempty"`
}

type GitHub struct {
	Team    string   `yaml:"team"`
	Members []string `yaml:"members"`
}

// NewDescriptor builds the synthetic descriptor for team.
func NewDescriptor(team string) Descriptor {
	return Descriptor{
		Name: team,
		GitHub: GitHub{
			Team:    "@" + team,
			Members: []string{team + " member"},
		},
	}
}

// Registry writes team state under appDir/config/teams.
type Registry struct {
	root      string
	bootstrap string
}

// NewRegistry roots a registry at appDir. bootstrap is the verbatim text of
// the infra team file.
func NewRegistry(appDir string, bootstrap string) *Registry {
	return &Registry{
		root:      filepath.Join(appDir, "config", "teams"),
		bootstrap: bootstrap,
	}
}

// Dir is the directory for team.
func (r *Registry) Dir(team string) string {
	return filepath.Join(r.root, team)
}

// ConfigPath is the descriptor file for a package team.
func (r *Registry) ConfigPath(team string) string {
	return filepath.Join(r.Dir(team), team+"-team.yml")
}

// BootstrapPath is the descriptor file for the infra team.
func (r *Registry) BootstrapPath() string {
	return filepath.Join(r.Dir(BootstrapTeamName), BootstrapTeamName+".yml")
}

// EnsureTeamDir creates the team directory if it is absent.
func (r *Registry) EnsureTeamDir(team string) (SetupResult, error) {
	if err := validateTeamName(team); err != nil {
		return 0, err
	}
	dir := r.Dir(team)
	if _, err := os.Stat(dir); err == nil {
		log.Debug().Str("team", team).Msg("team dir exists")
		return AlreadyExists, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("stat team dir %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create team dir %s: %w", dir, err)
	}
	return Created, nil
}

// WriteTeamConfig writes the descriptor for team. Under TeamConfig ownership
// the descriptor also claims relPackPath/** through owned_globs.
func (r *Registry) WriteTeamConfig(team string, scheme ownership.Scheme, relPackPath string) error {
	if err := validateTeamName(team); err != nil {
		return err
	}
	desc := NewDescriptor(team)
	if scheme == ownership.TeamConfig {
		desc.OwnedGlobs = []string{OwnedGlob(relPackPath)}
	}
	data, err := EncodeDescriptor(desc)
	if err != nil {
		return fmt.Errorf("encode team %s: %w", team, err)
	}
	p := r.ConfigPath(team)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write team config %s: %w", p, err)
	}
	return nil
}

// EnsureBootstrapTeam (over)writes the infra team file.
func (r *Registry) EnsureBootstrapTeam() error {
	dir := r.Dir(BootstrapTeamName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create bootstrap team dir: %w", err)
	}
	if err := os.WriteFile(r.BootstrapPath(), []byte(r.bootstrap), 0o644); err != nil {
		return fmt.Errorf("write bootstrap team: %w", err)
	}
	log.Debug().Str("team", BootstrapTeamName).Str("path", r.BootstrapPath()).Msg("bootstrap team written")
	return nil
}

// OwnedGlob turns a package path relative to the app root into its
// recursive glob, always with forward slashes.
func OwnedGlob(relPackPath string) string {
	return path.Join(filepath.ToSlash(relPackPath), "**")
}

// EncodeDescriptor renders desc with two-space indentation.
func EncodeDescriptor(desc Descriptor) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(desc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadDescriptor reads a team file back.
func LoadDescriptor(p string) (Descriptor, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Descriptor{}, err
	}
	var desc Descriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return Descriptor{}, fmt.Errorf("parse team file %s: %w", p, err)
	}
	return desc, nil
}

func validateTeamName(team string) error {
	name := strings.TrimSpace(team)
	if name == "" || name != team {
		return fmt.Errorf("%w: %q", ErrInvalidTeamName, team)
	}
	if strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidTeamName, team)
	}
	return nil
}
