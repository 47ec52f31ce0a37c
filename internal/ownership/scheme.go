// Package ownership defines the four mutually exclusive ways a generated
// package can declare its owning team, and the per-package selector.
package ownership

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Scheme is the ownership declaration used by one package.
type Scheme int

const (
	// Directory writes a .codeowner marker at the package root.
	Directory Scheme = iota
	// FileAnnotation prefixes every source file with a "# @team" header.
	FileAnnotation
	// TeamConfig lists the package glob in the team's owned_globs.
	TeamConfig
	// PackageConfig writes owner: into the package's package.yml.
	PackageConfig
)

// All lists every scheme in declaration order.
var All = []Scheme{Directory, FileAnnotation, TeamConfig, PackageConfig}

func (s Scheme) String() string {
	switch s {
	case Directory:
		return "directory"
	case FileAnnotation:
		return "file_annotation"
	case TeamConfig:
		return "team_config"
	case PackageConfig:
		return "package_config"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

func (s Scheme) Valid() bool {
	return s >= Directory && s <= PackageConfig
}

// ParseScheme accepts the String form, case-insensitive, with '-' or '_'.
func ParseScheme(raw string) (Scheme, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_")
	for _, s := range All {
		if s.String() == key {
			return s, nil
		}
	}
	return 0, fmt.Errorf("ownership: unknown scheme %q", raw)
}

// Selector picks the scheme for the next package.
type Selector interface {
	Select() Scheme
}

// Random draws uniformly from All on every call.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) Select() Scheme {
	return All[r.rng.IntN(len(All))]
}

// Fixed always returns the same scheme.
type Fixed Scheme

func (f Fixed) Select() Scheme {
	return Scheme(f)
}
