package names

import (
	"math/rand/v2"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var safeToken = regexp.MustCompile(`^[\p{L}\p{N}_]+$`)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"River":      "river",
		"DeShawn":    "de_shawn",
		"Mary Ann":   "mary_ann",
		"Jo-Ann":     "jo_ann",
		"D'Angelo":   "dangelo",
		"McKenzie":   "mc_kenzie",
		"Anne-Marie": "anne_marie",
		"José":       "josé",
		"'":          Fallback,
		"  ":         Fallback,
		"--":         Fallback,
	}
	for raw, want := range cases {
		if got := Sanitize(raw); got != want {
			t.Fatalf("Sanitize(%q) = %q want %q", raw, got, want)
		}
	}
}

func TestFirstNamesAreSafe(t *testing.T) {
	src := NewFirstNames(rand.NewPCG(3, 5))
	for range 500 {
		if got := src.Name(); !safeToken.MatchString(got) {
			t.Fatalf("unsafe token %q", got)
		}
	}
}

func TestFirstNamesRarelyCollide(t *testing.T) {
	// A default run asks for 100 packages; a repeated name skips a package.
	for seed := uint64(1); seed <= 10; seed++ {
		got := Take(NewFirstNames(rand.NewPCG(seed, seed+1)), 100)
		distinct := make(map[string]struct{}, len(got))
		for _, n := range got {
			distinct[n] = struct{}{}
		}
		if len(distinct) < 90 {
			t.Fatalf("seed %d: only %d distinct names out of 100", seed, len(distinct))
		}
	}
}

func TestFirstNamesDeterministic(t *testing.T) {
	a := Take(NewFirstNames(rand.NewPCG(7, 11)), 20)
	b := Take(NewFirstNames(rand.NewPCG(7, 11)), 20)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed produced different names (-a +b):\n%s", diff)
	}
	if len(a) != 20 {
		t.Fatalf("expected 20 names, got %d", len(a))
	}
}

func TestNewFirstNamesFromPool(t *testing.T) {
	src := NewFirstNamesFrom(rand.NewPCG(1, 2), []string{"LaToya"})
	for range 5 {
		if got := src.Name(); got != "la_toya" {
			t.Fatalf("unexpected name %q", got)
		}
	}
}
