// Package names produces random identifier-safe tokens used for package and
// source file names in generated fixtures.
package names

import (
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/iancoleman/strcase"
)

// Fallback replaces a token that filters down to nothing.
const Fallback = "name"

// Source yields one random token per call.
type Source interface {
	Name() string
}

// FirstNames draws faker first names.
type FirstNames struct {
	faker *gofakeit.Faker
	pool  []string
}

// NewFirstNames returns a Source driven by src. The run passes its seeded
// PCG so names replay with the seed.
func NewFirstNames(src rand.Source) *FirstNames {
	return &FirstNames{faker: gofakeit.NewFaker(src, false)}
}

// NewFirstNamesFrom draws from pool instead of the faker name list. An empty
// pool behaves like NewFirstNames.
func NewFirstNamesFrom(src rand.Source, pool []string) *FirstNames {
	s := NewFirstNames(src)
	s.pool = pool
	return s
}

func (s *FirstNames) Name() string {
	if len(s.pool) > 0 {
		return Sanitize(s.faker.RandomString(s.pool))
	}
	return Sanitize(s.faker.FirstName())
}

// Take draws n tokens from src. Duplicates are possible.
func Take(src Source, n int) []string {
	out := make([]string, 0, n)
	for range n {
		out = append(out, src.Name())
	}
	return out
}

// Sanitize snake-cases raw and keeps only letters, digits and '_'.
func Sanitize(raw string) string {
	snake := strcase.ToSnake(raw)
	var b strings.Builder
	b.Grow(len(snake))
	for _, r := range snake {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return Fallback
	}
	return out
}
