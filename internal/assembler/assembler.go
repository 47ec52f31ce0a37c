package assembler

import (
	"context"
	"fmt"

	"github.com/danmuck/fixturectl/internal/install"
	"github.com/danmuck/fixturectl/internal/names"
	"github.com/danmuck/fixturectl/internal/ownership"
	"github.com/danmuck/fixturectl/internal/packs"
	"github.com/danmuck/fixturectl/internal/teams"
	"github.com/rs/zerolog/log"
)

// Options are the run-level switches the assembler needs.
type Options struct {
	AppDir       string
	NumPackages  int
	SkipScaffold bool
	SkipTools    bool
	Tools        []install.Tool
	// Seed is reported in the Summary so a run can be replayed. It should be
	// the seed behind the name source and selector handed to New.
	Seed uint64
}

// Summary describes a finished run.
type Summary struct {
	AppDir    string
	Seed      uint64
	Requested int
	Built     int
	Skipped   int
	Files     int
	Schemes   map[ownership.Scheme]int
	Packages  []packs.Package
}

// Assembler owns one run. It is not safe for concurrent use.
type Assembler struct {
	opts      Options
	installer *install.Installer
	teams     *teams.Registry
	builder   *packs.Builder
	names     names.Source
	selector  ownership.Selector
}

func New(
	opts Options,
	installer *install.Installer,
	registry *teams.Registry,
	builder *packs.Builder,
	source names.Source,
	selector ownership.Selector,
) *Assembler {
	return &Assembler{
		opts:      opts,
		installer: installer,
		teams:     registry,
		builder:   builder,
		names:     source,
		selector:  selector,
	}
}

// Run generates the whole fixture.
func (a *Assembler) Run(ctx context.Context) (Summary, error) {
	summary := Summary{
		AppDir:    a.opts.AppDir,
		Seed:      a.opts.Seed,
		Requested: a.opts.NumPackages,
		Schemes:   make(map[ownership.Scheme]int, len(ownership.All)),
	}

	if err := a.prepareSkeleton(ctx); err != nil {
		return summary, err
	}
	if err := a.teams.EnsureBootstrapTeam(); err != nil {
		return summary, err
	}

	for _, name := range names.Take(a.names, a.opts.NumPackages) {
		scheme := a.selector.Select()
		res, err := a.builder.Build(name, scheme)
		if err != nil {
			return summary, fmt.Errorf("package %q (%s): %w", name, scheme, err)
		}
		if res.Skipped {
			summary.Skipped++
			continue
		}
		summary.Built++
		summary.Files += res.Files
		summary.Schemes[scheme]++
		summary.Packages = append(summary.Packages, res.Package)
	}

	ev := log.Info().
		Str("app_dir", summary.AppDir).
		Uint64("seed", summary.Seed).
		Int("requested", summary.Requested).
		Int("built", summary.Built).
		Int("skipped", summary.Skipped).
		Int("files", summary.Files)
	for _, s := range ownership.All {
		ev = ev.Int(s.String(), summary.Schemes[s])
	}
	ev.Msg("fixture generated")
	return summary, nil
}

func (a *Assembler) prepareSkeleton(ctx context.Context) error {
	if a.opts.SkipScaffold {
		log.Info().Str("app_dir", a.opts.AppDir).Msg("scaffold skipped")
		if err := a.installer.WriteCodeOwnership(a.opts.AppDir); err != nil {
			return err
		}
	} else if err := a.installer.Scaffold(a.opts.AppDir); err != nil {
		return err
	}

	if a.opts.SkipTools || len(a.opts.Tools) == 0 {
		return nil
	}
	return a.installer.FetchTools(ctx, a.opts.AppDir, a.opts.Tools)
}
