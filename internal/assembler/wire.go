package assembler

import (
	"math/rand/v2"
	"net/http"

	"github.com/danmuck/fixturectl/internal/config"
	"github.com/danmuck/fixturectl/internal/install"
	"github.com/danmuck/fixturectl/internal/names"
	"github.com/danmuck/fixturectl/internal/ownership"
	"github.com/danmuck/fixturectl/internal/packs"
	"github.com/danmuck/fixturectl/internal/teams"
	"github.com/danmuck/fixturectl/internal/tools"
)

// Deps are the host collaborators FromConfig would otherwise default.
type Deps struct {
	Runner     tools.CommandRunner
	HTTPClient *http.Client
	// Selector overrides the random per-package draw.
	Selector ownership.Selector
	// Names overrides the first-name source for packages and files.
	Names names.Source
}

// FromConfig wires an Assembler for cfg. A zero cfg.Seed draws a fresh seed,
// which is reported in the Summary so the run can be replayed.
func FromConfig(cfg config.Config, deps Deps) *Assembler {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	source := deps.Names
	if source == nil {
		source = names.NewFirstNames(rng)
	}
	selector := deps.Selector
	if selector == nil {
		selector = ownership.NewRandom(rng)
	}

	appDir := cfg.AppDir()
	inst := install.NewInstaller(install.Config{
		ScaffoldCommand: cfg.ScaffoldCommand,
		ScaffoldArgs:    cfg.ScaffoldArgs,
		CodeOwnership:   cfg.Templates.CodeOwnership,
		ToolsDir:        cfg.ToolsDir,
		Runner:          deps.Runner,
		HTTPClient:      deps.HTTPClient,
	})
	registry := teams.NewRegistry(appDir, cfg.Templates.BootstrapTeam)
	builder := packs.NewBuilder(packs.Options{
		AppDir:          appDir,
		CodeDirectories: cfg.CodeDirectories,
		FilesPerDir:     cfg.FilesPerDir,
		SourceBody:      cfg.Templates.SourceBody,
	}, registry, source)

	toolList := make([]install.Tool, 0, len(cfg.Tools))
	for _, t := range cfg.Tools {
		toolList = append(toolList, install.Tool{Name: t.Name, URL: t.URL})
	}

	return New(Options{
		AppDir:       appDir,
		NumPackages:  cfg.NumPackages,
		SkipScaffold: cfg.SkipScaffold,
		SkipTools:    cfg.SkipTools,
		Tools:        toolList,
		Seed:         seed,
	}, inst, registry, builder, source, selector)
}
