package main

import (
	"github.com/danmuck/fixturectl/internal/assembler"
	"github.com/danmuck/fixturectl/internal/config"
	"github.com/danmuck/fixturectl/internal/ownership"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type generateFlags struct {
	configPath   string
	baseDir      string
	appName      string
	packages     int
	filesPerDir  int
	seed         uint64
	scheme       string
	skipScaffold bool
	skipTools    bool
}

func newGenerateCmd() *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a fixture application",
		Example: `  fixturectl generate --config fixture.toml
  fixturectl generate --packages 1 --scheme directory --skip-scaffold --skip-tools`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			deps := assembler.Deps{}
			if f.scheme != "" {
				scheme, err := ownership.ParseScheme(f.scheme)
				if err != nil {
					return err
				}
				deps.Selector = ownership.Fixed(scheme)
			}

			log.Info().
				Str("app_dir", cfg.AppDir()).
				Int("packages", cfg.NumPackages).
				Msg("generating fixture")
			summary, err := assembler.FromConfig(cfg, deps).Run(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("generated %d packages (%d skipped, %d files) in %s, seed %d\n",
				summary.Built, summary.Skipped, summary.Files, summary.AppDir, summary.Seed)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.configPath, "config", "c", "", "TOML config file (defaults apply when empty)")
	flags.StringVar(&f.baseDir, "base-dir", "", "directory the app is created in")
	flags.StringVar(&f.appName, "app-name", "", "application directory name")
	flags.IntVarP(&f.packages, "packages", "n", 0, "number of packages to generate")
	flags.IntVar(&f.filesPerDir, "files-per-dir", 0, "source files per services sub-directory")
	flags.Uint64Var(&f.seed, "seed", 0, "random seed; 0 draws a fresh one")
	flags.StringVar(&f.scheme, "scheme", "", "force one ownership scheme: directory|file_annotation|team_config|package_config")
	flags.BoolVar(&f.skipScaffold, "skip-scaffold", false, "do not run the scaffold command")
	flags.BoolVar(&f.skipTools, "skip-tools", false, "do not fetch helper tools")
	return cmd
}

// resolveConfig loads the file (or defaults) and applies only the flags the
// user actually set.
func resolveConfig(cmd *cobra.Command, f generateFlags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
		log.Info().Str("path", f.configPath).Msg("loaded config")
	}

	flags := cmd.Flags()
	if flags.Changed("base-dir") {
		cfg.BaseDir = f.baseDir
	}
	if flags.Changed("app-name") {
		cfg.AppName = f.appName
	}
	if flags.Changed("packages") {
		cfg.NumPackages = f.packages
	}
	if flags.Changed("files-per-dir") {
		cfg.FilesPerDir = f.filesPerDir
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("skip-scaffold") {
		cfg.SkipScaffold = f.skipScaffold
	}
	if flags.Changed("skip-tools") {
		cfg.SkipTools = f.skipTools
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
