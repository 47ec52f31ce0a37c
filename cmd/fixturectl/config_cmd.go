package main

import (
	"github.com/danmuck/fixturectl/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or check fixture config files",
	}

	var output string
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the starter config template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteTemplate(output, "fixture", force); err != nil {
				return err
			}
			cmd.Printf("Wrote fixture config template to %s\n", output)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&output, "output", "o", "fixture.toml", "output path for the template")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	var input string
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate a config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(input)
			if err != nil {
				return err
			}
			cmd.Printf("Validated config at %s (app_dir=%s, packages=%d)\n", input, cfg.AppDir(), cfg.NumPackages)
			return nil
		},
	}
	validateCmd.Flags().StringVarP(&input, "config", "c", "fixture.toml", "config path to validate")

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}
