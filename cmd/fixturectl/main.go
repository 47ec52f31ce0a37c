package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/fixturectl/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fixturectl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fixturectl",
		Short: "Generate code-ownership fixture applications",
		Long: `fixturectl writes a fake multi-package application tree used to
exercise code-ownership tooling. Every package declares its owner through
exactly one of: a .codeowner marker, per-file "# @team" headers, an
owned_globs entry in its team file, or an owner field in package.yml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load .env: %w", err)
			}
			logging.ConfigureRuntime()
			return nil
		},
	}
	root.AddCommand(newGenerateCmd(), newConfigCmd())
	return root
}
