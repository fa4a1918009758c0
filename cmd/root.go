package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sjsage522/reviewworker/config"
	"sjsage522/reviewworker/logger"
)

const appName = "reviewworker"

// app carries the state shared by the subcommands of one invocation
type app struct {
	cfg *config.Config
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "reviewworker harvests public reviews into a deduplicated store.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Init()
			cfg := config.LoadConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}

	rootCmd.AddCommand(a.harvestCmd(), a.reportCmd())
	return rootCmd
}

// ExecuteContext runs the CLI and exits non-zero on failure
func ExecuteContext(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
