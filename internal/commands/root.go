package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haulbook/haulbook/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	p := &project{}

	rootCmd := &cobra.Command{
		Use:     "haulbook",
		Short:   "Freight contracts and manual ledger postings",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&p.dir, "repo", ".", "project directory")
	rootCmd.PersistentFlags().StringVar(&p.metricsOut, "metrics-out", "", "write prometheus metrics to this textfile on exit")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newContractCommand(p))
	rootCmd.AddCommand(newPostingCommand(p))
	rootCmd.AddCommand(newAccountsCommand(p))
	rootCmd.AddCommand(newActivityCommand(p))

	return rootCmd
}
