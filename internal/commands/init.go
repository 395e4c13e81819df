package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/haulbook/haulbook/internal/accounts"
	"github.com/haulbook/haulbook/internal/config"
	"github.com/haulbook/haulbook/internal/gitops"
)

func newInitCommand() *cobra.Command {
	var name string
	var taxID string
	var driver string
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new haulbook project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			hash, err := runInit(cmd.Context(), absDir, name, taxID, driver, useGit)
			if err != nil {
				return err
			}
			if hash != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized haulbook project at %s (%s)\n", absDir, hash)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized haulbook project at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "company name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&taxID, "tax-id", "", "company CNPJ")
	cmd.Flags().StringVar(&driver, "store", config.DriverMemory, "contract store driver (memory or postgres)")
	cmd.Flags().BoolVar(&useGit, "git", false, "keep the project in git and commit recorded postings")

	return cmd
}

// runInit lays out a project directory. With useGit it also creates the
// repository and the initial commit, returning its short hash.
func runInit(ctx context.Context, dir, name, taxID, driver string, useGit bool) (string, error) {
	for _, d := range []string{"accounts", "contracts", "logs", "postings", "import"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name)
	cfg.Company.TaxID = taxID
	cfg.Store.Driver = driver
	cfg.Git.Enabled = useGit
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}

	svc := accounts.NewService(accounts.DefaultChart())
	if err := svc.Save(dir); err != nil {
		return "", fmt.Errorf("writing chart of accounts: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(".env\nlogs/\n"), 0o644); err != nil {
		return "", fmt.Errorf("writing .gitignore: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return "", fmt.Errorf("writing .gitkeep: %w", err)
	}

	if !useGit {
		return "", nil
	}
	if err := gitops.Init(ctx, dir); err != nil {
		return "", err
	}
	hash, err := gitops.Commit(ctx, dir, "init: "+name, gitAuthor(cfg))
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}

func gitAuthor(cfg *config.Config) gitops.Author {
	return gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
}
