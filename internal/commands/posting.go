package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haulbook/haulbook/internal/accounts"
	"github.com/haulbook/haulbook/internal/gitops"
	"github.com/haulbook/haulbook/internal/model"
	"github.com/haulbook/haulbook/internal/posting"
)

func newPostingCommand(p *project) *cobra.Command {
	postingCmd := &cobra.Command{
		Use:   "posting",
		Short: "Manual ledger postings",
	}
	postingCmd.AddCommand(newPostingCheckCommand(p))
	return postingCmd
}

func newPostingCheckCommand(p *project) *cobra.Command {
	var commit bool

	cmd := &cobra.Command{
		Use:   "check <import-file>",
		Short: "Validate postings from an import file and optionally record them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return p.run(func() error {
				return runPostingCheck(cmd.Context(), cmd.OutOrStdout(), p, args[0], commit)
			})
		},
	}

	cmd.Flags().BoolVar(&commit, "commit", false, "append valid postings to the journal")

	return cmd
}

func runPostingCheck(ctx context.Context, w io.Writer, p *project, path string, commit bool) error {
	chart, err := p.accounts()
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	file, err := posting.ParseImport(f)
	if err != nil {
		return err
	}
	p.log.Debug().Str("charset", file.Charset).Int("postings", len(file.Postings)).Msg("import parsed")

	journal := posting.NewJournal(p.postingsRoot(), chart)
	failed := 0
	var recorded []string
	for i, entry := range file.Postings {
		entry = resolveAccounts(chart, entry)
		label := fmt.Sprintf("#%d %s", i+1, entry.Description)

		res, err := journal.Check(entry)
		p.metrics.PostingChecked(checkOutcome(err))
		if err != nil {
			failed++
			fmt.Fprintf(w, "%s: %v\n", label, err)
			continue
		}
		if !commit {
			fmt.Fprintf(w, "%s: balanced %s\n", label, res.Amount.StringFixed(2))
			continue
		}

		saved, err := journal.Commit(entry)
		if err != nil {
			failed++
			fmt.Fprintf(w, "%s: %v\n", label, err)
			continue
		}
		fmt.Fprintf(w, "%s: recorded %s %s\n", label, saved.ID, res.Amount.StringFixed(2))
		recorded = append(recorded, saved.ID)
	}

	if len(recorded) > 0 && p.cfg.Git.Enabled {
		hash, err := p.commitPostings(ctx, recorded)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "committed %s\n", hash)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d postings rejected", failed, len(file.Postings))
	}
	return nil
}

func (p *project) commitPostings(ctx context.Context, ids []string) (string, error) {
	if !gitops.IsRepo(p.root) {
		return "", fmt.Errorf("git is enabled but %s is not a git repository", p.root)
	}
	rel, err := filepath.Rel(p.root, filepath.Join(p.postingsRoot(), "postings"))
	if err != nil {
		return "", fmt.Errorf("resolving postings path: %w", err)
	}
	msg := "posting: record " + strings.Join(ids, ", ")
	return gitops.Commit(ctx, p.root, msg, gitAuthor(p.cfg), rel)
}

// resolveAccounts replaces reduced codes with full account codes. Unknown
// references are left alone for the journal to report.
func resolveAccounts(chart *accounts.Service, p model.LedgerPosting) model.LedgerPosting {
	lines := make([]model.PostingLine, len(p.Lines))
	for i, line := range p.Lines {
		if acct, ok := chart.Resolve(line.Account); ok {
			line.Account = acct.Code
		}
		lines[i] = line
	}
	p.Lines = lines
	return p
}

func checkOutcome(err error) string {
	var (
		imbalance  *model.ImbalanceError
		structural *model.StructuralError
	)
	switch {
	case err == nil:
		return "balanced"
	case errors.As(err, &imbalance):
		return "imbalanced"
	case errors.As(err, &structural):
		return "malformed"
	default:
		return "error"
	}
}
