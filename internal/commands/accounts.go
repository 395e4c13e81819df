package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haulbook/haulbook/internal/model"
)

func newAccountsCommand(p *project) *cobra.Command {
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Chart of accounts",
	}

	accountsCmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Find accounts by code, reduced code or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return p.run(func() error {
				chart, err := p.accounts()
				if err != nil {
					return err
				}
				found := chart.Search(args[0])
				if len(found) == 0 {
					return fmt.Errorf("no account matches %q", args[0])
				}
				return printAccounts(cmd.OutOrStdout(), found)
			})
		},
	})

	accountsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the chart of accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return p.run(func() error {
				chart, err := p.accounts()
				if err != nil {
					return err
				}
				return printAccounts(cmd.OutOrStdout(), chart.All())
			})
		},
	})

	return accountsCmd
}

func printAccounts(w io.Writer, accts []model.Account) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tREDUCED\tNAME\tTYPE")
	for _, a := range accts {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", a.Code, a.ReducedCode, a.Name, a.Type)
	}
	return tw.Flush()
}
