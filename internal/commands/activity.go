package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/haulbook/haulbook/internal/notify"
)

func newActivityCommand(p *project) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the contract activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return p.run(func() error {
				entries, err := notify.Read(p.root)
				if err != nil {
					return err
				}
				if limit > 0 && len(entries) > limit {
					entries = entries[len(entries)-limit:]
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, e := range entries {
					amount := ""
					if e.Amount.Valid {
						amount = e.Amount.Decimal.StringFixed(2)
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
						e.Timestamp.Format(time.DateTime), e.Event, e.ContractNumber, e.Stage, amount, e.Detail)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show only the last n entries (0 for all)")

	return cmd
}
