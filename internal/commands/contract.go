package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/haulbook/haulbook/internal/capture"
	"github.com/haulbook/haulbook/internal/workflow"
)

func newContractCommand(p *project) *cobra.Command {
	contractCmd := &cobra.Command{
		Use:   "contract",
		Short: "Freight contract operations",
	}
	contractCmd.AddCommand(newContractFinalizeCommand(p))
	contractCmd.AddCommand(newContractShowCommand(p))
	return contractCmd
}

func newContractFinalizeCommand(p *project) *cobra.Command {
	return &cobra.Command{
		Use:   "finalize <capture.yaml>",
		Short: "Run a captured contract through every stage and finalize it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return p.run(func() error {
				f, err := capture.Load(args[0])
				if err != nil {
					return err
				}
				store, err := p.store(cmd.Context())
				if err != nil {
					return err
				}

				o := workflow.New(store, p.workflowOptions()...)
				out, err := capture.Replay(cmd.Context(), o, f)
				if err != nil {
					return fmt.Errorf("contract %s stopped at %s: %w", f.Contract.Number, o.Stage(), err)
				}
				printState(cmd.OutOrStdout(), o.State())
				if out.Obligation == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "no payable obligation issued")
				}
				return nil
			})
		},
	}
}

func newContractShowCommand(p *project) *cobra.Command {
	return &cobra.Command{
		Use:   "show <contract-id>",
		Short: "Show the committed state of a contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return p.run(func() error {
				store, err := p.store(cmd.Context())
				if err != nil {
					return err
				}
				o, err := workflow.Open(cmd.Context(), store, args[0], p.workflowOptions()...)
				if err != nil {
					return err
				}
				printState(cmd.OutOrStdout(), o.State())
				return nil
			})
		},
	}
}

func printState(w io.Writer, s workflow.State) {
	fmt.Fprintf(w, "Contract %s (%s) %s\n", s.Core.Number, s.Core.ID, s.Core.Type)
	fmt.Fprintf(w, "  stage:         %s\n", s.Stage)
	if s.Core.Carrier.Name != "" {
		fmt.Fprintf(w, "  carrier:       %s\n", s.Core.Carrier.Name)
	}
	fmt.Fprintf(w, "  documents:     %d\n", len(s.Documents))
	fmt.Fprintf(w, "  total freight: %s\n", s.Totals.TotalFreightValue.StringFixed(2))
	fmt.Fprintf(w, "  total cargo:   %s\n", s.Totals.TotalCargoValue.StringFixed(2))
	fmt.Fprintf(w, "  balance due:   %s\n", s.BalanceDue.StringFixed(2))
	if s.Obligation != nil {
		fmt.Fprintf(w, "  obligation:    %s %s due %s\n",
			s.Obligation.ID, s.Obligation.Amount.StringFixed(2), s.Obligation.DueDate.Format(capture.DateLayout))
	}
}
