package cli

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mmynk/billed/internal/bills"
	"github.com/mmynk/billed/internal/calculator"
	"github.com/mmynk/billed/internal/models"
)

func newListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your bills, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getSession(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := s.withTimeout(cmd.Context())
			defer cancel()

			display, err := s.container().Load(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch bills: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(display)
			}

			table := tablewriter.NewWriter(out)
			table.Header([]string{"Date", "Type", "Name", "Amount", "Status", "ID"})
			records := make([]models.Bill, len(display))
			for i, b := range display {
				if err := table.Append([]string{
					b.FormattedDate,
					b.Type,
					b.Name,
					b.Amount.StringFixed(2),
					b.FormattedStatus,
					b.ID,
				}); err != nil {
					return err
				}
				records[i] = b.Bill
			}
			if err := table.Render(); err != nil {
				return err
			}

			summary := calculator.Summarize(records)
			_, err = fmt.Fprintf(out, "\nTotal: %s (%d bills)\n", summary.Amount.StringFixed(2), summary.Count)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print bills as JSON")
	return cmd
}

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Print the route of the new bill form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getSession(cmd)
			if err != nil {
				return err
			}
			navigate := bills.NavigatorFunc(func(route string) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), route)
				return err
			})
			return s.container(bills.WithNavigator(navigate)).HandleClickNewBill()
		},
	}
}

func newProofCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "proof <bill-id>",
		Short: "Print the receipt URL of a bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getSession(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := s.withTimeout(cmd.Context())
			defer cancel()

			bill, err := s.client.Get(ctx, args[0])
			if connect.CodeOf(err) == connect.CodeNotFound {
				return fmt.Errorf("bill %s not found", args[0])
			}
			if err != nil {
				return err
			}

			show := bills.ModalFunc(func(url string) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), url)
				return err
			})
			return s.container(bills.WithModal(show)).HandleClickIconEye(bills.FileRef(bill.FileURL))
		},
	}
}
