// Package categorize handles transaction categorization commands
package categorize

import (
	"context"
	"fmt"
	"io"

	"gagyebu/ledger-csv/cmd/root"
	"gagyebu/ledger-csv/internal/categorizer"
	"gagyebu/ledger-csv/internal/container"

	"github.com/spf13/cobra"
)

var tx categorizer.Transaction

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize one transaction description",
	Long: `Categorize a single transaction description with the keyword table (first
match in declaration order, or longest match when configured), then the AI
model when enabled, and print the resulting major and minor category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.GetContainer(), tx, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&tx.Description, "description", "d", "", "Transaction description to categorize")
	Cmd.Flags().StringVarP(&tx.PaymentMethod, "payment", "p", "", "Payment method (optional)")
	Cmd.Flags().StringVarP(&tx.Amount, "amount", "a", "", "Transaction amount (optional)")
	Cmd.Flags().StringVarP(&tx.Date, "date", "t", "", "Transaction date (optional)")
	Cmd.Flags().StringVarP(&tx.Note, "note", "n", "", "Additional note (optional)")
	_ = Cmd.MarkFlagRequired("description")
}

// Run categorizes tx and prints "major > minor" with the strategy that
// matched, or "(unclassified)".
func Run(ctx context.Context, c *container.Container, tx categorizer.Transaction, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if tx.Description == "" {
		return fmt.Errorf("description is required for categorization")
	}

	res := c.GetCategorizer().Categorize(ctx, tx)
	switch {
	case res.Pair.IsZero():
		_, err := fmt.Fprintln(w, "(unclassified)")
		return err
	case res.Matched():
		_, err := fmt.Fprintf(w, "%s > %s (%s)\n", res.Pair.Major, res.Pair.Minor, res.Strategy)
		return err
	default:
		_, err := fmt.Fprintf(w, "%s > %s (default bucket)\n", res.Pair.Major, res.Pair.Minor)
		return err
	}
}
