// Package edit applies manual corrections to a normalized ledger file
package edit

import (
	"context"
	"fmt"
	"io"

	"gagyebu/ledger-csv/cmd/common"
	"gagyebu/ledger-csv/cmd/root"
	"gagyebu/ledger-csv/internal/container"
	"gagyebu/ledger-csv/internal/currencyutils"
	"gagyebu/ledger-csv/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Options describes one correction. Exactly one of the category, amount or
// delete edits is applied.
type Options struct {
	Input    string
	Output   string
	Row      int
	Major    string
	Minor    string
	Gross    string
	Discount string
	Delete   bool
}

func (o Options) categoryEdit() bool { return o.Major != "" || o.Minor != "" }
func (o Options) amountEdit() bool   { return o.Gross != "" || o.Discount != "" }

var opts Options

// Cmd represents the edit command
var Cmd = &cobra.Command{
	Use:   "edit",
	Short: "Correct the category or amounts of one ledger row",
	Long: `Edit reads a ledger, applies one correction to the row given by --row (0-based)
and writes the ledger back out.

A minor category that does not belong to the chosen major is replaced by the
major's first minor; the correction is printed as a notice, never rejected.
--minor without --major keeps the row's current major. Net amounts always
follow from gross minus discount, and a negative --gross is stored as a refund.

Example:
  ledger-csv edit -i ledger.csv -o ledger.csv --row 3 --major 식비 --minor 외식`,
	RunE: func(cmd *cobra.Command, args []string) error {
		o := opts
		inputs := root.Inputs(args)
		if len(inputs) != 1 {
			return fmt.Errorf("edit takes exactly one input ledger, got %d", len(inputs))
		}
		o.Input = inputs[0]
		o.Output = root.SharedFlags.Output
		return Run(cmd.Context(), root.GetContainer(), o, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	Cmd.Flags().IntVar(&opts.Row, "row", -1, "Index of the row to edit (0-based)")
	Cmd.Flags().StringVar(&opts.Major, "major", "", "New major category")
	Cmd.Flags().StringVar(&opts.Minor, "minor", "", "New minor category")
	Cmd.Flags().StringVar(&opts.Gross, "gross", "", "New gross amount")
	Cmd.Flags().StringVar(&opts.Discount, "discount", "", "New discount amount")
	Cmd.Flags().BoolVar(&opts.Delete, "delete", false, "Delete the row")
	_ = Cmd.MarkFlagRequired("row")
	Cmd.MarkFlagsMutuallyExclusive("delete", "major")
	Cmd.MarkFlagsMutuallyExclusive("delete", "gross")
}

// Run loads the ledger, applies the edit and writes the result.
func Run(ctx context.Context, c *container.Container, o Options, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	edits := 0
	for _, set := range []bool{o.categoryEdit(), o.amountEdit(), o.Delete} {
		if set {
			edits++
		}
	}
	if edits != 1 {
		return fmt.Errorf("exactly one of --major/--minor, --gross/--discount or --delete is required")
	}

	ledger, _, err := c.LoadFile(ctx, o.Input)
	if err != nil {
		return err
	}

	ledger, notice, err := apply(c, ledger, o)
	if err != nil {
		return err
	}
	if notice != nil {
		common.ReportNotices(stderr, []models.Notice{*notice})
	}
	return common.WriteLedger(c, ledger, o.Output, stdout)
}

func apply(c *container.Container, ledger models.Ledger, o Options) (models.Ledger, *models.Notice, error) {
	ed := c.GetEditor()

	switch {
	case o.Delete:
		out, err := ed.Delete(ledger, o.Row)
		return out, nil, err

	case o.categoryEdit():
		major := o.Major
		if major == "" && o.Row >= 0 && o.Row < len(ledger) {
			// --minor alone keeps the record's major
			major = ledger[o.Row].Major
		}
		return ed.SetCategory(ledger, o.Row, major, o.Minor)

	default:
		if o.Row < 0 || o.Row >= len(ledger) {
			// the editor reports the typed index error
			out, err := ed.SetAmounts(ledger, o.Row, decimal.Zero, decimal.Zero)
			return out, nil, err
		}
		parser := currencyutils.NewAmountParser(c.GetConfig().Money.CurrencySuffixes)
		rec := ledger[o.Row]
		gross, discount := rec.Gross, rec.Discount
		if o.Gross != "" {
			v, err := parser.ParseAmount(o.Gross)
			if err != nil {
				return nil, nil, err
			}
			gross = v
		}
		if o.Discount != "" {
			v, err := parser.ParseAmount(o.Discount)
			if err != nil {
				return nil, nil, err
			}
			discount = v
		}
		out, err := ed.SetAmounts(ledger, o.Row, gross, discount)
		return out, nil, err
	}
}
