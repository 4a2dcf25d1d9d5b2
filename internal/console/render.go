package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/akaufmanis/shoestore/internal/domain/models"
)

const (
	chartTopItems    = 5
	chartBarWidth    = 50
	chartProductTrim = 15
)

// renderTable writes the records as an aligned table, currency columns
// formatted to two decimal places. withIndex prepends a selection index
// column for the restock flow.
func renderTable(w io.Writer, shoes []models.Shoe, withIndex bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if withIndex {
		fmt.Fprintln(tw, "Index\tCountry\tCode\tProduct\tCost\tQuantity\tValue")
	} else {
		fmt.Fprintln(tw, "Country\tCode\tProduct\tCost\tQuantity\tValue")
	}

	for i, shoe := range shoes {
		row := fmt.Sprintf("%s\t%s\t%s\t$%s\t%d\t$%s",
			shoe.Country,
			shoe.Code,
			shoe.Product,
			shoe.Cost.StringFixed(2),
			shoe.Quantity,
			shoe.Value().StringFixed(2))
		if withIndex {
			row = fmt.Sprintf("%d\t%s", i, row)
		}
		fmt.Fprintln(tw, row)
	}

	tw.Flush()
}

// renderValueChart draws an ASCII bar chart of the top items by value. The
// input must already be sorted by value in non-increasing order; bar length
// is proportional to value over the maximum displayed value.
func renderValueChart(w io.Writer, sorted []models.Shoe) {
	top := sorted
	if len(top) > chartTopItems {
		top = top[:chartTopItems]
	}
	if len(top) == 0 {
		return
	}

	max := top[0].Value()

	fmt.Fprintf(w, "\n=== Top %d Items by Value ===\n", len(top))
	for _, shoe := range top {
		width := 0
		if max.IsPositive() {
			width = int(shoe.Value().Div(max).Mul(decimal.NewFromInt(chartBarWidth)).IntPart())
		}

		product := shoe.Product
		if len(product) > chartProductTrim {
			product = product[:chartProductTrim]
		}

		fmt.Fprintf(w, "%-15s | %s $%s\n", product, strings.Repeat("█", width), shoe.Value().StringFixed(2))
	}
}
