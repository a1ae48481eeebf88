package commission

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const statementSheet = "Commissions"

var statementHeader = []any{"ID", "Restaurant", "Month", "Plan Amount", "Rate (%)", "Commission", "Status", "Paid At", "Created At"}

// WriteStatement renders a sales person's commissions and totals as an xlsx
// workbook.
func WriteStatement(w io.Writer, res *SalesPersonCommissions) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", statementSheet); err != nil {
		return errors.Wrap(err, "rename sheet")
	}
	if err := f.SetSheetRow(statementSheet, "A1", &statementHeader); err != nil {
		return errors.Wrap(err, "write header")
	}

	row := 2
	for _, l := range res.Commissions {
		restaurant := ""
		if l.Restaurant != nil {
			restaurant = l.Restaurant.RestaurantName
		}
		paidAt := ""
		if l.PaidAt != nil {
			paidAt = l.PaidAt.Format("2006-01-02 15:04")
		}
		values := []any{
			l.ID,
			restaurant,
			l.Month,
			l.SubscriptionAmount,
			l.CommissionRate,
			l.CommissionAmount,
			string(l.Status),
			paidAt,
			l.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := f.SetSheetRow(statementSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return errors.Wrapf(err, "write row %d", row)
		}
		row++
	}

	// Totals two rows below the last commission.
	row++
	totals := [][]any{
		{"Total earned", res.Summary.TotalEarned},
		{"Total pending", res.Summary.TotalPending},
		{"Commissions", res.Summary.TotalCommissions},
	}
	for _, t := range totals {
		if err := f.SetSheetRow(statementSheet, fmt.Sprintf("A%d", row), &t); err != nil {
			return errors.Wrapf(err, "write totals row %d", row)
		}
		row++
	}

	_, err := f.WriteTo(w)
	return errors.Wrap(err, "write workbook")
}
