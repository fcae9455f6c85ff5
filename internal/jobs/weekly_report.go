package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Keoroanthony/go-crm/internal/logsink"
)

const reportLimit = 10000

type WeeklyReport struct {
	API  API
	Sink *logsink.Sink
	Now  Clock
}

func (w *WeeklyReport) Name() string { return WeeklyReportName }

// Run counts customers and orders and sums revenue. Amounts that do not
// parse as numbers are left out of the total.
func (w *WeeklyReport) Run(ctx context.Context) string {
	customers, err := w.API.AllCustomers(ctx, reportLimit)
	if err != nil {
		return w.fail(err)
	}
	orders, err := w.API.AllOrders(ctx, time.Time{}, reportLimit, reportLimit)
	if err != nil {
		return w.fail(err)
	}

	revenue := decimal.Zero
	for _, o := range orders {
		var amount decimal.Decimal
		if err := amount.UnmarshalJSON(o.TotalAmount); err != nil {
			continue
		}
		revenue = revenue.Add(amount)
	}

	msg := fmt.Sprintf("Report: %d customers, %d orders, %s revenue", len(customers), len(orders), revenue.String())
	appendLine(w.Sink, w.Now(), msg)
	return msg
}

func (w *WeeklyReport) fail(err error) string {
	msg := fmt.Sprintf("Error generating report: %v", err)
	appendLine(w.Sink, w.Now(), msg)
	return msg
}
