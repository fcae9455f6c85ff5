package jobs

import (
	"context"
	"fmt"

	"github.com/Keoroanthony/go-crm/internal/logsink"
)

// LowStock asks the API to restock low-stock products and logs each one.
type LowStock struct {
	API  API
	Sink *logsink.Sink
	Now  Clock
}

func (l *LowStock) Name() string { return LowStockName }

func (l *LowStock) Run(ctx context.Context) string {
	result, err := l.API.UpdateLowStockProducts(ctx)
	if err != nil {
		msg := fmt.Sprintf("Error updating low stock products: %v", err)
		appendLine(l.Sink, l.Now(), msg)
		return msg
	}

	for _, p := range result.UpdatedProducts {
		appendLine(l.Sink, l.Now(), fmt.Sprintf("%s stock updated to %d", p.Name, p.Stock))
	}
	return result.Message
}
