package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Keoroanthony/go-crm/internal/logsink"
)

const (
	reminderWindow   = 7 * 24 * time.Hour
	reminderPageSize = 100
	reminderLimit    = 10000
)

// OrderReminders logs every order placed in the last week and, when a
// Reminder is set, emails its customer.
type OrderReminders struct {
	API      API
	Sink     *logsink.Sink
	Reminder Reminder
	Now      Clock
	// Limit caps how many orders one run reads. Zero means reminderLimit.
	Limit int
}

func (o *OrderReminders) Name() string { return OrderRemindersName }

func (o *OrderReminders) Run(ctx context.Context) string {
	cutoff := o.Now().Add(-reminderWindow)

	limit := o.Limit
	if limit <= 0 {
		limit = reminderLimit
	}

	orders, err := o.API.AllOrders(ctx, cutoff, reminderPageSize, limit)
	if err != nil {
		msg := fmt.Sprintf("Error processing order reminders: %v", err)
		appendLine(o.Sink, o.Now(), msg)
		return msg
	}
	if len(orders) >= limit {
		log.Printf("order reminders: scan capped at %d orders, later orders were not read", limit)
	}

	sent := 0
	for _, order := range orders {
		orderDate, err := time.Parse(time.RFC3339Nano, order.OrderDate)
		if err != nil || orderDate.Before(cutoff) {
			continue
		}

		email := ""
		if order.Customer != nil {
			email = order.Customer.Email
		}
		appendLine(o.Sink, o.Now(), fmt.Sprintf("Order %s - Customer: %s", order.ID, email))
		sent++

		if o.Reminder != nil && email != "" {
			if err := o.Reminder.OrderReminder(ctx, email, order.ID); err != nil {
				log.Printf("order reminders: failed to email %s about order %s: %v", email, order.ID, err)
			}
		}
	}

	log.Println("Order reminders processed!")
	return fmt.Sprintf("processed %d orders", sent)
}
