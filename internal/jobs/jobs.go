// Package jobs holds the periodic tasks run against the CRM API. Each job
// catches its own failures, writes one diagnostic line to its log and
// returns normally.
package jobs

import (
	"context"
	"log"
	"sort"
	"time"

	config "github.com/Keoroanthony/go-crm/configs"
	"github.com/Keoroanthony/go-crm/internal/client"
	"github.com/Keoroanthony/go-crm/internal/logsink"
)

const (
	HeartbeatName      = "heartbeat"
	LowStockName       = "low_stock"
	OrderRemindersName = "order_reminders"
	WeeklyReportName   = "weekly_report"
)

// API is the slice of the CRM client the jobs call.
type API interface {
	Hello(ctx context.Context) (string, error)
	UpdateLowStockProducts(ctx context.Context) (client.RestockResult, error)
	AllCustomers(ctx context.Context, first int) ([]client.Customer, error)
	AllOrders(ctx context.Context, since time.Time, pageSize, limit int) ([]client.Order, error)
}

// Reminder sends a customer a reminder about one order.
type Reminder interface {
	OrderReminder(ctx context.Context, email, orderID string) error
}

type Clock func() time.Time

// Job is one unit of scheduled work. Run returns a one-line summary.
type Job interface {
	Name() string
	Run(ctx context.Context) string
}

type Sinks struct {
	Heartbeat      *logsink.Sink
	LowStock       *logsink.Sink
	OrderReminders *logsink.Sink
	Report         *logsink.Sink
}

func NewSinks(cfg config.LogConfig) Sinks {
	return Sinks{
		Heartbeat:      logsink.New(cfg.Heartbeat, "02/01/2006-15:04:05", " "),
		LowStock:       logsink.New(cfg.LowStock, "2006-01-02 15:04:05", ": "),
		OrderReminders: logsink.New(cfg.OrderReminders, "2006-01-02T15:04:05.000000", ": "),
		Report:         logsink.New(cfg.Report, "2006-01-02 15:04:05", " - "),
	}
}

// Registry builds every job around api. reminder and now may be nil.
func Registry(api API, sinks Sinks, reminder Reminder, now Clock) map[string]Job {
	if now == nil {
		now = time.Now
	}
	all := []Job{
		&Heartbeat{API: api, Sink: sinks.Heartbeat, Now: now},
		&LowStock{API: api, Sink: sinks.LowStock, Now: now},
		&OrderReminders{API: api, Sink: sinks.OrderReminders, Reminder: reminder, Now: now},
		&WeeklyReport{API: api, Sink: sinks.Report, Now: now},
	}

	jobs := make(map[string]Job, len(all))
	for _, j := range all {
		jobs[j.Name()] = j
	}
	return jobs
}

func Names(jobs map[string]Job) []string {
	names := make([]string, 0, len(jobs))
	for name := range jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func appendLine(sink *logsink.Sink, now time.Time, msg string) {
	if err := sink.Append(now, msg); err != nil {
		log.Printf("jobs: %v", err)
	}
}
