package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/Keoroanthony/go-crm/configs"
	"github.com/Keoroanthony/go-crm/internal/client"
)

type fakeAPI struct {
	greeting  string
	helloErr  error
	restock   client.RestockResult
	restockEr error
	customers []client.Customer
	orders    []client.Order
	ordersErr error
	since     time.Time
}

func (f *fakeAPI) Hello(ctx context.Context) (string, error) { return f.greeting, f.helloErr }

func (f *fakeAPI) UpdateLowStockProducts(ctx context.Context) (client.RestockResult, error) {
	return f.restock, f.restockEr
}

func (f *fakeAPI) AllCustomers(ctx context.Context, first int) ([]client.Customer, error) {
	return f.customers, nil
}

func (f *fakeAPI) AllOrders(ctx context.Context, since time.Time, pageSize, limit int) ([]client.Order, error) {
	f.since = since
	return f.orders, f.ordersErr
}

type fakeReminder struct {
	sent []string
}

func (f *fakeReminder) OrderReminder(ctx context.Context, email, orderID string) error {
	f.sent = append(f.sent, orderID+":"+email)
	return nil
}

var fixedNow = time.Date(2024, 5, 13, 6, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newSinks(t *testing.T) (Sinks, config.LogConfig) {
	dir := t.TempDir()
	cfg := config.LogConfig{
		Heartbeat:      filepath.Join(dir, "heartbeat.txt"),
		LowStock:       filepath.Join(dir, "low_stock.txt"),
		OrderReminders: filepath.Join(dir, "reminders.txt"),
		Report:         filepath.Join(dir, "report.txt"),
	}
	return NewSinks(cfg), cfg
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestHeartbeat(t *testing.T) {
	t.Run("Logs alive and responsive", func(t *testing.T) {
		sinks, cfg := newSinks(t)
		job := &Heartbeat{API: &fakeAPI{greeting: "Hello, GraphQL!"}, Sink: sinks.Heartbeat, Now: clock}

		assert.Equal(t, "GraphQL endpoint responsive", job.Run(context.Background()))
		assert.Equal(t, []string{
			"13/05/2024-06:00:00 CRM is alive",
			"13/05/2024-06:00:00 GraphQL endpoint responsive",
		}, readLines(t, cfg.Heartbeat))
	})

	t.Run("Unexpected greeting logs only alive", func(t *testing.T) {
		sinks, cfg := newSinks(t)
		job := &Heartbeat{API: &fakeAPI{greeting: "hi"}, Sink: sinks.Heartbeat, Now: clock}

		job.Run(context.Background())
		assert.Equal(t, []string{"13/05/2024-06:00:00 CRM is alive"}, readLines(t, cfg.Heartbeat))
	})

	t.Run("Errors are logged not raised", func(t *testing.T) {
		sinks, cfg := newSinks(t)
		api := &fakeAPI{helloErr: fmt.Errorf("%w: connection refused", client.ErrTransport)}
		job := &Heartbeat{API: api, Sink: sinks.Heartbeat, Now: clock}

		result := job.Run(context.Background())
		assert.True(t, strings.HasPrefix(result, "Heartbeat check error: "))
		lines := readLines(t, cfg.Heartbeat)
		require.Len(t, lines, 2)
		assert.Contains(t, lines[1], "Heartbeat check error: transport error: connection refused")
	})
}

func TestLowStock(t *testing.T) {
	t.Run("Logs each updated product", func(t *testing.T) {
		sinks, cfg := newSinks(t)
		api := &fakeAPI{restock: client.RestockResult{
			UpdatedProducts: []client.Product{{Name: "Cable", Stock: 13}, {Name: "Adapter", Stock: 10}},
			Message:         "Updated 2 products",
			Success:         true,
		}}
		job := &LowStock{API: api, Sink: sinks.LowStock, Now: clock}

		assert.Equal(t, "Updated 2 products", job.Run(context.Background()))
		assert.Equal(t, []string{
			"2024-05-13 06:00:00: Cable stock updated to 13",
			"2024-05-13 06:00:00: Adapter stock updated to 10",
		}, readLines(t, cfg.LowStock))
	})

	t.Run("Logs one error line", func(t *testing.T) {
		sinks, cfg := newSinks(t)
		job := &LowStock{API: &fakeAPI{restockEr: fmt.Errorf("boom")}, Sink: sinks.LowStock, Now: clock}

		job.Run(context.Background())
		assert.Equal(t, []string{"2024-05-13 06:00:00: Error updating low stock products: boom"}, readLines(t, cfg.LowStock))
	})
}

func TestOrderReminders(t *testing.T) {
	sinks, cfg := newSinks(t)
	customer := &client.Customer{Email: "ada@example.com"}
	api := &fakeAPI{orders: []client.Order{
		{ID: "1", OrderDate: fixedNow.Add(-6 * 24 * time.Hour).Format(time.RFC3339), Customer: customer},
		{ID: "2", OrderDate: fixedNow.Add(-8 * 24 * time.Hour).Format(time.RFC3339), Customer: customer},
		{ID: "3", OrderDate: "last tuesday", Customer: customer},
		{ID: "4", OrderDate: fixedNow.Add(-time.Hour).Format(time.RFC3339Nano), Customer: &client.Customer{Email: "bob@example.com"}},
	}}
	reminder := &fakeReminder{}
	job := &OrderReminders{API: api, Sink: sinks.OrderReminders, Reminder: reminder, Now: clock}

	assert.Equal(t, "processed 2 orders", job.Run(context.Background()))
	assert.Equal(t, fixedNow.Add(-7*24*time.Hour), api.since)
	assert.Equal(t, []string{
		"2024-05-13T06:00:00.000000: Order 1 - Customer: ada@example.com",
		"2024-05-13T06:00:00.000000: Order 4 - Customer: bob@example.com",
	}, readLines(t, cfg.OrderReminders))
	assert.Equal(t, []string{"1:ada@example.com", "4:bob@example.com"}, reminder.sent)

	t.Run("Query failure logs one error line", func(t *testing.T) {
		sinks, cfg := newSinks(t)
		job := &OrderReminders{API: &fakeAPI{ordersErr: fmt.Errorf("timeout")}, Sink: sinks.OrderReminders, Now: clock}

		job.Run(context.Background())
		assert.Equal(t, []string{"2024-05-13T06:00:00.000000: Error processing order reminders: timeout"}, readLines(t, cfg.OrderReminders))
	})
}

func TestOrderRemindersLogsWhenCapped(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	recent := fixedNow.Add(-time.Hour).Format(time.RFC3339)
	customer := &client.Customer{Email: "ada@example.com"}
	api := &fakeAPI{orders: []client.Order{
		{ID: "1", OrderDate: recent, Customer: customer},
		{ID: "2", OrderDate: recent, Customer: customer},
	}}

	sinks, _ := newSinks(t)
	job := &OrderReminders{API: api, Sink: sinks.OrderReminders, Now: clock, Limit: 2}
	assert.Equal(t, "processed 2 orders", job.Run(context.Background()))
	assert.Contains(t, buf.String(), "scan capped at 2 orders")

	buf.Reset()
	job.Limit = 3
	job.Run(context.Background())
	assert.NotContains(t, buf.String(), "capped")
}

func TestWeeklyReport(t *testing.T) {
	t.Run("Sums numeric amounts", func(t *testing.T) {
		sinks, cfg := newSinks(t)
		api := &fakeAPI{
			customers: make([]client.Customer, 2),
			orders: []client.Order{
				{ID: "1", TotalAmount: json.RawMessage(`"15.50"`)},
				{ID: "2", TotalAmount: json.RawMessage(`"10"`)},
				{ID: "3", TotalAmount: json.RawMessage(`"n/a"`)},
			},
		}
		job := &WeeklyReport{API: api, Sink: sinks.Report, Now: clock}

		result := job.Run(context.Background())
		assert.Equal(t, "Report: 2 customers, 3 orders, 25.5 revenue", result)
		assert.Equal(t, []string{"2024-05-13 06:00:00 - " + result}, readLines(t, cfg.Report))
		assert.True(t, api.since.IsZero())
	})

	t.Run("Returns an error string on failure", func(t *testing.T) {
		sinks, _ := newSinks(t)
		job := &WeeklyReport{API: &fakeAPI{ordersErr: fmt.Errorf("down")}, Sink: sinks.Report, Now: clock}

		assert.Equal(t, "Error generating report: down", job.Run(context.Background()))
	})
}

func TestRegistry(t *testing.T) {
	sinks, _ := newSinks(t)
	jobs := Registry(&fakeAPI{}, sinks, nil, nil)
	assert.Equal(t, []string{"heartbeat", "low_stock", "order_reminders", "weekly_report"}, Names(jobs))
}
