package jobs

import (
	"context"
	"fmt"
	"log"

	"github.com/Keoroanthony/go-crm/internal/client"
	"github.com/Keoroanthony/go-crm/internal/handlers"
	"github.com/Keoroanthony/go-crm/internal/logsink"
)

// Heartbeat records that the scheduler is alive and probes the API.
type Heartbeat struct {
	API  API
	Sink *logsink.Sink
	Now  Clock
}

func (h *Heartbeat) Name() string { return HeartbeatName }

func (h *Heartbeat) Run(ctx context.Context) string {
	appendLine(h.Sink, h.Now(), "CRM is alive")

	greeting, err := h.API.Hello(ctx)
	if err != nil {
		log.Printf("heartbeat: %s error: %v", client.Category(err), err)
		msg := fmt.Sprintf("Heartbeat check error: %v", err)
		appendLine(h.Sink, h.Now(), msg)
		return msg
	}
	if greeting != handlers.HelloGreeting {
		return fmt.Sprintf("unexpected greeting %q", greeting)
	}

	appendLine(h.Sink, h.Now(), "GraphQL endpoint responsive")
	return "GraphQL endpoint responsive"
}
