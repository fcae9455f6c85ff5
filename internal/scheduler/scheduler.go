// Package scheduler runs jobs on their cron triggers.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Keoroanthony/go-crm/internal/jobs"
	"github.com/Keoroanthony/go-crm/internal/logsink"
)

type Scheduler struct {
	cron *cron.Cron
	jobs map[string]jobs.Job
	sink *logsink.Sink
	now  func() time.Time
}

// New registers every job named in schedule. Jobs missing from schedule can
// still be started with Run.
func New(schedule Schedule, registry map[string]jobs.Job, sink *logsink.Sink) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cron.PrintfLogger(log.Default())))),
		jobs: registry,
		sink: sink,
		now:  time.Now,
	}

	names := make([]string, 0, len(schedule))
	for name := range schedule {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, ok := registry[name]; !ok {
			return nil, fmt.Errorf("schedule names unknown job %q", name)
		}
		name := name
		if _, err := s.cron.AddFunc(schedule[name], func() { s.Run(context.Background(), name) }); err != nil {
			return nil, fmt.Errorf("invalid trigger %q for %s: %w", schedule[name], name, err)
		}
		log.Printf("scheduler: %s scheduled at %q", name, schedule[name])
	}
	return s, nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts the triggers; the returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context { return s.cron.Stop() }

// Run executes one job now and records its result.
func (s *Scheduler) Run(ctx context.Context, name string) (string, error) {
	job, ok := s.jobs[name]
	if !ok {
		return "", fmt.Errorf("unknown job %q", name)
	}

	result := job.Run(ctx)
	if s.sink != nil {
		if err := s.sink.Append(s.now(), fmt.Sprintf("job %s finished: %s", name, result)); err != nil {
			log.Printf("scheduler: %v", err)
		}
	}
	return result, nil
}
