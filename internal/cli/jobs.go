package cli

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Keoroanthony/go-crm/internal/client"
	"github.com/Keoroanthony/go-crm/internal/jobs"
	"github.com/Keoroanthony/go-crm/internal/logsink"
	"github.com/Keoroanthony/go-crm/internal/scheduler"
)

func (a *app) registry(ctx context.Context) (map[string]jobs.Job, error) {
	api := client.New(a.cfg.API.Endpoint, a.cfg.API.Timeout, client.WithAPIKey(a.cfg.API.Key))
	n, err := a.notifier(ctx)
	if err != nil {
		return nil, err
	}
	return jobs.Registry(api, jobs.NewSinks(a.cfg.Logs), n, nil), nil
}

func (a *app) schedulerSink() *logsink.Sink {
	return logsink.New(a.cfg.Logs.Scheduler, "2006-01-02 15:04:05", " ")
}

func (a *app) schedulerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run jobs on their triggers until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			schedule, err := scheduler.LoadSchedule(a.cfg.ScheduleFile)
			if err != nil {
				return err
			}
			registry, err := a.registry(ctx)
			if err != nil {
				return err
			}
			s, err := scheduler.New(schedule, registry, a.schedulerSink())
			if err != nil {
				return err
			}

			s.Start()
			log.Printf("Scheduler started with %d jobs", len(schedule))
			<-ctx.Done()

			log.Println("Scheduler stopping, waiting for running jobs")
			<-s.Stop().Done()
			return nil
		},
	}
}

func (a *app) jobCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "job <name>",
		Short:     "Run one job now",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{jobs.HeartbeatName, jobs.LowStockName, jobs.OrderRemindersName, jobs.WeeklyReportName},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			registry, err := a.registry(ctx)
			if err != nil {
				return err
			}
			s, err := scheduler.New(scheduler.Schedule{}, registry, a.schedulerSink())
			if err != nil {
				return err
			}

			result, err := s.Run(ctx, args[0])
			if err != nil {
				return fmt.Errorf("%w (available: %v)", err, jobs.Names(registry))
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
}
