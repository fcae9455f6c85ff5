package scheduler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Keoroanthony/go-crm/internal/jobs"
)

// Schedule maps a job name to a five-field cron expression.
type Schedule map[string]string

func DefaultSchedule() Schedule {
	return Schedule{
		jobs.HeartbeatName:      "*/5 * * * *",
		jobs.LowStockName:       "0 */12 * * *",
		jobs.OrderRemindersName: "0 9 * * *",
		jobs.WeeklyReportName:   "0 6 * * 1",
	}
}

type scheduleFile struct {
	Jobs Schedule `yaml:"jobs"`
}

// LoadSchedule reads the trigger table from path. A missing file yields the
// default table; a present file replaces it entirely.
func LoadSchedule(path string) (Schedule, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSchedule(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}

	var f scheduleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse schedule %s: %w", path, err)
	}
	if f.Jobs == nil {
		f.Jobs = Schedule{}
	}
	return f.Jobs, nil
}
