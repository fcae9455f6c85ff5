// Package logsink appends timestamped lines to plain text job logs.
package logsink

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Sink is an append-only log file. Each line is written with a single call
// so concurrent writers never interleave partial lines.
type Sink struct {
	path      string
	layout    string
	separator string

	mu sync.Mutex
}

func New(path, layout, separator string) *Sink {
	return &Sink{path: path, layout: layout, separator: separator}
}

func (s *Sink) Path() string { return s.path }

// Format renders msg the way Append writes it, without the newline.
func (s *Sink) Format(now time.Time, msg string) string {
	return now.Format(s.layout) + s.separator + strings.TrimRight(msg, "\n")
}

func (s *Sink) Append(now time.Time, msg string) error {
	line := s.Format(now, msg) + "\n"

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log %s: %w", s.path, err)
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("append to %s: %w", s.path, err)
	}
	return f.Close()
}
