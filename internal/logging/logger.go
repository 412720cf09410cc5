// Package logging provides leveled logging and step tracing for zados.
// It offers two complementary outputs:
//   - A leveled slog.Logger (operational output, text or JSON)
//   - A StepLogger for structured JSONL traces of simulation steps
package logging

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// ErrUnknownLevel reports a log level name outside the supported set.
var ErrUnknownLevel = errors.New("unknown log level")

// LevelTrace is a custom slog level below Debug for full per-step
// content logging.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a level name to its slog.Level, case-insensitively.
// Supported values: trace, debug, info, warn, error. The empty string
// means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// NewLogger creates a leveled slog.Logger writing to w. With jsonFormat
// set the handler emits JSON records, otherwise human-readable text.
func NewLogger(level slog.Level, w io.Writer, jsonFormat bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Label the custom trace level
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	if jsonFormat {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup parses the level name and installs a default logger on stderr.
// On a parse error the process default is left unchanged.
func Setup(level string, jsonFormat bool) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	slog.SetDefault(NewLogger(lvl, os.Stderr, jsonFormat))
	return nil
}

// StepLogger writes per-step simulation trace events to a JSONL file.
// It is safe for concurrent use. A nil *StepLogger is safe to use; all
// methods are no-ops on a nil receiver, so callers can thread one
// through unconditionally.
type StepLogger struct {
	mu   sync.Mutex
	file *os.File
}

// OpenStepLogger opens a JSONL trace file at path, creating it if
// needed and appending otherwise.
func OpenStepLogger(path string) (*StepLogger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("open step trace: %w", err)
	}
	return &StepLogger{file: f}, nil
}

// Log writes one trace event as a single JSONL line. A wall-clock
// "time" field is added automatically. The caller's map is not mutated.
// Safe to call on a nil receiver.
func (sl *StepLogger) Log(event map[string]any) {
	if sl == nil || sl.file == nil {
		return
	}

	// Copy to avoid mutating the caller's map
	entry := make(map[string]any, len(event)+1)
	for k, v := range event {
		entry[k] = v
	}
	entry["time"] = time.Now().UTC().Format(time.RFC3339Nano)

	sl.mu.Lock()
	defer sl.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = sl.file.Write(data)
}

// Close closes the trace file. Safe to call on a nil receiver.
func (sl *StepLogger) Close() {
	if sl == nil || sl.file == nil {
		return
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	sl.file.Close()
	sl.file = nil
}
