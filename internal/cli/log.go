// Package cli implements the techcloud command-line interface.
//
// Commands:
//
//	layout     place tokens and write the layout document as JSON
//	render     write SVG, PNG, PDF, JSON or text
//	preview    interactive terminal preview
//	serve      run the HTTP API
//	cache      clear the cache or print its location
//	config     print the effective configuration
//	completion shell completion scripts
//
// Diagnostics go to a charmbracelet/log logger on stderr; --verbose lowers
// its level to debug. Status lines for the user go to the command's output.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger stamped with "15:04:05.00" times.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stageTimer logs a finished pipeline stage with its wall time.
type stageTimer struct {
	logger *log.Logger
	start  time.Time
}

func startStage(l *log.Logger) stageTimer {
	return stageTimer{logger: l, start: time.Now()}
}

// done logs msg at info level with keyvals and an elapsed field rounded to
// the millisecond.
func (s stageTimer) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(s.start).Round(time.Millisecond))
	s.logger.Info(msg, keyvals...)
}
