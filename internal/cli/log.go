package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// levelFor maps --quiet and --verbose to a log level. Quiet wins.
func levelFor(f commonFlags) log.Level {
	switch {
	case f.quiet:
		return log.ErrorLevel
	case f.verbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Debugf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
