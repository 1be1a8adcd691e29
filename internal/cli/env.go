package cli

import (
	"context"
	"io"
	"os"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	pubpage "github.com/alnah/go-pubpage"
)

// Publisher is the part of pubpage.Publisher the commands use.
type Publisher interface {
	Publications(ctx context.Context, in pubpage.PublicationsInput) ([]byte, error)
	Presentations(ctx context.Context, in pubpage.PresentationsInput) (*pubpage.PresentationsResult, error)
	Close() error
}

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	NewPublisher func(opts ...pubpage.Option) (Publisher, error)
	MaxProcs     func(logf func(string, ...interface{})) // nil = leave GOMAXPROCS alone
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewPublisher: func(opts ...pubpage.Option) (Publisher, error) {
			return pubpage.NewPublisher(opts...)
		},
		MaxProcs: setMaxProcs,
	}
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply.
func setMaxProcs(logf func(string, ...interface{})) {
	_, _ = maxprocs.Set(maxprocs.Logger(logf))
}
