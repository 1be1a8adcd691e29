//go:build windows

package cli

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext returns a context that is canceled when an interrupt
// signal is received. syscall.SIGTERM does not exist on Windows.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
