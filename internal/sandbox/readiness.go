// SPDX-License-Identifier: MPL-2.0

package sandbox

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahayzen/distrobox/internal/engine"
)

const (
	// setupDoneSentinel is the literal the initializer writes to its log
	// stream once in-container provisioning has completed.
	setupDoneSentinel = "container_setup_done"
	// errorMarker flags initializer failure in the log stream.
	errorMarker = "Error"
	// warningMarker flags non-fatal initializer diagnostics.
	warningMarker = "Warning"

	// DefaultPollInterval is the wait between readiness log fetches.
	DefaultPollInterval = 500 * time.Millisecond
)

// ErrStartupFailed is the sentinel error wrapped by StartupError.
var ErrStartupFailed = errors.New("container startup failed")

// StartupError is returned when the readiness poll observes an error
// marker in the container logs, or when the optional poll bound elapses.
type StartupError struct {
	Name string
	// Lines are the offending log lines, surfaced verbatim.
	Lines []string
	// TimedOut is set when the poll bound elapsed before a verdict.
	TimedOut bool
}

// Error implements the error interface.
func (e *StartupError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("container %q did not become ready in time", e.Name)
	}
	return fmt.Sprintf("container %q failed to start:\n%s", e.Name, strings.Join(e.Lines, "\n"))
}

// Unwrap returns ErrStartupFailed so callers can use errors.Is.
func (e *StartupError) Unwrap() error { return ErrStartupFailed }

// ReadinessSignal observes whether in-container initialization has
// completed. The production implementation tails engine logs; a direct
// completion callback from the initializer could implement this interface
// if one ever exists.
type ReadinessSignal interface {
	// Wait blocks until readiness is decided. On success it returns any
	// warning-marked log lines for non-fatal surfacing.
	Wait(ctx context.Context, name string, since time.Time) (warnings []string, err error)
}

// LogPoll is the default ReadinessSignal: it repeatedly fetches container
// logs emitted since the start timestamp and scans them for the error
// marker and the completion sentinel. The initializer runs as the
// container's entry process, so its log stream is the only synchronous
// channel available at this stage.
type LogPoll struct {
	Engine engine.Engine
	// Interval between log fetches. Zero means DefaultPollInterval.
	Interval time.Duration
	// Bound limits the total wait. Zero means wait indefinitely, which is
	// the compatibility default: first boot of a container may provision
	// for arbitrarily long.
	Bound time.Duration
}

// Wait implements ReadinessSignal.
func (p *LogPoll) Wait(ctx context.Context, name string, since time.Time) ([]string, error) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	var bound <-chan time.Time
	if p.Bound > 0 {
		timer := time.NewTimer(p.Bound)
		defer timer.Stop()
		bound = timer.C
	}

	for {
		// A transient log fetch failure is retried: the engine may not
		// have the log stream ready immediately after start.
		logs, err := p.Engine.Logs(ctx, name, since)
		if err == nil {
			if lines := linesContaining(logs, errorMarker); len(lines) > 0 {
				return nil, &StartupError{Name: name, Lines: lines}
			}
			if strings.Contains(logs, setupDoneSentinel) {
				return linesContaining(logs, warningMarker), nil
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-bound:
			return nil, &StartupError{Name: name, TimedOut: true}
		case <-time.After(interval):
		}
	}
}

// linesContaining returns the log lines containing the marker.
func linesContaining(logs, marker string) []string {
	var out []string
	for _, line := range strings.Split(logs, "\n") {
		if strings.Contains(line, marker) {
			out = append(out, line)
		}
	}
	return out
}
