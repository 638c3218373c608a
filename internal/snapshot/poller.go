package snapshot

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/imamik/snapimage/internal/util/retry"
)

// DefaultPollInterval spaces status lookups when no interval is configured.
const DefaultPollInterval = 2 * time.Second

// LookupFunc returns the current status of a remote resource, or an error
// satisfying errors.Is(err, ErrNotFound) once the resource no longer exists.
type LookupFunc func(ctx context.Context) (Status, error)

// Outcome is how a poll ended. Status holds the last observed status; it is
// terminal unless NotFound or TimedOut is set.
type Outcome struct {
	Status   Status
	NotFound bool
	TimedOut bool
	Attempts int
}

// Poller repeatedly looks up a status until it settles.
type Poller struct {
	interval time.Duration
	now      func() time.Time
}

// NewPoller creates a poller with a fixed interval between lookups.
func NewPoller(interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{interval: interval, now: time.Now}
}

// PollUntilTerminal calls lookup until it returns a status in terminal or
// signals not found. A non-zero deadline bounds the loop; once it passes the
// outcome is TimedOut. Lookup errors other than not found are returned.
func (p *Poller) PollUntilTerminal(ctx context.Context, lookup LookupFunc, terminal []Status, deadline time.Time) (Outcome, error) {
	var out Outcome

	err := retry.Poll(ctx, func(ctx context.Context) (bool, error) {
		out.Attempts++
		status, err := lookup(ctx)
		if errors.Is(err, ErrNotFound) {
			out.NotFound = true
			return true, nil
		}
		if err != nil {
			return false, err
		}
		out.Status = status
		return slices.Contains(terminal, status), nil
	},
		retry.WithInterval(p.interval),
		retry.WithDeadline(deadline),
		retry.WithClock(p.now),
	)

	if errors.Is(err, retry.ErrDeadlineExceeded) {
		out.TimedOut = true
		return out, nil
	}
	return out, err
}
