package notion

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces consecutive requests to the remote API. The Fetcher waits on
// it before every listing call.
type Pacer interface {
	Wait(ctx context.Context) error
}

// DefaultRequestDelay keeps a sequential walk under Notion's ~3 req/s limit.
const DefaultRequestDelay = 350 * time.Millisecond

type intervalPacer struct {
	limiter *rate.Limiter
}

// NewIntervalPacer returns a Pacer enforcing a minimum interval between
// requests. A non-positive interval disables pacing.
func NewIntervalPacer(interval time.Duration) Pacer {
	if interval <= 0 {
		return NopPacer{}
	}
	return &intervalPacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (p *intervalPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// NopPacer never waits. Used in tests and when pacing is configured off.
type NopPacer struct{}

func (NopPacer) Wait(context.Context) error { return nil }
