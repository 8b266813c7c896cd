package app

import (
	"context"
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
)

type principalSweeper interface {
	PurgePrincipals() int
}

type staleRowSweeper interface {
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// janitor drops expired principals and stale advice rows on a fixed
// interval. Reads already ignore expired entries; the sweep only bounds
// storage. The memory advice store expires its keys on its own.
type janitor struct {
	interval   time.Duration
	adviceTTL  time.Duration
	principals principalSweeper
	stale      staleRowSweeper
	logger     *logging.Logger
	now        func() time.Time
}

func (j *janitor) run(ctx context.Context) {
	if j.interval <= 0 {
		return
	}
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *janitor) sweep(ctx context.Context) {
	principals := j.principals.PurgePrincipals()

	var staleRows int64
	if j.stale != nil {
		var err error
		// A row untouched for a full TTL only holds expired entries.
		staleRows, err = j.stale.DeleteStale(ctx, j.now().Add(-j.adviceTTL))
		if err != nil {
			j.logger.WarnContext(ctx, "advice stale row cleanup failed", "error", err)
		}
	}

	j.logger.DebugContext(ctx, "janitor sweep finished",
		"principals_removed", principals,
		"stale_rows_removed", staleRows,
	)
}
