// Package scheduler runs the poll lifecycle sweeper: a recurring task that
// flips the is_active hint off for polls whose voting window has closed.
// The transition is one-way; nothing ever flips a poll back to active.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zkpolls/zkpolls-backend/utils"
)

type PollDeactivator interface {
	DeactivateExpired(ctx context.Context, nowMillis int64) (int64, error)
}

type Sweeper struct {
	log      *slog.Logger
	storage  PollDeactivator
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewSweeper(log *slog.Logger, storage PollDeactivator, interval time.Duration) *Sweeper {
	return &Sweeper{
		log:      log,
		storage:  storage,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop. One sweep runs immediately, then one per
// tick until Stop is called.
func (s *Sweeper) Start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runSweep()

		for {
			select {
			case <-ticker.C:
				s.runSweep()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Sweeper) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.Sweep(ctx); err != nil {
		s.log.Error("sweep failed", utils.Err(err))
	}
}

// Sweep deactivates every poll whose end time has elapsed and returns how
// many were transitioned. Running it again with no new expirations is a
// no-op.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	const op = "scheduler.Sweeper.Sweep"

	n, err := s.storage.DeactivateExpired(ctx, time.Now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if n > 0 {
		s.log.Info("deactivated expired polls", slog.String("op", op), slog.Int64("count", n))
	}

	return n, nil
}
