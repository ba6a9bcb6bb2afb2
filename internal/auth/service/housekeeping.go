package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/abuRizq/vegetable-shop/internal/auth/store"
)

const DefaultHousekeepingInterval = time.Hour

// HousekeepingService prunes expired refresh and reset tokens on a timer.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// Start launches the background loop. It runs one sweep immediately so a
// restart cannot postpone cleanup by a full interval.
func (s *HousekeepingService) Start() {
	if s.Interval <= 0 {
		s.Interval = DefaultHousekeepingInterval
	}
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	go func() {
		defer close(s.doneCh)

		s.sweep()

		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop signals the loop to exit and blocks until it has.
func (s *HousekeepingService) Stop() {
	if s.stopCh == nil {
		return
	}
	close(s.stopCh)
	<-s.doneCh
}

func (s *HousekeepingService) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()

	refresh, err := s.Store.RefreshTokens().DeleteExpired(ctx, now)
	if err != nil {
		s.Logger.Error("pruning refresh tokens failed", "error", err)
	}

	reset, err := s.Store.ResetTokens().DeleteExpired(ctx, now)
	if err != nil {
		s.Logger.Error("pruning reset tokens failed", "error", err)
	}

	if refresh > 0 || reset > 0 {
		s.Logger.Info("housekeeping sweep", "refresh_tokens", refresh, "reset_tokens", reset)
	}
}
