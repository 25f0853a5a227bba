package auth

import (
	"context"
	"log"
	"time"
)

// StartSweeper runs the expired-token sweep once immediately and then on a
// fixed interval until ctx is cancelled. Failures are logged and left for the
// next tick; the lazy deletion in Refresh covers the gap.
func (s *Service) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		s.sweep(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

func (s *Service) sweep(ctx context.Context) {
	n, err := s.CleanupExpired(ctx)
	if err != nil {
		log.Printf("token sweep failed err=%v", err)
		return
	}
	if n > 0 {
		log.Printf("token sweep removed=%d", n)
	}
}
