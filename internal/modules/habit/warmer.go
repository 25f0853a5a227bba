package habit

import (
	"context"
	"log"
	"time"

	"habitflow/internal/cache"
	"habitflow/internal/pkg/streak"
)

// Warmer precomputes cache entries for recently active users so their first
// read after a deploy is a hit. Strictly best-effort: it shares no state with
// request handling beyond the repositories and the cache itself.
type Warmer struct {
	habits   HabitRepositoryInterface
	checkIns CheckInRepositoryInterface
	cache    *cache.Store
	now      func() time.Time
}

func NewWarmer(
	habits HabitRepositoryInterface,
	checkIns CheckInRepositoryInterface,
	store *cache.Store,
) *Warmer {
	return &Warmer{
		habits:   habits,
		checkIns: checkIns,
		cache:    store,
		now:      time.Now,
	}
}

// WarmUser populates the habits list and per-habit streaks for one user.
func (w *Warmer) WarmUser(ctx context.Context, userID int64) error {
	habits, err := w.habits.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	w.cache.Set(ctx, cache.UserHabits(userID), habits, cache.TTLHabitsList)

	now := w.now()
	for _, h := range habits {
		days, err := w.checkIns.DatesByHabit(ctx, h.ID)
		if err != nil {
			return err
		}
		res := streak.Calculate(days, now)
		w.cache.Set(ctx, cache.HabitStreak(userID, h.ID), StreakResponse{
			HabitID:       h.ID,
			CurrentStreak: res.CurrentStreak,
			LongestStreak: res.LongestStreak,
		}, cache.TTLStreak)
	}
	return nil
}

// WarmActiveUsers warms everyone with a check-in in the last 24 hours.
func (w *Warmer) WarmActiveUsers(ctx context.Context) (int, error) {
	ids, err := w.habits.ActiveUserIDs(ctx, w.now().Add(-24*time.Hour))
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		if err := w.WarmUser(ctx, id); err != nil {
			log.Printf("cache warm failed user=%d err=%v", id, err)
		}
	}
	return len(ids), nil
}

// Start warms once at startup and then on the given interval until ctx is
// cancelled.
func (w *Warmer) Start(ctx context.Context, interval time.Duration) {
	go func() {
		w.run(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.run(ctx)
			}
		}
	}()
}

func (w *Warmer) run(ctx context.Context) {
	n, err := w.WarmActiveUsers(ctx)
	if err != nil {
		log.Printf("cache warm failed err=%v", err)
		return
	}
	log.Printf("cache warmed users=%d", n)
}
