package cache

import (
	"context"
	"log"
)

// Invalidator maps mutation events to the key patterns that must be purged.
// Purges run synchronously before the mutating call returns, so the writer
// reads its own writes. The aggregate list keys are always included because
// they embed per-habit data.
//
// Invalidation never fails the mutation: a purge miss only means a stale
// entry survives until its TTL.
type Invalidator struct {
	store *Store
}

func NewInvalidator(store *Store) *Invalidator {
	return &Invalidator{store: store}
}

// OnHabitsChanged purges the user's aggregate views (habit created, or any
// change whose per-habit keys are handled separately).
func (i *Invalidator) OnHabitsChanged(ctx context.Context, userID int64) {
	n := i.store.DeleteMatching(ctx, UserListKeys(userID))
	n += i.store.DeleteMatching(ctx, LegacyListKeys(userID))
	log.Printf("cache invalidated user=%d keys=%d", userID, n)
}

// OnHabitChanged purges one habit's derived keys plus the aggregates.
func (i *Invalidator) OnHabitChanged(ctx context.Context, userID, habitID int64) {
	n := i.store.DeleteMatching(ctx, AllHabitKeys(userID, habitID))
	n += i.store.DeleteMatching(ctx, HabitDetails(userID, habitID))
	log.Printf("cache invalidated user=%d habit=%d keys=%d", userID, habitID, n)
	i.OnHabitsChanged(ctx, userID)
}

// OnCheckInAdded purges the same set as a habit change: the habit's own
// fields are untouched but its streak, stats and check-in list all shift.
func (i *Invalidator) OnCheckInAdded(ctx context.Context, userID, habitID int64) {
	i.OnHabitChanged(ctx, userID, habitID)
}
