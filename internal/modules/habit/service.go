package habit

import (
	"context"
	"errors"
	"time"

	"habitflow/internal/cache"
	"habitflow/internal/domain"
	"habitflow/internal/pkg/dates"
	"habitflow/internal/pkg/streak"
	"habitflow/internal/repository"
)

const dayFormat = "2006-01-02"

// Service implements the habit/check-in operations. Reads are cache-aside;
// every write invalidates the affected keys synchronously before returning,
// so a caller that saw the write succeed never reads its own stale data.
type Service struct {
	habits      HabitRepositoryInterface
	checkIns    CheckInRepositoryInterface
	cache       *cache.Store
	invalidator CacheInvalidator
	now         func() time.Time
}

func NewService(
	habits HabitRepositoryInterface,
	checkIns CheckInRepositoryInterface,
	store *cache.Store,
	invalidator CacheInvalidator,
) *Service {
	return &Service{
		habits:      habits,
		checkIns:    checkIns,
		cache:       store,
		invalidator: invalidator,
		now:         time.Now,
	}
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateHabitRequest) (*domain.Habit, error) {
	kind := req.Kind
	if kind == "" {
		kind = domain.KindBuild
	}
	if !domain.ValidKind(kind) {
		return nil, ErrInvalidKind
	}
	frequency := req.Frequency
	if frequency == "" {
		frequency = "daily"
	}

	h := &domain.Habit{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Kind:        kind,
		Frequency:   frequency,
	}
	if err := s.habits.Create(ctx, h); err != nil {
		return nil, err
	}

	s.invalidator.OnHabitsChanged(ctx, userID)
	return h, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.Habit, error) {
	key := cache.UserHabits(userID)

	var habits []domain.Habit
	if s.cache.Get(ctx, key, &habits) {
		return habits, nil
	}

	habits, err := s.habits.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, habits, cache.TTLHabitsList)
	return habits, nil
}

func (s *Service) Get(ctx context.Context, userID, habitID int64) (*domain.Habit, error) {
	key := cache.HabitDetails(userID, habitID)

	var h domain.Habit
	if s.cache.Get(ctx, key, &h) {
		return &h, nil
	}

	found, err := s.habits.GetByID(ctx, userID, habitID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.cache.Set(ctx, key, found, cache.TTLHabitSingle)
	return found, nil
}

func (s *Service) Update(ctx context.Context, userID, habitID int64, req UpdateHabitRequest) (*domain.Habit, error) {
	upd := domain.HabitUpdate{
		Name:        req.Name,
		Description: req.Description,
		Kind:        req.Kind,
		Frequency:   req.Frequency,
	}
	if upd.Empty() {
		return nil, ErrNoFields
	}
	if upd.Kind != nil && !domain.ValidKind(*upd.Kind) {
		return nil, ErrInvalidKind
	}

	h, err := s.habits.Update(ctx, userID, habitID, upd)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	s.invalidator.OnHabitChanged(ctx, userID, habitID)
	return h, nil
}

// Delete removes the habit and, via the FK cascade, all its check-ins.
func (s *Service) Delete(ctx context.Context, userID, habitID int64) error {
	if err := s.habits.Delete(ctx, userID, habitID); err != nil {
		return mapRepoErr(err)
	}

	s.invalidator.OnHabitChanged(ctx, userID, habitID)
	return nil
}

// CheckIn marks the habit done today. Exactly one of two concurrent attempts
// for the same day succeeds: the existence pre-check gives the friendly
// error, the unique index gives the guarantee.
func (s *Service) CheckIn(ctx context.Context, userID, habitID int64) (*domain.CheckIn, error) {
	if _, err := s.habits.GetByID(ctx, userID, habitID); err != nil {
		return nil, mapRepoErr(err)
	}

	today := dates.Normalize(s.now())
	exists, err := s.checkIns.ExistsOnDate(ctx, habitID, today)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyCheckedIn
	}

	c := &domain.CheckIn{HabitID: habitID, Date: today}
	if err := s.checkIns.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}

	s.invalidator.OnCheckInAdded(ctx, userID, habitID)
	return c, nil
}

func (s *Service) ListCheckIns(ctx context.Context, userID, habitID int64) ([]domain.CheckIn, error) {
	if _, err := s.habits.GetByID(ctx, userID, habitID); err != nil {
		return nil, mapRepoErr(err)
	}

	key := cache.HabitCheckIns(userID, habitID)
	var checkIns []domain.CheckIn
	if s.cache.Get(ctx, key, &checkIns) {
		return checkIns, nil
	}

	checkIns, err := s.checkIns.ListByHabit(ctx, habitID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, checkIns, cache.TTLCheckIns)
	return checkIns, nil
}

func (s *Service) Streak(ctx context.Context, userID, habitID int64) (*StreakResponse, error) {
	if _, err := s.habits.GetByID(ctx, userID, habitID); err != nil {
		return nil, mapRepoErr(err)
	}

	key := cache.HabitStreak(userID, habitID)
	var resp StreakResponse
	if s.cache.Get(ctx, key, &resp) {
		return &resp, nil
	}

	days, err := s.checkIns.DatesByHabit(ctx, habitID)
	if err != nil {
		return nil, err
	}
	res := streak.Calculate(days, s.now())
	resp = StreakResponse{
		HabitID:       habitID,
		CurrentStreak: res.CurrentStreak,
		LongestStreak: res.LongestStreak,
	}
	s.cache.Set(ctx, key, resp, cache.TTLStreak)
	return &resp, nil
}

func (s *Service) Stats(ctx context.Context, userID, habitID int64) (*StatsResponse, error) {
	h, err := s.habits.GetByID(ctx, userID, habitID)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	key := cache.HabitStats(userID, habitID)
	var resp StatsResponse
	if s.cache.Get(ctx, key, &resp) {
		return &resp, nil
	}

	days, err := s.checkIns.DatesByHabit(ctx, habitID)
	if err != nil {
		return nil, err
	}
	st := streak.BuildStats(days, s.now())
	resp = StatsResponse{
		HabitID:        h.ID,
		Name:           h.Name,
		Kind:           h.Kind,
		TotalCheckIns:  st.TotalCheckIns,
		CurrentStreak:  st.CurrentStreak,
		LongestStreak:  st.LongestStreak,
		CompletionRate: st.CompletionRate,
		FirstCheckIn:   formatDay(st.FirstCheckIn),
		LastCheckIn:    formatDay(st.LastCheckIn),
	}
	s.cache.Set(ctx, key, resp, cache.TTLStats)
	return &resp, nil
}

// OverviewStats is the aggregate per-user view: every habit with its streaks.
// It embeds per-habit data, which is why habit and check-in mutations purge
// it along with the habit's own keys.
func (s *Service) OverviewStats(ctx context.Context, userID int64) ([]OverviewStat, error) {
	key := cache.UserHabitsStats(userID)

	var stats []OverviewStat
	if s.cache.Get(ctx, key, &stats) {
		return stats, nil
	}

	habits, err := s.habits.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stats = make([]OverviewStat, 0, len(habits))
	for _, h := range habits {
		days, err := s.checkIns.DatesByHabit(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		res := streak.Calculate(days, now)
		stats = append(stats, OverviewStat{
			HabitID:       h.ID,
			Name:          h.Name,
			CurrentStreak: res.CurrentStreak,
			LongestStreak: res.LongestStreak,
		})
	}

	s.cache.Set(ctx, key, stats, cache.TTLStats)
	return stats, nil
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func formatDay(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dayFormat)
	return &s
}
