package habit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"habitflow/internal/cache"
	"habitflow/internal/domain"
	"habitflow/internal/repository"
)

type mockHabitRepo struct{ mock.Mock }

func (m *mockHabitRepo) Create(ctx context.Context, h *domain.Habit) error {
	args := m.Called(ctx, h)
	if args.Error(0) == nil && h.ID == 0 {
		h.ID = 7
	}
	return args.Error(0)
}

func (m *mockHabitRepo) GetByID(ctx context.Context, userID, habitID int64) (*domain.Habit, error) {
	args := m.Called(ctx, userID, habitID)
	if h := args.Get(0); h != nil {
		return h.(*domain.Habit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHabitRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Habit, error) {
	args := m.Called(ctx, userID)
	if h := args.Get(0); h != nil {
		return h.([]domain.Habit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHabitRepo) Update(ctx context.Context, userID, habitID int64, upd domain.HabitUpdate) (*domain.Habit, error) {
	args := m.Called(ctx, userID, habitID, upd)
	if h := args.Get(0); h != nil {
		return h.(*domain.Habit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHabitRepo) Delete(ctx context.Context, userID, habitID int64) error {
	return m.Called(ctx, userID, habitID).Error(0)
}

func (m *mockHabitRepo) ActiveUserIDs(ctx context.Context, since time.Time) ([]int64, error) {
	args := m.Called(ctx, since)
	if ids := args.Get(0); ids != nil {
		return ids.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCheckInRepo struct{ mock.Mock }

func (m *mockCheckInRepo) Create(ctx context.Context, c *domain.CheckIn) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCheckInRepo) ListByHabit(ctx context.Context, habitID int64) ([]domain.CheckIn, error) {
	args := m.Called(ctx, habitID)
	if c := args.Get(0); c != nil {
		return c.([]domain.CheckIn), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCheckInRepo) DatesByHabit(ctx context.Context, habitID int64) ([]time.Time, error) {
	args := m.Called(ctx, habitID)
	if d := args.Get(0); d != nil {
		return d.([]time.Time), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCheckInRepo) ExistsOnDate(ctx context.Context, habitID int64, day time.Time) (bool, error) {
	args := m.Called(ctx, habitID, day)
	return args.Bool(0), args.Error(1)
}

var testNow = time.Date(2024, 6, 3, 10, 30, 0, 0, time.UTC)

// newTestService wires a real cache store and invalidator around mocked
// repositories, so cache-aside and invalidation behavior is exercised for
// real.
func newTestService(habits *mockHabitRepo, checkIns *mockCheckInRepo) (*Service, *cache.Store) {
	store := cache.NewStore(cache.NewMemoryBackend())
	svc := NewService(habits, checkIns, store, cache.NewInvalidator(store))
	svc.now = func() time.Time { return testNow }
	return svc, store
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreate_DefaultsAndInvalidation(t *testing.T) {
	habits := new(mockHabitRepo)
	checkIns := new(mockCheckInRepo)
	svc, store := newTestService(habits, checkIns)
	ctx := context.Background()

	// Stale list entry that the create must purge.
	store.Set(ctx, cache.UserHabits(1), []domain.Habit{}, time.Minute)

	habits.On("Create", mock.Anything, mock.AnythingOfType("*domain.Habit")).Return(nil)

	h, err := svc.Create(ctx, 1, CreateHabitRequest{Name: "Run"})

	require.NoError(t, err)
	assert.Equal(t, domain.KindBuild, h.Kind)
	assert.Equal(t, "daily", h.Frequency)

	var cachedList []domain.Habit
	assert.False(t, store.Get(ctx, cache.UserHabits(1), &cachedList))
}

func TestCreate_InvalidKind(t *testing.T) {
	habits := new(mockHabitRepo)
	checkIns := new(mockCheckInRepo)
	svc, _ := newTestService(habits, checkIns)

	_, err := svc.Create(context.Background(), 1, CreateHabitRequest{Name: "X", Kind: "destroy"})

	assert.ErrorIs(t, err, ErrInvalidKind)
	habits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestList_CacheAside(t *testing.T) {
	habits := new(mockHabitRepo)
	checkIns := new(mockCheckInRepo)
	svc, store := newTestService(habits, checkIns)
	ctx := context.Background()

	listed := []domain.Habit{{ID: 7, UserID: 1, Name: "Run"}}
	habits.On("ListByUser", mock.Anything, int64(1)).Return(listed, nil).Once()

	first, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, listed, first)

	// Second call is served from cache; the mock would panic on a second
	// repository hit because of Once.
	second, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, listed, second)

	st := store.Stats(ctx)
	assert.Equal(t, int64(1), st.Hits)
	assert.Equal(t, int64(1), st.Misses)
}

func TestGet_NotFoundForForeignHabit(t *testing.T) {
	habits := new(mockHabitRepo)
	checkIns := new(mockCheckInRepo)
	svc, _ := newTestService(habits, checkIns)

	habits.On("GetByID", mock.Anything, int64(2), int64(7)).Return(nil, repository.ErrNotFound)

	_, err := svc.Get(context.Background(), 2, 7)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_PartialFields(t *testing.T) {
	habits := new(mockHabitRepo)
	checkIns := new(mockCheckInRepo)
	svc, _ := newTestService(habits, checkIns)

	name := "Evening run"
	updated := &domain.Habit{ID: 7, UserID: 1, Name: name, Kind: domain.KindBuild}
	habits.On("Update", mock.Anything, int64(1), int64(7), domain.HabitUpdate{Name: &name}).
		Return(updated, nil)

	h, err := svc.Update(context.Background(), 1, 7, UpdateHabitRequest{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Evening run", h.Name)
}

func TestUpdate_NoFields(t *testing.T) {
	habits := new(mockHabitRepo)
	checkIns := new(mockCheckInRepo)
	svc, _ := newTestService(habits, checkIns)

	_, err := svc.Update(context.Background(), 1, 7, UpdateHabitRequest{})

	assert.ErrorIs(t, err, ErrNoFields)
	habits.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_PurgesHabitKeys(t *testing.T) {
	habits := new(mockHabitRepo)
	checkIns := new(mockCheckInRepo)
	svc, store := newTestService(habits, checkIns)
	ctx := context.Background()

	store.Set(ctx, cache.HabitDetails(1, 7), domain.Habit{ID: 7}, time.Minute)
	store.Set(ctx, cache.HabitStats(1, 7), StatsResponse{}, time.Minute)
	store.Set(ctx, cache.UserHabits(1), []domain.Habit{}, time.Minute)
	store.Set(ctx, cache.HabitStats(1, 8), StatsResponse{}, time.Minute)

	name := "New name"
	habits.On("Update", mock.Anything, int64(1), int64(7), mock.Anything).
		Return(&domain.Habit{ID: 7, Name: name}, nil)

	_, err := svc.Update(ctx, 1, 7, UpdateHabitRequest{Name: &name})
	require.NoError(t, err)

	var h domain.Habit
	var st StatsResponse
	var list []domain.Habit
	assert.False(t, store.Get(ctx, cache.HabitDetails(1, 7), &h))
	assert.False(t, store.Get(ctx, cache.HabitStats(1, 7), &st))
	assert.False(t, store.Get(ctx, cache.UserHabits(1), &list))
	assert.True(t, store.Get(ctx, cache.HabitStats(1, 8), &st))
}

func TestCheckIn_Success(t *testing.T) {
	habits := new(mockHabitRepo)
	checkIns := new(mockCheckInRepo)
	svc, _ := newTestService(habits, checkIns)

	today := day(2024, 6, 3)
	habits.On("GetByID", mock.Anything, int64(1), int64(7)).Return(&domain.Habit{ID: 7, UserID: 1}, nil)
	checkIns.On("ExistsOnDate", mock.Anything, int64(7), today).Return(false, nil)
	checkIns.On("Create", mock.Anything, mock.AnythingOfType("*domain.CheckIn")).Return(nil)

	c, err := svc.CheckIn(context.Background(), 1, 7)

	require.NoError(t, err)
	assert.Equal(t, today, c.Date)
}

func TestCheckIn_AlreadyCheckedInToday(t *testing.T) {
	habits := new(mockHabitRepo)
	checkIns := new(mockCheckInRepo)
	svc, _ := newTestService(habits, checkIns)

	habits.On("GetByID", mock.Anything, int64(1), int64(7)).Return(&domain.Habit{ID: 7, UserID: 1}, nil)
	checkIns.On("ExistsOnDate", mock.Anything, int64(7), day(2024, 6, 3)).Return(true, nil)

	_, err := svc.CheckIn(context.Background(), 1, 7)

	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	checkIns.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckIn_ConcurrentInsertLosesGracefully(t *testing.T) {
	habits := new(mockHabitRepo)
	checkIns := new(mockCheckInRepo)
	svc, _ := newTestService(habits, checkIns)

	// The pre-check misses the concurrent writer; the unique index catches
	// it and the service maps the violation to the friendly error.
	habits.On("GetByID", mock.Anything, int64(1), int64(7)).Return(&domain.Habit{ID: 7, UserID: 1}, nil)
	checkIns.On("ExistsOnDate", mock.Anything, int64(7), day(2024, 6, 3)).Return(false, nil)
	checkIns.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.CheckIn(context.Background(), 1, 7)

	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestCheckIn_ReadYourWrites(t *testing.T) {
	habits := new(mockHabitRepo)
	checkIns := new(mockCheckInRepo)
	svc, _ := newTestService(habits, checkIns)
	ctx := context.Background()

	habits.On("GetByID", mock.Anything, int64(1), int64(7)).Return(&domain.Habit{ID: 7, UserID: 1, Name: "Run"}, nil)

	// Prime the streak cache from a state with one check-in yesterday.
	checkIns.On("DatesByHabit", mock.Anything, int64(7)).
		Return([]time.Time{day(2024, 6, 2)}, nil).Once()
	before, err := svc.Streak(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, before.CurrentStreak)

	// Check in today; the cached streak must be purged.
	checkIns.On("ExistsOnDate", mock.Anything, int64(7), day(2024, 6, 3)).Return(false, nil)
	checkIns.On("Create", mock.Anything, mock.Anything).Return(nil)
	_, err = svc.CheckIn(ctx, 1, 7)
	require.NoError(t, err)

	checkIns.On("DatesByHabit", mock.Anything, int64(7)).
		Return([]time.Time{day(2024, 6, 2), day(2024, 6, 3)}, nil).Once()
	after, err := svc.Streak(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, after.CurrentStreak)
}

func TestStreak_CacheAside(t *testing.T) {
	habits := new(mockHabitRepo)
	checkIns := new(mockCheckInRepo)
	svc, _ := newTestService(habits, checkIns)
	ctx := context.Background()

	habits.On("GetByID", mock.Anything, int64(1), int64(7)).Return(&domain.Habit{ID: 7, UserID: 1}, nil)
	checkIns.On("DatesByHabit", mock.Anything, int64(7)).
		Return([]time.Time{day(2024, 6, 1), day(2024, 6, 2), day(2024, 6, 3)}, nil).Once()

	first, err := svc.Streak(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, first.CurrentStreak)
	assert.Equal(t, 3, first.LongestStreak)

	second, err := svc.Streak(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStats_FullBlock(t *testing.T) {
	habits := new(mockHabitRepo)
	checkIns := new(mockCheckInRepo)
	svc, _ := newTestService(habits, checkIns)

	habits.On("GetByID", mock.Anything, int64(1), int64(7)).
		Return(&domain.Habit{ID: 7, UserID: 1, Name: "Run", Kind: domain.KindBuild}, nil)
	checkIns.On("DatesByHabit", mock.Anything, int64(7)).
		Return([]time.Time{day(2024, 5, 30), day(2024, 6, 2), day(2024, 6, 3)}, nil)

	st, err := svc.Stats(context.Background(), 1, 7)

	require.NoError(t, err)
	assert.Equal(t, "Run", st.Name)
	assert.Equal(t, 3, st.TotalCheckIns)
	assert.Equal(t, 2, st.CurrentStreak)
	assert.Equal(t, 2, st.LongestStreak)
	assert.InDelta(t, 0.6, st.CompletionRate, 1e-9)
	require.NotNil(t, st.FirstCheckIn)
	assert.Equal(t, "2024-05-30", *st.FirstCheckIn)
	require.NotNil(t, st.LastCheckIn)
	assert.Equal(t, "2024-06-03", *st.LastCheckIn)
}

func TestOverviewStats(t *testing.T) {
	habits := new(mockHabitRepo)
	checkIns := new(mockCheckInRepo)
	svc, _ := newTestService(habits, checkIns)

	habits.On("ListByUser", mock.Anything, int64(1)).Return([]domain.Habit{
		{ID: 7, Name: "Run"},
		{ID: 8, Name: "Read"},
	}, nil)
	checkIns.On("DatesByHabit", mock.Anything, int64(7)).
		Return([]time.Time{day(2024, 6, 3)}, nil)
	checkIns.On("DatesByHabit", mock.Anything, int64(8)).
		Return([]time.Time{}, nil)

	stats, err := svc.OverviewStats(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, 1, stats[0].CurrentStreak)
	assert.Equal(t, 0, stats[1].CurrentStreak)
}

func TestDelete_PurgesAndMapsNotFound(t *testing.T) {
	habits := new(mockHabitRepo)
	checkIns := new(mockCheckInRepo)
	svc, store := newTestService(habits, checkIns)
	ctx := context.Background()

	store.Set(ctx, cache.HabitStreak(1, 7), StreakResponse{}, time.Minute)
	habits.On("Delete", mock.Anything, int64(1), int64(7)).Return(nil)

	require.NoError(t, svc.Delete(ctx, 1, 7))

	var resp StreakResponse
	assert.False(t, store.Get(ctx, cache.HabitStreak(1, 7), &resp))

	habits.On("Delete", mock.Anything, int64(1), int64(9)).Return(repository.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 1, 9), ErrNotFound)
}
