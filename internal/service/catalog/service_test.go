package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
	barberRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/barber"
	serviceRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/service"
	"github.com/igestaos-eng/barbearia-inicio/internal/service/catalog/models"
	"github.com/igestaos-eng/barbearia-inicio/pkg/types"
)

// --- Фейки зависимостей ---

type fakeBarberRepo struct {
	barbers map[int64]*domain.Barber
}

func (f *fakeBarberRepo) GetByID(_ context.Context, id int64) (*domain.Barber, error) {
	b, ok := f.barbers[id]
	if !ok {
		return nil, barberRepo.ErrBarberNotFound
	}
	return b, nil
}

func (f *fakeBarberRepo) ListActive(_ context.Context) ([]*domain.Barber, error) {
	var result []*domain.Barber
	for _, b := range f.barbers {
		if b.IsActive {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return s, nil
}

func (f *fakeServiceRepo) ListActive(_ context.Context) ([]*domain.Service, error) {
	var result []*domain.Service
	for _, s := range f.services {
		if s.IsActive {
			result = append(result, s)
		}
	}
	return result, nil
}

// fakeScheduleRepo хранит недельный шаблон и переопределения по дате
type fakeScheduleRepo struct {
	weekly    []domain.WorkingHour
	overrides map[string][]domain.ScheduleOverride
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{overrides: make(map[string][]domain.ScheduleOverride)}
}

func (f *fakeScheduleRepo) GetWeekly(_ context.Context, _ int64) ([]domain.WorkingHour, error) {
	return f.weekly, nil
}

func (f *fakeScheduleRepo) ReplaceWeekly(_ context.Context, _ int64, hours []domain.WorkingHour) error {
	f.weekly = hours
	return nil
}

func (f *fakeScheduleRepo) ListWindowsForDate(_ context.Context, _ int64, date time.Time) ([]domain.WorkingWindow, error) {
	key := date.Format(domain.DateFormat)
	if overrides, ok := f.overrides[key]; ok {
		windows := make([]domain.WorkingWindow, 0, len(overrides))
		for _, o := range overrides {
			windows = append(windows, o.Window())
		}
		return windows, nil
	}
	var windows []domain.WorkingWindow
	for _, h := range f.weekly {
		if h.DayOfWeek == date.Weekday() {
			windows = append(windows, h.Window())
		}
	}
	return windows, nil
}

func (f *fakeScheduleRepo) UpsertOverride(_ context.Context, override domain.ScheduleOverride) error {
	key := override.Date.Format(domain.DateFormat)
	f.overrides[key] = append(f.overrides[key], override)
	return nil
}

func (f *fakeScheduleRepo) DeleteOverrides(_ context.Context, _ int64, date time.Time) error {
	delete(f.overrides, date.Format(domain.DateFormat))
	return nil
}

type fakeSlotsCache struct {
	invalidated []int64
}

func (f *fakeSlotsCache) InvalidateBarber(_ context.Context, barberID int64) error {
	f.invalidated = append(f.invalidated, barberID)
	return nil
}

type fakeTxManager struct {
	readOnlyCalls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.readOnlyCalls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Окружение теста ---

type env struct {
	svc      *Service
	schedule *fakeScheduleRepo
	cache    *fakeSlotsCache
	tx       *fakeTxManager
}

func newEnv() *env {
	barbers := &fakeBarberRepo{barbers: map[int64]*domain.Barber{
		2: {ID: 2, Name: "Carlos", IsActive: true},
	}}
	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		3: {ID: 3, Name: "Corte", DurationMinutes: 30, Price: 50, IsActive: true},
	}}
	schedule := newFakeScheduleRepo()
	schedule.weekly = []domain.WorkingHour{{
		BarberID:     2,
		DayOfWeek:    time.Tuesday,
		StartTime:    types.MustTimeString("09:00"),
		EndTime:      types.MustTimeString("18:00"),
		IsWorkingDay: true,
	}}
	cache := &fakeSlotsCache{}

	tx := &fakeTxManager{}
	svc := NewService(barbers, services, schedule, cache, tx, nopLogger{})
	return &env{svc: svc, schedule: schedule, cache: cache, tx: tx}
}

// --- Тесты ---

func TestUpdateSchedule(t *testing.T) {
	e := newEnv()

	resp, err := e.svc.UpdateSchedule(context.Background(), 2, &models.UpdateScheduleRequest{
		UserID: 2,
		Days: []models.WeeklyScheduleDay{
			{DayOfWeek: 1, StartTime: "10:00", EndTime: "19:00", IsWorkingDay: true},
			{DayOfWeek: 0, StartTime: "00:00", EndTime: "00:00", IsWorkingDay: false},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Days, 2)
	assert.Equal(t, "10:00", resp.Days[0].StartTime)
	assert.Equal(t, []int64{2}, e.cache.invalidated, "смена расписания инвалидирует кэш")
	assert.Equal(t, 1, e.tx.readOnlyCalls, "перечитывание идёт в read-only транзакции")
}

func TestUpdateSchedule_AccessAndValidation(t *testing.T) {
	e := newEnv()

	// Чужой барбер
	_, err := e.svc.UpdateSchedule(context.Background(), 2, &models.UpdateScheduleRequest{
		UserID: 42,
		Days:   []models.WeeklyScheduleDay{},
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Некорректный день недели
	_, err = e.svc.UpdateSchedule(context.Background(), 2, &models.UpdateScheduleRequest{
		UserID: 2,
		Days:   []models.WeeklyScheduleDay{{DayOfWeek: 7, StartTime: "10:00", EndTime: "19:00"}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Некорректное время
	_, err = e.svc.UpdateSchedule(context.Background(), 2, &models.UpdateScheduleRequest{
		UserID: 2,
		Days:   []models.WeeklyScheduleDay{{DayOfWeek: 1, StartTime: "10-00", EndTime: "19:00"}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetScheduleOverride(t *testing.T) {
	e := newEnv()

	resp, err := e.svc.SetScheduleOverride(context.Background(), 2, &models.SetOverrideRequest{
		UserID: 2,
		Date:   "2026-03-10",
		Windows: []models.OverrideWindow{
			{StartTime: "12:00", EndTime: "16:00", IsAvailable: true},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", resp.Date)
	require.Len(t, resp.Windows, 1)
	assert.Equal(t, "12:00", resp.Windows[0].StartTime)
	assert.Equal(t, []int64{2}, e.cache.invalidated)

	// Переопределение вытесняет недельный шаблон для этой даты
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC) // вторник
	windows, err := e.schedule.ListWindowsForDate(context.Background(), 2, date)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, "12:00", windows[0].StartTime.String())
}

func TestSetScheduleOverride_ReplacesPreviousOverride(t *testing.T) {
	e := newEnv()

	_, err := e.svc.SetScheduleOverride(context.Background(), 2, &models.SetOverrideRequest{
		UserID:  2,
		Date:    "2026-03-10",
		Windows: []models.OverrideWindow{{StartTime: "12:00", EndTime: "16:00", IsAvailable: true}},
	})
	require.NoError(t, err)

	resp, err := e.svc.SetScheduleOverride(context.Background(), 2, &models.SetOverrideRequest{
		UserID:  2,
		Date:    "2026-03-10",
		Windows: []models.OverrideWindow{{StartTime: "14:00", EndTime: "20:00", IsAvailable: true}},
	})
	require.NoError(t, err)

	require.Len(t, resp.Windows, 1, "замена, а не накопление")
	assert.Equal(t, "14:00", resp.Windows[0].StartTime)
}

func TestSetScheduleOverride_Validation(t *testing.T) {
	e := newEnv()

	_, err := e.svc.SetScheduleOverride(context.Background(), 2, &models.SetOverrideRequest{
		UserID: 42,
		Date:   "2026-03-10",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = e.svc.SetScheduleOverride(context.Background(), 2, &models.SetOverrideRequest{
		UserID: 2,
		Date:   "10.03.2026",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClearScheduleOverride(t *testing.T) {
	e := newEnv()

	_, err := e.svc.SetScheduleOverride(context.Background(), 2, &models.SetOverrideRequest{
		UserID:  2,
		Date:    "2026-03-10",
		Windows: []models.OverrideWindow{{StartTime: "12:00", EndTime: "16:00", IsAvailable: true}},
	})
	require.NoError(t, err)

	err = e.svc.ClearScheduleOverride(context.Background(), 2, 2, "2026-03-10")
	require.NoError(t, err)

	// Дата вернулась к недельному шаблону
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	windows, err := e.schedule.ListWindowsForDate(context.Background(), 2, date)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, "09:00", windows[0].StartTime.String())

	err = e.svc.ClearScheduleOverride(context.Background(), 2, 42, "2026-03-10")
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = e.svc.ClearScheduleOverride(context.Background(), 2, 2, "bad-date")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetBarberAndService(t *testing.T) {
	e := newEnv()

	barber, err := e.svc.GetBarber(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Carlos", barber.Name)

	_, err = e.svc.GetBarber(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBarberNotFound)

	service, err := e.svc.GetService(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Corte", service.Name)

	_, err = e.svc.GetService(context.Background(), 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
