package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
	cache "github.com/igestaos-eng/barbearia-inicio/internal/infra/cache/slots"
	serviceRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/service"
	"github.com/igestaos-eng/barbearia-inicio/internal/scheduling"
)

// --- Фейки зависимостей ---

type fakeCalculator struct {
	slots        []domain.Slot
	err          error
	calls        int
	lastDuration int
}

func (f *fakeCalculator) ComputeSlots(_ context.Context, _ int64, _ time.Time, durationMinutes, _ int) ([]domain.Slot, error) {
	f.calls++
	f.lastDuration = durationMinutes
	return f.slots, f.err
}

type fakeServiceRepo struct {
	service *domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if f.service == nil || f.service.ID != id {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return f.service, nil
}

// fakeSlotsCache хранит одно значение независимо от ключа
type fakeSlotsCache struct {
	stored   []domain.Slot
	hasValue bool
	getErr   error
	setErr   error
	setCalls int
}

func (f *fakeSlotsCache) Get(_ context.Context, _ int64, _ time.Time, _, _ int) ([]domain.Slot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if !f.hasValue {
		return nil, cache.ErrCacheMiss
	}
	return f.stored, nil
}

func (f *fakeSlotsCache) Set(_ context.Context, _ int64, _ time.Time, _, _ int, computed []domain.Slot) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	f.stored = computed
	f.hasValue = true
	return nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Окружение теста ---

var testDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func slotAt(hour, minute, durationMinutes int) domain.Slot {
	start := testDate.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	return domain.Slot{StartTime: start, EndTime: start.Add(time.Duration(durationMinutes) * time.Minute)}
}

type env struct {
	uc         *UseCase
	calculator *fakeCalculator
	services   *fakeServiceRepo
	cache      *fakeSlotsCache
	now        time.Time
}

func newEnv(withCache bool) *env {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	calculator := &fakeCalculator{slots: []domain.Slot{
		slotAt(10, 0, 30),
		slotAt(10, 30, 30),
	}}
	services := &fakeServiceRepo{service: &domain.Service{
		ID: 3, Name: "Corte", DurationMinutes: 30, Price: 50, IsActive: true,
	}}

	var slotsCache SlotsCache
	fake := &fakeSlotsCache{}
	if withCache {
		slotsCache = fake
	}

	uc := NewUseCase(calculator, services, slotsCache, 45, 30, nopLogger{}).
		WithTimeProvider(&fixedTime{now: now})

	return &env{uc: uc, calculator: calculator, services: services, cache: fake, now: now}
}

func validRequest() *Request {
	return &Request{BarberID: 2, ServiceID: 3, Date: testDate}
}

// --- Тесты ---

func TestExecute_ComputeAndCache(t *testing.T) {
	e := newEnv(true)

	resp, err := e.uc.Execute(context.Background(), validRequest(), 15)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "2026-03-10", resp.Date)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, 15, resp.StepMinutes)
	assert.Equal(t, "2026-03-10T10:00:00Z", resp.Slots[0].StartTime)
	assert.Equal(t, "2026-03-10T10:30:00Z", resp.Slots[0].EndTime)

	assert.Equal(t, 1, e.calculator.calls)
	assert.Equal(t, 30, e.calculator.lastDuration, "длительность берётся из услуги")
	assert.Equal(t, 1, e.cache.setCalls, "результат сохраняется в кэш")
}

func TestExecute_FallbackDuration(t *testing.T) {
	e := newEnv(false)
	e.services.service.DurationMinutes = 0

	resp, err := e.uc.Execute(context.Background(), validRequest(), 15)
	require.NoError(t, err)

	assert.Equal(t, 45, resp.DurationMinutes, "услуга без длительности получает значение по умолчанию")
	assert.Equal(t, 45, e.calculator.lastDuration)
}

func TestExecute_CacheHitSkipsCalculator(t *testing.T) {
	e := newEnv(true)
	e.cache.stored = []domain.Slot{slotAt(11, 0, 30)}
	e.cache.hasValue = true

	resp, err := e.uc.Execute(context.Background(), validRequest(), 15)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Total)
	assert.Zero(t, e.calculator.calls)
}

func TestExecute_CacheHitDropsPastSlots(t *testing.T) {
	e := newEnv(true)
	e.cache.stored = []domain.Slot{
		slotAt(9, 0, 30),
		slotAt(9, 30, 30),
		slotAt(10, 0, 30),
	}
	e.cache.hasValue = true

	// Сейчас 09:30 дня запроса: первые два слота уже не предлагаются
	e.uc.WithTimeProvider(&fixedTime{now: testDate.Add(9*time.Hour + 30*time.Minute)})

	resp, err := e.uc.Execute(context.Background(), validRequest(), 15)
	require.NoError(t, err)

	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "2026-03-10T10:00:00Z", resp.Slots[0].StartTime)
}

func TestExecute_CacheFailuresAreNotFatal(t *testing.T) {
	e := newEnv(true)
	e.cache.getErr = cache.ErrCacheUnavailable
	e.cache.setErr = cache.ErrCacheUnavailable

	resp, err := e.uc.Execute(context.Background(), validRequest(), 15)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, e.calculator.calls)
}

func TestExecute_WithoutCache(t *testing.T) {
	e := newEnv(false)

	resp, err := e.uc.Execute(context.Background(), validRequest(), 15)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, e.calculator.calls)
	assert.Zero(t, e.cache.setCalls)
}

func TestExecute_StepOverride(t *testing.T) {
	e := newEnv(false)

	step := 60
	req := validRequest()
	req.StepMinutes = &step

	resp, err := e.uc.Execute(context.Background(), req, 15)
	require.NoError(t, err)
	assert.Equal(t, 60, resp.StepMinutes)

	invalid := 0
	req.StepMinutes = &invalid
	_, err = e.uc.Execute(context.Background(), req, 15)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_DateValidation(t *testing.T) {
	e := newEnv(false)

	req := validRequest()
	req.Date = time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	_, err := e.uc.Execute(context.Background(), req, 15)
	assert.ErrorIs(t, err, ErrDateInPast)

	// Сегодняшняя дата валидна
	req.Date = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	_, err = e.uc.Execute(context.Background(), req, 15)
	assert.NoError(t, err)

	req.Date = time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC)
	_, err = e.uc.Execute(context.Background(), req, 15)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_ServiceChecks(t *testing.T) {
	e := newEnv(false)

	req := validRequest()
	req.ServiceID = 99
	_, err := e.uc.Execute(context.Background(), req, 15)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	e.services.service.IsActive = false
	_, err = e.uc.Execute(context.Background(), validRequest(), 15)
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecute_CalculatorErrorsMapped(t *testing.T) {
	e := newEnv(false)

	e.calculator.err = scheduling.ErrBarberNotFound
	_, err := e.uc.Execute(context.Background(), validRequest(), 15)
	assert.ErrorIs(t, err, ErrBarberNotFound)

	e.calculator.err = scheduling.ErrInvalidArgument
	_, err = e.uc.Execute(context.Background(), validRequest(), 15)
	assert.ErrorIs(t, err, ErrInvalidInput)

	e.calculator.err = errors.New("boom")
	_, err = e.uc.Execute(context.Background(), validRequest(), 15)
	assert.ErrorIs(t, err, ErrInternal)
}
