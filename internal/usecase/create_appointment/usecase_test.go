package create_appointment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
	barberRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/barber"
	customerRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/customer"
	serviceRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/service"
	"github.com/igestaos-eng/barbearia-inicio/pkg/types"
)

// --- Фейки зависимостей ---

type fakeAppointmentRepo struct {
	created *domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	clone := *appt
	clone.ID = 101
	clone.CreatedAt = time.Now()
	f.created = &clone
	return &clone, nil
}

type fakeBarberRepo struct {
	barber *domain.Barber
}

func (f *fakeBarberRepo) GetByID(_ context.Context, id int64) (*domain.Barber, error) {
	if f.barber == nil || f.barber.ID != id {
		return nil, barberRepo.ErrBarberNotFound
	}
	return f.barber, nil
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

type fakeCustomerRepo struct {
	customer *domain.Customer
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	if f.customer == nil || f.customer.ID != id {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return f.customer, nil
}

type fakeScheduleRepo struct {
	windows []domain.WorkingWindow
}

func (f *fakeScheduleRepo) ListWindowsForDate(_ context.Context, _ int64, _ time.Time) ([]domain.WorkingWindow, error) {
	return f.windows, nil
}

type fakeConflictChecker struct {
	conflict bool
	err      error
}

func (f *fakeConflictChecker) HasConflict(_ context.Context, _ int64, _ time.Time, _ int, _ *int64) (bool, error) {
	return f.conflict, f.err
}

type fakeNotifier struct {
	createdCalls int
}

func (f *fakeNotifier) AppointmentCreated(_ context.Context, _ *domain.Appointment) {
	f.createdCalls++
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

type env struct {
	uc           *UseCase
	appointments *fakeAppointmentRepo
	barbers      *fakeBarberRepo
	services     *fakeServiceRepo
	conflicts    *fakeConflictChecker
	notifier     *fakeNotifier
	now          time.Time
}

func newEnv() *env {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	appointments := &fakeAppointmentRepo{}
	barbers := &fakeBarberRepo{barber: &domain.Barber{ID: 2, Name: "Carlos", IsActive: true}}
	services := &fakeServiceRepo{service: &domain.Service{
		ID: 3, Name: "Corte", DurationMinutes: 30, Price: 50, IsActive: true,
	}}
	customers := &fakeCustomerRepo{customer: &domain.Customer{ID: 1, Name: "João"}}
	schedule := &fakeScheduleRepo{windows: []domain.WorkingWindow{{
		BarberID:    2,
		StartTime:   types.MustTimeString("09:00"),
		EndTime:     types.MustTimeString("18:00"),
		IsAvailable: true,
	}}}
	conflicts := &fakeConflictChecker{}
	notifier := &fakeNotifier{}

	uc := NewUseCase(
		appointments, barbers, services, customers, schedule,
		conflicts, nil, notifier, &fakeTxManager{}, 30, nopLogger{},
	).WithTimeProvider(&fixedTime{now: now})

	return &env{
		uc:           uc,
		appointments: appointments,
		barbers:      barbers,
		services:     services,
		conflicts:    conflicts,
		notifier:     notifier,
		now:          now,
	}
}

func validRequest(e *env) *Request {
	return &Request{
		UserID:      1,
		BarberID:    2,
		ServiceID:   3,
		ScheduledAt: e.now.Add(22 * time.Hour), // завтра 10:00
	}
}

// --- Тесты ---

func TestExecute_Success(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), validRequest(e))
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, 50.0, resp.Price, "цена фиксируется из услуги")
	assert.Equal(t, "Carlos", resp.BarberName)
	assert.Equal(t, "Corte", resp.ServiceName)
	assert.Equal(t, resp.ScheduledAt.Add(30*time.Minute), resp.EndsAt)
	assert.Equal(t, 1, e.notifier.createdCalls)

	require.NotNil(t, e.appointments.created)
	assert.Equal(t, domain.StatusPending, e.appointments.created.Status)
}

func TestExecute_SlotConflict(t *testing.T) {
	e := newEnv()
	e.conflicts.conflict = true

	_, err := e.uc.Execute(context.Background(), validRequest(e))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, e.appointments.created, "запись не создаётся при конфликте")
	assert.Zero(t, e.notifier.createdCalls)
}

func TestExecute_TimeInPast(t *testing.T) {
	e := newEnv()

	req := validRequest(e)
	req.ScheduledAt = e.now.Add(-time.Hour)
	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTimeInPast)

	// Момент "прямо сейчас" тоже прошлое
	req.ScheduledAt = e.now
	_, err = e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTimeInPast)
}

func TestExecute_TooFarInFuture(t *testing.T) {
	e := newEnv()

	req := validRequest(e)
	req.ScheduledAt = e.now.AddDate(0, 0, 31)
	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)

	// Последний день горизонта ещё доступен
	req.ScheduledAt = time.Date(2026, 4, 8, 10, 0, 0, 0, time.UTC)
	_, err = e.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	e := newEnv()

	// 17:45 + 30 минут выходит за окно до 18:00
	req := validRequest(e)
	req.ScheduledAt = time.Date(2026, 3, 10, 17, 45, 0, 0, time.UTC)
	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	// 17:30 + 30 минут заканчивается ровно в 18:00 и помещается
	req.ScheduledAt = time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC)
	_, err = e.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_BarberChecks(t *testing.T) {
	e := newEnv()

	req := validRequest(e)
	req.BarberID = 99
	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBarberNotFound)

	e.barbers.barber.IsActive = false
	_, err = e.uc.Execute(context.Background(), validRequest(e))
	assert.ErrorIs(t, err, ErrBarberInactive)
}

func TestExecute_ServiceChecks(t *testing.T) {
	e := newEnv()

	req := validRequest(e)
	req.ServiceID = 99
	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	e.services.service.IsActive = false
	_, err = e.uc.Execute(context.Background(), validRequest(e))
	assert.ErrorIs(t, err, ErrServiceInactive)

	e2 := newEnv()
	e2.services.service.DurationMinutes = 0
	_, err = e2.uc.Execute(context.Background(), validRequest(e2))
	assert.ErrorIs(t, err, ErrInternal, "услуга с некорректной длительностью не бронируется")
}

func TestExecute_CustomerNotFound(t *testing.T) {
	e := newEnv()

	req := validRequest(e)
	req.UserID = 99
	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	e := newEnv()

	tests := []struct {
		name   string
		modify func(*Request)
	}{
		{"zero user", func(r *Request) { r.UserID = 0 }},
		{"negative barber", func(r *Request) { r.BarberID = -1 }},
		{"zero service", func(r *Request) { r.ServiceID = 0 }},
		{"zero time", func(r *Request) { r.ScheduledAt = time.Time{} }},
		{"notes too long", func(r *Request) {
			notes := strings.Repeat("a", domain.MaxNotesLength+1)
			r.Notes = &notes
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(e)
			tt.modify(req)
			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
