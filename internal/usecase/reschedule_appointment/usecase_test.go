package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
	appointmentRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/appointment"
	"github.com/igestaos-eng/barbearia-inicio/pkg/types"
)

// --- Фейки зависимостей ---

type fakeAppointmentRepo struct {
	appt        *domain.Appointment
	rescheduled *time.Time
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if f.appt == nil || f.appt.ID != id {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	clone := *f.appt
	return &clone, nil
}

func (f *fakeAppointmentRepo) Reschedule(_ context.Context, id int64, scheduledAt time.Time, _ int) error {
	if f.appt == nil || f.appt.ID != id {
		return appointmentRepo.ErrAppointmentNotFound
	}
	f.rescheduled = &scheduledAt
	return nil
}

type fakeScheduleRepo struct {
	windows []domain.WorkingWindow
}

func (f *fakeScheduleRepo) ListWindowsForDate(_ context.Context, _ int64, _ time.Time) ([]domain.WorkingWindow, error) {
	return f.windows, nil
}

// fakeConflictChecker конфликтует со всем, что пересекает busy (кроме excludeID)
type fakeConflictChecker struct {
	busy     []*domain.Appointment
	lastExcl *int64
}

func (f *fakeConflictChecker) HasConflict(_ context.Context, _ int64, start time.Time, durationMinutes int, excludeID *int64) (bool, error) {
	f.lastExcl = excludeID
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	for _, appt := range f.busy {
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}
		if appt.ScheduledAt.Before(end) && appt.EndsAt().After(start) {
			return true, nil
		}
	}
	return false, nil
}

type fakeNotifier struct {
	rescheduledCalls int
	previousStart    time.Time
}

func (f *fakeNotifier) AppointmentRescheduled(_ context.Context, _ *domain.Appointment, previousStart time.Time) {
	f.rescheduledCalls++
	f.previousStart = previousStart
}

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
	conflicts    *fakeConflictChecker
	notifier     *fakeNotifier
	now          time.Time
}

func newEnv() *env {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	appointments := &fakeAppointmentRepo{appt: &domain.Appointment{
		ID:              7,
		CustomerID:      1,
		BarberID:        2,
		ServiceID:       3,
		ScheduledAt:     time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}}

	schedule := &fakeScheduleRepo{windows: []domain.WorkingWindow{{
		BarberID:    2,
		StartTime:   types.MustTimeString("09:00"),
		EndTime:     types.MustTimeString("18:00"),
		IsAvailable: true,
	}}}
	conflicts := &fakeConflictChecker{busy: []*domain.Appointment{appointments.appt}}
	notifier := &fakeNotifier{}

	uc := NewUseCase(
		appointments, schedule, conflicts, nil, notifier, &fakeTxManager{}, 30, nopLogger{},
	).WithTimeProvider(&fixedTime{now: now})

	return &env{uc: uc, appointments: appointments, conflicts: conflicts, notifier: notifier, now: now}
}

// --- Тесты ---

func TestExecute_Success(t *testing.T) {
	e := newEnv()
	newStart := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	resp, err := e.uc.Execute(context.Background(), &Request{
		UserID:        1,
		AppointmentID: 7,
		ScheduledAt:   newStart,
	})
	require.NoError(t, err)

	assert.Equal(t, newStart, resp.ScheduledAt)
	assert.Equal(t, newStart.Add(time.Hour), resp.EndsAt)
	assert.Equal(t, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC), resp.PreviousStart)

	require.NotNil(t, e.appointments.rescheduled)
	assert.Equal(t, newStart, *e.appointments.rescheduled)
	assert.Equal(t, 1, e.notifier.rescheduledCalls)
	assert.Equal(t, resp.PreviousStart, e.notifier.previousStart)
}

func TestExecute_OverlapWithItselfIsAllowed(t *testing.T) {
	e := newEnv()

	// Сдвиг на полчаса: новый интервал 10:30-11:30 перекрывает старый 10:00-11:00,
	// но запись исключается из проверки и перенос проходит
	newStart := time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)
	_, err := e.uc.Execute(context.Background(), &Request{
		UserID:        1,
		AppointmentID: 7,
		ScheduledAt:   newStart,
	})
	require.NoError(t, err)

	require.NotNil(t, e.conflicts.lastExcl)
	assert.Equal(t, int64(7), *e.conflicts.lastExcl)
}

func TestExecute_ConflictWithAnotherAppointment(t *testing.T) {
	e := newEnv()

	e.conflicts.busy = append(e.conflicts.busy, &domain.Appointment{
		ID:              8,
		BarberID:        2,
		ScheduledAt:     time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Status:          domain.StatusPending,
	})

	_, err := e.uc.Execute(context.Background(), &Request{
		UserID:        1,
		AppointmentID: 7,
		ScheduledAt:   time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, e.appointments.rescheduled)
	assert.Zero(t, e.notifier.rescheduledCalls)
}

func TestExecute_AccessControl(t *testing.T) {
	e := newEnv()
	newStart := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	// Посторонний пользователь
	_, err := e.uc.Execute(context.Background(), &Request{
		UserID:        42,
		AppointmentID: 7,
		ScheduledAt:   newStart,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Барбер записи имеет право на перенос
	_, err = e.uc.Execute(context.Background(), &Request{
		UserID:        2,
		AppointmentID: 7,
		ScheduledAt:   newStart,
	})
	assert.NoError(t, err)
}

func TestExecute_StatusForbidsReschedule(t *testing.T) {
	e := newEnv()
	newStart := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	for _, status := range []domain.AppointmentStatus{
		domain.StatusInProgress, domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow,
	} {
		e.appointments.appt.Status = status
		_, err := e.uc.Execute(context.Background(), &Request{
			UserID:        1,
			AppointmentID: 7,
			ScheduledAt:   newStart,
		})
		assert.ErrorIs(t, err, ErrCannotReschedule, "status %s", status)
	}
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Execute(context.Background(), &Request{
		UserID:        1,
		AppointmentID: 99,
		ScheduledAt:   time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_TimeValidation(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Execute(context.Background(), &Request{
		UserID:        1,
		AppointmentID: 7,
		ScheduledAt:   e.now.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrTimeInPast)

	_, err = e.uc.Execute(context.Background(), &Request{
		UserID:        1,
		AppointmentID: 7,
		ScheduledAt:   e.now.AddDate(0, 0, 40),
	})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	e := newEnv()

	// 17:30 + 60 минут выходит за окно до 18:00
	_, err := e.uc.Execute(context.Background(), &Request{
		UserID:        1,
		AppointmentID: 7,
		ScheduledAt:   time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}
