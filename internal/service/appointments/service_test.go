package appointments

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
	appointmentRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/appointment"
	"github.com/igestaos-eng/barbearia-inicio/internal/service/appointments/models"
)

// --- Фейки зависимостей ---

type fakeAppointmentRepo struct {
	byID          map[int64]*domain.Appointment
	cancelled     []int64
	statusUpdates map[int64]domain.AppointmentStatus
	reminders     []*domain.Appointment
	markFailsFor  map[int64]bool
	markedSent    []int64
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		byID:          make(map[int64]*domain.Appointment),
		statusUpdates: make(map[int64]domain.AppointmentStatus),
		markFailsFor:  make(map[int64]bool),
	}
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	clone := *appt
	return &clone, nil
}

func (f *fakeAppointmentRepo) GetByCustomerID(_ context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, appt := range f.byID {
		if appt.CustomerID != customerID {
			continue
		}
		if status != nil && appt.Status != *status {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) GetByBarberWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, appt := range f.byID {
		if appt.BarberID != filter.BarberID {
			continue
		}
		if !filter.IncludeInactive && appt.IsTerminal() {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	appt, ok := f.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = status
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id int64, reason *string) error {
	appt, ok := f.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = domain.StatusCancelled
	appt.CancellationReason = reason
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeAppointmentRepo) ListPendingReminders(_ context.Context, _, _ time.Time) ([]*domain.Appointment, error) {
	return f.reminders, nil
}

func (f *fakeAppointmentRepo) MarkReminderSent(_ context.Context, id int64) error {
	if f.markFailsFor[id] {
		return errors.New("update failed")
	}
	f.markedSent = append(f.markedSent, id)
	return nil
}

type fakeServiceRepo struct {
	popularity map[int64]int
	err        error
}

func (f *fakeServiceRepo) IncrementPopularity(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.popularity[id]++
	return nil
}

type fakeCustomerRepo struct {
	counts map[int64]int
}

func (f *fakeCustomerRepo) IncrementAppointments(_ context.Context, id int64) error {
	f.counts[id]++
	return nil
}

type fakeSlotsCache struct {
	invalidated []int64
}

func (f *fakeSlotsCache) InvalidateBarber(_ context.Context, barberID int64) error {
	f.invalidated = append(f.invalidated, barberID)
	return nil
}

type fakeNotifier struct {
	cancelled     int
	statusChanged int
	reminders     int
	lastPrevious  domain.AppointmentStatus
}

func (f *fakeNotifier) AppointmentCancelled(_ context.Context, _ *domain.Appointment) {
	f.cancelled++
}

func (f *fakeNotifier) AppointmentStatusChanged(_ context.Context, _ *domain.Appointment, previous domain.AppointmentStatus) {
	f.statusChanged++
	f.lastPrevious = previous
}

func (f *fakeNotifier) AppointmentReminder(_ context.Context, _ *domain.Appointment) {
	f.reminders++
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
	svc          *Service
	appointments *fakeAppointmentRepo
	services     *fakeServiceRepo
	customers    *fakeCustomerRepo
	cache        *fakeSlotsCache
	notifier     *fakeNotifier
	now          time.Time
}

func newEnv() *env {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	appointments := newFakeAppointmentRepo()
	appointments.byID[7] = &domain.Appointment{
		ID:              7,
		CustomerID:      1,
		BarberID:        2,
		ServiceID:       3,
		ScheduledAt:     time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}

	services := &fakeServiceRepo{popularity: make(map[int64]int)}
	customers := &fakeCustomerRepo{counts: make(map[int64]int)}
	cache := &fakeSlotsCache{}
	notifier := &fakeNotifier{}

	svc := NewService(
		appointments, services, customers, cache, notifier,
		&fixedTime{now: now}, 24*time.Hour, nopLogger{},
	)

	return &env{
		svc:          svc,
		appointments: appointments,
		services:     services,
		customers:    customers,
		cache:        cache,
		notifier:     notifier,
		now:          now,
	}
}

// --- Тесты ---

func TestGetByID_Access(t *testing.T) {
	e := newEnv()

	// Клиент записи
	resp, err := e.svc.GetByID(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)

	// Барбер записи
	_, err = e.svc.GetByID(context.Background(), 7, 2)
	assert.NoError(t, err)

	// Посторонний пользователь
	_, err = e.svc.GetByID(context.Background(), 7, 42)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = e.svc.GetByID(context.Background(), 99, 1)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetCustomerAppointments_OnlyOwnHistory(t *testing.T) {
	e := newEnv()

	resp, err := e.svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		UserID:     1,
		CustomerID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	_, err = e.svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		UserID:     42,
		CustomerID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetCustomerAppointments_InvalidStatus(t *testing.T) {
	e := newEnv()

	bad := "vanished"
	_, err := e.svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		UserID:     1,
		CustomerID: 1,
		Status:     &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	e := newEnv()

	reason := "não consigo comparecer"
	err := e.svc.Cancel(context.Background(), 7, &models.CancelAppointmentRequest{
		UserID:             1,
		CancellationReason: &reason,
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{7}, e.appointments.cancelled)
	assert.Equal(t, []int64{2}, e.cache.invalidated, "отмена освобождает слот барбера")
	assert.Equal(t, 1, e.notifier.cancelled)
}

func TestCancel_AccessAndStatus(t *testing.T) {
	e := newEnv()

	err := e.svc.Cancel(context.Background(), 7, &models.CancelAppointmentRequest{UserID: 42})
	assert.ErrorIs(t, err, ErrAccessDenied)

	e.appointments.byID[7].Status = domain.StatusInProgress
	err = e.svc.Cancel(context.Background(), 7, &models.CancelAppointmentRequest{UserID: 1})
	assert.ErrorIs(t, err, ErrCannotCancel)

	err = e.svc.Cancel(context.Background(), 99, &models.CancelAppointmentRequest{UserID: 1})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	e := newEnv()

	reason := strings.Repeat("a", domain.MaxCancellationReasonLength+1)
	err := e.svc.Cancel(context.Background(), 7, &models.CancelAppointmentRequest{
		UserID:             1,
		CancellationReason: &reason,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, e.appointments.cancelled)
}

func TestUpdateStatus_OnlyBarber(t *testing.T) {
	e := newEnv()

	err := e.svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
		UserID: 1, // клиент записи, не барбер
		Status: string(domain.StatusInProgress),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = e.svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
		UserID: 2,
		Status: string(domain.StatusInProgress),
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, e.appointments.statusUpdates[7])
	assert.Equal(t, 1, e.notifier.statusChanged)
	assert.Equal(t, domain.StatusConfirmed, e.notifier.lastPrevious)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	e := newEnv()

	// confirmed -> completed без in_progress запрещён
	err := e.svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
		UserID: 2,
		Status: string(domain.StatusCompleted),
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Zero(t, e.notifier.statusChanged)
}

func TestUpdateStatus_CompletedUpdatesCounters(t *testing.T) {
	e := newEnv()
	e.appointments.byID[7].Status = domain.StatusInProgress

	err := e.svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
		UserID: 2,
		Status: string(domain.StatusCompleted),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, e.services.popularity[3], "популярность услуги растёт")
	assert.Equal(t, 1, e.customers.counts[1], "счётчик записей клиента растёт")
	assert.Equal(t, []int64{2}, e.cache.invalidated, "терминальный статус освобождает слот")
}

func TestUpdateStatus_CounterFailureDoesNotFail(t *testing.T) {
	e := newEnv()
	e.appointments.byID[7].Status = domain.StatusInProgress
	e.services.err = errors.New("deadlock")

	err := e.svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
		UserID: 2,
		Status: string(domain.StatusCompleted),
	})
	assert.NoError(t, err, "сбой счётчика не откатывает смену статуса")
	assert.Equal(t, domain.StatusCompleted, e.appointments.statusUpdates[7])
}

func TestUpdateStatus_ConfirmDoesNotInvalidateCache(t *testing.T) {
	e := newEnv()
	e.appointments.byID[7].Status = domain.StatusPending

	err := e.svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
		UserID: 2,
		Status: string(domain.StatusConfirmed),
	})
	require.NoError(t, err)
	assert.Empty(t, e.cache.invalidated, "подтверждение не меняет занятость")
}

func TestDispatchReminders(t *testing.T) {
	e := newEnv()
	e.appointments.reminders = []*domain.Appointment{
		{ID: 10, Status: domain.StatusConfirmed},
		{ID: 11, Status: domain.StatusConfirmed},
		{ID: 12, Status: domain.StatusConfirmed},
	}
	e.appointments.markFailsFor[11] = true

	resp, err := e.svc.DispatchReminders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Dispatched)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, 3, e.notifier.reminders)
	assert.Equal(t, []int64{10, 12}, e.appointments.markedSent)
}
