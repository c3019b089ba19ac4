package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
	appointmentRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/appointment"
)

var testDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

// pastNow время заведомо раньше всех кандидатов: фильтр прошлого не срабатывает
var pastNow = &fixedTime{now: testDate.Add(-time.Hour)}

func newCalculator(schedule ScheduleSource, appointments AppointmentSource, now TimeProvider) *AvailabilityCalculator {
	return NewAvailabilityCalculator(schedule, appointments).WithTimeProvider(now)
}

func slotStarts(slots []domain.Slot) []string {
	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartTime.Format("15:04"))
	}
	return starts
}

func TestComputeSlots_EmptyDay(t *testing.T) {
	schedule := &fakeScheduleSource{windows: []domain.WorkingWindow{window("10:00", "12:00")}}
	calc := newCalculator(schedule, &fakeAppointmentSource{}, pastNow)

	slots, err := calc.ComputeSlots(context.Background(), 1, testDate, 30, 30)
	require.NoError(t, err)

	assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30"}, slotStarts(slots))
	for _, s := range slots {
		assert.Equal(t, 30, s.DurationMinutes())
	}
}

func TestComputeSlots_NoWindows(t *testing.T) {
	calc := newCalculator(&fakeScheduleSource{}, &fakeAppointmentSource{}, pastNow)

	slots, err := calc.ComputeSlots(context.Background(), 1, testDate, 30, 15)
	require.NoError(t, err)
	assert.Empty(t, slots, "day off is an empty list, not an error")
}

func TestComputeSlots_UnavailableWindowSkipped(t *testing.T) {
	dayOff := window("10:00", "12:00")
	dayOff.IsAvailable = false
	schedule := &fakeScheduleSource{windows: []domain.WorkingWindow{dayOff}}
	calc := newCalculator(schedule, &fakeAppointmentSource{}, pastNow)

	slots, err := calc.ComputeSlots(context.Background(), 1, testDate, 30, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeSlots_BookedIntervalExcluded(t *testing.T) {
	schedule := &fakeScheduleSource{windows: []domain.WorkingWindow{window("09:00", "12:00")}}
	appointments := &fakeAppointmentSource{appointments: []*domain.Appointment{
		apptAt(1, testDate.Add(10*time.Hour), 60, domain.StatusConfirmed),
	}}
	calc := newCalculator(schedule, appointments, pastNow)

	slots, err := calc.ComputeSlots(context.Background(), 1, testDate, 30, 30)
	require.NoError(t, err)

	// 10:00 и 10:30 заняты; 09:30 и 11:00 граничат с записью и остаются
	assert.Equal(t, []string{"09:00", "09:30", "11:00", "11:30"}, slotStarts(slots))
}

func TestComputeSlots_CancelledAppointmentFreesSlot(t *testing.T) {
	schedule := &fakeScheduleSource{windows: []domain.WorkingWindow{window("10:00", "11:00")}}
	appointments := &fakeAppointmentSource{appointments: []*domain.Appointment{
		apptAt(1, testDate.Add(10*time.Hour), 60, domain.StatusCancelled),
	}}
	calc := newCalculator(schedule, appointments, pastNow)

	slots, err := calc.ComputeSlots(context.Background(), 1, testDate, 30, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:30"}, slotStarts(slots))
}

func TestComputeSlots_PastSlotsNeverOffered(t *testing.T) {
	schedule := &fakeScheduleSource{windows: []domain.WorkingWindow{window("09:00", "11:00")}}

	// Сейчас 09:31: слоты 09:00, 09:30 в прошлом, 10:00 и позже доступны
	now := &fixedTime{now: testDate.Add(9*time.Hour + 31*time.Minute)}
	calc := newCalculator(schedule, &fakeAppointmentSource{}, now)

	slots, err := calc.ComputeSlots(context.Background(), 1, testDate, 30, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:30"}, slotStarts(slots))
}

func TestComputeSlots_SlotStartingExactlyNowIsPast(t *testing.T) {
	schedule := &fakeScheduleSource{windows: []domain.WorkingWindow{window("09:00", "10:00")}}

	now := &fixedTime{now: testDate.Add(9 * time.Hour)}
	calc := newCalculator(schedule, &fakeAppointmentSource{}, now)

	slots, err := calc.ComputeSlots(context.Background(), 1, testDate, 30, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:30"}, slotStarts(slots))
}

func TestComputeSlots_DurationMustFitWindow(t *testing.T) {
	schedule := &fakeScheduleSource{windows: []domain.WorkingWindow{window("10:00", "11:00")}}
	calc := newCalculator(schedule, &fakeAppointmentSource{}, pastNow)

	// Услуга 45 минут: 10:15 закончилась бы в 11:00 ровно и ещё помещается,
	// 10:30 вышла бы за окно
	slots, err := calc.ComputeSlots(context.Background(), 1, testDate, 45, 15)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:15"}, slotStarts(slots))
}

func TestComputeSlots_OverlappingWindowsDeduplicated(t *testing.T) {
	schedule := &fakeScheduleSource{windows: []domain.WorkingWindow{
		window("10:00", "12:00"),
		window("11:00", "13:00"),
	}}
	calc := newCalculator(schedule, &fakeAppointmentSource{}, pastNow)

	slots, err := calc.ComputeSlots(context.Background(), 1, testDate, 60, 60)
	require.NoError(t, err)

	// 11:00 попадает в оба окна, но предлагается один раз
	assert.Equal(t, []string{"10:00", "11:00", "12:00"}, slotStarts(slots))
}

func TestComputeSlots_SortedAcrossWindows(t *testing.T) {
	// Окна заданы в обратном порядке
	schedule := &fakeScheduleSource{windows: []domain.WorkingWindow{
		window("14:00", "15:00"),
		window("09:00", "10:00"),
	}}
	calc := newCalculator(schedule, &fakeAppointmentSource{}, pastNow)

	slots, err := calc.ComputeSlots(context.Background(), 1, testDate, 30, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "14:00", "14:30"}, slotStarts(slots))
}

func TestComputeSlots_DeterministicOnUnchangedData(t *testing.T) {
	schedule := &fakeScheduleSource{windows: []domain.WorkingWindow{window("09:00", "12:00")}}
	appointments := &fakeAppointmentSource{appointments: []*domain.Appointment{
		apptAt(1, testDate.Add(10*time.Hour), 30, domain.StatusPending),
	}}
	calc := newCalculator(schedule, appointments, pastNow)

	first, err := calc.ComputeSlots(context.Background(), 1, testDate, 30, 15)
	require.NoError(t, err)

	second, err := calc.ComputeSlots(context.Background(), 1, testDate, 30, 15)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeSlots_BookingShrinksAvailability(t *testing.T) {
	schedule := &fakeScheduleSource{windows: []domain.WorkingWindow{window("09:00", "12:00")}}
	appointments := &fakeAppointmentSource{}
	calc := newCalculator(schedule, appointments, pastNow)

	before, err := calc.ComputeSlots(context.Background(), 1, testDate, 30, 30)
	require.NoError(t, err)

	// Бронируем один из предложенных слотов
	appointments.appointments = append(appointments.appointments,
		apptAt(1, testDate.Add(10*time.Hour), 30, domain.StatusPending))

	after, err := calc.ComputeSlots(context.Background(), 1, testDate, 30, 30)
	require.NoError(t, err)

	assert.Len(t, after, len(before)-1)
	assert.NotContains(t, slotStarts(after), "10:00")
}

func TestComputeSlots_InvalidArguments(t *testing.T) {
	calc := newCalculator(&fakeScheduleSource{}, &fakeAppointmentSource{}, pastNow)

	_, err := calc.ComputeSlots(context.Background(), 1, testDate, 0, 15)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = calc.ComputeSlots(context.Background(), 1, testDate, 30, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestComputeSlots_BarberNotFound(t *testing.T) {
	schedule := &fakeScheduleSource{err: appointmentRepo.ErrBarberNotFound}
	calc := newCalculator(schedule, &fakeAppointmentSource{}, pastNow)

	_, err := calc.ComputeSlots(context.Background(), 99, testDate, 30, 15)
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestComputeSlots_StorageFailure(t *testing.T) {
	schedule := &fakeScheduleSource{windows: []domain.WorkingWindow{window("09:00", "10:00")}}
	appointments := &fakeAppointmentSource{err: errors.New("connection refused")}
	calc := newCalculator(schedule, appointments, pastNow)

	_, err := calc.ComputeSlots(context.Background(), 1, testDate, 30, 15)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}
