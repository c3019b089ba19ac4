package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// Appointment represents a booked service slot with a barber
type Appointment struct {
	ID              int64
	CustomerID      int64
	BarberID        int64
	ServiceID       int64
	ScheduledAt     time.Time // absolute start, shop-local timezone
	DurationMinutes int
	Status          AppointmentStatus
	Price           float64

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time
	CompletedAt        *time.Time

	ReminderSent   bool
	ReminderSentAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndsAt returns the exclusive end of the appointment interval
func (a *Appointment) EndsAt() time.Time {
	return a.ScheduledAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsBlocking returns true if the appointment occupies the barber's calendar.
// Terminal statuses (completed, cancelled, no_show) never block a slot.
func (a *Appointment) IsBlocking() bool {
	return a.Status == StatusPending ||
		a.Status == StatusConfirmed ||
		a.Status == StatusInProgress
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the appointment can be moved to another slot
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanTransitionTo validates a staff-driven status transition
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch next {
	case StatusConfirmed:
		return a.Status == StatusPending
	case StatusInProgress:
		return a.Status == StatusConfirmed
	case StatusCompleted:
		return a.Status == StatusInProgress
	case StatusNoShow:
		return a.Status == StatusPending || a.Status == StatusConfirmed
	case StatusCancelled:
		return a.CanBeCancelled()
	default:
		return false
	}
}

// IsTerminal returns true when no further transitions are possible
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled || a.Status == StatusNoShow
}

// AppointmentsFilter фильтр для выборки записей барбера
type AppointmentsFilter struct {
	BarberID        int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли завершённые/отменённые записи
}
