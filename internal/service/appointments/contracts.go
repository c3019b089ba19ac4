package appointments

import (
	"context"
	"time"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByCustomerID(ctx context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByBarberWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, reason *string) error
	ListPendingReminders(ctx context.Context, now, before time.Time) ([]*domain.Appointment, error)
	MarkReminderSent(ctx context.Context, id int64) error
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	IncrementPopularity(ctx context.Context, id int64) error
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	IncrementAppointments(ctx context.Context, id int64) error
}

// SlotsCache интерфейс кэша рассчитанных слотов
type SlotsCache interface {
	InvalidateBarber(ctx context.Context, barberID int64) error
}

// Notifier интерфейс отправки уведомлений клиентам
type Notifier interface {
	AppointmentCancelled(ctx context.Context, appt *domain.Appointment)
	AppointmentStatusChanged(ctx context.Context, appt *domain.Appointment, previous domain.AppointmentStatus)
	AppointmentReminder(ctx context.Context, appt *domain.Appointment)
}

// TimeProvider интерфейс источника текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
