package create_appointment

import (
	"context"
	"time"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ListWindowsForDate(ctx context.Context, barberID int64, date time.Time) ([]domain.WorkingWindow, error)
}

// ConflictChecker интерфейс проверки пересечений с существующими записями
type ConflictChecker interface {
	HasConflict(ctx context.Context, barberID int64, start time.Time, durationMinutes int, excludeID *int64) (bool, error)
}

// SlotsCache интерфейс кэша рассчитанных слотов
type SlotsCache interface {
	InvalidateBarber(ctx context.Context, barberID int64) error
}

// Notifier интерфейс отправки уведомлений клиентам
type Notifier interface {
	AppointmentCreated(ctx context.Context, appt *domain.Appointment)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
