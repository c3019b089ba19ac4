package catalog

import (
	"context"
	"time"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
)

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
	ListActive(ctx context.Context) ([]*domain.Barber, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	ListActive(ctx context.Context) ([]*domain.Service, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWeekly(ctx context.Context, barberID int64) ([]domain.WorkingHour, error)
	ReplaceWeekly(ctx context.Context, barberID int64, hours []domain.WorkingHour) error
	ListWindowsForDate(ctx context.Context, barberID int64, date time.Time) ([]domain.WorkingWindow, error)
	UpsertOverride(ctx context.Context, override domain.ScheduleOverride) error
	DeleteOverrides(ctx context.Context, barberID int64, date time.Time) error
}

// SlotsCache интерфейс кэша рассчитанных слотов
type SlotsCache interface {
	InvalidateBarber(ctx context.Context, barberID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
