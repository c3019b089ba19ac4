package get_available_slots

import (
	"context"
	"time"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
)

// SlotsCalculator интерфейс калькулятора доступных слотов
type SlotsCalculator interface {
	ComputeSlots(ctx context.Context, barberID int64, date time.Time, durationMinutes, stepMinutes int) ([]domain.Slot, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// SlotsCache интерфейс кэша рассчитанных слотов
type SlotsCache interface {
	Get(ctx context.Context, barberID int64, date time.Time, durationMinutes, stepMinutes int) ([]domain.Slot, error)
	Set(ctx context.Context, barberID int64, date time.Time, durationMinutes, stepMinutes int, computed []domain.Slot) error
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
