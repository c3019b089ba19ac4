package scheduling

import (
	"context"
	"time"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
)

// AppointmentSource читающий интерфейс хранилища записей
type AppointmentSource interface {
	// ListBlocking возвращает записи барбера с блокирующим статусом,
	// пересекающиеся с интервалом [from, to)
	ListBlocking(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.Appointment, error)
}

// ScheduleSource читающий интерфейс расписания барбера
type ScheduleSource interface {
	// ListWindowsForDate возвращает рабочие окна барбера на дату
	// (переопределения на дату имеют приоритет над недельным расписанием)
	ListWindowsForDate(ctx context.Context, barberID int64, date time.Time) ([]domain.WorkingWindow, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
