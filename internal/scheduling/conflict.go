package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
	appointmentRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/appointment"
	"github.com/igestaos-eng/barbearia-inicio/pkg/interval"
)

// ConflictDetector решает, пересекается ли интервал-кандидат
// с существующими активными записями барбера
// Чистое чтение: детерминирован на одном снимке данных, без side effects
type ConflictDetector struct {
	appointments AppointmentSource
}

// NewConflictDetector создает детектор конфликтов поверх хранилища записей
func NewConflictDetector(appointments AppointmentSource) *ConflictDetector {
	return &ConflictDetector{appointments: appointments}
}

// HasConflict проверяет, пересекается ли интервал [start, start+durationMinutes)
// хотя бы с одной активной записью барбера
// excludeID исключает запись из проверки (повторная проверка при переносе записи)
func (d *ConflictDetector) HasConflict(
	ctx context.Context,
	barberID int64,
	start time.Time,
	durationMinutes int,
	excludeID *int64,
) (bool, error) {
	if durationMinutes <= 0 {
		return false, fmt.Errorf("%w: durationMinutes must be positive, got %d", ErrInvalidArgument, durationMinutes)
	}

	candidate := interval.FromDuration(start, durationMinutes)

	existing, err := d.appointments.ListBlocking(ctx, barberID, candidate.Start, candidate.End)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrBarberNotFound) {
			return false, fmt.Errorf("%w: id=%d", ErrBarberNotFound, barberID)
		}
		return false, fmt.Errorf("%w: list blocking appointments: %v", ErrDataUnavailable, err)
	}

	return overlapsAny(existing, candidate, excludeID), nil
}

// overlapsAny проверяет пересечение кандидата с любой из записей
// Граничные случаи (конец одной записи равен началу другой) пересечением НЕ считаются:
// интервалы полуоткрытые, [10:00,11:00) и [11:00,12:00) совместимы
func overlapsAny(appointments []*domain.Appointment, candidate interval.Interval, excludeID *int64) bool {
	for _, appt := range appointments {
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}
		// Фильтр по статусу применяется и здесь: хранилище обязано отдавать
		// только блокирующие записи, но предикат от этого не зависит
		if !appt.IsBlocking() {
			continue
		}
		if interval.FromDuration(appt.ScheduledAt, appt.DurationMinutes).Overlaps(candidate) {
			return true
		}
	}
	return false
}
