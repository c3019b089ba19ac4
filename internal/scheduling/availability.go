package scheduling

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
	appointmentRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/appointment"
	"github.com/igestaos-eng/barbearia-inicio/pkg/interval"
)

// AvailabilityCalculator вычисляет доступные для записи слоты барбера на дату
// Кандидаты генерируются по рабочим окнам с заданным шагом и фильтруются
// по конфликтам и по текущему времени
// Чистый запрос без состояния: каждый вызов работает на свежем снимке данных
type AvailabilityCalculator struct {
	schedule     ScheduleSource
	appointments AppointmentSource
	timeProvider TimeProvider
}

// NewAvailabilityCalculator создает калькулятор доступности
func NewAvailabilityCalculator(schedule ScheduleSource, appointments AppointmentSource) *AvailabilityCalculator {
	return &AvailabilityCalculator{
		schedule:     schedule,
		appointments: appointments,
		timeProvider: &RealTimeProvider{},
	}
}

// WithTimeProvider подменяет источник текущего времени (для тестов)
func (c *AvailabilityCalculator) WithTimeProvider(tp TimeProvider) *AvailabilityCalculator {
	c.timeProvider = tp
	return c
}

// ComputeSlots возвращает упорядоченный список доступных слотов барбера
// на дату date для услуги длительностью durationMinutes
// stepMinutes задаёт шаг генерации кандидатов
//
// Пустой список (не ошибка) возвращается, когда у барбера нет рабочих окон,
// все окна недоступны либо все кандидаты конфликтуют или уже в прошлом
func (c *AvailabilityCalculator) ComputeSlots(
	ctx context.Context,
	barberID int64,
	date time.Time,
	durationMinutes int,
	stepMinutes int,
) ([]domain.Slot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: durationMinutes must be positive, got %d", ErrInvalidArgument, durationMinutes)
	}
	if stepMinutes <= 0 {
		return nil, fmt.Errorf("%w: stepMinutes must be positive, got %d", ErrInvalidArgument, stepMinutes)
	}

	windows, err := c.schedule.ListWindowsForDate(ctx, barberID, date)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrBarberNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrBarberNotFound, barberID)
		}
		return nil, fmt.Errorf("%w: list working windows: %v", ErrDataUnavailable, err)
	}

	if len(windows) == 0 {
		return []domain.Slot{}, nil
	}

	// Записи выбираются один раз на весь день; записи соседних дней,
	// заходящие в этот день, попадают в выборку за счёт точного условия в хранилище
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	booked, err := c.appointments.ListBlocking(ctx, barberID, dayStart, dayEnd)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrBarberNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrBarberNotFound, barberID)
		}
		return nil, fmt.Errorf("%w: list blocking appointments: %v", ErrDataUnavailable, err)
	}

	now := c.timeProvider.Now()

	// Окна могут граничить или пересекаться; на один момент старта не больше одного слота
	seen := make(map[int64]struct{})
	slots := make([]domain.Slot, 0)

	for _, window := range windows {
		if !window.IsAvailable || !window.IsValid() {
			continue
		}

		windowEnd := window.EndTime.At(date)

		for cursor := window.StartTime.At(date); ; cursor = cursor.Add(time.Duration(stepMinutes) * time.Minute) {
			candidate := interval.FromDuration(cursor, durationMinutes)
			if candidate.End.After(windowEnd) {
				break
			}

			// Слот в прошлом или "прямо сейчас" никогда не предлагается
			if !cursor.After(now) {
				continue
			}

			if overlapsAny(booked, candidate, nil) {
				continue
			}

			key := cursor.Unix()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			slots = append(slots, domain.Slot{StartTime: candidate.Start, EndTime: candidate.End})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})

	return slots, nil
}
