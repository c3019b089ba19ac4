package get_available_slots

import (
	"fmt"
	"time"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и в пределах горизонта
func validateDate(date, now time.Time, maxAdvanceDays int) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrDateInPast
	}

	if maxAdvanceDays > 0 {
		maxDate := nowOnly.AddDate(0, 0, maxAdvanceDays)
		if dateOnly.After(maxDate) {
			return fmt.Errorf("%w: can only view %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
		}
	}

	return nil
}

// dropPastSlots отбрасывает слоты, начало которых уже наступило
// Слоты упорядочены по началу: устаревшим может быть только префикс
func dropPastSlots(computed []domain.Slot, now time.Time) []domain.Slot {
	idx := 0
	for idx < len(computed) && !computed[idx].StartTime.After(now) {
		idx++
	}
	return computed[idx:]
}
