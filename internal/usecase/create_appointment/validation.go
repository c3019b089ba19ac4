package create_appointment

import (
	"fmt"
	"time"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
	"github.com/igestaos-eng/barbearia-inicio/pkg/interval"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduledAt is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateScheduledAt проверяет время записи относительно текущего момента
// и горизонта бронирования
func validateScheduledAt(scheduledAt, now time.Time, maxAdvanceDays int) error {
	if !scheduledAt.After(now) {
		return ErrTimeInPast
	}

	if maxAdvanceDays > 0 {
		horizon := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
			AddDate(0, 0, maxAdvanceDays+1)
		if !scheduledAt.Before(horizon) {
			return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
		}
	}

	return nil
}

// fitsWorkingWindows проверяет, что интервал записи целиком помещается
// хотя бы в одно доступное рабочее окно
func fitsWorkingWindows(windows []domain.WorkingWindow, date time.Time, candidate interval.Interval) bool {
	for _, window := range windows {
		if !window.IsAvailable || !window.IsValid() {
			continue
		}

		windowStart := window.StartTime.At(date)
		windowEnd := window.EndTime.At(date)

		if !candidate.Start.Before(windowStart) && !candidate.End.After(windowEnd) {
			return true
		}
	}
	return false
}
