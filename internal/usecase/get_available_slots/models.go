package get_available_slots

import (
	"time"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
)

// Request модель запроса доступных слотов
type Request struct {
	BarberID    int64     // ID барбера
	ServiceID   int64     // ID услуги (задаёт длительность слота)
	Date        time.Time // Дата (без времени)
	StepMinutes *int      // Шаг генерации кандидатов (опционально, из query)
}

// SlotResponse один доступный слот
type SlotResponse struct {
	StartTime string `json:"startTime"` // RFC 3339
	EndTime   string `json:"endTime"`   // RFC 3339
}

// Response модель ответа со списком доступных слотов
type Response struct {
	BarberID        int64           `json:"barberId"`
	ServiceID       int64           `json:"serviceId"`
	Date            string          `json:"date"` // "2025-10-15"
	DurationMinutes int             `json:"durationMinutes"`
	StepMinutes     int             `json:"stepMinutes"`
	Slots           []*SlotResponse `json:"slots"`
	Total           int             `json:"total"`
}

// buildResponse конвертирует слоты в response
func buildResponse(req *Request, durationMinutes, stepMinutes int, computed []domain.Slot) *Response {
	items := make([]*SlotResponse, 0, len(computed))
	for _, slot := range computed {
		items = append(items, &SlotResponse{
			StartTime: slot.StartTime.Format(time.RFC3339),
			EndTime:   slot.EndTime.Format(time.RFC3339),
		})
	}

	return &Response{
		BarberID:        req.BarberID,
		ServiceID:       req.ServiceID,
		Date:            req.Date.Format(domain.DateFormat),
		DurationMinutes: durationMinutes,
		StepMinutes:     stepMinutes,
		Slots:           items,
		Total:           len(items),
	}
}
