package reschedule_appointment

import (
	"time"

	rescheduleAppointment "github.com/igestaos-eng/barbearia-inicio/internal/usecase/reschedule_appointment"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	ScheduledAt string `json:"scheduledAt"` // RFC 3339
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	CustomerID      int64  `json:"customerId"`
	BarberID        int64  `json:"barberId"`
	ServiceID       int64  `json:"serviceId"`
	ScheduledAt     string `json:"scheduledAt"`
	EndsAt          string `json:"endsAt"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	PreviousStart   string `json:"previousStart"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(userID, appointmentID int64) (*rescheduleAppointment.Request, error) {
	scheduledAt, err := time.Parse(time.RFC3339, r.ScheduledAt)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		UserID:        userID,
		AppointmentID: appointmentID,
		ScheduledAt:   scheduledAt,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		BarberID:        resp.BarberID,
		ServiceID:       resp.ServiceID,
		ScheduledAt:     resp.ScheduledAt.Format(time.RFC3339),
		EndsAt:          resp.EndsAt.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		PreviousStart:   resp.PreviousStart.Format(time.RFC3339),
	}
}
