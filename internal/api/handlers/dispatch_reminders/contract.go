package dispatch_reminders

import (
	"context"

	"github.com/igestaos-eng/barbearia-inicio/internal/service/appointments/models"
)

type AppointmentsService interface {
	DispatchReminders(ctx context.Context) (*models.ReminderDispatchResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
