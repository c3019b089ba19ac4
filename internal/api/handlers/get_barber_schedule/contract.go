package get_barber_schedule

import (
	"context"

	"github.com/igestaos-eng/barbearia-inicio/internal/service/catalog/models"
)

type CatalogService interface {
	GetSchedule(ctx context.Context, barberID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
