package delete_schedule_override

import "context"

type CatalogService interface {
	ClearScheduleOverride(ctx context.Context, barberID, userID int64, date string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
