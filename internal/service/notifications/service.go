package notifications

import (
	"context"
	"time"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service сервис уведомлений
// Пишет уведомления в журнал: интеграция с SMS/почтой подключается
// заменой реализации за тем же интерфейсом
type Service struct {
	logger Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(logger Logger) *Service {
	return &Service{logger: logger}
}

// AppointmentCreated уведомляет клиента о созданной записи
func (s *Service) AppointmentCreated(ctx context.Context, appt *domain.Appointment) {
	s.logger.Info("notification: appointment created id=%d customer=%d barber=%d at %s",
		appt.ID, appt.CustomerID, appt.BarberID, appt.ScheduledAt.Format(time.RFC3339))
}

// AppointmentRescheduled уведомляет клиента о переносе записи
func (s *Service) AppointmentRescheduled(ctx context.Context, appt *domain.Appointment, previousStart time.Time) {
	s.logger.Info("notification: appointment rescheduled id=%d customer=%d from %s to %s",
		appt.ID, appt.CustomerID, previousStart.Format(time.RFC3339), appt.ScheduledAt.Format(time.RFC3339))
}

// AppointmentCancelled уведомляет клиента об отмене записи
func (s *Service) AppointmentCancelled(ctx context.Context, appt *domain.Appointment) {
	reason := "not specified"
	if appt.CancellationReason != nil {
		reason = *appt.CancellationReason
	}
	s.logger.Info("notification: appointment cancelled id=%d customer=%d reason=%q",
		appt.ID, appt.CustomerID, reason)
}

// AppointmentStatusChanged уведомляет клиента о смене статуса записи
func (s *Service) AppointmentStatusChanged(ctx context.Context, appt *domain.Appointment, previous domain.AppointmentStatus) {
	s.logger.Info("notification: appointment id=%d customer=%d status %s -> %s",
		appt.ID, appt.CustomerID, previous, appt.Status)
}

// AppointmentReminder напоминает клиенту о предстоящей записи
func (s *Service) AppointmentReminder(ctx context.Context, appt *domain.Appointment) {
	s.logger.Info("notification: reminder for appointment id=%d customer=%d at %s",
		appt.ID, appt.CustomerID, appt.ScheduledAt.Format(time.RFC3339))
}
