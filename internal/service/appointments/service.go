package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
	appointmentRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/appointment"
	customerRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/customer"
	"github.com/igestaos-eng/barbearia-inicio/internal/service/appointments/models"
	"github.com/igestaos-eng/barbearia-inicio/pkg/ptr"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	customerRepo    CustomerRepository
	slotsCache      SlotsCache
	notifier        Notifier
	timeProvider    TimeProvider
	reminderWindow  time.Duration
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
// slotsCache опционален: при nil сервис работает без кэша слотов
func NewService(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	customerRepo CustomerRepository,
	slotsCache SlotsCache,
	notifier Notifier,
	timeProvider TimeProvider,
	reminderWindow time.Duration,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		customerRepo:    customerRepo,
		slotsCache:      slotsCache,
		notifier:        notifier,
		timeProvider:    timeProvider,
		reminderWindow:  reminderWindow,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Запись видна её клиенту и её барберу
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if appt.CustomerID != userID && appt.BarberID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// GetCustomerAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerAppointments(ctx context.Context, req *models.GetCustomerAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetCustomerAppointments: fetching appointments for customer=%d, status=%v", req.CustomerID, req.Status)

	// Клиент видит только свою историю
	if req.UserID != req.CustomerID {
		s.logger.Warn("GetCustomerAppointments: access denied for user=%d to customer=%d", req.UserID, req.CustomerID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerAppointments: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = ptr.Ptr(status)
	}

	appointments, err := s.appointmentRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerAppointments: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerAppointments: successfully fetched %d appointments for customer=%d", len(appointments), req.CustomerID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetBarberAppointments получает записи барбера с гибкой фильтрацией
// Поддерживает период, статус и включение неактивных записей
func (s *Service) GetBarberAppointments(ctx context.Context, req *models.GetBarberAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("GetBarberAppointments: fetching appointments for barber=%d, user=%d", req.BarberID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBarberAppointments: invalid filter for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByBarberWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBarberAppointments: repository error for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: GetBarberAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBarberAppointments: successfully fetched %d appointments for barber=%d", len(appointments), req.BarberID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Отменить может клиент записи или её барбер, пока статус это допускает
// Отмена освобождает слот: кэш слотов барбера инвалидируется
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", id, req.UserID)

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for appointment id=%d", id)
		return fmt.Errorf("%w: cancellation reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if appt.CustomerID != req.UserID && appt.BarberID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", req.UserID, id)
		return ErrAccessDenied
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appt.Status)
		return ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.invalidateSlots(ctx, appt.BarberID)

	appt.Status = domain.StatusCancelled
	appt.CancellationReason = req.CancellationReason
	s.notifier.AppointmentCancelled(ctx, appt)

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return nil
}

// UpdateStatus переводит запись в новый статус
// Переходы валидируются машиной статусов записи
// Переход в терминальный статус освобождает слот в календаре барбера
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d", id, req.Status, req.UserID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Статусы меняет только барбер записи
	if appt.BarberID != req.UserID {
		s.logger.Warn("UpdateStatus: access denied for user=%d to appointment id=%d", req.UserID, id)
		return ErrAccessDenied
	}

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if !appt.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: invalid transition %s -> %s for appointment id=%d", appt.Status, newStatus, id)
		return ErrInvalidTransition
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	previous := appt.Status
	appt.Status = newStatus

	// Завершённая запись пополняет статистику услуги и клиента
	// Сбой счётчиков не откатывает смену статуса
	if newStatus == domain.StatusCompleted {
		if err := s.serviceRepo.IncrementPopularity(ctx, appt.ServiceID); err != nil {
			s.logger.Warn("UpdateStatus: failed to increment popularity for service=%d: %v", appt.ServiceID, err)
		}
		if err := s.customerRepo.IncrementAppointments(ctx, appt.CustomerID); err != nil && !errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("UpdateStatus: failed to increment appointments for customer=%d: %v", appt.CustomerID, err)
		}
	}

	if appt.IsTerminal() {
		s.invalidateSlots(ctx, appt.BarberID)
	}

	s.notifier.AppointmentStatusChanged(ctx, appt, previous)

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", id, newStatus)
	return nil
}

// DispatchReminders рассылает напоминания о подтверждённых записях,
// начинающихся внутри окна напоминаний
// Повторный вызов идемпотентен: отправленные напоминания помечаются
func (s *Service) DispatchReminders(ctx context.Context) (*models.ReminderDispatchResponse, error) {
	now := s.timeProvider.Now()
	before := now.Add(s.reminderWindow)

	s.logger.Info("DispatchReminders: scanning confirmed appointments between %s and %s",
		now.Format(time.RFC3339), before.Format(time.RFC3339))

	pending, err := s.appointmentRepo.ListPendingReminders(ctx, now, before)
	if err != nil {
		s.logger.Error("DispatchReminders: repository error: %v", err)
		return nil, fmt.Errorf("%w: DispatchReminders - repository error: %v", ErrInternal, err)
	}

	resp := &models.ReminderDispatchResponse{}
	for _, appt := range pending {
		s.notifier.AppointmentReminder(ctx, appt)

		if err := s.appointmentRepo.MarkReminderSent(ctx, appt.ID); err != nil {
			s.logger.Error("DispatchReminders: failed to mark reminder sent for appointment id=%d: %v", appt.ID, err)
			resp.Failed++
			continue
		}
		resp.Dispatched++
	}

	s.logger.Info("DispatchReminders: dispatched=%d failed=%d", resp.Dispatched, resp.Failed)
	return resp, nil
}

// invalidateSlots сбрасывает кэш слотов барбера
// Ошибка кэша не фатальна: значения истекут по TTL
func (s *Service) invalidateSlots(ctx context.Context, barberID int64) {
	if s.slotsCache == nil {
		return
	}
	if err := s.slotsCache.InvalidateBarber(ctx, barberID); err != nil {
		s.logger.Warn("invalidateSlots: failed to invalidate slots cache for barber=%d: %v", barberID, err)
	}
}
