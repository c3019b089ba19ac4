package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
	appointmentRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/appointment"
	"github.com/igestaos-eng/barbearia-inicio/internal/scheduling"
	"github.com/igestaos-eng/barbearia-inicio/pkg/interval"
)

// UseCase use case для переноса записи на новое время
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	conflicts       ConflictChecker
	slotsCache      SlotsCache
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	maxAdvanceDays  int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// slotsCache опционален: при nil кэш слотов не используется
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	conflicts ConflictChecker,
	slotsCache SlotsCache,
	notifier Notifier,
	txManager TransactionManager,
	maxAdvanceDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		conflicts:       conflicts,
		slotsCache:      slotsCache,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		maxAdvanceDays:  maxAdvanceDays,
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case переноса записи
// Проверка конфликта исключает саму переносимую запись:
// перенос внутри собственного интервала (например, сдвиг на полчаса
// с частичным перекрытием старого времени) валиден
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, user=%d, newTime=%s",
		req.AppointmentID, req.UserID, req.ScheduledAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация нового времени
	now := uc.timeProvider.Now()
	if err := validateScheduledAt(req.ScheduledAt, now, uc.maxAdvanceDays); err != nil {
		uc.logger.Warn("RescheduleAppointment: scheduled time validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment
	var previousStart time.Time

	// 3. Чтение, проверки и обновление в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// Перенести может клиент записи или её барбер
		if appt.CustomerID != req.UserID && appt.BarberID != req.UserID {
			uc.logger.Warn("RescheduleAppointment: access denied for user=%d to appointment id=%d",
				req.UserID, req.AppointmentID)
			return ErrAccessDenied
		}

		if !appt.CanBeRescheduled() {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d cannot be rescheduled, status=%s",
				req.AppointmentID, appt.Status)
			return ErrCannotReschedule
		}

		// Новый интервал обязан помещаться в рабочее окно барбера
		windows, err := uc.scheduleRepo.ListWindowsForDate(txCtx, appt.BarberID, req.ScheduledAt)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get working windows: %v", err)
			return fmt.Errorf("%w: failed to get working windows: %v", ErrInternal, err)
		}

		candidate := interval.FromDuration(req.ScheduledAt, appt.DurationMinutes)
		if !fitsWorkingWindows(windows, req.ScheduledAt, candidate) {
			uc.logger.Warn("RescheduleAppointment: slot %s is outside working hours for barber=%d",
				req.ScheduledAt.Format(time.RFC3339), appt.BarberID)
			return ErrOutsideWorkingHours
		}

		// Проверяем пересечения, исключив саму запись
		hasConflict, err := uc.conflicts.HasConflict(txCtx, appt.BarberID, req.ScheduledAt, appt.DurationMinutes, &appt.ID)
		if err != nil {
			if errors.Is(err, scheduling.ErrBarberNotFound) {
				uc.logger.Warn("RescheduleAppointment: barber id=%d not found", appt.BarberID)
				return fmt.Errorf("%w: barber not found: %v", ErrInternal, err)
			}
			uc.logger.Error("RescheduleAppointment: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}

		if hasConflict {
			uc.logger.Warn("RescheduleAppointment: slot %s conflicts for barber=%d",
				req.ScheduledAt.Format(time.RFC3339), appt.BarberID)
			return ErrSlotConflict
		}

		if err := uc.appointmentRepo.Reschedule(txCtx, appt.ID, req.ScheduledAt, appt.DurationMinutes); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to reschedule appointment id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to reschedule appointment: %v", ErrInternal, err)
		}

		previousStart = appt.ScheduledAt
		appt.ScheduledAt = req.ScheduledAt
		result = appt
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 4. Перенос меняет занятость в обе стороны: кэш слотов барбера устарел
	uc.invalidateSlots(ctx, result.BarberID)

	// 5. Уведомляем клиента
	uc.notifier.AppointmentRescheduled(ctx, result, previousStart)

	uc.logger.Info("RescheduleAppointment: successfully rescheduled appointment id=%d from %s to %s",
		result.ID, previousStart.Format(time.RFC3339), result.ScheduledAt.Format(time.RFC3339))

	return &Response{
		ID:              result.ID,
		CustomerID:      result.CustomerID,
		BarberID:        result.BarberID,
		ServiceID:       result.ServiceID,
		ScheduledAt:     result.ScheduledAt,
		EndsAt:          result.EndsAt(),
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		PreviousStart:   previousStart,
	}, nil
}

// invalidateSlots сбрасывает кэш слотов барбера
// Ошибка кэша не фатальна: значения истекут по TTL
func (uc *UseCase) invalidateSlots(ctx context.Context, barberID int64) {
	if uc.slotsCache == nil {
		return
	}
	if err := uc.slotsCache.InvalidateBarber(ctx, barberID); err != nil {
		uc.logger.Warn("RescheduleAppointment: failed to invalidate slots cache for barber=%d: %v", barberID, err)
	}
}
