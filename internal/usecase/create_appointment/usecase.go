package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
	barberRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/barber"
	customerRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/customer"
	serviceRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/service"
	"github.com/igestaos-eng/barbearia-inicio/internal/scheduling"
	"github.com/igestaos-eng/barbearia-inicio/pkg/interval"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	barberRepo      BarberRepository
	serviceRepo     ServiceRepository
	customerRepo    CustomerRepository
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
	barberRepo BarberRepository,
	serviceRepo ServiceRepository,
	customerRepo CustomerRepository,
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
		barberRepo:      barberRepo,
		serviceRepo:     serviceRepo,
		customerRepo:    customerRepo,
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

// Execute выполняет use case создания записи
// Проверка конфликта и вставка выполняются в одной сериализуемой транзакции:
// две конкурирующие брони на один слот не могут зафиксироваться обе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: customer=%d, barber=%d, service=%d, at=%s",
		req.UserID, req.BarberID, req.ServiceID, req.ScheduledAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация времени записи
	now := uc.timeProvider.Now()
	if err := validateScheduledAt(req.ScheduledAt, now, uc.maxAdvanceDays); err != nil {
		uc.logger.Warn("CreateAppointment: scheduled time validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем барбера
	barber, err := uc.barberRepo.GetByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			uc.logger.Warn("CreateAppointment: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}

	if !barber.IsActive {
		uc.logger.Warn("CreateAppointment: barber id=%d is not active", req.BarberID)
		return nil, ErrBarberInactive
	}

	// 4. Получаем услугу: длительность и цена фиксируются на момент брони
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CreateAppointment: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	if !service.HasValidDuration() {
		uc.logger.Error("CreateAppointment: service id=%d has invalid duration=%d", req.ServiceID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service has invalid duration", ErrInternal)
	}

	// 5. Проверяем существование клиента
	if _, err := uc.customerRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateAppointment: customer id=%d not found", req.UserID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get customer id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	// 6. Проверка рабочих окон, конфликта и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Запись обязана помещаться в рабочее окно барбера
		windows, err := uc.scheduleRepo.ListWindowsForDate(txCtx, req.BarberID, req.ScheduledAt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get working windows: %v", err)
			return fmt.Errorf("%w: failed to get working windows: %v", ErrInternal, err)
		}

		candidate := interval.FromDuration(req.ScheduledAt, service.DurationMinutes)
		if !fitsWorkingWindows(windows, req.ScheduledAt, candidate) {
			uc.logger.Warn("CreateAppointment: slot %s is outside working hours for barber=%d",
				req.ScheduledAt.Format(time.RFC3339), req.BarberID)
			return ErrOutsideWorkingHours
		}

		// 6.2. Проверяем пересечения; блокирующие строки дня берутся FOR UPDATE
		hasConflict, err := uc.conflicts.HasConflict(txCtx, req.BarberID, req.ScheduledAt, service.DurationMinutes, nil)
		if err != nil {
			if errors.Is(err, scheduling.ErrBarberNotFound) {
				return ErrBarberNotFound
			}
			uc.logger.Error("CreateAppointment: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}

		if hasConflict {
			uc.logger.Warn("CreateAppointment: slot %s conflicts for barber=%d",
				req.ScheduledAt.Format(time.RFC3339), req.BarberID)
			return ErrSlotConflict
		}

		// 6.3. Создаем запись
		appt := &domain.Appointment{
			CustomerID:      req.UserID,
			BarberID:        req.BarberID,
			ServiceID:       req.ServiceID,
			ScheduledAt:     req.ScheduledAt,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			Price:           service.Price,
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 7. Новая запись занимает слот: кэш слотов барбера устарел
	uc.invalidateSlots(ctx, req.BarberID)

	// 8. Уведомляем клиента
	uc.notifier.AppointmentCreated(ctx, result)

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		CustomerID:      result.CustomerID,
		BarberID:        result.BarberID,
		ServiceID:       result.ServiceID,
		ScheduledAt:     result.ScheduledAt,
		EndsAt:          result.EndsAt(),
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		Price:           result.Price,
		BarberName:      barber.Name,
		ServiceName:     service.Name,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
	}, nil
}

// invalidateSlots сбрасывает кэш слотов барбера
// Ошибка кэша не фатальна: значения истекут по TTL
func (uc *UseCase) invalidateSlots(ctx context.Context, barberID int64) {
	if uc.slotsCache == nil {
		return
	}
	if err := uc.slotsCache.InvalidateBarber(ctx, barberID); err != nil {
		uc.logger.Warn("CreateAppointment: failed to invalidate slots cache for barber=%d: %v", barberID, err)
	}
}
