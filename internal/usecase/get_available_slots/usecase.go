package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
	cache "github.com/igestaos-eng/barbearia-inicio/internal/infra/cache/slots"
	serviceRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/service"
	"github.com/igestaos-eng/barbearia-inicio/internal/scheduling"
)

// UseCase use case для получения доступных слотов барбера на дату
type UseCase struct {
	calculator      SlotsCalculator
	serviceRepo     ServiceRepository
	slotsCache      SlotsCache
	timeProvider    TimeProvider
	defaultDuration int
	maxAdvanceDays  int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// slotsCache опционален: при nil каждый запрос считает слоты заново
func NewUseCase(
	calculator SlotsCalculator,
	serviceRepo ServiceRepository,
	slotsCache SlotsCache,
	defaultDurationMinutes int,
	maxAdvanceDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		calculator:      calculator,
		serviceRepo:     serviceRepo,
		slotsCache:      slotsCache,
		timeProvider:    &RealTimeProvider{},
		defaultDuration: defaultDurationMinutes,
		maxAdvanceDays:  maxAdvanceDays,
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
// Чтение через кэш: ключ детерминирован входами расчёта, значение
// при попадании дополнительно фильтруется от уже прошедших слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request, defaultStepMinutes int) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: barber=%d, service=%d, date=%s",
		req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация даты относительно текущего момента и горизонта
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now, uc.maxAdvanceDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Длительность слота задаётся услугой
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	durationMinutes := service.DurationMinutes
	if durationMinutes <= 0 {
		uc.logger.Warn("GetAvailableSlots: service id=%d has no duration, falling back to %d minutes",
			req.ServiceID, uc.defaultDuration)
		durationMinutes = uc.defaultDuration
	}

	stepMinutes := defaultStepMinutes
	if req.StepMinutes != nil {
		stepMinutes = *req.StepMinutes
	}
	if stepMinutes <= 0 {
		return nil, fmt.Errorf("%w: step must be positive", ErrInvalidInput)
	}

	// 4. Попытка чтения из кэша
	if uc.slotsCache != nil {
		cached, err := uc.slotsCache.Get(ctx, req.BarberID, req.Date, durationMinutes, stepMinutes)
		if err == nil {
			// Значение могло быть рассчитано до наступления части слотов
			fresh := dropPastSlots(cached, now)
			uc.logger.Info("GetAvailableSlots: cache hit for barber=%d, %d slots", req.BarberID, len(fresh))
			return buildResponse(req, durationMinutes, stepMinutes, fresh), nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			uc.logger.Warn("GetAvailableSlots: cache read failed for barber=%d: %v", req.BarberID, err)
		}
	}

	// 5. Расчёт на свежем снимке данных
	computed, err := uc.calculator.ComputeSlots(ctx, req.BarberID, req.Date, durationMinutes, stepMinutes)
	if err != nil {
		if errors.Is(err, scheduling.ErrBarberNotFound) {
			uc.logger.Warn("GetAvailableSlots: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		if errors.Is(err, scheduling.ErrInvalidArgument) {
			uc.logger.Warn("GetAvailableSlots: invalid calculator input: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailableSlots: calculator failed for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	// 6. Запись в кэш; сбой не мешает отдать результат
	if uc.slotsCache != nil {
		if err := uc.slotsCache.Set(ctx, req.BarberID, req.Date, durationMinutes, stepMinutes, computed); err != nil {
			uc.logger.Warn("GetAvailableSlots: cache write failed for barber=%d: %v", req.BarberID, err)
		}
	}

	uc.logger.Info("GetAvailableSlots: computed %d slots for barber=%d on %s",
		len(computed), req.BarberID, req.Date.Format(domain.DateFormat))

	return buildResponse(req, durationMinutes, stepMinutes, computed), nil
}
