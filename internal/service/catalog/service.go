package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
	barberRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/barber"
	scheduleRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/schedule"
	serviceRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/service"
	"github.com/igestaos-eng/barbearia-inicio/internal/service/catalog/models"
)

// Service сервис каталога: барберы, услуги и расписание
type Service struct {
	barberRepo   BarberRepository
	serviceRepo  ServiceRepository
	scheduleRepo ScheduleRepository
	slotsCache   SlotsCache
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
// slotsCache опционален: при nil сервис работает без кэша слотов
func NewService(
	barberRepo BarberRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	slotsCache SlotsCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		barberRepo:   barberRepo,
		serviceRepo:  serviceRepo,
		scheduleRepo: scheduleRepo,
		slotsCache:   slotsCache,
		txManager:    txManager,
		logger:       logger,
	}
}

// ListBarbers возвращает всех активных барберов
func (s *Service) ListBarbers(ctx context.Context) (*models.BarberListResponse, error) {
	s.logger.Info("ListBarbers: fetching active barbers")

	barbers, err := s.barberRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListBarbers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBarbers - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBarbers: successfully fetched %d barbers", len(barbers))
	return models.FromDomainBarberList(barbers), nil
}

// GetBarber получает барбера по ID
func (s *Service) GetBarber(ctx context.Context, id int64) (*models.BarberResponse, error) {
	s.logger.Info("GetBarber: fetching barber id=%d", id)

	barber, err := s.barberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("GetBarber: barber id=%d not found", id)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("GetBarber: repository error for barber id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetBarber - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBarber(barber), nil
}

// ListServices возвращает все активные услуги, популярные первыми
func (s *Service) ListServices(ctx context.Context) (*models.ServiceListResponse, error) {
	s.logger.Info("ListServices: fetching active services")

	services, err := s.serviceRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServices: successfully fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// GetService получает услугу по ID
func (s *Service) GetService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetService: fetching service id=%d", id)

	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(svc), nil
}

// GetSchedule возвращает недельный шаблон расписания барбера
func (s *Service) GetSchedule(ctx context.Context, barberID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for barber=%d", barberID)

	hours, err := s.scheduleRepo.GetWeekly(ctx, barberID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrBarberNotFound) {
			s.logger.Warn("GetSchedule: barber id=%d not found", barberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("GetSchedule: repository error for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(barberID, hours), nil
}

// UpdateSchedule атомарно заменяет недельный шаблон барбера
// Доступно только самому барберу
// Смена расписания меняет доступность: кэш слотов инвалидируется
func (s *Service) UpdateSchedule(ctx context.Context, barberID int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: updating schedule for barber=%d by user=%d, days=%d", barberID, req.UserID, len(req.Days))

	if req.UserID != barberID {
		s.logger.Warn("UpdateSchedule: access denied for user=%d to barber=%d", req.UserID, barberID)
		return nil, ErrAccessDenied
	}

	hours, err := req.ToDomainHours(barberID)
	if err != nil {
		s.logger.Warn("UpdateSchedule: invalid schedule for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.scheduleRepo.ReplaceWeekly(ctx, barberID, hours)
	})
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrBarberNotFound) {
			s.logger.Warn("UpdateSchedule: barber id=%d not found", barberID)
			return nil, ErrBarberNotFound
		}
		if errors.Is(err, scheduleRepo.ErrInvalidWindow) {
			s.logger.Warn("UpdateSchedule: invalid window for barber=%d: %v", barberID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		s.logger.Error("UpdateSchedule: repository error for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.invalidateSlots(ctx, barberID)

	var updated []domain.WorkingHour
	err = s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.scheduleRepo.GetWeekly(ctx, barberID)
		return err
	})
	if err != nil {
		s.logger.Error("UpdateSchedule: failed to re-read schedule for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule for barber=%d", barberID)
	return models.FromDomainSchedule(barberID, updated), nil
}

// SetScheduleOverride заменяет переопределения расписания барбера на дату
// Пустой список окон делает дату выходным днём
// Доступно только самому барберу; кэш слотов инвалидируется
func (s *Service) SetScheduleOverride(ctx context.Context, barberID int64, req *models.SetOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("SetScheduleOverride: barber=%d, user=%d, date=%s, windows=%d",
		barberID, req.UserID, req.Date, len(req.Windows))

	if req.UserID != barberID {
		s.logger.Warn("SetScheduleOverride: access denied for user=%d to barber=%d", req.UserID, barberID)
		return nil, ErrAccessDenied
	}

	overrides, date, err := req.ToDomainOverrides(barberID)
	if err != nil {
		s.logger.Warn("SetScheduleOverride: invalid override for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Замена атомарна: старые переопределения даты удаляются вместе со вставкой новых
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.scheduleRepo.DeleteOverrides(ctx, barberID, date); err != nil {
			return err
		}
		for _, override := range overrides {
			if err := s.scheduleRepo.UpsertOverride(ctx, override); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrBarberNotFound) {
			s.logger.Warn("SetScheduleOverride: barber id=%d not found", barberID)
			return nil, ErrBarberNotFound
		}
		if errors.Is(err, scheduleRepo.ErrInvalidWindow) {
			s.logger.Warn("SetScheduleOverride: invalid window for barber=%d: %v", barberID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		s.logger.Error("SetScheduleOverride: repository error for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: SetScheduleOverride - repository error: %v", ErrInternal, err)
	}

	s.invalidateSlots(ctx, barberID)

	var windows []domain.WorkingWindow
	err = s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		windows, err = s.scheduleRepo.ListWindowsForDate(ctx, barberID, date)
		return err
	})
	if err != nil {
		s.logger.Error("SetScheduleOverride: failed to re-read windows for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: SetScheduleOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetScheduleOverride: successfully set override for barber=%d on %s", barberID, req.Date)
	return models.FromDomainWindows(barberID, date, windows), nil
}

// ClearScheduleOverride удаляет переопределения барбера на дату,
// возвращая дате недельный шаблон
// Доступно только самому барберу; кэш слотов инвалидируется
func (s *Service) ClearScheduleOverride(ctx context.Context, barberID, userID int64, dateStr string) error {
	s.logger.Info("ClearScheduleOverride: barber=%d, user=%d, date=%s", barberID, userID, dateStr)

	if userID != barberID {
		s.logger.Warn("ClearScheduleOverride: access denied for user=%d to barber=%d", userID, barberID)
		return ErrAccessDenied
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		s.logger.Warn("ClearScheduleOverride: invalid date=%s for barber=%d", dateStr, barberID)
		return fmt.Errorf("%w: %v", ErrInvalidInput, models.ErrInvalidDate)
	}

	if err := s.scheduleRepo.DeleteOverrides(ctx, barberID, date); err != nil {
		if errors.Is(err, scheduleRepo.ErrBarberNotFound) {
			s.logger.Warn("ClearScheduleOverride: barber id=%d not found", barberID)
			return ErrBarberNotFound
		}
		s.logger.Error("ClearScheduleOverride: repository error for barber=%d: %v", barberID, err)
		return fmt.Errorf("%w: ClearScheduleOverride - repository error: %v", ErrInternal, err)
	}

	s.invalidateSlots(ctx, barberID)

	s.logger.Info("ClearScheduleOverride: successfully cleared override for barber=%d on %s", barberID, dateStr)
	return nil
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
