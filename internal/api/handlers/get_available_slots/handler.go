package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/igestaos-eng/barbearia-inicio/internal/api/handlers"
	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
	getAvailableSlots "github.com/igestaos-eng/barbearia-inicio/internal/usecase/get_available_slots"
	"github.com/igestaos-eng/barbearia-inicio/pkg/ptr"
)

const (
	msgInvalidBarberID  = "некорректный идентификатор барбера"
	msgInvalidServiceID = "некорректный параметр serviceId"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStep      = "некорректный параметр step"
	msgBarberNotFound   = "барбер не найден"
	msgServiceNotFound  = "услуга не найдена"
	msgServiceInactive  = "услуга недоступна для записи"
	msgDateInPast       = "дата уже прошла"
	msgDateTooFar       = "дата слишком далеко в будущем"
	msgInvalidInput     = "некорректные входные данные"
)

type Handler struct {
	useCase     GetAvailableSlotsUseCase
	defaultStep int
	logger      Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, defaultStep int, logger Logger) *Handler {
	return &Handler{
		useCase:     useCase,
		defaultStep: defaultStep,
		logger:      logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/available-slots?serviceId=&date=YYYY-MM-DD[&step=]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil || barberID <= 0 {
		h.logger.Warn("GET /barbers/{id}/available-slots - Invalid barber id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	query := r.URL.Query()

	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /barbers/%d/available-slots - Invalid serviceId: %v", barberID, err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /barbers/%d/available-slots - Invalid date: %v", barberID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &getAvailableSlots.Request{
		BarberID:  barberID,
		ServiceID: serviceID,
		Date:      date,
	}

	if rawStep := query.Get("step"); rawStep != "" {
		step, err := strconv.Atoi(rawStep)
		if err != nil || step <= 0 {
			h.logger.Warn("GET /barbers/%d/available-slots - Invalid step %q", barberID, rawStep)
			handlers.RespondBadRequest(w, msgInvalidStep)
			return
		}
		req.StepMinutes = ptr.Ptr(step)
	}

	result, err := h.useCase.Execute(r.Context(), req, h.defaultStep)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrBarberNotFound):
			h.logger.Warn("GET /barbers/%d/available-slots - Barber not found", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /barbers/%d/available-slots - Service not found: service=%d", barberID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceInactive):
			h.logger.Warn("GET /barbers/%d/available-slots - Service inactive: service=%d", barberID, serviceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, getAvailableSlots.ErrDateInPast):
			h.logger.Warn("GET /barbers/%d/available-slots - Date in past", barberID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /barbers/%d/available-slots - Date too far in future", barberID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /barbers/%d/available-slots - Invalid input: %v", barberID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /barbers/%d/available-slots - Failed to compute slots: error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/%d/available-slots - Returned %d slots", barberID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
