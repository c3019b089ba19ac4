package update_barber_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/igestaos-eng/barbearia-inicio/internal/api/handlers"
	"github.com/igestaos-eng/barbearia-inicio/internal/api/middleware"
	"github.com/igestaos-eng/barbearia-inicio/internal/service/catalog"
	"github.com/igestaos-eng/barbearia-inicio/internal/service/catalog/models"
)

const (
	msgInvalidBarberID    = "некорректный идентификатор барбера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBarberNotFound     = "барбер не найден"
	msgAccessDenied       = "нет прав на изменение расписания"
	msgInvalidSchedule    = "некорректное расписание"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	Days []models.WeeklyScheduleDay `json:"days"`
}

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/barbers/{barberId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "пользователь не аутентифицирован")
		return
	}

	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil || barberID <= 0 {
		h.logger.Warn("PUT /barbers/{id}/schedule - Invalid barber id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /barbers/%d/schedule - Invalid request body: %v", barberID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.UpdateScheduleRequest{
		UserID: userID,
		Days:   req.Days,
	}

	result, err := h.service.UpdateSchedule(r.Context(), barberID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrBarberNotFound):
			h.logger.Warn("PUT /barbers/%d/schedule - Barber not found", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PUT /barbers/%d/schedule - Access denied: user=%d", barberID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /barbers/%d/schedule - Invalid schedule: %v", barberID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /barbers/%d/schedule - Failed to update schedule: user=%d, error=%v",
				barberID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /barbers/%d/schedule - Schedule updated: user=%d", barberID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
