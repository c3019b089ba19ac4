package set_schedule_override

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
	msgInvalidOverride    = "некорректное переопределение расписания"
)

// SetOverrideRequest HTTP request model
type SetOverrideRequest struct {
	Date    string                  `json:"date"` // "2025-10-15"
	Windows []models.OverrideWindow `json:"windows"`
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

// Handle PUT /api/v1/barbers/{barberId}/schedule/overrides
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "пользователь не аутентифицирован")
		return
	}

	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil || barberID <= 0 {
		h.logger.Warn("PUT /barbers/{id}/schedule/overrides - Invalid barber id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	var req SetOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /barbers/%d/schedule/overrides - Invalid request body: %v", barberID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.SetOverrideRequest{
		UserID:  userID,
		Date:    req.Date,
		Windows: req.Windows,
	}

	result, err := h.service.SetScheduleOverride(r.Context(), barberID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrBarberNotFound):
			h.logger.Warn("PUT /barbers/%d/schedule/overrides - Barber not found", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PUT /barbers/%d/schedule/overrides - Access denied: user=%d", barberID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /barbers/%d/schedule/overrides - Invalid override: %v", barberID, err)
			handlers.RespondBadRequest(w, msgInvalidOverride)

		default:
			h.logger.Error("PUT /barbers/%d/schedule/overrides - Failed to set override: user=%d, error=%v",
				barberID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /barbers/%d/schedule/overrides - Override set for %s: user=%d", barberID, req.Date, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
