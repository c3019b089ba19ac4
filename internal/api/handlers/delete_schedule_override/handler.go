package delete_schedule_override

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/igestaos-eng/barbearia-inicio/internal/api/handlers"
	"github.com/igestaos-eng/barbearia-inicio/internal/api/middleware"
	"github.com/igestaos-eng/barbearia-inicio/internal/service/catalog"
)

const (
	msgInvalidBarberID = "некорректный идентификатор барбера"
	msgInvalidDate     = "некорректная дата"
	msgBarberNotFound  = "барбер не найден"
	msgAccessDenied    = "нет прав на изменение расписания"
)

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

// Handle DELETE /api/v1/barbers/{barberId}/schedule/overrides/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "пользователь не аутентифицирован")
		return
	}

	vars := mux.Vars(r)

	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil || barberID <= 0 {
		h.logger.Warn("DELETE /barbers/{id}/schedule/overrides/{date} - Invalid barber id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	date := vars["date"]

	if err := h.service.ClearScheduleOverride(r.Context(), barberID, userID, date); err != nil {
		switch {
		case errors.Is(err, catalog.ErrBarberNotFound):
			h.logger.Warn("DELETE /barbers/%d/schedule/overrides/%s - Barber not found", barberID, date)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("DELETE /barbers/%d/schedule/overrides/%s - Access denied: user=%d", barberID, date, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("DELETE /barbers/%d/schedule/overrides/%s - Invalid date", barberID, date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("DELETE /barbers/%d/schedule/overrides/%s - Failed to clear override: user=%d, error=%v",
				barberID, date, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /barbers/%d/schedule/overrides/%s - Override cleared: user=%d", barberID, date, userID)
	w.WriteHeader(http.StatusNoContent)
}
