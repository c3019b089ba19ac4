package dispatch_reminders

import (
	"net/http"

	"github.com/igestaos-eng/barbearia-inicio/internal/api/handlers"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/internal/reminders/dispatch
// Вызывается планировщиком (cron), не клиентами
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.DispatchReminders(r.Context())
	if err != nil {
		h.logger.Error("POST /internal/reminders/dispatch - Failed to dispatch reminders: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/reminders/dispatch - Dispatched %d reminders, %d failed",
		result.Dispatched, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
