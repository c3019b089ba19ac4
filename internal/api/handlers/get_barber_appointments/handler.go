package get_barber_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/igestaos-eng/barbearia-inicio/internal/api/handlers"
	"github.com/igestaos-eng/barbearia-inicio/internal/api/middleware"
	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
	"github.com/igestaos-eng/barbearia-inicio/internal/service/appointments"
	"github.com/igestaos-eng/barbearia-inicio/internal/service/appointments/models"
	"github.com/igestaos-eng/barbearia-inicio/pkg/ptr"
)

const (
	msgInvalidBarberID = "некорректный идентификатор барбера"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus   = "некорректный статус"
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

// Handle GET /api/v1/barbers/{barberId}/appointments[?from=&to=&status=&includeInactive=]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "пользователь не аутентифицирован")
		return
	}

	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil || barberID <= 0 {
		h.logger.Warn("GET /barbers/{id}/appointments - Invalid barber id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	query := r.URL.Query()

	req := &models.GetBarberAppointmentsRequest{
		UserID:   userID,
		BarberID: barberID,
	}

	if rawFrom := query.Get("from"); rawFrom != "" {
		from, err := time.Parse(domain.DateFormat, rawFrom)
		if err != nil {
			h.logger.Warn("GET /barbers/%d/appointments - Invalid from date %q", barberID, rawFrom)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = ptr.Ptr(from)
	}

	if rawTo := query.Get("to"); rawTo != "" {
		to, err := time.Parse(domain.DateFormat, rawTo)
		if err != nil {
			h.logger.Warn("GET /barbers/%d/appointments - Invalid to date %q", barberID, rawTo)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		// Верхняя граница исключительна: день "to" включается в выборку
		req.EndDate = ptr.Ptr(to.AddDate(0, 0, 1))
	}

	if status := query.Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetBarberAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /barbers/%d/appointments - Invalid filter: %v", barberID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /barbers/%d/appointments - Failed to get appointments: user=%d, error=%v",
				barberID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
