package check_in

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/svojko1/nechty-sub001/internal/api/handlers"
	checkIn "github.com/svojko1/nechty-sub001/internal/usecase/check_in"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgAppointmentNotFound  = "запись не найдена"
	msgEntryNotFound        = "запись очереди сотрудников не найдена"
	msgEmployeeBusy         = "сотрудник уже обслуживает клиента"
	msgEmployeeMismatch     = "запись закреплена за другим сотрудником"
	msgInvalidState         = "запись уже начата или завершена"
	msgStoreUnavailable     = "хранилище временно недоступно"
)

type Handler struct {
	useCase CheckInUseCase
	logger  Logger
}

func NewHandler(useCase CheckInUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/check-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil || appointmentID <= 0 {
		h.logger.Warn("POST /appointments/{id}/check-in - Invalid appointment ID: %s", vars["appointmentId"])
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req CheckInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/%d/check-in - Invalid request body: %v", appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkIn.Request{
		AppointmentID: appointmentID,
		EntryID:       req.EntryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkIn.ErrInvalidInput):
			h.logger.Warn("POST /appointments/%d/check-in - Invalid input: %v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, checkIn.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/%d/check-in - Appointment not found", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, checkIn.ErrEntryNotFound):
			h.logger.Warn("POST /appointments/%d/check-in - Entry not found: entry_id=%d", appointmentID, req.EntryID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, checkIn.ErrEmployeeBusy):
			h.logger.Warn("POST /appointments/%d/check-in - Employee busy: entry_id=%d", appointmentID, req.EntryID)
			handlers.RespondError(w, http.StatusConflict, msgEmployeeBusy)

		case errors.Is(err, checkIn.ErrEmployeeMismatch):
			h.logger.Warn("POST /appointments/%d/check-in - Employee mismatch: entry_id=%d", appointmentID, req.EntryID)
			handlers.RespondError(w, http.StatusConflict, msgEmployeeMismatch)

		case errors.Is(err, checkIn.ErrInvalidStateTransition):
			h.logger.Warn("POST /appointments/%d/check-in - Invalid state transition", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidState)

		case errors.Is(err, checkIn.ErrStoreUnavailable):
			h.logger.Error("POST /appointments/%d/check-in - Store unavailable: %v", appointmentID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("POST /appointments/%d/check-in - Failed: entry_id=%d, error=%v",
				appointmentID, req.EntryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/%d/check-in - Started: employee_id=%d",
		appointmentID, result.Entry.EmployeeID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
