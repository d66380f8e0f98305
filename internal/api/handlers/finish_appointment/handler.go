package finish_appointment

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/svojko1/nechty-sub001/internal/api/handlers"
	"github.com/svojko1/nechty-sub001/internal/domain"
	finishAppointment "github.com/svojko1/nechty-sub001/internal/usecase/finish_appointment"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgAppointmentNotFound  = "запись не найдена"
	msgInvalidState         = "запись не находится в обслуживании"
	msgStoreUnavailable     = "хранилище временно недоступно"
)

// FinishAppointmentRequest HTTP request model
type FinishAppointmentRequest struct {
	Price float64 `json:"price"`
}

// AppointmentResponse завершенная запись
type AppointmentResponse struct {
	ID              int64    `json:"id"`
	FacilityID      int64    `json:"facilityId"`
	ServiceID       int64    `json:"serviceId"`
	EmployeeID      *int64   `json:"employeeId,omitempty"`
	ChairNumber     *int     `json:"chairNumber,omitempty"`
	CustomerName    string   `json:"customerName"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	DurationMinutes int      `json:"durationMinutes"`
	Status          string   `json:"status"`
	Price           *float64 `json:"price,omitempty"`
	UpdatedAt       string   `json:"updatedAt"`
}

type Handler struct {
	useCase FinishAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase FinishAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/finish
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil || appointmentID <= 0 {
		h.logger.Warn("POST /appointments/{id}/finish - Invalid appointment ID: %s", vars["appointmentId"])
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req FinishAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/%d/finish - Invalid request body: %v", appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &finishAppointment.Request{
		AppointmentID: appointmentID,
		Price:         req.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, finishAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/%d/finish - Invalid input: %v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, finishAppointment.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/%d/finish - Appointment not found", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, finishAppointment.ErrInvalidStateTransition):
			h.logger.Warn("POST /appointments/%d/finish - Not in progress", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidState)

		case errors.Is(err, finishAppointment.ErrStoreUnavailable):
			h.logger.Error("POST /appointments/%d/finish - Store unavailable: %v", appointmentID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("POST /appointments/%d/finish - Failed: %v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/%d/finish - Completed, price=%.2f", appointmentID, req.Price)
	handlers.RespondJSON(w, http.StatusOK, fromDomain(result))
}

func fromDomain(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              a.ID,
		FacilityID:      a.FacilityID,
		ServiceID:       a.ServiceID,
		EmployeeID:      a.EmployeeID,
		ChairNumber:     a.ChairNumber,
		CustomerName:    a.CustomerName,
		StartTime:       a.StartTime.Format(time.RFC3339),
		EndTime:         a.EndTime.Format(time.RFC3339),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		Price:           a.Price,
		UpdatedAt:       a.UpdatedAt.Format(time.RFC3339),
	}
}
