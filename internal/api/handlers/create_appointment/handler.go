package create_appointment

import (
	"errors"
	"net/http"

	"github.com/svojko1/nechty-sub001/internal/api/handlers"
	createAppointment "github.com/svojko1/nechty-sub001/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC 3339"
	msgInvalidInput       = "некорректные данные запроса"
	msgServiceNotFound    = "услуга не найдена"
	msgFacilityNotFound   = "салон не найден"
	msgChairTaken         = "кресло занято конкурентной записью"
	msgEmployeeBusy       = "сотрудник уже обслуживает клиента"
	msgStoreUnavailable   = "хранилище временно недоступно"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
// 201 - запись создана, 202 - свободных ресурсов нет, клиент в очереди
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse startTime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrFacilityNotFound):
			h.logger.Warn("POST /appointments - Facility not found: facility_id=%d", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, createAppointment.ErrChairTaken):
			h.logger.Warn("POST /appointments - Chair taken: facility_id=%d", req.FacilityID)
			handlers.RespondError(w, http.StatusConflict, msgChairTaken)

		case errors.Is(err, createAppointment.ErrEmployeeBusy):
			h.logger.Warn("POST /appointments - Employee busy: facility_id=%d", req.FacilityID)
			handlers.RespondError(w, http.StatusConflict, msgEmployeeBusy)

		case errors.Is(err, createAppointment.ErrStoreUnavailable):
			h.logger.Error("POST /appointments - Store unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: facility_id=%d, error=%v",
				req.FacilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	if result.Queued() {
		h.logger.Info("POST /appointments - Customer queued: entry_id=%d, facility_id=%d",
			result.QueueEntry.ID, req.FacilityID)
		handlers.RespondJSON(w, http.StatusAccepted, response)
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, facility_id=%d",
		result.Appointment.ID, req.FacilityID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
