package approve_employee

import (
	"context"
	"errors"
	"net/http"

	"github.com/svojko1/nechty-sub001/internal/api/handlers"
	employeeQueue "github.com/svojko1/nechty-sub001/internal/service/employeequeue"
	"github.com/svojko1/nechty-sub001/internal/service/employeequeue/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgStoreUnavailable   = "хранилище временно недоступно"
)

type EmployeeQueueService interface {
	Approve(ctx context.Context, req *models.ApproveRequest) (*models.EntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service EmployeeQueueService
	logger  Logger
}

func NewHandler(service EmployeeQueueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/employee-queue
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ApproveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /employee-queue - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	entry, err := h.service.Approve(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, employeeQueue.ErrInvalidInput):
			h.logger.Warn("POST /employee-queue - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, employeeQueue.ErrStoreUnavailable):
			h.logger.Error("POST /employee-queue - Store unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("POST /employee-queue - Failed: employee_id=%d, error=%v", req.EmployeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /employee-queue - Approved: entry_id=%d, employee_id=%d", entry.ID, req.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, entry)
}
