package check_out

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/svojko1/nechty-sub001/internal/api/handlers"
	employeeQueue "github.com/svojko1/nechty-sub001/internal/service/employeequeue"
	"github.com/svojko1/nechty-sub001/internal/service/employeequeue/models"
)

const (
	msgInvalidEntryID   = "некорректный ID записи очереди"
	msgEntryNotFound    = "запись очереди сотрудников не найдена"
	msgStoreUnavailable = "хранилище временно недоступно"
)

type EmployeeQueueService interface {
	CheckOut(ctx context.Context, entryID int64) (*models.EntryResponse, error)
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

// Handle POST /api/v1/employee-queue/{entryId}/check-out
// Принудительное освобождение: выполняется даже если сотрудник
// сейчас обслуживает клиента
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	entryID, err := strconv.ParseInt(vars["entryId"], 10, 64)
	if err != nil || entryID <= 0 {
		h.logger.Warn("POST /employee-queue/{id}/check-out - Invalid entry ID: %s", vars["entryId"])
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	entry, err := h.service.CheckOut(r.Context(), entryID)
	if err != nil {
		switch {
		case errors.Is(err, employeeQueue.ErrEntryNotFound):
			h.logger.Warn("POST /employee-queue/%d/check-out - Entry not found", entryID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, employeeQueue.ErrStoreUnavailable):
			h.logger.Error("POST /employee-queue/%d/check-out - Store unavailable: %v", entryID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("POST /employee-queue/%d/check-out - Failed: %v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /employee-queue/%d/check-out - Checked out: employee_id=%d", entryID, entry.EmployeeID)
	handlers.RespondJSON(w, http.StatusOK, entry)
}
