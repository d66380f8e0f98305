package get_queue_position

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/svojko1/nechty-sub001/internal/api/handlers"
	waitQueue "github.com/svojko1/nechty-sub001/internal/service/waitqueue"
	"github.com/svojko1/nechty-sub001/internal/service/waitqueue/models"
)

const (
	msgInvalidEntryID   = "некорректный ID записи очереди"
	msgEntryNotFound    = "запись очереди не найдена"
	msgStoreUnavailable = "хранилище временно недоступно"
)

type WaitQueueService interface {
	Position(ctx context.Context, entryID int64) (*models.EntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service WaitQueueService
	logger  Logger
}

func NewHandler(service WaitQueueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/queue/{entryId}/position
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	entryID, err := strconv.ParseInt(vars["entryId"], 10, 64)
	if err != nil || entryID <= 0 {
		h.logger.Warn("GET /queue/{id}/position - Invalid entry ID: %s", vars["entryId"])
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	entry, err := h.service.Position(r.Context(), entryID)
	if err != nil {
		switch {
		case errors.Is(err, waitQueue.ErrEntryNotFound):
			h.logger.Warn("GET /queue/%d/position - Entry not found", entryID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, waitQueue.ErrStoreUnavailable):
			h.logger.Error("GET /queue/%d/position - Store unavailable: %v", entryID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("GET /queue/%d/position - Failed: %v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, entry)
}
