package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/svojko1/nechty-sub001/internal/api/handlers"
	"github.com/svojko1/nechty-sub001/internal/domain"
	"github.com/svojko1/nechty-sub001/internal/service/availability"
	durationSvc "github.com/svojko1/nechty-sub001/internal/service/duration"
)

const (
	msgInvalidFacilityID   = "некорректный ID салона"
	msgInvalidResourceKind = "некорректный вид ресурса, ожидается employee или pedicure"
	msgInvalidStartTime    = "некорректный формат времени начала, ожидается RFC 3339"
	msgInvalidDuration     = "некорректная длительность"
	msgServiceNotFound     = "услуга не найдена"
	msgFacilityNotFound    = "салон не найден"
	msgStoreUnavailable    = "хранилище временно недоступно"
)

// EmployeeSlot свободный сотрудник в запрошенном окне
type EmployeeSlot struct {
	EntryID    int64 `json:"entryId"`
	EmployeeID int64 `json:"employeeId"`
}

// AvailabilityResponse результат проверки доступности
type AvailabilityResponse struct {
	FacilityID      int64  `json:"facilityId"`
	ResourceKind    string `json:"resourceKind"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`

	Employees []EmployeeSlot `json:"employees,omitempty"`

	ChairNumber       *int    `json:"chairNumber,omitempty"`
	TotalChairs       *int    `json:"totalChairs,omitempty"`
	OccupiedCount     *int    `json:"occupiedCount,omitempty"`
	NextAvailableTime *string `json:"nextAvailableTime,omitempty"`
}

type Handler struct {
	availability AvailabilityService
	durations    DurationResolver
	logger       Logger
}

func NewHandler(availabilitySvc AvailabilityService, durations DurationResolver, logger Logger) *Handler {
	return &Handler{
		availability: availabilitySvc,
		durations:    durations,
		logger:       logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/availability
// Query: resourceKind=employee|pedicure, startTime (RFC 3339, по умолчанию
// сейчас), durationMinutes либо serviceId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil || facilityID <= 0 {
		h.logger.Warn("GET /facilities/{id}/availability - Invalid facility ID: %s", vars["facilityId"])
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	kind := domain.ResourceKind(r.URL.Query().Get("resourceKind"))
	if !kind.Valid() {
		h.logger.Warn("GET /facilities/%d/availability - Invalid resource kind: %s", facilityID, kind)
		handlers.RespondBadRequest(w, msgInvalidResourceKind)
		return
	}

	start := time.Now()
	if raw := r.URL.Query().Get("startTime"); raw != "" {
		start, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /facilities/%d/availability - Invalid start time: %s", facilityID, raw)
			handlers.RespondBadRequest(w, msgInvalidStartTime)
			return
		}
	}

	minutes, err := h.resolveMinutes(r)
	if err != nil {
		switch {
		case errors.Is(err, durationSvc.ErrServiceNotFound):
			h.logger.Warn("GET /facilities/%d/availability - Service not found", facilityID)
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, durationSvc.ErrStoreUnavailable):
			h.logger.Error("GET /facilities/%d/availability - Store unavailable: %v", facilityID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)
		default:
			h.logger.Warn("GET /facilities/%d/availability - Invalid duration: %v", facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
		}
		return
	}

	response := &AvailabilityResponse{
		FacilityID:      facilityID,
		ResourceKind:    string(kind),
		StartTime:       start.Format(time.RFC3339),
		DurationMinutes: minutes,
	}

	switch kind {
	case domain.ResourceEmployee:
		entries, err := h.availability.FindAvailableEmployees(r.Context(), facilityID, start, minutes)
		if err != nil {
			h.respondAvailabilityError(w, facilityID, err)
			return
		}

		response.Employees = make([]EmployeeSlot, 0, len(entries))
		for _, entry := range entries {
			response.Employees = append(response.Employees, EmployeeSlot{
				EntryID:    entry.ID,
				EmployeeID: entry.EmployeeID,
			})
		}

	case domain.ResourcePedicure:
		search, err := h.availability.FindAvailablePedicureChair(r.Context(), facilityID, start, minutes)
		if err != nil {
			h.respondAvailabilityError(w, facilityID, err)
			return
		}

		response.ChairNumber = search.ChairNumber
		response.TotalChairs = &search.TotalChairs
		response.OccupiedCount = &search.OccupiedCount
		if search.NextAvailableTime != nil {
			s := search.NextAvailableTime.Format(time.RFC3339)
			response.NextAvailableTime = &s
		}
	}

	h.logger.Info("GET /facilities/%d/availability - kind=%s, window=%s+%dm",
		facilityID, kind, response.StartTime, minutes)
	handlers.RespondJSON(w, http.StatusOK, response)
}

func (h *Handler) resolveMinutes(r *http.Request) (int, error) {
	var explicit *int
	if raw := r.URL.Query().Get("durationMinutes"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, err
		}
		explicit = &parsed
	}

	var serviceID *int64
	if raw := r.URL.Query().Get("serviceId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, err
		}
		serviceID = &parsed
	}

	return h.durations.Resolve(r.Context(), explicit, serviceID)
}

func (h *Handler) respondAvailabilityError(w http.ResponseWriter, facilityID int64, err error) {
	switch {
	case errors.Is(err, availability.ErrFacilityNotFound):
		h.logger.Warn("GET /facilities/%d/availability - Facility not found", facilityID)
		handlers.RespondNotFound(w, msgFacilityNotFound)

	case errors.Is(err, availability.ErrInvalidInput):
		h.logger.Warn("GET /facilities/%d/availability - Invalid input: %v", facilityID, err)
		handlers.RespondBadRequest(w, msgInvalidDuration)

	case errors.Is(err, availability.ErrStoreUnavailable):
		h.logger.Error("GET /facilities/%d/availability - Store unavailable: %v", facilityID, err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

	default:
		h.logger.Error("GET /facilities/%d/availability - Failed: %v", facilityID, err)
		handlers.RespondInternalError(w)
	}
}
