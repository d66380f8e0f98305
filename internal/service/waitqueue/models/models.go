package models

import (
	"time"

	"github.com/svojko1/nechty-sub001/internal/domain"
)

// EnqueueRequest запрос на постановку клиента в очередь ожидания
type EnqueueRequest struct {
	FacilityID    int64   `json:"facilityId"`
	ServiceID     int64   `json:"serviceId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
}

// EntryResponse ответ с данными записи очереди и вычисленной позицией
type EntryResponse struct {
	ID                   int64                   `json:"id"`
	TicketCode           string                  `json:"ticketCode"`
	FacilityID           int64                   `json:"facilityId"`
	ServiceID            int64                   `json:"serviceId"`
	CustomerName         string                  `json:"customerName"`
	Status               domain.QueueEntryStatus `json:"status"`
	Position             int                     `json:"position"`
	PeopleAhead          int                     `json:"peopleAhead"`
	EstimatedWaitMinutes int                     `json:"estimatedWaitMinutes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PositionInfo позиция одной записи в моментальном снимке трекера
type PositionInfo struct {
	EntryID              int64  `json:"entryId"`
	TicketCode           string `json:"ticketCode"`
	Position             int    `json:"position"`
	EstimatedWaitMinutes int    `json:"estimatedWaitMinutes"`
}

// FromDomainEntry конвертирует domain модель и позицию в DTO
func FromDomainEntry(e *domain.CustomerQueueEntry, pos *domain.QueuePosition) *EntryResponse {
	if e == nil {
		return nil
	}

	resp := &EntryResponse{
		ID:           e.ID,
		TicketCode:   e.TicketCode,
		FacilityID:   e.FacilityID,
		ServiceID:    e.ServiceID,
		CustomerName: e.CustomerName,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}

	if pos != nil {
		resp.Position = pos.Position
		resp.PeopleAhead = pos.PeopleAhead
		resp.EstimatedWaitMinutes = pos.EstimatedWaitMinutes
	}

	return resp
}
