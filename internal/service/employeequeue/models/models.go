package models

import (
	"time"

	"github.com/svojko1/nechty-sub001/internal/domain"
)

// ApproveRequest запрос на одобрение сотрудника (создание записи очереди)
type ApproveRequest struct {
	EmployeeID int64 `json:"employeeId"`
	FacilityID int64 `json:"facilityId"`
}

// EntryResponse ответ с данными записи очереди сотрудников
type EntryResponse struct {
	ID                 int64   `json:"id"`
	EmployeeID         int64   `json:"employeeId"`
	FacilityID         int64   `json:"facilityId"`
	IsActive           bool    `json:"isActive"`
	CurrentCustomerID  *int64  `json:"currentCustomerId,omitempty"`
	LastAssignmentTime *string `json:"lastAssignmentTime,omitempty"` // ISO 8601
	CheckOutTime       *string `json:"checkOutTime,omitempty"`       // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainEntry конвертирует domain модель в DTO
func FromDomainEntry(e *domain.EmployeeQueueEntry) *EntryResponse {
	if e == nil {
		return nil
	}

	resp := &EntryResponse{
		ID:                e.ID,
		EmployeeID:        e.EmployeeID,
		FacilityID:        e.FacilityID,
		IsActive:          e.IsActive,
		CurrentCustomerID: e.CurrentCustomerID,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}

	if e.LastAssignmentTime != nil {
		s := e.LastAssignmentTime.Format(time.RFC3339)
		resp.LastAssignmentTime = &s
	}
	if e.CheckOutTime != nil {
		s := e.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &s
	}

	return resp
}
