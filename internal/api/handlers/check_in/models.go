package check_in

import (
	"time"

	checkIn "github.com/svojko1/nechty-sub001/internal/usecase/check_in"
)

// CheckInRequest HTTP request model
type CheckInRequest struct {
	EntryID int64 `json:"entryId"` // запись очереди сотрудников
}

// AppointmentResponse обновленная запись после начала обслуживания
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	FacilityID      int64  `json:"facilityId"`
	ServiceID       int64  `json:"serviceId"`
	EmployeeID      *int64 `json:"employeeId,omitempty"`
	CustomerName    string `json:"customerName"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
}

// EntryResponse обновленная запись очереди сотрудников
type EntryResponse struct {
	ID                 int64   `json:"id"`
	EmployeeID         int64   `json:"employeeId"`
	FacilityID         int64   `json:"facilityId"`
	IsActive           bool    `json:"isActive"`
	CurrentCustomerID  *int64  `json:"currentCustomerId,omitempty"`
	LastAssignmentTime *string `json:"lastAssignmentTime,omitempty"`
}

// CheckInResponse пара запись + сотрудник после check-in
type CheckInResponse struct {
	Appointment *AppointmentResponse `json:"appointment"`
	Entry       *EntryResponse       `json:"employeeQueueEntry"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkIn.Response) *CheckInResponse {
	a := resp.Appointment
	e := resp.Entry

	out := &CheckInResponse{
		Appointment: &AppointmentResponse{
			ID:              a.ID,
			FacilityID:      a.FacilityID,
			ServiceID:       a.ServiceID,
			EmployeeID:      a.EmployeeID,
			CustomerName:    a.CustomerName,
			StartTime:       a.StartTime.Format(time.RFC3339),
			EndTime:         a.EndTime.Format(time.RFC3339),
			DurationMinutes: a.DurationMinutes,
			Status:          string(a.Status),
		},
		Entry: &EntryResponse{
			ID:                e.ID,
			EmployeeID:        e.EmployeeID,
			FacilityID:        e.FacilityID,
			IsActive:          e.IsActive,
			CurrentCustomerID: e.CurrentCustomerID,
		},
	}

	if e.LastAssignmentTime != nil {
		s := e.LastAssignmentTime.Format(time.RFC3339)
		out.Entry.LastAssignmentTime = &s
	}

	return out
}
