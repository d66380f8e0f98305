package domain

import "time"

// EmployeeQueueEntry represents an employee's live-service availability
// at a facility. CurrentCustomerID is the appointment currently assigned;
// nil means the employee is free.
type EmployeeQueueEntry struct {
	ID                 int64
	EmployeeID         int64
	FacilityID         int64
	IsActive           bool
	CurrentCustomerID  *int64
	LastAssignmentTime *time.Time
	CheckOutTime       *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsFree returns true if the entry can take a new customer
func (e *EmployeeQueueEntry) IsFree() bool {
	return e.IsActive && e.CurrentCustomerID == nil
}

// IsPairedWith returns true if the entry currently holds the given appointment
func (e *EmployeeQueueEntry) IsPairedWith(appointmentID int64) bool {
	return e.CurrentCustomerID != nil && *e.CurrentCustomerID == appointmentID
}
