package create_appointment

import (
	"time"

	"github.com/svojko1/nechty-sub001/internal/domain"
	createAppointment "github.com/svojko1/nechty-sub001/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	FacilityID   int64  `json:"facilityId"`
	ServiceID    int64  `json:"serviceId"`
	ResourceKind string `json:"resourceKind"` // employee | pedicure

	CustomerName  string  `json:"customerName"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`

	StartTime       *string `json:"startTime,omitempty"` // RFC 3339, пусто - walk-in
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
}

// AppointmentResponse HTTP response model созданной записи
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
	CreatedAt       string   `json:"createdAt"`
}

// QueueEntryResponse HTTP response model для клиента в очереди
type QueueEntryResponse struct {
	ID                   int64  `json:"id"`
	TicketCode           string `json:"ticketCode"`
	FacilityID           int64  `json:"facilityId"`
	Position             int    `json:"position"`
	PeopleAhead          int    `json:"peopleAhead"`
	EstimatedWaitMinutes int    `json:"estimatedWaitMinutes"`
	CreatedAt            string `json:"createdAt"`
}

// CreateAppointmentResponse объединенный ответ: заполнено ровно одно поле
type CreateAppointmentResponse struct {
	Appointment *AppointmentResponse `json:"appointment,omitempty"`
	QueueEntry  *QueueEntryResponse  `json:"queueEntry,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	req := &createAppointment.Request{
		FacilityID:      r.FacilityID,
		ServiceID:       r.ServiceID,
		ResourceKind:    domain.ResourceKind(r.ResourceKind),
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		DurationMinutes: r.DurationMinutes,
	}

	if r.StartTime != nil && *r.StartTime != "" {
		start, err := time.Parse(time.RFC3339, *r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &start
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	out := &CreateAppointmentResponse{}

	if resp.Appointment != nil {
		a := resp.Appointment
		out.Appointment = &AppointmentResponse{
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
			CreatedAt:       a.CreatedAt.Format(time.RFC3339),
		}
	}

	if resp.QueueEntry != nil {
		q := resp.QueueEntry
		out.QueueEntry = &QueueEntryResponse{
			ID:                   q.ID,
			TicketCode:           q.TicketCode,
			FacilityID:           q.FacilityID,
			Position:             q.Position,
			PeopleAhead:          q.PeopleAhead,
			EstimatedWaitMinutes: q.EstimatedWaitMinutes,
			CreatedAt:            q.CreatedAt.Format(time.RFC3339),
		}
	}

	return out
}
