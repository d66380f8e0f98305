package create_appointment

import (
	"time"

	"github.com/svojko1/nechty-sub001/internal/domain"
	wqModels "github.com/svojko1/nechty-sub001/internal/service/waitqueue/models"
)

// Request модель запроса на создание записи или постановку в очередь
type Request struct {
	FacilityID   int64               // ID точки
	ServiceID    int64               // ID услуги
	ResourceKind domain.ResourceKind // employee | pedicure

	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string

	// StartTime == nil означает walk-in: обслуживание начинается сейчас
	StartTime       *time.Time
	DurationMinutes *int // явное переопределение длительности услуги
}

// IsWalkIn возвращает true для клиента без предварительной записи
func (r *Request) IsWalkIn() bool {
	return r.StartTime == nil
}

// Response результат запроса: ровно одно из двух полей заполнено
type Response struct {
	Appointment *domain.Appointment     // создана запись
	QueueEntry  *wqModels.EntryResponse // ресурсов нет, клиент в очереди
}

// Queued возвращает true, если клиент попал в очередь ожидания
func (r *Response) Queued() bool {
	return r.QueueEntry != nil
}
