package check_in

import (
	"github.com/svojko1/nechty-sub001/internal/domain"
)

// Request модель запроса на начало обслуживания
type Request struct {
	AppointmentID int64 // ID записи
	EntryID       int64 // ID записи очереди сотрудников
}

// Response модель ответа с обновленной парой запись + сотрудник
type Response struct {
	Appointment *domain.Appointment
	Entry       *domain.EmployeeQueueEntry
}
