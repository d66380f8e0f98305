package availability

import (
	"time"

	"github.com/svojko1/nechty-sub001/internal/domain"
)

// CheckRequest параметры проверки занятости одного ресурса
type CheckRequest struct {
	ResourceID  int64               // employee_id, для педикюра - вместе с креслом
	FacilityID  int64               // ID точки
	StartTime   time.Time           // Начало запрошенного окна
	Minutes     int                 // Длительность окна в минутах
	Kind        domain.ResourceKind // employee | pedicure
	ChairNumber *int                // Номер кресла (только для педикюра)
}

// ResourceCheck результат проверки занятости ресурса
type ResourceCheck struct {
	Free      bool                  // Свободен ли ресурс в запрошенном окне
	Conflicts []*domain.Appointment // Конфликтующие записи (для диагностики)
}

// ChairSearch результат подбора педикюрного кресла
type ChairSearch struct {
	ChairNumber   *int // Наименьший свободный номер кресла, nil - все заняты
	TotalChairs   int  // Вместимость точки
	OccupiedCount int  // Количество занятых кресел в окне

	// Минимальное время окончания среди конфликтующих записей, когда все
	// кресла заняты. Подсказка, а не гарантия
	NextAvailableTime *time.Time
}
