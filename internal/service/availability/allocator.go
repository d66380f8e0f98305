package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/svojko1/nechty-sub001/internal/domain"
	facilityRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/facility"
	durationSvc "github.com/svojko1/nechty-sub001/internal/service/duration"
)

// FindAvailableEmployees возвращает активные записи очереди сотрудников без
// текущего клиента, свободные в окне [start, start+minutes)
// Список отсортирован по employee_id ASC: выбор "любого" сотрудника - это
// первый элемент, что делает распределение воспроизводимым
func (s *Service) FindAvailableEmployees(ctx context.Context, facilityID int64, start time.Time, minutes int) ([]*domain.EmployeeQueueEntry, error) {
	if err := validateWindow(start, minutes); err != nil {
		return nil, err
	}

	entries, err := s.employeeRepo.ListFree(ctx, facilityID)
	if err != nil {
		s.logger.Error("FindAvailableEmployees: failed to list free entries for facility=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: FindAvailableEmployees - repository error: %v", ErrStoreUnavailable, err)
	}

	available := make([]*domain.EmployeeQueueEntry, 0, len(entries))
	for _, entry := range entries {
		check, err := s.IsResourceFree(ctx, CheckRequest{
			ResourceID: entry.EmployeeID,
			FacilityID: facilityID,
			StartTime:  start,
			Minutes:    minutes,
			Kind:       domain.ResourceEmployee,
		})
		if err != nil {
			return nil, err
		}
		if check.Free {
			available = append(available, entry)
		}
	}

	s.logger.Info("FindAvailableEmployees: facility=%d window=%s+%dm free=%d of %d",
		facilityID, start.Format(time.RFC3339), minutes, len(available), len(entries))

	return available, nil
}

// FindAvailablePedicureChair подбирает педикюрное кресло для окна
// [start, start+minutes): кресла сканируются по возрастанию номера 1..N
// и возвращается первое свободное
// Если свободных нет, ChairNumber=nil, а NextAvailableTime - минимальное
// время окончания среди конфликтующих записей
func (s *Service) FindAvailablePedicureChair(ctx context.Context, facilityID int64, start time.Time, minutes int) (*ChairSearch, error) {
	if err := validateWindow(start, minutes); err != nil {
		return nil, err
	}

	fac, err := s.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("FindAvailablePedicureChair: facility id=%d not found", facilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("FindAvailablePedicureChair: failed to get facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: FindAvailablePedicureChair - repository error: %v", ErrStoreUnavailable, err)
	}

	end, err := durationSvc.ComputeEndTime(start, minutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Все активные педикюрные записи, пересекающие окно
	conflicts, err := s.appointmentRepo.GetOverlapping(ctx, domain.OverlapFilter{
		FacilityID: facilityID,
		OnlyChairs: true,
		Start:      start,
		End:        end,
	})
	if err != nil {
		s.logger.Error("FindAvailablePedicureChair: overlap query failed for facility=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: FindAvailablePedicureChair - repository error: %v", ErrStoreUnavailable, err)
	}

	occupied := make(map[int]bool, len(conflicts))
	for _, appt := range conflicts {
		if appt.ChairNumber != nil {
			occupied[*appt.ChairNumber] = true
		}
	}

	result := &ChairSearch{
		TotalChairs:   fac.PedicureChairs,
		OccupiedCount: len(occupied),
	}

	for chair := 1; chair <= fac.PedicureChairs; chair++ {
		if !occupied[chair] {
			result.ChairNumber = &chair
			break
		}
	}

	if result.ChairNumber == nil {
		// Все кресла заняты - подсказываем, когда освободится первое
		for _, appt := range conflicts {
			if result.NextAvailableTime == nil || appt.EndTime.Before(*result.NextAvailableTime) {
				endTime := appt.EndTime
				result.NextAvailableTime = &endTime
			}
		}
		s.logger.Info("FindAvailablePedicureChair: facility=%d all %d chairs occupied", facilityID, fac.PedicureChairs)
	} else {
		s.logger.Info("FindAvailablePedicureChair: facility=%d chair=%d occupied=%d/%d",
			facilityID, *result.ChairNumber, result.OccupiedCount, fac.PedicureChairs)
	}

	return result, nil
}
