package employeequeue

import (
	"context"
	"errors"
	"fmt"

	entryRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/employeequeue"
	"github.com/svojko1/nechty-sub001/internal/service/employeequeue/models"
)

// Service административные операции с очередью сотрудников:
// одобрение (вход в очередь) и принудительный выход
type Service struct {
	entryRepo    EmployeeQueueRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса очереди сотрудников
func NewService(entryRepo EmployeeQueueRepository, logger Logger) *Service {
	return &Service{
		entryRepo:    entryRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Approve создает активную запись очереди для одобренного сотрудника
func (s *Service) Approve(ctx context.Context, req *models.ApproveRequest) (*models.EntryResponse, error) {
	s.logger.Info("Approve: employee=%d facility=%d", req.EmployeeID, req.FacilityID)

	if req.EmployeeID <= 0 || req.FacilityID <= 0 {
		return nil, fmt.Errorf("%w: employeeId and facilityId must be positive", ErrInvalidInput)
	}

	entry, err := s.entryRepo.Create(ctx, req.EmployeeID, req.FacilityID)
	if err != nil {
		s.logger.Error("Approve: repository error for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: Approve - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("Approve: created entry id=%d for employee=%d", entry.ID, req.EmployeeID)
	return models.FromDomainEntry(entry), nil
}

// GetByID получает запись очереди по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.EntryResponse, error) {
	entry, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entryRepo.ErrEntryNotFound) {
			s.logger.Warn("GetByID: entry id=%d not found", id)
			return nil, ErrEntryNotFound
		}
		s.logger.Error("GetByID: repository error for entry id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrStoreUnavailable, err)
	}

	return models.FromDomainEntry(entry), nil
}

// CheckOut выполняет принудительный выход сотрудника из очереди
// Запись деактивируется и пара с клиентом снимается независимо от того,
// идет ли сейчас обслуживание - это административное переопределение,
// не подчиняющееся state machine записи
func (s *Service) CheckOut(ctx context.Context, entryID int64) (*models.EntryResponse, error) {
	s.logger.Info("CheckOut: entry id=%d", entryID)

	now := s.timeProvider.Now()

	if err := s.entryRepo.CheckOut(ctx, entryID, now); err != nil {
		if errors.Is(err, entryRepo.ErrEntryNotFound) {
			s.logger.Warn("CheckOut: entry id=%d not found", entryID)
			return nil, ErrEntryNotFound
		}
		s.logger.Error("CheckOut: repository error for entry id=%d: %v", entryID, err)
		return nil, fmt.Errorf("%w: CheckOut - repository error: %v", ErrStoreUnavailable, err)
	}

	entry, err := s.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		s.logger.Error("CheckOut: failed to reload entry id=%d: %v", entryID, err)
		return nil, fmt.Errorf("%w: CheckOut - reload error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("CheckOut: entry id=%d checked out", entryID)
	return models.FromDomainEntry(entry), nil
}
