package waitqueue

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/svojko1/nechty-sub001/internal/domain"
	queueRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/customerqueue"
	"github.com/svojko1/nechty-sub001/internal/service/waitqueue/models"
)

// Service операции с очередью ожидания клиентов: постановка,
// позиция, отмена и перевод в assigned при назначении ресурса
type Service struct {
	queueRepo    CustomerQueueRepository
	tickets      TicketGenerator
	timeProvider TimeProvider
	logger       Logger

	waitPerPersonMinutes int
	minWaitMinutes       int
}

// UUIDTicketGenerator генерирует код талона из первого блока UUID
type UUIDTicketGenerator struct{}

// NewTicketCode возвращает короткий код вида "W-1b9d6bcd"
func (g *UUIDTicketGenerator) NewTicketCode() string {
	return "W-" + uuid.NewString()[:8]
}

// NewService создает новый экземпляр сервиса очереди ожидания
func NewService(queueRepo CustomerQueueRepository, waitPerPersonMinutes, minWaitMinutes int, logger Logger) *Service {
	if waitPerPersonMinutes <= 0 {
		waitPerPersonMinutes = domain.DefaultWaitPerPersonMinutes
	}
	if minWaitMinutes <= 0 {
		minWaitMinutes = domain.DefaultMinWaitMinutes
	}

	return &Service{
		queueRepo:            queueRepo,
		tickets:              &UUIDTicketGenerator{},
		timeProvider:         &RealTimeProvider{},
		logger:               logger,
		waitPerPersonMinutes: waitPerPersonMinutes,
		minWaitMinutes:       minWaitMinutes,
	}
}

// Enqueue ставит клиента в очередь ожидания и возвращает запись
// с вычисленной позицией. Позиция не сохраняется в хранилище
func (s *Service) Enqueue(ctx context.Context, req *models.EnqueueRequest) (*models.EntryResponse, error) {
	s.logger.Info("Enqueue: facility=%d service=%d customer=%s", req.FacilityID, req.ServiceID, req.CustomerName)

	if req.FacilityID <= 0 || req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: facilityId and serviceId must be positive", ErrInvalidInput)
	}
	if req.CustomerName == "" {
		return nil, fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	entry := &domain.CustomerQueueEntry{
		TicketCode:    s.tickets.NewTicketCode(),
		FacilityID:    req.FacilityID,
		ServiceID:     req.ServiceID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	}

	created, err := s.queueRepo.Create(ctx, entry)
	if err != nil {
		s.logger.Error("Enqueue: repository error for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: Enqueue - repository error: %v", ErrStoreUnavailable, err)
	}

	pos, err := s.positionOf(ctx, created)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Enqueue: created entry id=%d ticket=%s position=%d", created.ID, created.TicketCode, pos.Position)
	return models.FromDomainEntry(created, pos), nil
}

// Position возвращает запись с актуальной позицией и оценкой ожидания
func (s *Service) Position(ctx context.Context, entryID int64) (*models.EntryResponse, error) {
	entry, err := s.getEntry(ctx, entryID, "Position")
	if err != nil {
		return nil, err
	}

	if !entry.IsWaiting() {
		// позиция имеет смысл только для ожидающих, для остальных отдаем
		// запись без позиции
		return models.FromDomainEntry(entry, nil), nil
	}

	pos, err := s.positionOf(ctx, entry)
	if err != nil {
		return nil, err
	}

	return models.FromDomainEntry(entry, pos), nil
}

// Cancel переводит запись из waiting в cancelled
func (s *Service) Cancel(ctx context.Context, entryID int64) (*models.EntryResponse, error) {
	s.logger.Info("Cancel: entry id=%d", entryID)

	if err := s.queueRepo.UpdateStatus(ctx, entryID, domain.QueueStatusWaiting, domain.QueueStatusCancelled); err != nil {
		if errors.Is(err, queueRepo.ErrStatusConflict) {
			s.logger.Warn("Cancel: entry id=%d is not waiting", entryID)
			return nil, ErrEntryNotWaiting
		}
		s.logger.Error("Cancel: repository error for entry id=%d: %v", entryID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrStoreUnavailable, err)
	}

	entry, err := s.getEntry(ctx, entryID, "Cancel")
	if err != nil {
		return nil, err
	}

	return models.FromDomainEntry(entry, nil), nil
}

// MarkAssigned переводит запись из waiting в assigned. Вызывается при
// назначении освободившегося ресурса клиенту из очереди
func (s *Service) MarkAssigned(ctx context.Context, entryID int64) error {
	if err := s.queueRepo.UpdateStatus(ctx, entryID, domain.QueueStatusWaiting, domain.QueueStatusAssigned); err != nil {
		if errors.Is(err, queueRepo.ErrStatusConflict) {
			return ErrEntryNotWaiting
		}
		return fmt.Errorf("%w: MarkAssigned - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("MarkAssigned: entry id=%d assigned", entryID)
	return nil
}

// EstimateWait оценивает ожидание по числу людей впереди:
// max(peopleAhead * waitPerPersonMinutes, minWaitMinutes)
func (s *Service) EstimateWait(peopleAhead int) int {
	estimate := peopleAhead * s.waitPerPersonMinutes
	if estimate < s.minWaitMinutes {
		return s.minWaitMinutes
	}
	return estimate
}

func (s *Service) positionOf(ctx context.Context, entry *domain.CustomerQueueEntry) (*domain.QueuePosition, error) {
	peopleAhead, err := s.queueRepo.CountEarlierWaiting(ctx, entry)
	if err != nil {
		s.logger.Error("positionOf: count error for entry id=%d: %v", entry.ID, err)
		return nil, fmt.Errorf("%w: positionOf - repository error: %v", ErrStoreUnavailable, err)
	}

	return &domain.QueuePosition{
		PeopleAhead:          peopleAhead,
		Position:             peopleAhead + 1,
		EstimatedWaitMinutes: s.EstimateWait(peopleAhead),
	}, nil
}

func (s *Service) getEntry(ctx context.Context, entryID int64, op string) (*domain.CustomerQueueEntry, error) {
	entry, err := s.queueRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, queueRepo.ErrEntryNotFound) {
			s.logger.Warn("%s: entry id=%d not found", op, entryID)
			return nil, ErrEntryNotFound
		}
		s.logger.Error("%s: repository error for entry id=%d: %v", op, entryID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrStoreUnavailable, op, err)
	}

	return entry, nil
}
