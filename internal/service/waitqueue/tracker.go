package waitqueue

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/svojko1/nechty-sub001/internal/service/waitqueue/models"
)

// Tracker держит актуальный снимок позиций очереди по точкам.
// Один потребитель читает уведомления LISTEN/NOTIFY и пересчитывает
// позиции точки целиком. Уведомления, пришедшие во время пересчета,
// накапливаются в канале и схлопываются в один следующий проход
type Tracker struct {
	service   *Service
	queueRepo CustomerQueueRepository
	source    NotificationSource
	channels  []string
	logger    Logger
	metrics   MetricsCollector

	mu       sync.RWMutex
	snapshot map[int64][]models.PositionInfo
}

// NewTracker создает трекер позиций очереди
// metrics может быть nil, если сбор метрик выключен
func NewTracker(service *Service, queueRepo CustomerQueueRepository, source NotificationSource, channels []string, logger Logger, metrics MetricsCollector) *Tracker {
	return &Tracker{
		service:   service,
		queueRepo: queueRepo,
		source:    source,
		channels:  channels,
		logger:    logger,
		metrics:   metrics,
		snapshot:  make(map[int64][]models.PositionInfo),
	}
}

// Run подписывается на каналы уведомлений и обрабатывает их до отмены
// контекста. Должен вызываться в единственной горутине
func (t *Tracker) Run(ctx context.Context) error {
	for _, channel := range t.channels {
		if err := t.source.Listen(channel); err != nil {
			return fmt.Errorf("waitqueue: Run - listen %s: %w", channel, err)
		}
		t.logger.Info("Run: listening on channel %s", channel)
	}

	notifications := t.source.Notifications()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("Run: context cancelled, tracker stopped")
			return nil
		case n, ok := <-notifications:
			if !ok {
				t.logger.Warn("Run: notification channel closed")
				return nil
			}

			pending := t.collectPending(n, notifications)
			for facilityID := range pending {
				t.recompute(ctx, facilityID)
			}
		}
	}
}

// Snapshot возвращает копию текущих позиций точки
func (t *Tracker) Snapshot(facilityID int64) []models.PositionInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	positions := t.snapshot[facilityID]
	out := make([]models.PositionInfo, len(positions))
	copy(out, positions)
	return out
}

// collectPending собирает первое уведомление и все уже накопившиеся
// в одно множество точек - дубликаты по одной точке схлопываются
// в один пересчет
func (t *Tracker) collectPending(first Notification, notifications <-chan Notification) map[int64]struct{} {
	pending := make(map[int64]struct{})
	t.addPending(pending, first)

	for {
		select {
		case n, ok := <-notifications:
			if !ok {
				return pending
			}
			t.addPending(pending, n)
		default:
			return pending
		}
	}
}

func (t *Tracker) addPending(pending map[int64]struct{}, n Notification) {
	facilityID, err := strconv.ParseInt(n.Payload, 10, 64)
	if err != nil {
		t.logger.Warn("addPending: channel %s - unparsable payload %q: %v", n.Channel, n.Payload, err)
		return
	}
	pending[facilityID] = struct{}{}
}

// recompute перечитывает всех ожидающих точки и перестраивает снимок
func (t *Tracker) recompute(ctx context.Context, facilityID int64) {
	entries, err := t.queueRepo.ListWaiting(ctx, facilityID)
	if err != nil {
		t.logger.Error("recompute: list waiting for facility=%d: %v", facilityID, err)
		return
	}

	positions := make([]models.PositionInfo, 0, len(entries))
	for i, entry := range entries {
		positions = append(positions, models.PositionInfo{
			EntryID:              entry.ID,
			TicketCode:           entry.TicketCode,
			Position:             i + 1,
			EstimatedWaitMinutes: t.service.EstimateWait(i),
		})
	}

	t.mu.Lock()
	t.snapshot[facilityID] = positions
	t.mu.Unlock()

	if t.metrics != nil {
		t.metrics.IncTrackerRecompute("notification")
	}

	t.logger.Debug("recompute: facility=%d waiting=%d", facilityID, len(positions))
}
