package waitqueue

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svojko1/nechty-sub001/internal/domain"
	queueRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/customerqueue"
	"github.com/svojko1/nechty-sub001/internal/service/waitqueue/models"
	"github.com/svojko1/nechty-sub001/pkg/ptr"
)

type fakeQueueRepo struct {
	entries map[int64]*domain.CustomerQueueEntry
	nextID  int64
}

func newFakeQueueRepo() *fakeQueueRepo {
	return &fakeQueueRepo{entries: make(map[int64]*domain.CustomerQueueEntry), nextID: 1}
}

func (f *fakeQueueRepo) Create(_ context.Context, entry *domain.CustomerQueueEntry) (*domain.CustomerQueueEntry, error) {
	entry.ID = f.nextID
	f.nextID++
	entry.Status = domain.QueueStatusWaiting
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	copied := *entry
	f.entries[entry.ID] = &copied
	return entry, nil
}

func (f *fakeQueueRepo) GetByID(_ context.Context, id int64) (*domain.CustomerQueueEntry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, queueRepo.ErrEntryNotFound
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeQueueRepo) CountEarlierWaiting(_ context.Context, entry *domain.CustomerQueueEntry) (int, error) {
	count := 0
	for _, e := range f.entries {
		if e.FacilityID != entry.FacilityID || !e.IsWaiting() {
			continue
		}
		if e.CreatedAt.Before(entry.CreatedAt) ||
			(e.CreatedAt.Equal(entry.CreatedAt) && e.ID < entry.ID) {
			count++
		}
	}
	return count, nil
}

func (f *fakeQueueRepo) ListWaiting(_ context.Context, facilityID int64) ([]*domain.CustomerQueueEntry, error) {
	var out []*domain.CustomerQueueEntry
	for _, e := range f.entries {
		if e.FacilityID == facilityID && e.IsWaiting() {
			copied := *e
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeQueueRepo) UpdateStatus(_ context.Context, id int64, from, to domain.QueueEntryStatus) error {
	entry, ok := f.entries[id]
	if !ok || entry.Status != from {
		return queueRepo.ErrStatusConflict
	}
	entry.Status = to
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeQueueRepo) *Service {
	return NewService(repo, 15, 5, nopLogger{})
}

func enqueueN(t *testing.T, svc *Service, facilityID int64, n int) []*models.EntryResponse {
	t.Helper()

	out := make([]*models.EntryResponse, 0, n)
	for i := 0; i < n; i++ {
		resp, err := svc.Enqueue(context.Background(), &models.EnqueueRequest{
			FacilityID:    facilityID,
			ServiceID:     1,
			CustomerName:  "customer",
			CustomerPhone: ptr.Ptr("+421900000000"),
		})
		require.NoError(t, err)
		out = append(out, resp)
	}
	return out
}

func TestService_Enqueue(t *testing.T) {
	repo := newFakeQueueRepo()
	svc := newTestService(repo)

	entries := enqueueN(t, svc, 1, 3)

	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, 2, entries[1].Position)
	assert.Equal(t, 3, entries[2].Position)

	// Первый в очереди получает минимальную оценку, не ноль
	assert.Equal(t, 5, entries[0].EstimatedWaitMinutes)
	assert.Equal(t, 15, entries[1].EstimatedWaitMinutes)
	assert.Equal(t, 30, entries[2].EstimatedWaitMinutes)

	for _, e := range entries {
		assert.NotEmpty(t, e.TicketCode)
		assert.Equal(t, domain.QueueStatusWaiting, e.Status)
	}
}

func TestService_Enqueue_Validation(t *testing.T) {
	svc := newTestService(newFakeQueueRepo())

	_, err := svc.Enqueue(context.Background(), &models.EnqueueRequest{ServiceID: 1, CustomerName: "a"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Enqueue(context.Background(), &models.EnqueueRequest{FacilityID: 1, ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Position_AfterCancellations(t *testing.T) {
	repo := newFakeQueueRepo()
	svc := newTestService(repo)

	entries := enqueueN(t, svc, 1, 3)

	// Отмена первого сдвигает остальных вперед
	_, err := svc.Cancel(context.Background(), entries[0].ID)
	require.NoError(t, err)

	pos, err := svc.Position(context.Background(), entries[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, pos.Position)
	assert.Equal(t, 1, pos.PeopleAhead)
	assert.Equal(t, 15, pos.EstimatedWaitMinutes)
}

func TestService_Position_NotFound(t *testing.T) {
	svc := newTestService(newFakeQueueRepo())

	_, err := svc.Position(context.Background(), 99)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestService_Cancel_OnlyWaiting(t *testing.T) {
	repo := newFakeQueueRepo()
	svc := newTestService(repo)

	entries := enqueueN(t, svc, 1, 1)

	_, err := svc.Cancel(context.Background(), entries[0].ID)
	require.NoError(t, err)

	// Повторная отмена теряет CAS
	_, err = svc.Cancel(context.Background(), entries[0].ID)
	assert.ErrorIs(t, err, ErrEntryNotWaiting)
}

func TestService_MarkAssigned(t *testing.T) {
	repo := newFakeQueueRepo()
	svc := newTestService(repo)

	entries := enqueueN(t, svc, 1, 1)

	require.NoError(t, svc.MarkAssigned(context.Background(), entries[0].ID))

	entry, err := svc.Position(context.Background(), entries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QueueStatusAssigned, entry.Status)

	// Назначенную запись нельзя отменить
	_, err = svc.Cancel(context.Background(), entries[0].ID)
	assert.ErrorIs(t, err, ErrEntryNotWaiting)
}

func TestService_EstimateWait(t *testing.T) {
	svc := newTestService(newFakeQueueRepo())

	tests := []struct {
		peopleAhead int
		want        int
	}{
		{0, 5},
		{1, 15},
		{4, 60},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.EstimateWait(tt.peopleAhead))
	}
}
