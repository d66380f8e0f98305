package employeequeue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svojko1/nechty-sub001/internal/domain"
	entryRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/employeequeue"
	"github.com/svojko1/nechty-sub001/internal/service/employeequeue/models"
)

type fakeEntryRepo struct {
	nextID  int64
	entries map[int64]*domain.EmployeeQueueEntry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[int64]*domain.EmployeeQueueEntry)}
}

func (f *fakeEntryRepo) Create(_ context.Context, employeeID, facilityID int64) (*domain.EmployeeQueueEntry, error) {
	f.nextID++
	entry := &domain.EmployeeQueueEntry{
		ID:         f.nextID,
		EmployeeID: employeeID,
		FacilityID: facilityID,
		IsActive:   true,
	}
	f.entries[entry.ID] = entry
	copied := *entry
	return &copied, nil
}

func (f *fakeEntryRepo) GetByID(_ context.Context, id int64) (*domain.EmployeeQueueEntry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, entryRepo.ErrEntryNotFound
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeEntryRepo) CheckOut(_ context.Context, entryID int64, checkOutAt time.Time) error {
	entry, ok := f.entries[entryID]
	if !ok {
		return entryRepo.ErrEntryNotFound
	}
	entry.IsActive = false
	entry.CurrentCustomerID = nil
	entry.CheckOutTime = &checkOutAt
	return nil
}

type fixedTimeProvider struct{ now time.Time }

func (f fixedTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeEntryRepo) *Service {
	svc := NewService(repo, nopLogger{})
	svc.timeProvider = fixedTimeProvider{now: testNow}
	return svc
}

func TestService_Approve(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := newTestService(repo)

	entry, err := svc.Approve(context.Background(), &models.ApproveRequest{EmployeeID: 5, FacilityID: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(5), entry.EmployeeID)
	assert.Equal(t, int64(1), entry.FacilityID)
	assert.True(t, entry.IsActive)
	assert.Nil(t, entry.CurrentCustomerID)
}

func TestService_Approve_Validation(t *testing.T) {
	svc := newTestService(newFakeEntryRepo())

	tests := []struct {
		name string
		req  models.ApproveRequest
	}{
		{name: "missing employee", req: models.ApproveRequest{FacilityID: 1}},
		{name: "missing facility", req: models.ApproveRequest{EmployeeID: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Approve(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_CheckOut(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := newTestService(repo)

	created, err := svc.Approve(context.Background(), &models.ApproveRequest{EmployeeID: 5, FacilityID: 1})
	require.NoError(t, err)

	// Сотрудник обслуживает клиента, check-out все равно снимает пару
	customerID := int64(42)
	repo.entries[created.ID].CurrentCustomerID = &customerID

	entry, err := svc.CheckOut(context.Background(), created.ID)
	require.NoError(t, err)

	assert.False(t, entry.IsActive)
	assert.Nil(t, entry.CurrentCustomerID)
	require.NotNil(t, entry.CheckOutTime)
	assert.Equal(t, testNow.Format(time.RFC3339), *entry.CheckOutTime)
}

func TestService_CheckOut_NotFound(t *testing.T) {
	svc := newTestService(newFakeEntryRepo())

	_, err := svc.CheckOut(context.Background(), 99)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := newTestService(newFakeEntryRepo())

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}
