package duration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svojko1/nechty-sub001/internal/domain"
	serviceRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/servicecatalog"
	"github.com/svojko1/nechty-sub001/pkg/ptr"
)

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestResolver(services map[int64]*domain.Service) *Resolver {
	return NewResolver(&fakeServiceRepo{services: services}, nopLogger{})
}

func TestResolver_Resolve(t *testing.T) {
	catalog := map[int64]*domain.Service{
		1: {ID: 1, Name: "manicure", DefaultDurationMinutes: 45, IsActive: true},
		2: {ID: 2, Name: "broken", DefaultDurationMinutes: 0, IsActive: true},
	}

	tests := []struct {
		name     string
		explicit *int
		service  *int64
		want     int
		wantErr  error
	}{
		{
			name:     "explicit duration wins over catalog default",
			explicit: ptr.Ptr(90),
			service:  ptr.Ptr(int64(1)),
			want:     90,
		},
		{
			name:    "catalog default used when no explicit duration",
			service: ptr.Ptr(int64(1)),
			want:    45,
		},
		{
			name:     "zero explicit duration rejected",
			explicit: ptr.Ptr(0),
			service:  ptr.Ptr(int64(1)),
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "negative explicit duration rejected",
			explicit: ptr.Ptr(-30),
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "explicit duration above maximum rejected",
			explicit: ptr.Ptr(domain.MaxDurationMinutes + 1),
			wantErr:  ErrInvalidInput,
		},
		{
			name:    "neither duration nor service",
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown service",
			service: ptr.Ptr(int64(99)),
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "service without default duration rejected",
			service: ptr.Ptr(int64(2)),
			wantErr: ErrInvalidInput,
		},
	}

	resolver := newTestResolver(catalog)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(context.Background(), tt.explicit, tt.service)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeEndTime(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	end, err := ComputeEndTime(start, 45)
	require.NoError(t, err)
	assert.Equal(t, start.Add(45*time.Minute), end)

	_, err = ComputeEndTime(start, 0)
	assert.Error(t, err)

	_, err = ComputeEndTime(time.Time{}, 30)
	assert.Error(t, err)
}
