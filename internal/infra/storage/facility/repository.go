package facility

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/svojko1/nechty-sub001/internal/domain"
	"github.com/svojko1/nechty-sub001/pkg/dbmetrics"
	"github.com/svojko1/nechty-sub001/pkg/psqlbuilder"
)

// Repository read-side репозиторий вместимости точек
// Вместимость меняется только внешней конфигурацией точки
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория точек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает точку с вместимостью по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "chairs", "pedicure_chairs").
		From("facilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var f domain.Facility
	err = executor.QueryRowContext(ctx, query, args...).Scan(&f.ID, &f.Name, &f.Chairs, &f.PedicureChairs)
	if err == sql.ErrNoRows {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan facility: %v", ErrScanRow, err)
	}

	return &f, nil
}
