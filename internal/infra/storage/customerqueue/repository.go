package customerqueue

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/svojko1/nechty-sub001/internal/domain"
	"github.com/svojko1/nechty-sub001/pkg/dbmetrics"
	"github.com/svojko1/nechty-sub001/pkg/psqlbuilder"
)

var entryColumns = []string{
	"id",
	"ticket_code",
	"facility_id",
	"service_id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий очереди ожидания клиентов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория очереди клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет запись со статусом waiting
// Позиция в очереди не сохраняется - она всегда вычисляется заново
// через CountEarlierWaiting
func (r *Repository) Create(ctx context.Context, entry *domain.CustomerQueueEntry) (*domain.CustomerQueueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customer_queue").
		Columns(
			"ticket_code",
			"facility_id",
			"service_id",
			"customer_name",
			"customer_email",
			"customer_phone",
			"status",
		).
		Values(
			entry.TicketCode,
			entry.FacilityID,
			entry.ServiceID,
			entry.CustomerName,
			entry.CustomerEmail,
			entry.CustomerPhone,
			domain.QueueStatusWaiting,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.Status = domain.QueueStatusWaiting
	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return entry, nil
}

// GetByID получает запись очереди по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CustomerQueueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("customer_queue").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntryRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan entry: %v", ErrScanRow, err)
	}

	return entry, nil
}

// CountEarlierWaiting считает ожидающие записи на точке, созданные строго
// раньше указанной. Tiebreak по id сохраняет порядок вставки при равных
// created_at - позиции остаются строго возрастающими
func (r *Repository) CountEarlierWaiting(ctx context.Context, entry *domain.CustomerQueueEntry) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("customer_queue").
		Where(squirrel.Eq{"facility_id": entry.FacilityID}).
		Where(squirrel.Eq{"status": domain.QueueStatusWaiting}).
		Where(squirrel.Or{
			squirrel.Lt{"created_at": entry.CreatedAt},
			squirrel.And{
				squirrel.Eq{"created_at": entry.CreatedAt},
				squirrel.Lt{"id": entry.ID},
			},
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountEarlierWaiting - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountEarlierWaiting - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// ListWaiting получает все ожидающие записи точки в порядке очереди
func (r *Repository) ListWaiting(ctx context.Context, facilityID int64) ([]*domain.CustomerQueueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("customer_queue").
		Where(squirrel.Eq{"facility_id": facilityID}).
		Where(squirrel.Eq{"status": domain.QueueStatusWaiting}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWaiting - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWaiting - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// UpdateStatus переводит запись из from в to compare-and-set'ом
// Используется для waiting -> assigned и waiting -> cancelled
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.QueueEntryStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customer_queue").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

func scanEntryRow(row *sql.Row) (*domain.CustomerQueueEntry, error) {
	var entry domain.CustomerQueueEntry
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&entry.ID,
		&entry.TicketCode,
		&entry.FacilityID,
		&entry.ServiceID,
		&entry.CustomerName,
		&entry.CustomerEmail,
		&entry.CustomerPhone,
		&entry.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}

func scanEntries(rows *sql.Rows) ([]*domain.CustomerQueueEntry, error) {
	entries := make([]*domain.CustomerQueueEntry, 0)

	for rows.Next() {
		var entry domain.CustomerQueueEntry
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.TicketCode,
			&entry.FacilityID,
			&entry.ServiceID,
			&entry.CustomerName,
			&entry.CustomerEmail,
			&entry.CustomerPhone,
			&entry.Status,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanEntries - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entry.UpdatedAt = updatedAt.Time

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEntries - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
