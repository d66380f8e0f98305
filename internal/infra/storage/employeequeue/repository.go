package employeequeue

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/svojko1/nechty-sub001/internal/domain"
	"github.com/svojko1/nechty-sub001/pkg/dbmetrics"
	"github.com/svojko1/nechty-sub001/pkg/psqlbuilder"
)

var entryColumns = []string{
	"id",
	"employee_id",
	"facility_id",
	"is_active",
	"current_customer_id",
	"last_assignment_time",
	"check_out_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий очереди сотрудников
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория очереди сотрудников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает активную запись очереди для одобренного сотрудника
func (r *Repository) Create(ctx context.Context, employeeID, facilityID int64) (*domain.EmployeeQueueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("employee_queue").
		Columns("employee_id", "facility_id", "is_active").
		Values(employeeID, facilityID, true).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	entry := &domain.EmployeeQueueEntry{
		EmployeeID: employeeID,
		FacilityID: facilityID,
		IsActive:   true,
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return entry, nil
}

// GetByID получает запись очереди по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.EmployeeQueueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(entryColumns...).
		From("employee_queue").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку - по ней будет CAS назначение клиента
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
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

// ListFree получает активные записи без текущего клиента на точке
// Сортировка по employee_id ASC фиксирует детерминированный выбор "любого"
// свободного сотрудника
func (r *Repository) ListFree(ctx context.Context, facilityID int64) ([]*domain.EmployeeQueueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(entryColumns...).
		From("employee_queue").
		Where(squirrel.Eq{"facility_id": facilityID}).
		Where(squirrel.Eq{"is_active": true}).
		Where("current_customer_id IS NULL").
		OrderBy("employee_id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListFree - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFree - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// AssignCustomer назначает клиента сотруднику compare-and-set'ом по условию
// "текущий клиент отсутствует". Две конкурентные попытки назначения на одну
// запись не могут пройти обе: проигравшая получает ErrAlreadyAssigned
func (r *Repository) AssignCustomer(ctx context.Context, entryID, appointmentID int64, assignedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("employee_queue").
		Set("current_customer_id", appointmentID).
		Set("last_assignment_time", assignedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": entryID}).
		Where("current_customer_id IS NULL").
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AssignCustomer - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AssignCustomer - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AssignCustomer - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAlreadyAssigned
	}

	return nil
}

// ClearCustomer снимает пару "сотрудник - запись" после завершения услуги
// Условие по appointment_id защищает от снятия чужой пары
func (r *Repository) ClearCustomer(ctx context.Context, appointmentID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("employee_queue").
		Set("current_customer_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"current_customer_id": appointmentID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ClearCustomer - build update query: %v", ErrBuildQuery, err)
	}

	// Нулевое количество строк допустимо: запись могла быть создана
	// без пары (будущее бронирование) или сотрудник уже вышел
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ClearCustomer - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// CheckOut выполняет принудительный выход сотрудника: деактивирует запись
// и снимает текущего клиента независимо от наличия пары
// Административная операция, не подчиняется state machine записи
func (r *Repository) CheckOut(ctx context.Context, entryID int64, checkOutAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("employee_queue").
		Set("is_active", false).
		Set("current_customer_id", nil).
		Set("check_out_time", checkOutAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": entryID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CheckOut - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CheckOut - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CheckOut - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func scanEntryRow(row *sql.Row) (*domain.EmployeeQueueEntry, error) {
	var entry domain.EmployeeQueueEntry
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&entry.ID,
		&entry.EmployeeID,
		&entry.FacilityID,
		&entry.IsActive,
		&entry.CurrentCustomerID,
		&entry.LastAssignmentTime,
		&entry.CheckOutTime,
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

func scanEntries(rows *sql.Rows) ([]*domain.EmployeeQueueEntry, error) {
	entries := make([]*domain.EmployeeQueueEntry, 0)

	for rows.Next() {
		var entry domain.EmployeeQueueEntry
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.EmployeeID,
			&entry.FacilityID,
			&entry.IsActive,
			&entry.CurrentCustomerID,
			&entry.LastAssignmentTime,
			&entry.CheckOutTime,
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
