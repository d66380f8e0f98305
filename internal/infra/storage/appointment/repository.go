package appointment

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

var appointmentColumns = []string{
	"id",
	"facility_id",
	"service_id",
	"employee_id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"start_time",
	"end_time",
	"duration_minutes",
	"status",
	"chair_number",
	"price",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"facility_id",
			"service_id",
			"employee_id",
			"customer_name",
			"customer_email",
			"customer_phone",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"chair_number",
			"price",
		).
		Values(
			appt.FacilityID,
			appt.ServiceID,
			appt.EmployeeID,
			appt.CustomerName,
			appt.CustomerEmail,
			appt.CustomerPhone,
			appt.StartTime,
			appt.EndTime,
			appt.DurationMinutes,
			appt.Status,
			appt.ChairNumber,
			appt.Price,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку - по ней будет CAS обновление статуса
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetOverlapping получает активные записи, пересекающиеся с окном [Start, End)
// Пересечение полуоткрытых интервалов: start_time < End AND end_time > Start,
// граничные случаи (окно заканчивается там, где начинается другое) не считаются
// Завершенные записи (completed) никогда не попадают в выборку
func (r *Repository) GetOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"facility_id": filter.FacilityID}).
		Where(squirrel.Eq{"status": activeStatuses}).
		Where(squirrel.Lt{"start_time": filter.End}).
		Where(squirrel.Gt{"end_time": filter.Start})

	if filter.EmployeeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"employee_id": *filter.EmployeeID})
	}

	if filter.ChairNumber != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"chair_number": *filter.ChairNumber})
	}

	if filter.OnlyChairs {
		selectBuilder = selectBuilder.Where("chair_number IS NOT NULL")
	}

	selectBuilder = selectBuilder.OrderBy("start_time ASC, id ASC")

	// Внутри транзакции блокируем конфликтный набор - аллокатор перепроверяет
	// кресло перед коммитом и не должен увидеть устаревшее состояние
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// Start переводит запись scheduled -> in_progress и выставляет фактическое
// время начала. CAS по статусу: если запись уже стартовала или завершена,
// обновление не затронет ни одной строки и вернется ErrStateConflict
func (r *Repository) Start(ctx context.Context, id int64, startTime, endTime time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusInProgress).
		Set("start_time", startTime).
		Set("end_time", endTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusScheduled}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Start - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectOneRow(ctx, executor, query, args, "Start")
}

// Finish переводит запись in_progress -> completed и фиксирует цену
// CAS по статусу: повторный вызов не затронет ни одной строки
func (r *Repository) Finish(ctx context.Context, id int64, price float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCompleted).
		Set("price", price).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusInProgress}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Finish - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectOneRow(ctx, executor, query, args, "Finish")
}

// execExpectOneRow выполняет UPDATE и требует ровно одну затронутую строку
func (r *Repository) execExpectOneRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrStateConflict
	}

	return nil
}

// scanAppointment сканирует одну строку в доменную модель
func (r *Repository) scanAppointment(row *sql.Row) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.FacilityID,
		&appt.ServiceID,
		&appt.EmployeeID,
		&appt.CustomerName,
		&appt.CustomerEmail,
		&appt.CustomerPhone,
		&appt.StartTime,
		&appt.EndTime,
		&appt.DurationMinutes,
		&appt.Status,
		&appt.ChairNumber,
		&appt.Price,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appt.ID,
			&appt.FacilityID,
			&appt.ServiceID,
			&appt.EmployeeID,
			&appt.CustomerName,
			&appt.CustomerEmail,
			&appt.CustomerPhone,
			&appt.StartTime,
			&appt.EndTime,
			&appt.DurationMinutes,
			&appt.Status,
			&appt.ChairNumber,
			&appt.Price,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
