package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/psqlbuilder"
)

const tableName = "reservations"

var columns = []string{
	"id",
	"booking_number",
	"facility_id",
	"user_id",
	"start_time",
	"end_time",
	"status",
	"purpose",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями помещений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// При коллизии номера бронирования ничего не вставляет и возвращает ErrDuplicateBookingNumber,
// при пересечении с активным бронированием (exclusion constraint) возвращает ErrOverlap.
// Исходная ошибка драйвера сохраняется в цепочке, чтобы txmanager мог повторить
// транзакцию при serialization failure.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"booking_number",
			"facility_id",
			"user_id",
			"start_time",
			"end_time",
			"status",
			"purpose",
		).
		Values(
			reservation.BookingNumber,
			reservation.FacilityID,
			reservation.UserID,
			reservation.StartTime,
			reservation.EndTime,
			reservation.Status,
			reservation.Purpose,
		).
		Suffix("ON CONFLICT (booking_number) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)

	// ON CONFLICT DO NOTHING не возвращает строк
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDuplicateBookingNumber
	}
	if err != nil {
		if mapped := translatePQError(err); mapped != nil {
			return nil, fmt.Errorf("%w: Create: %w", mapped, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return reservation, nil
}

// FindOverlapping возвращает бронирования помещения с указанными статусами,
// пересекающие полуоткрытый интервал [start, end)
// Внутри транзакции блокирует найденные строки (FOR UPDATE)
func (r *Repository) FindOverlapping(
	ctx context.Context,
	facilityID int64,
	start, end time.Time,
	statuses []domain.ReservationStatus,
) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"facility_id": facilityID}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if len(statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(statuses)})
	}

	// Если используется транзакция, блокируем найденные строки
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// CountActive считает бронирования пользователя с указанными статусами,
// которые заканчиваются позже endAfter
func (r *Repository) CountActive(
	ctx context.Context,
	userID int64,
	statuses []domain.ReservationStatus,
	endAfter time.Time,
) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"status": statusStrings(statuses)}).
		Where(squirrel.Gt{"end_time": endAfter}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActive - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActive - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// GetWithFilter получает бронирования с типизированной фильтрацией
// Каждое поле фильтра применяется независимо, пустые поля игнорируются
//
// Примеры использования:
//
// 1. Все бронирования помещения на день:
//    filter := domain.ReservationFilter{FacilityID: &facilityID, From: &dayStart, To: &dayEnd}
//
// 2. Активные бронирования пользователя:
//    filter := domain.ReservationFilter{UserID: &userID, Statuses: domain.ActiveStatuses}
//
// 3. Поиск по номеру бронирования или цели:
//    term := "BKG-1A2B"
//    filter := domain.ReservationFilter{SearchTerm: &term}
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildFilterQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Cancel переводит бронирование в cancelled, если оно ещё не отменено
// Возвращает false, если строка не изменилась (уже отменено или не существует)
func (r *Repository) Cancel(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildCancelQuery(id)
	if err != nil {
		return false, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// CompleteExpired переводит подтверждённые бронирования с end_time < now в completed
// Если userID указан, обрабатываются только бронирования этого пользователя
// Возвращает количество обновлённых бронирований
func (r *Repository) CompleteExpired(ctx context.Context, now time.Time, userID *int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableName).
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"end_time": now})

	if userID != nil {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"user_id": *userID})
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteExpired - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteExpired - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// buildFilterQuery строит параметризованный SELECT по фильтру
func buildFilterQuery(filter domain.ReservationFilter) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(columns...).From(tableName)

	if filter.FacilityID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"facility_id": *filter.FacilityID})
	}
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}

	// Фильтрация по периоду: бронирование пересекает [From, To)
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}

	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}

	if filter.SearchTerm != nil && *filter.SearchTerm != "" {
		pattern := psqlbuilder.Contains(*filter.SearchTerm)
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"booking_number": pattern},
			squirrel.ILike{"purpose": pattern},
		})
	}

	selectBuilder = selectBuilder.OrderBy("start_time DESC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(filter.Offset)
	}

	return selectBuilder.ToSql()
}

func buildCancelQuery(id int64) (string, []interface{}, error) {
	return psqlbuilder.Update(tableName).
		Set("status", string(domain.StatusCancelled)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		ToSql()
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.BookingNumber,
		&reservation.FacilityID,
		&reservation.UserID,
		&reservation.StartTime,
		&reservation.EndTime,
		&reservation.Status,
		&reservation.Purpose,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}
