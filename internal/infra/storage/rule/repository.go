package rule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/psqlbuilder"
)

const tableName = "booking_rules"

var columns = []string{
	"id",
	"facility_type",
	"max_duration_minutes",
	"min_advance_hours",
	"max_concurrent_bookings",
	"can_recur",
	"applies_to_roles",
}

// Repository репозиторий правил бронирования (одно правило на тип помещения)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByFacilityType получает правило для типа помещения
// Возвращает ErrRuleNotFound, если правило не задано (вызывающий применяет значения по умолчанию)
func (r *Repository) GetByFacilityType(ctx context.Context, facilityType domain.FacilityType) (*domain.BookingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"facility_type": facilityType}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityType - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityType - scan rule: %w", ErrScanRow, err)
	}

	return rule, nil
}

// List получает все правила, упорядоченные по типу помещения
func (r *Repository) List(ctx context.Context) ([]*domain.BookingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("facility_type ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.BookingRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return rules, nil
}

// Upsert создает правило для типа помещения или заменяет существующее
func (r *Repository) Upsert(ctx context.Context, rule *domain.BookingRule) (*domain.BookingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"facility_type",
			"max_duration_minutes",
			"min_advance_hours",
			"max_concurrent_bookings",
			"can_recur",
			"applies_to_roles",
		).
		Values(
			rule.FacilityType,
			rule.MaxDurationMinutes,
			rule.MinAdvanceHours,
			rule.MaxConcurrentBookingsPerUser,
			rule.CanRecur,
			pq.Array(roleStrings(rule.AppliesToRoles)),
		).
		Suffix(`ON CONFLICT (facility_type) DO UPDATE SET
			max_duration_minutes = EXCLUDED.max_duration_minutes,
			min_advance_hours = EXCLUDED.min_advance_hours,
			max_concurrent_bookings = EXCLUDED.max_concurrent_bookings,
			can_recur = EXCLUDED.can_recur,
			applies_to_roles = EXCLUDED.applies_to_roles
			RETURNING id`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return rule, nil
}

// Delete удаляет правило для типа помещения
func (r *Repository) Delete(ctx context.Context, facilityType domain.FacilityType) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"facility_type": facilityType}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.BookingRule, error) {
	var rule domain.BookingRule
	var roles pq.StringArray

	err := row.Scan(
		&rule.ID,
		&rule.FacilityType,
		&rule.MaxDurationMinutes,
		&rule.MinAdvanceHours,
		&rule.MaxConcurrentBookingsPerUser,
		&rule.CanRecur,
		&roles,
	)
	if err != nil {
		return nil, err
	}

	rule.AppliesToRoles = make([]domain.Role, len(roles))
	for i, role := range roles {
		rule.AppliesToRoles[i] = domain.Role(role)
	}

	return &rule, nil
}

func roleStrings(roles []domain.Role) []string {
	result := make([]string, len(roles))
	for i, role := range roles {
		result[i] = string(role)
	}
	return result
}
