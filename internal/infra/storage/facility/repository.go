package facility

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/psqlbuilder"
)

var columns = []string{
	"f.id",
	"f.building_id",
	"COALESCE(b.name, '')",
	"f.name",
	"f.facility_type",
	"f.capacity",
	"f.description",
	"f.location_description",
	"f.is_bookable",
	"f.eligibility_role",
	"f.open_time",
	"f.close_time",
	"f.created_at",
	"f.updated_at",
}

// Repository репозиторий помещений (только чтение, справочник ведётся вне сервиса)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория помещений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func baseSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From("facilities f").
		LeftJoin("buildings b ON b.id = f.building_id")
}

// GetByID получает помещение по ID вместе с названием здания
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := baseSelect().
		Where(squirrel.Eq{"f.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	facility, err := scanFacility(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan facility: %w", ErrScanRow, err)
	}

	return facility, nil
}

// Search ищет помещения по фильтру, упорядочивает по зданию и названию
func (r *Repository) Search(ctx context.Context, filter domain.FacilityFilter) ([]*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildSearchQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: Search - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Search - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	facilities := make([]*domain.Facility, 0)
	for rows.Next() {
		facility, err := scanFacility(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: Search - scan row: %v", ErrScanRow, err)
		}
		facilities = append(facilities, facility)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Search - rows error: %w", ErrScanRow, err)
	}

	return facilities, nil
}

// buildSearchQuery строит параметризованный SELECT по фильтру помещений
func buildSearchQuery(filter domain.FacilityFilter) (string, []interface{}, error) {
	selectBuilder := baseSelect()

	if filter.SearchTerm != nil && *filter.SearchTerm != "" {
		pattern := psqlbuilder.Contains(*filter.SearchTerm)
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"f.name": pattern},
			squirrel.ILike{"f.description": pattern},
		})
	}
	if filter.BuildingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"f.building_id": *filter.BuildingID})
	}
	if filter.Type != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"f.facility_type": *filter.Type})
	}
	if filter.MinCapacity != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"f.capacity": *filter.MinCapacity})
	}
	if filter.MaxCapacity != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"f.capacity": *filter.MaxCapacity})
	}
	if filter.BookableOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"f.is_bookable": true})
	}

	return selectBuilder.OrderBy("b.name ASC", "f.name ASC").ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFacility(row rowScanner) (*domain.Facility, error) {
	var facility domain.Facility
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&facility.ID,
		&facility.BuildingID,
		&facility.BuildingName,
		&facility.Name,
		&facility.Type,
		&facility.Capacity,
		&facility.Description,
		&facility.LocationDescription,
		&facility.IsBookable,
		&facility.EligibilityRole,
		&facility.OpenTime,
		&facility.CloseTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if !facility.EligibilityRole.IsValidEligibility() {
		return nil, fmt.Errorf("%w: %q for facility id=%d", ErrUnknownEligibility, facility.EligibilityRole, facility.ID)
	}

	facility.CreatedAt = createdAt.Time
	facility.UpdatedAt = updatedAt.Time

	return &facility, nil
}
