package building

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/psqlbuilder"
)

const tableName = "buildings"

var columns = []string{
	"id",
	"name",
	"address",
	"created_at",
}

// Repository репозиторий зданий (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория зданий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Search ищет здания по подстроке в названии или адресе, пустой term возвращает все здания
func (r *Repository) Search(ctx context.Context, term *string) ([]*domain.Building, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildSearchQuery(term)
	if err != nil {
		return nil, fmt.Errorf("%w: Search - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Search - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	buildings := make([]*domain.Building, 0)
	for rows.Next() {
		var (
			b         domain.Building
			createdAt sql.NullTime
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: Search - scan row: %v", ErrScanRow, err)
		}
		b.CreatedAt = createdAt.Time
		buildings = append(buildings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Search - rows error: %w", ErrScanRow, err)
	}

	return buildings, nil
}

func buildSearchQuery(term *string) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(columns...).From(tableName)

	if term != nil && *term != "" {
		pattern := psqlbuilder.Contains(*term)
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"address": pattern},
		})
	}

	return selectBuilder.OrderBy("name ASC", "id ASC").ToSql()
}
