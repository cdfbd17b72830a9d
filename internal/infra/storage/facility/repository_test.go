package facility

import (
	"database/sql"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

const selectPrefix = "SELECT f.id, f.building_id, COALESCE(b.name, ''), f.name, f.facility_type, f.capacity, " +
	"f.description, f.location_description, f.is_bookable, f.eligibility_role, f.open_time, f.close_time, " +
	"f.created_at, f.updated_at FROM facilities f LEFT JOIN buildings b ON b.id = f.building_id"

func TestBuildSearchQuery(t *testing.T) {
	term := "lab"
	wildcardTerm := "room_1"
	buildingID := int64(3)
	facilityType := domain.FacilityTypeLab
	minCapacity := 10
	maxCapacity := 40

	tests := []struct {
		name     string
		filter   domain.FacilityFilter
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:    "all facilities",
			filter:  domain.FacilityFilter{},
			wantSQL: selectPrefix + " ORDER BY b.name ASC, f.name ASC",
		},
		{
			name:     "search term",
			filter:   domain.FacilityFilter{SearchTerm: &term},
			wantSQL:  selectPrefix + " WHERE (f.name ILIKE $1 OR f.description ILIKE $2) ORDER BY b.name ASC, f.name ASC",
			wantArgs: []interface{}{"%lab%", "%lab%"},
		},
		{
			name:     "search term with wildcards",
			filter:   domain.FacilityFilter{SearchTerm: &wildcardTerm},
			wantSQL:  selectPrefix + " WHERE (f.name ILIKE $1 OR f.description ILIKE $2) ORDER BY b.name ASC, f.name ASC",
			wantArgs: []interface{}{`%room\_1%`, `%room\_1%`},
		},
		{
			name: "every toggle",
			filter: domain.FacilityFilter{
				BuildingID:   &buildingID,
				Type:         &facilityType,
				MinCapacity:  &minCapacity,
				MaxCapacity:  &maxCapacity,
				BookableOnly: true,
			},
			wantSQL: selectPrefix + " WHERE f.building_id = $1 AND f.facility_type = $2 AND f.capacity >= $3" +
				" AND f.capacity <= $4 AND f.is_bookable = $5 ORDER BY b.name ASC, f.name ASC",
			wantArgs: []interface{}{buildingID, facilityType, minCapacity, maxCapacity, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildSearchQuery(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, query)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

type fakeRow struct {
	values []interface{}
}

func (r fakeRow) Scan(dest ...interface{}) error {
	for i, v := range r.values {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

func facilityRow(eligibility domain.Role) fakeRow {
	created := sql.NullTime{Time: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Valid: true}
	return fakeRow{values: []interface{}{
		int64(4), int64(2), "Main Library", "Room 101", domain.FacilityTypeStudyRoom, 6,
		(*string)(nil), (*string)(nil), true, eligibility,
		types.MustTimeString("08:00"), types.MustTimeString("22:00"),
		created, created,
	}}
}

func TestScanFacility(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAny, domain.RoleStudent, domain.RoleFaculty, domain.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			facility, err := scanFacility(facilityRow(role))
			require.NoError(t, err)
			assert.Equal(t, role, facility.EligibilityRole)
			assert.Equal(t, "Main Library", facility.BuildingName)
			assert.Equal(t, 2026, facility.CreatedAt.Year())
		})
	}
}

func TestScanFacility_UnknownEligibility(t *testing.T) {
	_, err := scanFacility(facilityRow(domain.Role("visitor")))
	assert.ErrorIs(t, err, ErrUnknownEligibility)
}
