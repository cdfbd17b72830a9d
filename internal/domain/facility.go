package domain

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// FacilityType is the closed set of bookable facility kinds
type FacilityType string

const (
	FacilityTypeStudyRoom   FacilityType = "study_room"
	FacilityTypeLectureHall FacilityType = "lecture_hall"
	FacilityTypeLab         FacilityType = "lab"
	FacilityTypeSportsVenue FacilityType = "sports_venue"
	FacilityTypeMeetingRoom FacilityType = "meeting_room"
	FacilityTypeOther       FacilityType = "other"
)

// FacilityTypes lists every facility type in display order
var FacilityTypes = []FacilityType{
	FacilityTypeStudyRoom,
	FacilityTypeLectureHall,
	FacilityTypeLab,
	FacilityTypeSportsVenue,
	FacilityTypeMeetingRoom,
	FacilityTypeOther,
}

// IsValid returns true if the type belongs to the closed set
func (t FacilityType) IsValid() bool {
	for _, ft := range FacilityTypes {
		if t == ft {
			return true
		}
	}
	return false
}

// Facility represents a bookable campus resource
type Facility struct {
	ID                  int64
	BuildingID          int64
	BuildingName        string
	Name                string
	Type                FacilityType
	Capacity            int
	Description         *string
	LocationDescription *string
	IsBookable          bool
	EligibilityRole     Role
	OpenTime            types.TimeString
	CloseTime           types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsEligible returns true if a user with the given role may book the facility
func (f *Facility) IsEligible(role Role) bool {
	return f.EligibilityRole == RoleAny || f.EligibilityRole == role
}

// OperatingHours returns the facility window, falling back to the campus defaults
func (f *Facility) OperatingHours() (types.TimeString, types.TimeString) {
	open, closeAt := f.OpenTime, f.CloseTime
	if open.IsZero() {
		open = DefaultOpenTime
	}
	if closeAt.IsZero() {
		closeAt = DefaultCloseTime
	}
	return open, closeAt
}

// FacilityFilter selects facilities; every nil field is ignored
type FacilityFilter struct {
	SearchTerm   *string       // name or description substring
	BuildingID   *int64
	Type         *FacilityType
	MinCapacity  *int
	MaxCapacity  *int
	BookableOnly bool
}
