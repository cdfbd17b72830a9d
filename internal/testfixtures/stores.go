package testfixtures

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	buildingRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/building"
	facilityRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/facility"
	reservationRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/reservation"
	ruleRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/rule"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/userservice"
)

// BuildingStore is an in-memory building repository.
type BuildingStore struct {
	mu        sync.Mutex
	buildings []domain.Building

	// Err, when set, is returned by Search wrapped in ErrExecQuery.
	Err error
}

// NewBuildingStore returns a store seeded with the given buildings.
func NewBuildingStore(buildings ...domain.Building) *BuildingStore {
	return &BuildingStore{buildings: buildings}
}

func (s *BuildingStore) Search(_ context.Context, term *string) ([]*domain.Building, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, fmt.Errorf("%w: Search: %w", buildingRepo.ErrExecQuery, s.Err)
	}

	result := make([]*domain.Building, 0)
	for _, b := range s.buildings {
		if term != nil && *term != "" {
			needle := strings.ToLower(*term)
			address := ""
			if b.Address != nil {
				address = *b.Address
			}
			if !strings.Contains(strings.ToLower(b.Name), needle) && !strings.Contains(strings.ToLower(address), needle) {
				continue
			}
		}
		copied := b
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// FacilityStore is an in-memory facility repository.
type FacilityStore struct {
	mu         sync.Mutex
	facilities map[int64]*domain.Facility
	calls      int

	// Err, when set, is returned by every method wrapped in ErrExecQuery.
	Err error
}

// NewFacilityStore returns a store seeded with the given facilities.
func NewFacilityStore(facilities ...*domain.Facility) *FacilityStore {
	s := &FacilityStore{facilities: make(map[int64]*domain.Facility)}
	for _, f := range facilities {
		s.facilities[f.ID] = f
	}
	return s
}

// Put inserts or replaces a facility.
func (s *FacilityStore) Put(f *domain.Facility) {
	s.mu.Lock()
	s.facilities[f.ID] = f
	s.mu.Unlock()
}

func (s *FacilityStore) GetByID(_ context.Context, id int64) (*domain.Facility, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.Err != nil {
		return nil, fmt.Errorf("%w: GetByID: %w", facilityRepo.ErrExecQuery, s.Err)
	}
	f, ok := s.facilities[id]
	if !ok {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	copied := *f
	return &copied, nil
}

func (s *FacilityStore) Search(_ context.Context, filter domain.FacilityFilter) ([]*domain.Facility, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.Err != nil {
		return nil, fmt.Errorf("%w: Search: %w", facilityRepo.ErrExecQuery, s.Err)
	}

	result := make([]*domain.Facility, 0)
	for _, f := range s.facilities {
		if filter.SearchTerm != nil && !strings.Contains(strings.ToLower(f.Name), strings.ToLower(*filter.SearchTerm)) {
			continue
		}
		if filter.BuildingID != nil && f.BuildingID != *filter.BuildingID {
			continue
		}
		if filter.Type != nil && f.Type != *filter.Type {
			continue
		}
		if filter.MinCapacity != nil && f.Capacity < *filter.MinCapacity {
			continue
		}
		if filter.MaxCapacity != nil && f.Capacity > *filter.MaxCapacity {
			continue
		}
		if filter.BookableOnly && !f.IsBookable {
			continue
		}
		copied := *f
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Calls returns the number of repository calls made.
func (s *FacilityStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// RuleStore is an in-memory booking rule repository.
type RuleStore struct {
	mu     sync.Mutex
	rules  map[domain.FacilityType]*domain.BookingRule
	nextID int64
	calls  int

	// Err, when set, is returned by every method wrapped in ErrExecQuery.
	Err error
}

// NewRuleStore returns a store seeded with the given rules.
func NewRuleStore(rules ...*domain.BookingRule) *RuleStore {
	s := &RuleStore{rules: make(map[domain.FacilityType]*domain.BookingRule)}
	for _, r := range rules {
		s.nextID++
		r.ID = s.nextID
		s.rules[r.FacilityType] = r
	}
	return s
}

func (s *RuleStore) GetByFacilityType(_ context.Context, facilityType domain.FacilityType) (*domain.BookingRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.Err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityType: %w", ruleRepo.ErrExecQuery, s.Err)
	}
	r, ok := s.rules[facilityType]
	if !ok {
		return nil, ruleRepo.ErrRuleNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *RuleStore) List(_ context.Context) ([]*domain.BookingRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.Err != nil {
		return nil, fmt.Errorf("%w: List: %w", ruleRepo.ErrExecQuery, s.Err)
	}
	result := make([]*domain.BookingRule, 0, len(s.rules))
	for _, r := range s.rules {
		copied := *r
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FacilityType < result[j].FacilityType })
	return result, nil
}

func (s *RuleStore) Upsert(_ context.Context, rule *domain.BookingRule) (*domain.BookingRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.Err != nil {
		return nil, fmt.Errorf("%w: Upsert: %w", ruleRepo.ErrExecQuery, s.Err)
	}
	if existing, ok := s.rules[rule.FacilityType]; ok {
		rule.ID = existing.ID
	} else {
		s.nextID++
		rule.ID = s.nextID
	}
	copied := *rule
	s.rules[rule.FacilityType] = &copied
	return rule, nil
}

func (s *RuleStore) Delete(_ context.Context, facilityType domain.FacilityType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.Err != nil {
		return fmt.Errorf("%w: Delete: %w", ruleRepo.ErrExecQuery, s.Err)
	}
	if _, ok := s.rules[facilityType]; !ok {
		return ruleRepo.ErrRuleNotFound
	}
	delete(s.rules, facilityType)
	return nil
}

// Calls returns the number of repository calls made.
func (s *RuleStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// ReservationStore is an in-memory reservation repository. Create enforces
// the booking number uniqueness and the active-interval exclusion the way
// the PostgreSQL schema does.
type ReservationStore struct {
	mu           sync.Mutex
	reservations map[int64]*domain.Reservation
	nextID       int64
	calls        int
	now          func() time.Time

	// Err, when set, is returned by every method wrapped in ErrExecQuery.
	Err error
}

// NewReservationStore returns an empty store stamping rows with now.
func NewReservationStore(now func() time.Time) *ReservationStore {
	if now == nil {
		now = ReferenceTime
	}
	return &ReservationStore{reservations: make(map[int64]*domain.Reservation), now: now}
}

// Seed inserts reservations bypassing every check and returns them with ids.
func (s *ReservationStore) Seed(reservations ...*domain.Reservation) []*domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range reservations {
		s.nextID++
		r.ID = s.nextID
		if r.BookingNumber == "" {
			r.BookingNumber = fmt.Sprintf("BKG-SEED%04d", r.ID)
		}
		copied := *r
		s.reservations[r.ID] = &copied
	}
	return reservations
}

func (s *ReservationStore) Create(_ context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.Err != nil {
		return nil, fmt.Errorf("%w: Create: %w", reservationRepo.ErrExecQuery, s.Err)
	}

	for _, existing := range s.reservations {
		if existing.BookingNumber == reservation.BookingNumber {
			return nil, reservationRepo.ErrDuplicateBookingNumber
		}
	}
	if reservation.Status.IsActive() {
		for _, existing := range s.reservations {
			if existing.FacilityID == reservation.FacilityID && existing.IsActive() &&
				existing.Overlaps(reservation.StartTime, reservation.EndTime) {
				return nil, fmt.Errorf("%w: Create: exclusion constraint", reservationRepo.ErrOverlap)
			}
		}
	}

	s.nextID++
	reservation.ID = s.nextID
	reservation.CreatedAt = s.now()
	reservation.UpdatedAt = reservation.CreatedAt
	copied := *reservation
	s.reservations[reservation.ID] = &copied
	return reservation, nil
}

func (s *ReservationStore) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.Err != nil {
		return nil, fmt.Errorf("%w: GetByID: %w", reservationRepo.ErrExecQuery, s.Err)
	}
	r, ok := s.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *ReservationStore) FindOverlapping(
	_ context.Context,
	facilityID int64,
	start, end time.Time,
	statuses []domain.ReservationStatus,
) ([]*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.Err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping: %w", reservationRepo.ErrExecQuery, s.Err)
	}
	result := s.filterLocked(func(r *domain.Reservation) bool {
		return r.FacilityID == facilityID && hasStatus(statuses, r.Status) && r.Overlaps(start, end)
	})
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func (s *ReservationStore) CountActive(
	_ context.Context,
	userID int64,
	statuses []domain.ReservationStatus,
	endAfter time.Time,
) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.Err != nil {
		return 0, fmt.Errorf("%w: CountActive: %w", reservationRepo.ErrExecQuery, s.Err)
	}
	return len(s.filterLocked(func(r *domain.Reservation) bool {
		return r.UserID == userID && hasStatus(statuses, r.Status) && r.EndTime.After(endAfter)
	})), nil
}

func (s *ReservationStore) GetWithFilter(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.Err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter: %w", reservationRepo.ErrExecQuery, s.Err)
	}
	result := s.filterLocked(func(r *domain.Reservation) bool {
		if filter.FacilityID != nil && r.FacilityID != *filter.FacilityID {
			return false
		}
		if filter.UserID != nil && r.UserID != *filter.UserID {
			return false
		}
		if filter.From != nil && !r.EndTime.After(*filter.From) {
			return false
		}
		if filter.To != nil && !r.StartTime.Before(*filter.To) {
			return false
		}
		if len(filter.Statuses) > 0 && !hasStatus(filter.Statuses, r.Status) {
			return false
		}
		if filter.SearchTerm != nil && *filter.SearchTerm != "" {
			term := strings.ToLower(*filter.SearchTerm)
			purpose := ""
			if r.Purpose != nil {
				purpose = *r.Purpose
			}
			if !strings.Contains(strings.ToLower(r.BookingNumber), term) && !strings.Contains(strings.ToLower(purpose), term) {
				return false
			}
		}
		return true
	})
	sortNewestFirst(result)

	if filter.Offset > 0 {
		if int(filter.Offset) >= len(result) {
			return []*domain.Reservation{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && int(filter.Limit) < len(result) {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (s *ReservationStore) Cancel(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.Err != nil {
		return false, fmt.Errorf("%w: Cancel: %w", reservationRepo.ErrExecQuery, s.Err)
	}
	r, ok := s.reservations[id]
	if !ok || r.Status == domain.StatusCancelled {
		return false, nil
	}
	r.Status = domain.StatusCancelled
	r.UpdatedAt = s.now()
	return true, nil
}

func (s *ReservationStore) CompleteExpired(_ context.Context, now time.Time, userID *int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.Err != nil {
		return 0, fmt.Errorf("%w: CompleteExpired: %w", reservationRepo.ErrExecQuery, s.Err)
	}
	var completed int64
	for _, r := range s.reservations {
		if userID != nil && r.UserID != *userID {
			continue
		}
		if r.IsExpired(now) {
			r.Status = domain.StatusCompleted
			r.UpdatedAt = s.now()
			completed++
		}
	}
	return completed, nil
}

// All returns every stored reservation ordered by id.
func (s *ReservationStore) All() []*domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := s.filterLocked(func(*domain.Reservation) bool { return true })
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Calls returns the number of repository calls made.
func (s *ReservationStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *ReservationStore) filterLocked(keep func(*domain.Reservation) bool) []*domain.Reservation {
	result := make([]*domain.Reservation, 0)
	for _, r := range s.reservations {
		if keep(r) {
			copied := *r
			result = append(result, &copied)
		}
	}
	return result
}

func sortNewestFirst(reservations []*domain.Reservation) {
	sort.Slice(reservations, func(i, j int) bool {
		if reservations[i].StartTime.Equal(reservations[j].StartTime) {
			return reservations[i].ID > reservations[j].ID
		}
		return reservations[i].StartTime.After(reservations[j].StartTime)
	})
}

func hasStatus(statuses []domain.ReservationStatus, status domain.ReservationStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

// UserDirectory is an in-memory identity service.
type UserDirectory struct {
	mu    sync.Mutex
	users map[int64]*domain.User

	// Err, when set, is returned as an unavailable identity service.
	Err error
}

// NewUserDirectory returns a directory seeded with the given users.
func NewUserDirectory(users ...*domain.User) *UserDirectory {
	d := &UserDirectory{users: make(map[int64]*domain.User)}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

func (d *UserDirectory) GetUser(_ context.Context, userID int64) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.Err != nil {
		return nil, fmt.Errorf("%w: %w", userservice.ErrServiceUnavailable, d.Err)
	}
	u, ok := d.users[userID]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

// EventRecorder captures published reservation events.
type EventRecorder struct {
	mu        sync.Mutex
	Created   []*domain.Reservation
	Cancelled []*domain.Reservation

	// Err, when set, is returned by every publish call.
	Err error
}

func (e *EventRecorder) PublishReservationCreated(_ context.Context, r *domain.Reservation) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Err != nil {
		return e.Err
	}
	copied := *r
	e.Created = append(e.Created, &copied)
	return nil
}

func (e *EventRecorder) PublishReservationCancelled(_ context.Context, r *domain.Reservation) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Err != nil {
		return e.Err
	}
	copied := *r
	e.Cancelled = append(e.Cancelled, &copied)
	return nil
}
