package facilities

import (
	"context"
	"errors"
	"fmt"

	facilityRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/facility"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/facilities/models"
)

// Service сервис чтения каталога помещений и зданий
type Service struct {
	facilityRepo FacilityRepository
	buildingRepo BuildingRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса помещений
func NewService(facilityRepo FacilityRepository, buildingRepo BuildingRepository, logger Logger) *Service {
	return &Service{
		facilityRepo: facilityRepo,
		buildingRepo: buildingRepo,
		logger:       logger,
	}
}

// GetByID получает помещение по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.FacilityResponse, error) {
	s.logger.Info("GetByID: fetching facility id=%d", id)

	facility, err := s.facilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("GetByID: facility id=%d not found", id)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("GetByID: repository error for facility id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainFacility(facility), nil
}

// Search ищет помещения по фильтру
func (s *Service) Search(ctx context.Context, req *models.SearchRequest) (*models.FacilityListResponse, error) {
	s.logger.Info("Search: searching facilities, type=%v, building=%v, bookableOnly=%t",
		req.Type, req.BuildingID, req.BookableOnly)

	filter := req.ToDomainFilter()
	if filter.Type != nil && !filter.Type.IsValid() {
		s.logger.Warn("Search: unknown facility type=%s", *filter.Type)
		return nil, fmt.Errorf("%w: unknown facility type", ErrInvalidInput)
	}
	if filter.MinCapacity != nil && filter.MaxCapacity != nil && *filter.MinCapacity > *filter.MaxCapacity {
		s.logger.Warn("Search: minCapacity=%d greater than maxCapacity=%d", *filter.MinCapacity, *filter.MaxCapacity)
		return nil, fmt.Errorf("%w: minCapacity greater than maxCapacity", ErrInvalidInput)
	}

	facilities, err := s.facilityRepo.Search(ctx, filter)
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Search: found %d facilities", len(facilities))
	return models.FromDomainFacilityList(facilities), nil
}

// SearchBuildings ищет здания по подстроке в названии или адресе
func (s *Service) SearchBuildings(ctx context.Context, search *string) (*models.BuildingListResponse, error) {
	s.logger.Info("SearchBuildings: searching buildings, search=%v", search)

	buildings, err := s.buildingRepo.Search(ctx, search)
	if err != nil {
		s.logger.Error("SearchBuildings: repository error: %v", err)
		return nil, fmt.Errorf("%w: SearchBuildings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SearchBuildings: found %d buildings", len(buildings))
	return models.FromDomainBuildingList(buildings), nil
}
