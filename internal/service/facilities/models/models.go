package models

import (
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// SearchRequest параметры поиска помещений, пустые поля не фильтруют
type SearchRequest struct {
	Search       *string `json:"search,omitempty"`
	BuildingID   *int64  `json:"buildingId,omitempty"`
	Type         *string `json:"type,omitempty"`
	MinCapacity  *int    `json:"minCapacity,omitempty"`
	MaxCapacity  *int    `json:"maxCapacity,omitempty"`
	BookableOnly bool    `json:"bookableOnly,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *SearchRequest) ToDomainFilter() domain.FacilityFilter {
	filter := domain.FacilityFilter{
		SearchTerm:   r.Search,
		BuildingID:   r.BuildingID,
		MinCapacity:  r.MinCapacity,
		MaxCapacity:  r.MaxCapacity,
		BookableOnly: r.BookableOnly,
	}
	if r.Type != nil {
		ft := domain.FacilityType(*r.Type)
		filter.Type = &ft
	}
	return filter
}

// FacilityResponse ответ с данными помещения
type FacilityResponse struct {
	ID                  int64   `json:"id"`
	BuildingID          int64   `json:"buildingId"`
	BuildingName        string  `json:"buildingName"`
	Name                string  `json:"name"`
	Type                string  `json:"type"`
	Capacity            int     `json:"capacity"`
	Description         *string `json:"description,omitempty"`
	LocationDescription *string `json:"locationDescription,omitempty"`
	IsBookable          bool    `json:"isBookable"`
	EligibilityRole     string  `json:"eligibilityRole"`
	OpenTime            string  `json:"openTime"`  // "08:00"
	CloseTime           string  `json:"closeTime"` // "22:00"
}

// FacilityListResponse ответ со списком помещений
type FacilityListResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
}

// FromDomainFacility конвертирует domain модель в DTO
func FromDomainFacility(f *domain.Facility) *FacilityResponse {
	if f == nil {
		return nil
	}

	open, closeAt := f.OperatingHours()
	return &FacilityResponse{
		ID:                  f.ID,
		BuildingID:          f.BuildingID,
		BuildingName:        f.BuildingName,
		Name:                f.Name,
		Type:                string(f.Type),
		Capacity:            f.Capacity,
		Description:         f.Description,
		LocationDescription: f.LocationDescription,
		IsBookable:          f.IsBookable,
		EligibilityRole:     string(f.EligibilityRole),
		OpenTime:            open.String(),
		CloseTime:           closeAt.String(),
	}
}

// FromDomainFacilityList конвертирует список domain моделей в DTO
func FromDomainFacilityList(facilities []*domain.Facility) *FacilityListResponse {
	resp := &FacilityListResponse{Facilities: make([]FacilityResponse, 0, len(facilities))}
	for _, f := range facilities {
		if item := FromDomainFacility(f); item != nil {
			resp.Facilities = append(resp.Facilities, *item)
		}
	}
	return resp
}

// BuildingResponse ответ с данными здания
type BuildingResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
}

// BuildingListResponse ответ со списком зданий
type BuildingListResponse struct {
	Buildings []BuildingResponse `json:"buildings"`
}

// FromDomainBuildingList конвертирует список зданий в DTO
func FromDomainBuildingList(buildings []*domain.Building) *BuildingListResponse {
	resp := &BuildingListResponse{Buildings: make([]BuildingResponse, 0, len(buildings))}
	for _, b := range buildings {
		if b == nil {
			continue
		}
		resp.Buildings = append(resp.Buildings, BuildingResponse{
			ID:      b.ID,
			Name:    b.Name,
			Address: b.Address,
		})
	}
	return resp
}
