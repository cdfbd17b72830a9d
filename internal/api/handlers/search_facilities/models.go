package search_facilities

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-FacilityBooking/internal/service/facilities/models"
)

// parseQuery собирает запрос поиска из query параметров
// search, buildingId, type, minCapacity, maxCapacity, bookableOnly
func parseQuery(q url.Values) (*models.SearchRequest, error) {
	req := &models.SearchRequest{}

	if s := strings.TrimSpace(q.Get("search")); s != "" {
		req.Search = &s
	}
	if t := q.Get("type"); t != "" {
		req.Type = &t
	}

	if raw := q.Get("buildingId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("buildingId: %w", err)
		}
		req.BuildingID = &id
	}

	var err error
	if req.MinCapacity, err = optionalInt(q, "minCapacity"); err != nil {
		return nil, err
	}
	if req.MaxCapacity, err = optionalInt(q, "maxCapacity"); err != nil {
		return nil, err
	}

	if raw := q.Get("bookableOnly"); raw != "" {
		if req.BookableOnly, err = strconv.ParseBool(raw); err != nil {
			return nil, fmt.Errorf("bookableOnly: %w", err)
		}
	}

	return req, nil
}

func optionalInt(q url.Values, key string) (*int, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &v, nil
}
