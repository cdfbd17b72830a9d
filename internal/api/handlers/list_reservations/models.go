package list_reservations

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/service/reservations/models"
)

// parseQuery собирает фильтр из query параметров
// facilityId, userId, from, to (RFC 3339), status (через запятую), search, limit, offset
func parseQuery(q url.Values, requesterID int64) (*models.ListReservationsRequest, error) {
	req := &models.ListReservationsRequest{RequesterID: requesterID}

	var err error
	if req.FacilityID, err = optionalInt64(q, "facilityId"); err != nil {
		return nil, err
	}
	if req.UserID, err = optionalInt64(q, "userId"); err != nil {
		return nil, err
	}
	if req.From, err = optionalTime(q, "from"); err != nil {
		return nil, err
	}
	if req.To, err = optionalTime(q, "to"); err != nil {
		return nil, err
	}

	if raw := q.Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				req.Statuses = append(req.Statuses, s)
			}
		}
	}

	if search := strings.TrimSpace(q.Get("search")); search != "" {
		req.Search = &search
	}

	if raw := q.Get("limit"); raw != "" {
		if req.Limit, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("limit: %w", err)
		}
	}
	if raw := q.Get("offset"); raw != "" {
		if req.Offset, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("offset: %w", err)
		}
	}

	return req, nil
}

func optionalInt64(q url.Values, key string) (*int64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &v, nil
}

func optionalTime(q url.Values, key string) (*time.Time, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &v, nil
}
