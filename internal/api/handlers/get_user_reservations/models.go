package get_user_reservations

import (
	"fmt"
	"net/url"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/service/reservations/models"
)

// parseQuery собирает фильтр истории из query параметров: status, from, to (RFC 3339)
func parseQuery(q url.Values, userID, requesterID int64) (*models.GetUserReservationsRequest, error) {
	req := &models.GetUserReservationsRequest{
		UserID:      userID,
		RequesterID: requesterID,
	}

	if s := q.Get("status"); s != "" {
		req.Status = &s
	}

	var err error
	if req.From, err = optionalTime(q, "from"); err != nil {
		return nil, err
	}
	if req.To, err = optionalTime(q, "to"); err != nil {
		return nil, err
	}

	return req, nil
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
