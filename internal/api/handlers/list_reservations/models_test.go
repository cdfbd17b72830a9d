package list_reservations

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	q, err := url.ParseQuery("facilityId=3&from=2026-10-01T00:00:00Z&status=confirmed,%20pending_approval&search=BKG&limit=20&offset=40")
	require.NoError(t, err)

	req, err := parseQuery(q, 9)
	require.NoError(t, err)

	assert.Equal(t, int64(9), req.RequesterID)
	require.NotNil(t, req.FacilityID)
	assert.Equal(t, int64(3), *req.FacilityID)
	assert.Nil(t, req.UserID)
	require.NotNil(t, req.From)
	assert.True(t, req.From.Equal(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, req.To)
	assert.Equal(t, []string{"confirmed", "pending_approval"}, req.Statuses)
	require.NotNil(t, req.Search)
	assert.Equal(t, "BKG", *req.Search)
	assert.Equal(t, uint64(20), req.Limit)
	assert.Equal(t, uint64(40), req.Offset)
}

func TestParseQuery_Invalid(t *testing.T) {
	for _, raw := range []string{"facilityId=x", "userId=1.5", "from=yesterday", "to=2026-10-01", "limit=-1", "offset=a"} {
		t.Run(raw, func(t *testing.T) {
			q, err := url.ParseQuery(raw)
			require.NoError(t, err)

			_, err = parseQuery(q, 9)
			assert.Error(t, err)
		})
	}
}
