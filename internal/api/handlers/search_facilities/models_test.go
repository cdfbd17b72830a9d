package search_facilities

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	q, err := url.ParseQuery("search=%20library%20&type=study_room&buildingId=2&minCapacity=4&bookableOnly=true")
	require.NoError(t, err)

	req, err := parseQuery(q)
	require.NoError(t, err)

	require.NotNil(t, req.Search)
	assert.Equal(t, "library", *req.Search)
	require.NotNil(t, req.Type)
	assert.Equal(t, "study_room", *req.Type)
	require.NotNil(t, req.BuildingID)
	assert.Equal(t, int64(2), *req.BuildingID)
	require.NotNil(t, req.MinCapacity)
	assert.Equal(t, 4, *req.MinCapacity)
	assert.Nil(t, req.MaxCapacity)
	assert.True(t, req.BookableOnly)
}

func TestParseQuery_Empty(t *testing.T) {
	req, err := parseQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, false, req.BookableOnly)
	assert.Nil(t, req.Search)
	assert.Nil(t, req.Type)
}

func TestParseQuery_Invalid(t *testing.T) {
	for _, raw := range []string{"buildingId=abc", "minCapacity=1.5", "maxCapacity=x", "bookableOnly=maybe"} {
		t.Run(raw, func(t *testing.T) {
			q, err := url.ParseQuery(raw)
			require.NoError(t, err)

			_, err = parseQuery(q)
			assert.Error(t, err)
		})
	}
}
