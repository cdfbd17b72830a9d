package types

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "morning", input: "08:00", want: 480},
		{name: "with seconds", input: "22:00:00", want: 1320},
		{name: "end of day", input: "24:00", want: 1440},
		{name: "end of day with seconds", input: "24:00:00", want: 1440},
		{name: "garbage", input: "8am", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Minutes())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := MustTimeString("21:30")

	next, err := start.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "22:00", next.String())

	_, err = MustTimeString("23:45").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	a := MustTimeString("10:00")
	b := MustTimeString("10:30")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(a))
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("campus", 3*60*60)
	date := time.Date(2026, 10, 18, 15, 45, 0, 0, time.UTC)

	got := MustTimeString("08:30").On(date, loc)

	assert.Equal(t, time.Date(2026, 10, 18, 8, 30, 0, 0, loc), got)
}

func TestTimeString_OnDaylightSaving(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name  string
		date  time.Time
		clock string
		hour  int
		day   int
	}{
		{name: "spring forward open", date: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), clock: "08:00", hour: 8, day: 8},
		{name: "spring forward close", date: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), clock: "22:00", hour: 22, day: 8},
		{name: "fall back open", date: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), clock: "08:00", hour: 8, day: 1},
		{name: "fall back close", date: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), clock: "22:00", hour: 22, day: 1},
		{name: "end of day", date: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), clock: "24:00", hour: 0, day: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustTimeString(tt.clock).On(tt.date, loc)

			assert.Equal(t, tt.hour, got.Hour())
			assert.Equal(t, 0, got.Minute())
			assert.Equal(t, tt.day, got.Day())
			assert.Equal(t, loc, got.Location())
		})
	}
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("09:15:00"))
	assert.Equal(t, "09:15", ts.String())

	require.NoError(t, ts.Scan([]byte("17:00")))
	assert.Equal(t, "17:00", ts.String())

	require.NoError(t, ts.Scan("24:00:00"))
	assert.Equal(t, 24*60, ts.Minutes())

	require.NoError(t, ts.Scan([]byte("24:00:00")))
	assert.Equal(t, "24:00", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
