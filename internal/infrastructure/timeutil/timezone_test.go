package timeutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLocation(t *testing.T) {
	tests := []struct {
		name    string
		zone    string
		wantErr bool
	}{
		{name: "utc", zone: UTC},
		{name: "baghdad", zone: Baghdad},
		{name: "invalid", zone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ClearLocationCache()

			loc, err := GetLocation(tt.zone)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, loc)
				assert.Contains(t, err.Error(), "failed to load timezone")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.zone, loc.String())
		})
	}
}

func TestGetLocation_Caching(t *testing.T) {
	ClearLocationCache()

	loc1, err := GetLocation(Baghdad)
	require.NoError(t, err)
	loc2, err := GetLocation(Baghdad)
	require.NoError(t, err)

	assert.Same(t, loc1, loc2)
}

func TestGetLocation_ConcurrentAccess(t *testing.T) {
	ClearLocationCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		for _, tz := range []string{UTC, Baghdad, "Europe/London"} {
			wg.Add(1)
			go func(timezone string) {
				defer wg.Done()
				loc, err := GetLocation(timezone)
				assert.NoError(t, err)
				assert.NotNil(t, loc)
			}(tz)
		}
	}
	wg.Wait()
}

func TestMustGetLocation(t *testing.T) {
	ClearLocationCache()

	assert.NotNil(t, MustGetLocation(UTC))
	assert.Panics(t, func() {
		MustGetLocation("Invalid/Timezone")
	})
}

func TestDayBounds(t *testing.T) {
	loc := MustGetLocation(Baghdad)
	tm := time.Date(2025, 1, 18, 14, 35, 22, 123456789, loc)

	start := StartOfDay(tm)
	end := EndOfDay(tm)

	assert.Equal(t, time.Date(2025, 1, 18, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 1, 18, 23, 59, 59, 0, loc), end)
	assert.Equal(t, loc, start.Location())
	assert.Equal(t, loc, end.Location())

	// Baghdad is UTC+3 with no DST.
	assert.Equal(t, time.Date(2025, 1, 17, 21, 0, 0, 0, time.UTC), start.UTC())
}

func TestAtMinute(t *testing.T) {
	loc := MustGetLocation(Baghdad)
	day := time.Date(2025, 1, 18, 0, 0, 0, 0, loc)

	assert.Equal(t, time.Date(2025, 1, 18, 10, 30, 0, 0, loc), AtMinute(day, 630))
	assert.Equal(t, time.Date(2025, 1, 18, 23, 59, 0, 0, loc), AtMinute(day, 1439))
	assert.Equal(t, day, AtMinute(day, 0))
}

func TestFormatDate(t *testing.T) {
	tm := time.Date(2025, 1, 8, 10, 30, 45, 0, time.UTC)
	assert.Equal(t, "2025-01-08", FormatDate(tm))
}

func TestClearLocationCache(t *testing.T) {
	loc1, err := GetLocation(UTC)
	require.NoError(t, err)

	ClearLocationCache()

	loc2, err := GetLocation(UTC)
	require.NoError(t, err)
	loc3, err := GetLocation(UTC)
	require.NoError(t, err)

	assert.Equal(t, loc1.String(), loc2.String())
	assert.Same(t, loc2, loc3)
}
