package testutil

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alwahis/ride-search/internal/domain"
)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name    string
		dateStr string
		want    time.Time
	}{
		{
			name:    "valid RFC3339",
			dateStr: "2025-01-18T08:00:00Z",
			want:    time.Date(2025, 1, 18, 8, 0, 0, 0, time.UTC),
		},
		{
			name:    "valid RFC3339 with timezone",
			dateStr: "2025-01-18T11:00:00+03:00",
			want:    time.Date(2025, 1, 18, 8, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(t, tt.dateStr)
			assert.True(t, tt.want.Equal(result))
		})
	}
}

func TestMustParseDate(t *testing.T) {
	result := MustParseDate(t, "2025-01-18")

	assert.Equal(t, 2025, result.Year())
	assert.Equal(t, time.January, result.Month())
	assert.Equal(t, 18, result.Day())
}

func TestPtr(t *testing.T) {
	s := Ptr("Najaf")
	require.NotNil(t, s)
	assert.Equal(t, "Najaf", *s)

	n := Ptr(3)
	*n = 4
	assert.Equal(t, 4, *n)
}

func TestIntPtr(t *testing.T) {
	a, b := IntPtr(1), IntPtr(1)
	assert.Equal(t, *a, *b)
	assert.NotSame(t, a, b)
}

func TestRideIDs(t *testing.T) {
	assert.Empty(t, RideIDs(nil))
	assert.Equal(t, []string{"b", "a"}, RideIDs([]domain.Ride{{ID: "b"}, {ID: "a"}}))
}

func TestBaghdad(t *testing.T) {
	at := time.Date(2025, 1, 18, 0, 0, 0, 0, Baghdad())
	_, offset := at.Zone()
	assert.Equal(t, 3*60*60, offset)
}

func TestLoadSeedYAML(t *testing.T) {
	data := LoadSeedYAML(t)

	require.NotEmpty(t, data)
	assert.True(t, strings.Contains(string(data), "rides:"))
}
