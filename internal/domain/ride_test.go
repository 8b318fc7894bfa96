package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRideStatus_IsValid(t *testing.T) {
	for _, s := range []RideStatus{RideStatusDraft, RideStatusPublished, RideStatusCompleted, RideStatusCancelled, RideStatusDeleted} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, RideStatus("active").IsValid())
	assert.False(t, RideStatus("").IsValid())
}

func TestRide_IsSearchable(t *testing.T) {
	assert.True(t, Ride{Status: RideStatusPublished}.IsSearchable())
	assert.False(t, Ride{Status: RideStatusDraft}.IsSearchable())
	assert.False(t, Ride{Status: RideStatusCancelled}.IsSearchable())
}

func TestRide_ContactURL(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   string
	}{
		{name: "no number", number: "", want: ""},
		{name: "plus prefix and spaces", number: "+964 770 123 4567", want: "https://wa.me/9647701234567"},
		{name: "double zero prefix", number: "00964-770-123-4567", want: "https://wa.me/9647701234567"},
		{name: "only punctuation", number: "+ - ()", want: ""},
		{name: "arabic-indic digits are ignored", number: "٠٧٧٠", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ride{WhatsAppNumber: tt.number}.ContactURL())
		})
	}
}
