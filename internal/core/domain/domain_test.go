package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonationStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status DonationStatus
		want   bool
	}{
		{DonationStatusPending, false},
		{DonationStatusCompleted, true},
		{DonationStatusFailed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsTerminal())
		})
	}
}

func TestDonationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from DonationStatus
		to   DonationStatus
		want bool
	}{
		{"pending to completed", DonationStatusPending, DonationStatusCompleted, true},
		{"pending to failed", DonationStatusPending, DonationStatusFailed, true},
		{"pending to pending", DonationStatusPending, DonationStatusPending, false},
		{"completed to pending", DonationStatusCompleted, DonationStatusPending, false},
		{"completed to failed", DonationStatusCompleted, DonationStatusFailed, false},
		{"failed to completed", DonationStatusFailed, DonationStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestDonationStatus_Valid(t *testing.T) {
	assert.True(t, DonationStatusFailed.Valid())
	assert.False(t, DonationStatus("refunded").Valid())
}

func TestDonation_AmountMarshalsAsNumber(t *testing.T) {
	d := Donation{Amount: decimal.RequireFromString("50.00"), Status: DonationStatusPending}

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, float64(50), decoded["amount"])
	assert.NotContains(t, decoded, "paidAt")
}

func TestSermon_FileURL(t *testing.T) {
	s := &Sermon{AudioURL: "https://cdn/a.mp3"}

	url, ok := s.FileURL(SermonFileAudio)
	assert.True(t, ok)
	assert.Equal(t, "https://cdn/a.mp3", url)

	_, ok = s.FileURL(SermonFileVideo)
	assert.False(t, ok)

	_, ok = s.FileURL("pdf")
	assert.False(t, ok)
}

func TestIdentity_IsAdmin(t *testing.T) {
	var nilIdentity *Identity
	assert.False(t, nilIdentity.IsAdmin())
	assert.False(t, (&Identity{Role: "member"}).IsAdmin())
	assert.True(t, (&Identity{Role: RoleAdmin}).IsAdmin())
}

func TestIsKnownBucket(t *testing.T) {
	assert.True(t, IsKnownBucket(BucketSermonsAudio))
	assert.False(t, IsKnownBucket("private"))
}

func TestDefaultSiteSettings_EmptyCollections(t *testing.T) {
	raw, err := json.Marshal(DefaultSiteSettings())
	require.NoError(t, err)
	assert.JSONEq(t, `{"banners":[],"announcements":[],"liveStreamUrl":"","socialLinks":{}}`, string(raw))
}

func TestPrayerStatus_Valid(t *testing.T) {
	assert.True(t, PrayerStatusAnswered.Valid())
	assert.False(t, PrayerStatus("ignored").Valid())
}
