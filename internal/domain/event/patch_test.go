package event

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/apperr"
)

func baseEvent() *Event {
	venueID := uuid.New()
	return &Event{
		ID:           uuid.New(),
		Title:        "Robotics Demo Night",
		StartTime:    time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2026, 9, 10, 20, 0, 0, 0, time.UTC),
		LocationType: LocationVenue,
		VenueID:      &venueID,
		Status:       StatusUpcoming,
		Visibility:   VisibilityPublic,
		OrganizerID:  uuid.New(),
		CreatedBy:    uuid.New(),
	}
}

func strPtr(s string) *string             { return &s }
func locPtr(l LocationType) *LocationType { return &l }
func statusPtr(s Status) *Status          { return &s }
func timePtr(t time.Time) *time.Time      { return &t }

func TestPatchApplyMergesOnlySuppliedFields(t *testing.T) {
	current := baseEvent()
	newEnd := current.EndTime.Add(time.Hour)

	merged, fields, err := Patch{
		Title:   strPtr("Robotics Demo Night, extended"),
		EndTime: timePtr(newEnd),
	}.Apply(current)

	require.NoError(t, err)
	assert.Equal(t, "Robotics Demo Night, extended", merged.Title)
	assert.Equal(t, newEnd, merged.EndTime)
	assert.Equal(t, current.StartTime, merged.StartTime)

	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "end_time")
	assert.Contains(t, fields, "updated_at")
	assert.NotContains(t, fields, "start_time")
	assert.NotContains(t, fields, "venue_id")
}

func TestPatchApplyLocationInference(t *testing.T) {
	t.Run("venue id alone keeps venue mode", func(t *testing.T) {
		current := baseEvent()
		newVenue := uuid.New()

		merged, fields, err := Patch{VenueID: &newVenue}.Apply(current)

		require.NoError(t, err)
		assert.Equal(t, LocationVenue, merged.LocationType)
		assert.Equal(t, newVenue, *merged.VenueID)
		assert.Nil(t, merged.CustomLocationAddress)
		assert.Equal(t, LocationVenue, fields["location_type"])
	})

	t.Run("custom address alone switches mode and clears venue", func(t *testing.T) {
		current := baseEvent()

		merged, fields, err := Patch{
			CustomLocationAddress: strPtr("Quad lawn, north side"),
		}.Apply(current)

		require.NoError(t, err)
		assert.Equal(t, LocationCustom, merged.LocationType)
		assert.Nil(t, merged.VenueID)
		assert.Equal(t, "Quad lawn, north side", *merged.CustomLocationAddress)
		assert.Nil(t, fields["venue_id"])
	})

	t.Run("both location fields rejected", func(t *testing.T) {
		current := baseEvent()
		newVenue := uuid.New()

		_, _, err := Patch{
			VenueID:               &newVenue,
			CustomLocationAddress: strPtr("somewhere else"),
		}.Apply(current)

		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("explicit custom mode without address rejected", func(t *testing.T) {
		current := baseEvent()

		_, _, err := Patch{LocationType: locPtr(LocationCustom)}.Apply(current)

		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})
}

func TestPatchApplyTimeOrder(t *testing.T) {
	current := baseEvent()

	// End moved before the unchanged start.
	_, _, err := Patch{
		EndTime: timePtr(current.StartTime.Add(-time.Hour)),
	}.Apply(current)

	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestPatchApplyStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		wantErr bool
	}{
		{"upcoming to cancelled", StatusUpcoming, StatusCancelled, false},
		{"upcoming to completed", StatusUpcoming, StatusCompleted, false},
		{"cancelled stays cancelled", StatusCancelled, StatusCancelled, false},
		{"cancelled back to upcoming", StatusCancelled, StatusUpcoming, true},
		{"completed to cancelled", StatusCompleted, StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := baseEvent()
			current.Status = tt.from

			_, _, err := Patch{Status: statusPtr(tt.to)}.Apply(current)

			if tt.wantErr {
				assert.True(t, apperr.IsKind(err, apperr.KindValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPatchApplyEmptyPatch(t *testing.T) {
	current := baseEvent()

	merged, fields, err := Patch{}.Apply(current)

	require.NoError(t, err)
	assert.Empty(t, fields)
	assert.Equal(t, current.Title, merged.Title)
	assert.True(t, Patch{}.IsEmpty())
}

func TestTitleLengthCountsRunes(t *testing.T) {
	// 150 multibyte characters exceed 200 bytes but not 200 characters.
	e := baseEvent()
	e.Title = strings.Repeat("é", 150)
	assert.NoError(t, e.Validate())

	e.Title = strings.Repeat("é", maxTitleLength+1)
	err := e.Validate()
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
