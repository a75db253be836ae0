package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/apperr"
)

// Patch is a partial update of an event. Nil fields are left untouched.
// There is no explicit "set to null" for the location columns: switching
// location mode clears the opposite column as part of inference in Apply.
type Patch struct {
	Title                 *string       `json:"title,omitempty"`
	Description           *string       `json:"description,omitempty"`
	StartTime             *time.Time    `json:"start_time,omitempty"`
	EndTime               *time.Time    `json:"end_time,omitempty"`
	LocationType          *LocationType `json:"location_type,omitempty"`
	VenueID               *uuid.UUID    `json:"venue_id,omitempty"`
	CustomLocationAddress *string       `json:"custom_location_address,omitempty"`
	GoogleMapsLink        *string       `json:"google_maps_link,omitempty"`
	Status                *Status       `json:"status,omitempty"`
	Visibility            *Visibility   `json:"visibility,omitempty"`
}

// IsEmpty reports whether the patch names no field at all.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil &&
		p.StartTime == nil && p.EndTime == nil &&
		p.LocationType == nil && p.VenueID == nil && p.CustomLocationAddress == nil &&
		p.GoogleMapsLink == nil && p.Status == nil && p.Visibility == nil
}

// Apply merges the patch over current and returns the merged row together
// with the column map to persist. It is the single place where location
// mode is inferred: supplying a venue id without a location_type switches
// the event to venue mode and clears the custom address, and vice versa.
// The merged row is revalidated as a whole, so a patch can never leave an
// event with an inconsistent location pair or reversed times.
func (p Patch) Apply(current *Event) (*Event, map[string]interface{}, error) {
	merged := *current
	fields := map[string]interface{}{}

	if p.Title != nil {
		merged.Title = *p.Title
		fields["title"] = merged.Title
	}
	if p.Description != nil {
		merged.Description = *p.Description
		fields["description"] = merged.Description
	}
	if p.StartTime != nil {
		merged.StartTime = p.StartTime.UTC()
		fields["start_time"] = merged.StartTime
	}
	if p.EndTime != nil {
		merged.EndTime = p.EndTime.UTC()
		fields["end_time"] = merged.EndTime
	}
	if p.GoogleMapsLink != nil {
		merged.GoogleMapsLink = *p.GoogleMapsLink
		fields["google_maps_link"] = merged.GoogleMapsLink
	}
	if p.Visibility != nil {
		merged.Visibility = *p.Visibility
		fields["visibility"] = merged.Visibility
	}

	if p.Status != nil {
		if err := checkTransition(current.Status, *p.Status); err != nil {
			return nil, nil, err
		}
		merged.Status = *p.Status
		fields["status"] = merged.Status
	}

	if p.LocationType != nil || p.VenueID != nil || p.CustomLocationAddress != nil {
		mode, venueID, custom, err := resolveLocation(p.LocationType, p.VenueID, p.CustomLocationAddress, &merged)
		if err != nil {
			return nil, nil, err
		}
		merged.LocationType = mode
		merged.VenueID = venueID
		merged.CustomLocationAddress = custom
		fields["location_type"] = mode
		fields["venue_id"] = venueID
		fields["custom_location_address"] = custom
	}

	if len(fields) == 0 {
		return &merged, fields, nil
	}

	if err := merged.Validate(); err != nil {
		return nil, nil, err
	}

	merged.UpdatedAt = time.Now().UTC()
	fields["updated_at"] = merged.UpdatedAt
	return &merged, fields, nil
}

// checkTransition enforces the lifecycle state machine: upcoming may move
// to cancelled or completed, terminal states only accept a no-op rewrite.
func checkTransition(from, to Status) error {
	if !to.IsValid() {
		return apperr.Validation("invalid status %q", to)
	}
	if from == to {
		return nil
	}
	if from != StatusUpcoming {
		return apperr.Validation("cannot change status of a %s event", from)
	}
	return nil
}

// resolveLocation computes the effective location mode for a create or
// patch. An explicit location_type wins; otherwise whichever location
// field was supplied decides the mode. current carries the pre-patch
// values so a patch that only changes the venue keeps venue mode; it is
// nil on create, where the default mode is venue.
func resolveLocation(mode *LocationType, venueID *uuid.UUID, custom *string, current *Event) (LocationType, *uuid.UUID, *string, error) {
	if venueID != nil && custom != nil {
		return "", nil, nil, apperr.Validation("venue_id and custom_location_address are mutually exclusive")
	}

	effective := LocationVenue
	switch {
	case mode != nil:
		if !mode.IsValid() {
			return "", nil, nil, apperr.Validation("invalid location_type %q", *mode)
		}
		effective = *mode
	case venueID != nil:
		effective = LocationVenue
	case custom != nil:
		effective = LocationCustom
	case current != nil:
		effective = current.LocationType
	}

	switch effective {
	case LocationVenue:
		if venueID == nil && current != nil {
			venueID = current.VenueID
		}
		return LocationVenue, venueID, nil, nil
	default:
		if custom == nil && current != nil {
			custom = current.CustomLocationAddress
		}
		return LocationCustom, nil, custom, nil
	}
}
