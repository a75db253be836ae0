package event

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/user"
	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/apperr"
)

// fakeRepository mirrors the store's overlap and visibility semantics in
// memory so service rules can be tested without a database.
type fakeRepository struct {
	events map[uuid.UUID]*Event
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{events: map[uuid.UUID]*Event{}}
}

func (f *fakeRepository) overlaps(e *Event, excludeID uuid.UUID) bool {
	if e.LocationType != LocationVenue || e.Status != StatusUpcoming {
		return false
	}
	for id, other := range f.events {
		if id == excludeID ||
			other.LocationType != LocationVenue || other.Status != StatusUpcoming ||
			other.VenueID == nil || *other.VenueID != *e.VenueID {
			continue
		}
		if other.StartTime.Before(e.EndTime) && e.StartTime.Before(other.EndTime) {
			return true
		}
	}
	return false
}

func (f *fakeRepository) Create(ctx context.Context, e *Event) error {
	if f.overlaps(e, uuid.Nil) {
		return ErrSchedulingConflict
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	stored := *e
	f.events[e.ID] = &stored
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeRepository) GetWithStats(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*EventWithStats, error) {
	e, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &EventWithStats{Event: *e}, nil
}

func (f *fakeRepository) ListWithStats(ctx context.Context, viewer *uuid.UUID) ([]EventWithStats, error) {
	var out []EventWithStats
	for _, e := range f.events {
		if e.VisibleTo(viewer) {
			out = append(out, EventWithStats{Event: *e})
		}
	}
	return out, nil
}

func (f *fakeRepository) UpdateFields(ctx context.Context, id uuid.UUID, merged *Event, fields map[string]interface{}) error {
	if _, ok := f.events[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	if f.overlaps(merged, id) {
		return ErrSchedulingConflict
	}
	stored := *merged
	f.events[id] = &stored
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.events[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeRepository) CompletePastEvents(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for _, e := range f.events {
		if e.Status == StatusUpcoming && e.EndTime.Before(now) {
			e.Status = StatusCompleted
			n++
		}
	}
	return n, nil
}

type fakeVenues struct {
	known map[uuid.UUID]bool
}

func (f *fakeVenues) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return f.known[id], nil
}

func newTestService() (Service, *fakeRepository, uuid.UUID) {
	repo := newFakeRepository()
	venueID := uuid.New()
	venues := &fakeVenues{known: map[uuid.UUID]bool{venueID: true}}
	return NewService(repo, venues, zap.NewNop()), repo, venueID
}

func organizerActor() Actor {
	return Actor{ID: uuid.New(), Role: user.RoleOrganizer}
}

func attendeeActor() Actor {
	return Actor{ID: uuid.New(), Role: user.RoleAttendee}
}

func createReq(venueID uuid.UUID, start, end time.Time) CreateEventRequest {
	return CreateEventRequest{
		Title:     "Career Fair Kickoff",
		StartTime: start,
		EndTime:   end,
		VenueID:   &venueID,
	}
}

var (
	slotStart = time.Date(2026, 10, 1, 14, 0, 0, 0, time.UTC)
	slotEnd   = time.Date(2026, 10, 1, 16, 0, 0, 0, time.UTC)
)

func TestCreateRejectsReversedTimes(t *testing.T) {
	svc, _, venueID := newTestService()

	_, err := svc.Create(context.Background(), organizerActor(), createReq(venueID, slotEnd, slotStart))

	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCreateRejectsUnknownVenue(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), organizerActor(), createReq(uuid.New(), slotStart, slotEnd))

	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCreateVisibilityPermissions(t *testing.T) {
	svc, _, venueID := newTestService()

	// An attendee may not publish a public event.
	_, err := svc.Create(context.Background(), attendeeActor(), createReq(venueID, slotStart, slotEnd))
	assert.True(t, apperr.IsKind(err, apperr.KindPermissionDenied))

	// The same event created private succeeds.
	req := createReq(venueID, slotStart, slotEnd)
	private := VisibilityPrivate
	req.Visibility = &private
	actor := attendeeActor()

	e, err := svc.Create(context.Background(), actor, req)
	require.NoError(t, err)
	assert.Equal(t, VisibilityPrivate, e.Visibility)
	assert.Equal(t, actor.ID, e.OrganizerID)
	assert.Equal(t, actor.ID, e.CreatedBy)
	assert.Equal(t, StatusUpcoming, e.Status)
}

func TestCreateVenueConflict(t *testing.T) {
	svc, _, venueID := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, organizerActor(), createReq(venueID, slotStart, slotEnd))
	require.NoError(t, err)

	// Overlapping window at the same venue.
	_, err = svc.Create(ctx, organizerActor(), createReq(venueID, slotStart.Add(30*time.Minute), slotEnd.Add(30*time.Minute)))
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// Back-to-back booking sharing the boundary instant is allowed.
	_, err = svc.Create(ctx, organizerActor(), createReq(venueID, slotEnd, slotEnd.Add(time.Hour)))
	assert.NoError(t, err)
}

func TestCancelledEventFreesItsWindow(t *testing.T) {
	svc, _, venueID := newTestService()
	ctx := context.Background()
	actor := organizerActor()

	first, err := svc.Create(ctx, actor, createReq(venueID, slotStart, slotEnd))
	require.NoError(t, err)

	_, err = svc.Update(ctx, actor, first.ID, Patch{Status: statusPtr(StatusCancelled)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, organizerActor(), createReq(venueID, slotStart, slotEnd))
	assert.NoError(t, err)
}

func TestGetDistinguishesHiddenFromAbsent(t *testing.T) {
	svc, _, venueID := newTestService()
	ctx := context.Background()
	actor := organizerActor()

	req := createReq(venueID, slotStart, slotEnd)
	private := VisibilityPrivate
	req.Visibility = &private
	e, err := svc.Create(ctx, actor, req)
	require.NoError(t, err)

	// Anonymous viewer on an existing private event: forbidden.
	_, err = svc.Get(ctx, nil, e.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindPermissionDenied))

	// Unknown id: not found.
	_, err = svc.Get(ctx, nil, uuid.New())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// The creator sees their own private event.
	got, err := svc.Get(ctx, &actor.ID, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
}

func TestListAppliesVisibilityFilter(t *testing.T) {
	svc, _, venueID := newTestService()
	ctx := context.Background()
	actor := organizerActor()

	_, err := svc.Create(ctx, actor, createReq(venueID, slotStart, slotEnd))
	require.NoError(t, err)

	reqPrivate := CreateEventRequest{
		Title:                 "Board Prep",
		StartTime:             slotStart,
		EndTime:               slotEnd,
		CustomLocationAddress: strPtr("Office 212"),
	}
	private := VisibilityPrivate
	reqPrivate.Visibility = &private
	_, err = svc.Create(ctx, actor, reqPrivate)
	require.NoError(t, err)

	anon, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, anon, 1)

	own, err := svc.List(ctx, &actor.ID)
	require.NoError(t, err)
	assert.Len(t, own, 2)
}

func TestUpdatePermissions(t *testing.T) {
	svc, _, venueID := newTestService()
	ctx := context.Background()
	creator := attendeeActor()

	req := createReq(venueID, slotStart, slotEnd)
	private := VisibilityPrivate
	req.Visibility = &private
	e, err := svc.Create(ctx, creator, req)
	require.NoError(t, err)

	// A stranger attendee may not touch it.
	_, err = svc.Update(ctx, attendeeActor(), e.ID, Patch{Title: strPtr("Hijacked")})
	assert.True(t, apperr.IsKind(err, apperr.KindPermissionDenied))

	// The creator may, even without an organizer role.
	updated, err := svc.Update(ctx, creator, e.ID, Patch{Title: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	// But the creator cannot flip it public without publish rights.
	public := VisibilityPublic
	_, err = svc.Update(ctx, creator, e.ID, Patch{Visibility: &public})
	assert.True(t, apperr.IsKind(err, apperr.KindPermissionDenied))

	// An admin can do anything.
	admin := Actor{ID: uuid.New(), Role: user.RoleAdmin}
	_, err = svc.Update(ctx, admin, e.ID, Patch{Visibility: &public})
	assert.NoError(t, err)
}

func TestDelete(t *testing.T) {
	svc, repo, venueID := newTestService()
	ctx := context.Background()
	actor := organizerActor()

	e, err := svc.Create(ctx, actor, createReq(venueID, slotStart, slotEnd))
	require.NoError(t, err)

	err = svc.Delete(ctx, attendeeActor(), e.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindPermissionDenied))

	require.NoError(t, svc.Delete(ctx, actor, e.ID))
	assert.Empty(t, repo.events)

	err = svc.Delete(ctx, actor, e.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCompletePastEventsSweep(t *testing.T) {
	_, repo, venueID := newTestService()
	ctx := context.Background()

	past := &Event{
		Title: "Over", StartTime: slotStart.Add(-48 * time.Hour), EndTime: slotEnd.Add(-48 * time.Hour),
		LocationType: LocationVenue, VenueID: &venueID,
		Status: StatusUpcoming, Visibility: VisibilityPublic,
		OrganizerID: uuid.New(), CreatedBy: uuid.New(),
	}
	require.NoError(t, repo.Create(ctx, past))

	n, err := repo.CompletePastEvents(ctx, slotStart)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, StatusCompleted, repo.events[past.ID].Status)
}
