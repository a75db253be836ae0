package rsvp

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/event"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/user"
	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/apperr"
)

type pairKey struct {
	userID  uuid.UUID
	eventID uuid.UUID
}

type fakeRepository struct {
	rows map[pairKey]*RSVP
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: map[pairKey]*RSVP{}}
}

func (f *fakeRepository) Upsert(ctx context.Context, r *RSVP) error {
	key := pairKey{r.UserID, r.EventID}
	if existing, ok := f.rows[key]; ok {
		existing.Status = r.Status
		existing.UpdatedAt = time.Now().UTC()
		return nil
	}
	r.ID = uuid.New()
	stored := *r
	f.rows[key] = &stored
	return nil
}

func (f *fakeRepository) Clear(ctx context.Context, userID, eventID uuid.UUID) error {
	delete(f.rows, pairKey{userID, eventID})
	return nil
}

func (f *fakeRepository) ListAttendees(ctx context.Context, eventID uuid.UUID) ([]Attendee, error) {
	var out []Attendee
	for _, r := range f.rows {
		if r.EventID == eventID && (r.Status == StatusGoing || r.Status == StatusMaybe) {
			out = append(out, Attendee{UserID: r.UserID, Status: r.Status})
		}
	}
	return out, nil
}

type fakeEvents struct {
	events map[uuid.UUID]*event.Event
}

func (f *fakeEvents) GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func newTestService() (Service, *fakeRepository, *event.Event) {
	repo := newFakeRepository()
	e := &event.Event{
		ID:          uuid.New(),
		CreatedBy:   uuid.New(),
		OrganizerID: uuid.New(),
	}
	events := &fakeEvents{events: map[uuid.UUID]*event.Event{e.ID: e}}
	return NewService(repo, events, zap.NewNop()), repo, e
}

func statusPtr(s Status) *Status { return &s }

func TestSetIsAnIdempotentUpsert(t *testing.T) {
	svc, repo, e := newTestService()
	ctx := context.Background()
	userID := uuid.New()

	effective, err := svc.Set(ctx, userID, e.ID, SetRSVPRequest{Status: statusPtr(StatusGoing)})
	require.NoError(t, err)
	assert.Equal(t, "going", effective)
	effective, err = svc.Set(ctx, userID, e.ID, SetRSVPRequest{Status: statusPtr(StatusGoing)})
	require.NoError(t, err)
	assert.Equal(t, "going", effective)
	assert.Len(t, repo.rows, 1)

	// Overwrite, not stack.
	effective, err = svc.Set(ctx, userID, e.ID, SetRSVPRequest{Status: statusPtr(StatusMaybe)})
	require.NoError(t, err)
	assert.Equal(t, "maybe", effective)
	assert.Len(t, repo.rows, 1)
	assert.Equal(t, StatusMaybe, repo.rows[pairKey{userID, e.ID}].Status)
}

func TestSetClearsOnAbsentStatus(t *testing.T) {
	svc, repo, e := newTestService()
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Set(ctx, userID, e.ID, SetRSVPRequest{Status: statusPtr(StatusGoing)})
	require.NoError(t, err)
	effective, err := svc.Set(ctx, userID, e.ID, SetRSVPRequest{})
	require.NoError(t, err)
	assert.Equal(t, StatusCleared, effective)
	assert.Empty(t, repo.rows)

	// Clearing an already absent reply still succeeds.
	effective, err = svc.Set(ctx, userID, e.ID, SetRSVPRequest{})
	assert.NoError(t, err)
	assert.Equal(t, StatusCleared, effective)
}

func TestSetRejectsUnknownStatus(t *testing.T) {
	svc, _, e := newTestService()
	bogus := Status("definitely")

	_, err := svc.Set(context.Background(), uuid.New(), e.ID, SetRSVPRequest{Status: &bogus})

	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestListAttendeesPermissions(t *testing.T) {
	svc, _, e := newTestService()
	ctx := context.Background()

	_, err := svc.Set(ctx, uuid.New(), e.ID, SetRSVPRequest{Status: statusPtr(StatusGoing)})
	require.NoError(t, err)
	_, err = svc.Set(ctx, uuid.New(), e.ID, SetRSVPRequest{Status: statusPtr(StatusCanceled)})
	require.NoError(t, err)

	// A plain attendee is refused.
	_, err = svc.ListAttendees(ctx, event.Actor{ID: uuid.New(), Role: user.RoleAttendee}, e.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindPermissionDenied))

	// The event creator sees the roster, canceled replies excluded.
	attendees, err := svc.ListAttendees(ctx, event.Actor{ID: e.CreatedBy, Role: user.RoleAttendee}, e.ID)
	require.NoError(t, err)
	assert.Len(t, attendees, 1)
	assert.Equal(t, StatusGoing, attendees[0].Status)

	// Unknown event: not found, not forbidden.
	_, err = svc.ListAttendees(ctx, event.Actor{ID: uuid.New(), Role: user.RoleAdmin}, uuid.New())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
