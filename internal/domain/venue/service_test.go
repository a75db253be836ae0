package venue

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/user"
	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/apperr"
)

type fakeRepository struct {
	venues   map[uuid.UUID]*Venue
	bookings map[uuid.UUID]int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{venues: map[uuid.UUID]*Venue{}, bookings: map[uuid.UUID]int64{}}
}

func (f *fakeRepository) Create(ctx context.Context, v *Venue) error {
	v.ID = uuid.New()
	stored := *v
	f.venues[v.ID] = &stored
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *v
	return &copied, nil
}

func (f *fakeRepository) List(ctx context.Context) ([]Venue, error) {
	var out []Venue
	for _, v := range f.venues {
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	v, ok := f.venues[id]
	if !ok {
		return 0, nil
	}
	if name, ok := fields["name"]; ok {
		v.Name = name.(string)
	}
	return 1, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := f.venues[id]; !ok {
		return 0, nil
	}
	delete(f.venues, id)
	return 1, nil
}

func (f *fakeRepository) CountUpcomingBookings(ctx context.Context, id uuid.UUID) (int64, error) {
	return f.bookings[id], nil
}

func newTestService() (Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, zap.NewNop()), repo
}

func TestMutationsAreAdminOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	req := CreateVenueRequest{Name: "Auditorium A", Building: "Science Hall"}

	for _, role := range []user.Role{user.RoleAttendee, user.RoleOrganizer} {
		_, err := svc.Create(ctx, role, req)
		assert.True(t, apperr.IsKind(err, apperr.KindPermissionDenied), "role %s", role)
	}

	v, err := svc.Create(ctx, user.RoleAdmin, req)
	require.NoError(t, err)
	assert.Equal(t, "Auditorium A", v.Name)
}

func TestDeleteRefusedWhileBooked(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	v, err := svc.Create(ctx, user.RoleAdmin, CreateVenueRequest{Name: "Auditorium A", Building: "Science Hall"})
	require.NoError(t, err)
	repo.bookings[v.ID] = 2

	err = svc.Delete(ctx, user.RoleAdmin, v.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	repo.bookings[v.ID] = 0
	assert.NoError(t, svc.Delete(ctx, user.RoleAdmin, v.ID))
}

func TestExists(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	v, err := svc.Create(ctx, user.RoleAdmin, CreateVenueRequest{Name: "Auditorium A", Building: "Science Hall"})
	require.NoError(t, err)

	ok, err := svc.Exists(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}
