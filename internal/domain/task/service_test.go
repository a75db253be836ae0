package task

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

type fakeRepository struct {
	tasks map[uuid.UUID]*Task
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{tasks: map[uuid.UUID]*Task{}}
}

func (f *fakeRepository) Create(ctx context.Context, t *Task) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	stored := *t
	f.tasks[t.ID] = &stored
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeRepository) List(ctx context.Context, filter Filter) ([]Task, error) {
	var out []Task
	for _, t := range f.tasks {
		switch {
		case filter.EventID != nil:
			if t.EventID == nil || *t.EventID != *filter.EventID {
				continue
			}
		case filter.GlobalOnly:
			if t.EventID != nil {
				continue
			}
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeRepository) MaxPosition(ctx context.Context, eventID *uuid.UUID, status Status) (float64, error) {
	var max float64
	for _, t := range f.tasks {
		sameScope := (eventID == nil && t.EventID == nil) ||
			(eventID != nil && t.EventID != nil && *eventID == *t.EventID)
		if sameScope && t.Status == status && t.Position > max {
			max = t.Position
		}
	}
	return max, nil
}

func (f *fakeRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	t, ok := f.tasks[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["title"]; ok {
		t.Title = v.(string)
	}
	if v, ok := fields["status"]; ok {
		t.Status = v.(Status)
	}
	if v, ok := fields["position"]; ok {
		t.Position = v.(float64)
	}
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.tasks[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.tasks, id)
	return nil
}

func newTestService() (Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, zap.NewNop()), repo
}

func TestBoardIsOrganizerOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, uuid.New(), user.RoleAttendee, CreateTaskRequest{Title: "Book catering"})
	assert.True(t, apperr.IsKind(err, apperr.KindPermissionDenied))

	_, err = svc.List(ctx, user.RoleAttendee, Filter{})
	assert.True(t, apperr.IsKind(err, apperr.KindPermissionDenied))

	err = svc.Delete(ctx, user.RoleAttendee, uuid.New())
	assert.True(t, apperr.IsKind(err, apperr.KindPermissionDenied))
}

func TestCreateAppendsToColumnBottom(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	actorID := uuid.New()

	helper := uuid.New()
	first, err := svc.Create(ctx, actorID, user.RoleOrganizer, CreateTaskRequest{Title: "Book catering", AssigneeID: &helper})
	require.NoError(t, err)
	second, err := svc.Create(ctx, actorID, user.RoleOrganizer, CreateTaskRequest{Title: "Print posters"})
	require.NoError(t, err)

	assert.Equal(t, float64(positionGap), first.Position)
	assert.Equal(t, float64(2*positionGap), second.Position)
	assert.Equal(t, StatusTodo, first.Status)
	assert.Equal(t, PriorityMedium, first.Priority)
	require.NotNil(t, first.AssigneeID)
	assert.Equal(t, helper, *first.AssigneeID)
	assert.Nil(t, second.AssigneeID)

	// A different column starts its own position sequence.
	doing := StatusInProgress
	third, err := svc.Create(ctx, actorID, user.RoleAdmin, CreateTaskRequest{Title: "Confirm venue", Status: &doing})
	require.NoError(t, err)
	assert.Equal(t, float64(positionGap), third.Position)
}

func TestListFilters(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	actorID := uuid.New()
	eventID := uuid.New()

	_, err := svc.Create(ctx, actorID, user.RoleOrganizer, CreateTaskRequest{Title: "Scoped", EventID: &eventID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, actorID, user.RoleOrganizer, CreateTaskRequest{Title: "Global"})
	require.NoError(t, err)

	all, err := svc.List(ctx, user.RoleOrganizer, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := svc.List(ctx, user.RoleOrganizer, Filter{EventID: &eventID})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Scoped", scoped[0].Title)

	global, err := svc.List(ctx, user.RoleOrganizer, Filter{GlobalOnly: true})
	require.NoError(t, err)
	require.Len(t, global, 1)
	assert.Equal(t, "Global", global[0].Title)
}

func TestUpdateMovesCard(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	card, err := svc.Create(ctx, uuid.New(), user.RoleOrganizer, CreateTaskRequest{Title: "Book catering"})
	require.NoError(t, err)

	done := StatusDone
	pos := 500.0
	updated, err := svc.Update(ctx, user.RoleOrganizer, card.ID, UpdateTaskRequest{Status: &done, Position: &pos})
	require.NoError(t, err)
	assert.Equal(t, StatusDone, updated.Status)
	assert.Equal(t, 500.0, updated.Position)
	assert.Equal(t, StatusDone, repo.tasks[card.ID].Status)

	_, err = svc.Update(ctx, user.RoleOrganizer, uuid.New(), UpdateTaskRequest{Status: &done})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = svc.Update(ctx, user.RoleOrganizer, card.ID, UpdateTaskRequest{})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
