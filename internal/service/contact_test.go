package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/model"
)

type fakeContactRepo struct {
	byID   map[int64]*model.ContactMessage
	nextID int64
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{byID: map[int64]*model.ContactMessage{}}
}

func (f *fakeContactRepo) Create(_ context.Context, msg *model.ContactMessage) error {
	f.nextID++
	msg.ID = f.nextID
	msg.CreatedAt = time.Now()
	f.byID[msg.ID] = msg
	return nil
}

func (f *fakeContactRepo) List(_ context.Context, unreadOnly bool) ([]model.ContactMessage, error) {
	var out []model.ContactMessage
	for _, m := range f.byID {
		if !unreadOnly || !m.IsRead {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeContactRepo) UnreadCount(_ context.Context) (int, error) {
	count := 0
	for _, m := range f.byID {
		if !m.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeContactRepo) GetByID(_ context.Context, id int64) (*model.ContactMessage, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeContactRepo) MarkRead(_ context.Context, id int64) error {
	if m, ok := f.byID[id]; ok {
		m.IsRead = true
	}
	return nil
}

func (f *fakeContactRepo) Delete(_ context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func TestContactService_Submit(t *testing.T) {
	repo := newFakeContactRepo()
	svc := NewContactService(repo)

	msg, err := svc.Submit(context.Background(), dto.SubmitContactRequest{
		Name: "Tasnim", Email: "tasnim@example.com", Message: "Where is my order?",
	})
	require.NoError(t, err)
	assert.False(t, msg.IsRead)
	assert.NotZero(t, msg.ID)
}

func TestContactService_List_UnreadCount(t *testing.T) {
	repo := newFakeContactRepo()
	svc := NewContactService(repo)

	repo.byID[1] = &model.ContactMessage{ID: 1, Message: "a"}
	repo.byID[2] = &model.ContactMessage{ID: 2, Message: "b", IsRead: true}

	messages, unread, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, 1, unread)

	onlyUnread, _, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, onlyUnread, 1)
}

func TestContactService_MarkRead(t *testing.T) {
	repo := newFakeContactRepo()
	svc := NewContactService(repo)

	repo.byID[1] = &model.ContactMessage{ID: 1, Message: "a"}

	msg, err := svc.MarkRead(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, msg.IsRead)
	assert.True(t, repo.byID[1].IsRead)
}

func TestContactService_MarkRead_NotFound(t *testing.T) {
	svc := NewContactService(newFakeContactRepo())

	_, err := svc.MarkRead(context.Background(), 42)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestContactService_Delete_NotFound(t *testing.T) {
	svc := NewContactService(newFakeContactRepo())

	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}
