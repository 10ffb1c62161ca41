package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/model"
	"github.com/tasnim-mariam/mooncart-api/internal/repository"
)

type fakeProductRequestRepo struct {
	byID   map[int64]*model.ProductRequest
	nextID int64
}

func newFakeProductRequestRepo() *fakeProductRequestRepo {
	return &fakeProductRequestRepo{byID: map[int64]*model.ProductRequest{}}
}

func (f *fakeProductRequestRepo) Create(_ context.Context, req *model.ProductRequest) error {
	f.nextID++
	req.ID = f.nextID
	req.Status = model.RequestStatusPending
	req.CreatedAt = time.Now()
	f.byID[req.ID] = req
	return nil
}

func (f *fakeProductRequestRepo) List(_ context.Context, status string) ([]model.ProductRequest, error) {
	var out []model.ProductRequest
	for _, r := range f.byID {
		if status == "" || r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeProductRequestRepo) PendingCount(_ context.Context) (int, error) {
	count := 0
	for _, r := range f.byID {
		if r.Status == model.RequestStatusPending {
			count++
		}
	}
	return count, nil
}

func (f *fakeProductRequestRepo) GetByID(_ context.Context, id int64) (*model.ProductRequest, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeProductRequestRepo) UpdateStatus(_ context.Context, id int64, upd repository.RequestStatusUpdate) (bool, error) {
	r, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	r.Status = upd.Status
	if upd.AdminNotes != nil {
		r.AdminNotes = upd.AdminNotes
	}
	switch upd.Status {
	case model.RequestStatusApproved:
		r.DeliveryTime = upd.DeliveryTime
		r.DeliveryManID = upd.DeliveryManID
		r.RejectionReason = nil
	case model.RequestStatusRejected:
		r.RejectionReason = upd.Rejection
		r.DeliveryTime = nil
		r.DeliveryManID = nil
	}
	return true, nil
}

func (f *fakeProductRequestRepo) Delete(_ context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func TestProductRequestService_Submit(t *testing.T) {
	repo := newFakeProductRequestRepo()
	svc := NewProductRequestService(repo)

	userID := int64(7)
	pr, err := svc.Submit(context.Background(), &userID, dto.SubmitProductRequest{ProductName: "Moon Cheese"})
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusPending, pr.Status)
	require.NotNil(t, pr.UserID)
	assert.Equal(t, int64(7), *pr.UserID)
}

func TestProductRequestService_List_InvalidStatus(t *testing.T) {
	svc := NewProductRequestService(newFakeProductRequestRepo())

	_, _, err := svc.List(context.Background(), "archived")
	assert.ErrorIs(t, err, ErrInvalidRequestStatus)
}

func TestProductRequestService_Approve_ClearsRejection(t *testing.T) {
	repo := newFakeProductRequestRepo()
	svc := NewProductRequestService(repo)

	reason := "out of season"
	repo.byID[1] = &model.ProductRequest{
		ID: 1, ProductName: "Moon Cheese",
		Status: model.RequestStatusRejected, RejectionReason: &reason,
	}
	repo.nextID = 1

	deliveryTime := "3-5 days"
	deliveryManID := int64(2)
	pr, err := svc.UpdateStatus(context.Background(), 1, dto.UpdateRequestStatusRequest{
		Status: model.RequestStatusApproved, DeliveryTime: &deliveryTime, DeliveryManID: &deliveryManID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusApproved, pr.Status)
	assert.Nil(t, pr.RejectionReason)
	require.NotNil(t, pr.DeliveryTime)
	assert.Equal(t, "3-5 days", *pr.DeliveryTime)
}

func TestProductRequestService_Reject_ClearsDelivery(t *testing.T) {
	repo := newFakeProductRequestRepo()
	svc := NewProductRequestService(repo)

	deliveryTime := "3-5 days"
	repo.byID[1] = &model.ProductRequest{
		ID: 1, ProductName: "Moon Cheese",
		Status: model.RequestStatusApproved, DeliveryTime: &deliveryTime,
	}
	repo.nextID = 1

	reason := "not sourceable"
	pr, err := svc.UpdateStatus(context.Background(), 1, dto.UpdateRequestStatusRequest{
		Status: model.RequestStatusRejected, RejectionReason: &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusRejected, pr.Status)
	assert.Nil(t, pr.DeliveryTime)
	require.NotNil(t, pr.RejectionReason)
	assert.Equal(t, "not sourceable", *pr.RejectionReason)
}

func TestProductRequestService_UpdateStatus_Invalid(t *testing.T) {
	svc := NewProductRequestService(newFakeProductRequestRepo())

	_, err := svc.UpdateStatus(context.Background(), 1, dto.UpdateRequestStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidRequestStatus)
}

func TestProductRequestService_UpdateStatus_NotFound(t *testing.T) {
	svc := NewProductRequestService(newFakeProductRequestRepo())

	_, err := svc.UpdateStatus(context.Background(), 42, dto.UpdateRequestStatusRequest{Status: model.RequestStatusApproved})
	assert.ErrorIs(t, err, ErrRequestNotFound)
}
