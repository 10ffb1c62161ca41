package service

import (
	"context"
	"errors"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/model"
	"github.com/tasnim-mariam/mooncart-api/internal/repository"
)

var (
	ErrRequestNotFound      = errors.New("product request not found")
	ErrInvalidRequestStatus = errors.New("invalid request status")
)

type ProductRequestService struct {
	repo repository.ProductRequestRepository
}

func NewProductRequestService(repo repository.ProductRequestRepository) *ProductRequestService {
	return &ProductRequestService{repo: repo}
}

func (s *ProductRequestService) Submit(ctx context.Context, userID *int64, req dto.SubmitProductRequest) (*model.ProductRequest, error) {
	if userID == nil {
		userID = req.UserID
	}
	pr := &model.ProductRequest{
		UserID:      userID,
		ProductName: req.ProductName,
		Category:    req.Category,
		Description: req.Description,
		Email:       req.Email,
		Status:      model.RequestStatusPending,
	}
	if err := s.repo.Create(ctx, pr); err != nil {
		return nil, err
	}
	return pr, nil
}

func (s *ProductRequestService) List(ctx context.Context, status string) ([]model.ProductRequest, int, error) {
	if status != "" && !model.ValidRequestStatus(status) {
		return nil, 0, ErrInvalidRequestStatus
	}
	requests, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, 0, err
	}
	if requests == nil {
		requests = []model.ProductRequest{}
	}
	pending, err := s.repo.PendingCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return requests, pending, nil
}

func (s *ProductRequestService) GetByID(ctx context.Context, id int64) (*model.ProductRequest, error) {
	pr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, ErrRequestNotFound
	}
	return pr, nil
}

// UpdateStatus moves the request through its review lifecycle. Approval
// records delivery details and clears any earlier rejection; rejection
// records the reason and clears any earlier delivery details.
func (s *ProductRequestService) UpdateStatus(ctx context.Context, id int64, req dto.UpdateRequestStatusRequest) (*model.ProductRequest, error) {
	if !model.ValidRequestStatus(req.Status) {
		return nil, ErrInvalidRequestStatus
	}

	upd := repository.RequestStatusUpdate{
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
	}
	switch req.Status {
	case model.RequestStatusApproved:
		upd.DeliveryTime = req.DeliveryTime
		upd.DeliveryManID = req.DeliveryManID
	case model.RequestStatusRejected:
		upd.Rejection = req.RejectionReason
	}

	ok, err := s.repo.UpdateStatus(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRequestNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *ProductRequestService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
