package service

import (
	"context"
	"errors"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/model"
	"github.com/tasnim-mariam/mooncart-api/internal/repository"
)

var (
	ErrDeliveryManNotFound = errors.New("delivery man not found")
	ErrNIDTaken            = errors.New("a delivery man with this NID already exists")
)

type DeliveryManService struct {
	repo repository.DeliveryManRepository
}

func NewDeliveryManService(repo repository.DeliveryManRepository) *DeliveryManService {
	return &DeliveryManService{repo: repo}
}

func (s *DeliveryManService) List(ctx context.Context, activeOnly bool) ([]model.DeliveryMan, error) {
	list, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.DeliveryMan{}
	}
	return list, nil
}

func (s *DeliveryManService) GetByID(ctx context.Context, id int64) (*model.DeliveryMan, error) {
	dm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dm == nil {
		return nil, ErrDeliveryManNotFound
	}
	return dm, nil
}

func (s *DeliveryManService) Create(ctx context.Context, req dto.CreateDeliveryManRequest) (*model.DeliveryMan, error) {
	dm := &model.DeliveryMan{
		Name:         req.Name,
		Phone:        req.Phone,
		NID:          req.NID,
		ProfileImage: req.ProfileImage,
		IsActive:     true,
	}
	if req.IsActive != nil {
		dm.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, dm); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrNIDTaken
		}
		return nil, err
	}
	return dm, nil
}

func (s *DeliveryManService) Update(ctx context.Context, id int64, req dto.UpdateDeliveryManRequest) (*model.DeliveryMan, error) {
	dm, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		dm.Name = *req.Name
	}
	if req.Phone != nil {
		dm.Phone = *req.Phone
	}
	if req.NID != nil {
		dm.NID = *req.NID
	}
	if req.ProfileImage != nil {
		dm.ProfileImage = req.ProfileImage
	}
	if req.IsActive != nil {
		dm.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, dm); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrNIDTaken
		}
		return nil, err
	}
	return dm, nil
}

// Delete removes a delivery man, or deactivates them instead when orders
// still reference them so order history keeps its assignment.
func (s *DeliveryManService) Delete(ctx context.Context, id int64) (deactivated bool, err error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return false, err
	}
	assigned, err := s.repo.CountAssignedOrders(ctx, id)
	if err != nil {
		return false, err
	}
	if assigned > 0 {
		return true, s.repo.Deactivate(ctx, id)
	}
	return false, s.repo.Delete(ctx, id)
}
