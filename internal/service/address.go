package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/model"
	"github.com/tasnim-mariam/mooncart-api/internal/repository"
)

var ErrAddressNotFound = errors.New("address not found")

type AddressService struct {
	repo repository.AddressRepository
}

func NewAddressService(repo repository.AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

func (s *AddressService) List(ctx context.Context, userID int64) ([]model.Address, error) {
	addresses, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if addresses == nil {
		addresses = []model.Address{}
	}
	return addresses, nil
}

// Create inserts the address. A user's first address always becomes the
// default; asking for default on a later address demotes the previous one.
func (s *AddressService) Create(ctx context.Context, userID int64, req dto.CreateAddressRequest) (*model.Address, error) {
	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	label := "Home"
	if req.Label != nil && *req.Label != "" {
		label = *req.Label
	}

	address := &model.Address{
		UserID:      userID,
		Label:       label,
		AddressLine: req.AddressLine,
		City:        req.City,
		ZipCode:     req.ZipCode,
		Phone:       req.Phone,
		IsDefault:   req.IsDefault || count == 0,
	}
	if err := s.repo.Create(ctx, address); err != nil {
		return nil, err
	}
	if address.IsDefault {
		if err := s.repo.ClearDefaults(ctx, userID, address.ID); err != nil {
			return nil, fmt.Errorf("clear previous default: %w", err)
		}
	}
	return address, nil
}

func (s *AddressService) Update(ctx context.Context, userID, id int64, req dto.UpdateAddressRequest) (*model.Address, error) {
	address, err := s.ownedAddress(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Label != nil {
		address.Label = *req.Label
	}
	if req.AddressLine != nil {
		address.AddressLine = *req.AddressLine
	}
	if req.City != nil {
		address.City = *req.City
	}
	if req.ZipCode != nil {
		address.ZipCode = req.ZipCode
	}
	if req.Phone != nil {
		address.Phone = req.Phone
	}
	if err := s.repo.Update(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

// SetDefault makes the address the user's only default.
func (s *AddressService) SetDefault(ctx context.Context, userID, id int64) error {
	ok, err := s.repo.SetDefault(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAddressNotFound
	}
	return s.repo.ClearDefaults(ctx, userID, id)
}

// Delete removes the address; deleting the default promotes the user's most
// recently created remaining address so a default always exists.
func (s *AddressService) Delete(ctx context.Context, userID, id int64) error {
	address, err := s.ownedAddress(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if address.IsDefault {
		if err := s.repo.PromoteLatest(ctx, userID); err != nil {
			return fmt.Errorf("promote replacement default: %w", err)
		}
	}
	return nil
}

func (s *AddressService) ownedAddress(ctx context.Context, userID, id int64) (*model.Address, error) {
	address, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if address == nil || address.UserID != userID {
		return nil, ErrAddressNotFound
	}
	return address, nil
}
