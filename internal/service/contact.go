package service

import (
	"context"
	"errors"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/model"
	"github.com/tasnim-mariam/mooncart-api/internal/repository"
)

var ErrMessageNotFound = errors.New("message not found")

type ContactService struct {
	repo repository.ContactRepository
}

func NewContactService(repo repository.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

func (s *ContactService) Submit(ctx context.Context, req dto.SubmitContactRequest) (*model.ContactMessage, error) {
	msg := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *ContactService) List(ctx context.Context, unreadOnly bool) ([]model.ContactMessage, int, error) {
	messages, err := s.repo.List(ctx, unreadOnly)
	if err != nil {
		return nil, 0, err
	}
	if messages == nil {
		messages = []model.ContactMessage{}
	}
	unread, err := s.repo.UnreadCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return messages, unread, nil
}

func (s *ContactService) MarkRead(ctx context.Context, id int64) (*model.ContactMessage, error) {
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	if !msg.IsRead {
		if err := s.repo.MarkRead(ctx, id); err != nil {
			return nil, err
		}
		msg.IsRead = true
	}
	return msg, nil
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if msg == nil {
		return ErrMessageNotFound
	}
	return s.repo.Delete(ctx, id)
}
