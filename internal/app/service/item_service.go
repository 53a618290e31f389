package service

import (
	"context"
	"strings"

	"itemtrack/internal/common"
	"itemtrack/internal/domain/model"
	"itemtrack/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ItemService implements per-user item CRUD. Every operation is scoped to the
// acting subject: other users' items look like they do not exist.
type ItemService struct {
	itemRepo repository.ItemRepository
	log      *logrus.Logger
}

func NewItemService(itemRepo repository.ItemRepository, log *logrus.Logger) *ItemService {
	return &ItemService{itemRepo: itemRepo, log: log}
}

type CreateItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UpdateItemRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (s *ItemService) List(ctx context.Context, sub model.Subject) ([]model.Item, error) {
	return s.itemRepo.FindByOwner(ctx, sub.ID)
}

func (s *ItemService) Get(ctx context.Context, sub model.Subject, itemID string) (*model.Item, error) {
	return s.itemRepo.FindByIDAndOwner(ctx, itemID, sub.ID)
}

func (s *ItemService) Create(ctx context.Context, sub model.Subject, req CreateItemRequest) (*model.Item, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, common.NewValidationError(msgTitleBlank)
	}

	item := &model.Item{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		UserID:      sub.ID,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"item_id": item.ID, "user_id": sub.ID}).Info("item created")
	return item, nil
}

func (s *ItemService) Update(ctx context.Context, sub model.Subject, itemID string, req UpdateItemRequest) (*model.Item, error) {
	item, err := s.itemRepo.FindByIDAndOwner(ctx, itemID, sub.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if strings.TrimSpace(item.Title) == "" {
		return nil, common.NewValidationError(msgTitleBlank)
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, sub model.Subject, itemID string) error {
	if err := s.itemRepo.Delete(ctx, itemID, sub.ID); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"item_id": itemID, "user_id": sub.ID}).Info("item deleted")
	return nil
}
