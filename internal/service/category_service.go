package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"touchbase/internal/logger"
	"touchbase/internal/model"
	"touchbase/internal/repository"
)

type categoryService struct {
	categoryRepo repository.CategoryRepository
	contactRepo  repository.ContactRepository
	logger       *logger.Logger
}

func NewCategoryService(categoryRepo repository.CategoryRepository, contactRepo repository.ContactRepository, logger *logger.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		contactRepo:  contactRepo,
		logger:       logger,
	}
}

func (s *categoryService) Create(ctx context.Context, userID, name string, position *int) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	pos := 0
	if position != nil {
		pos = *position
	} else {
		max, err := s.categoryRepo.MaxPosition(ctx, userID)
		if err != nil {
			return nil, err
		}
		pos = max + 1
	}

	category := model.NewCategory(userID, name, pos)
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info("Created category:", category.ID)
	return category, nil
}

func (s *categoryService) List(ctx context.Context, userID string) ([]*model.Category, error) {
	return s.categoryRepo.FindAll(ctx, userID)
}

func (s *categoryService) Update(ctx context.Context, userID, id string, name *string, position *int) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		category.Name = trimmed
	}
	if position != nil {
		category.Position = *position
	}
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, userID, id string) error {
	category, err := s.categoryRepo.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}

	// Contacts survive their category; they fall back to uncategorized.
	if err := s.contactRepo.DetachCategory(ctx, userID, category.ID); err != nil {
		s.logger.Error("Failed to detach contacts from category:", err)
		return err
	}
	if err := s.categoryRepo.Delete(ctx, userID, category.ID); err != nil {
		return err
	}
	s.logger.Info("Deleted category:", category.ID)
	return nil
}

func (s *categoryService) Reorder(ctx context.Context, userID string, ids []string) error {
	return s.categoryRepo.Reorder(ctx, userID, ids)
}
