package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"planit/internal/model"
	"planit/internal/repository"
)

// CategoryService wraps category business logic. Name uniqueness per user
// is enforced here, not by the schema.
type CategoryService struct {
	categories *repository.CategoryRepository
}

func NewCategoryService(categories *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) List(ctx context.Context, userID uint) ([]model.Category, error) {
	return s.categories.ListByUser(ctx, userID)
}

func (s *CategoryService) Get(ctx context.Context, userID, categoryID uint) (*model.Category, error) {
	category, err := s.categories.FindByID(ctx, userID, categoryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Create adds a category unless the user already has one with that name,
// in which case nothing is written and ErrDuplicateCategory comes back.
func (s *CategoryService) Create(ctx context.Context, userID uint, name string) (*model.Category, error) {
	name, err := s.checkName(ctx, userID, name, 0)
	if err != nil {
		return nil, err
	}
	category := model.Category{UserID: userID, Name: name}
	if err := s.categories.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update renames a category, applying the same duplicate rule but
// ignoring the category's own row.
func (s *CategoryService) Update(ctx context.Context, userID, categoryID uint, name string) (*model.Category, error) {
	category, err := s.Get(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	name, err = s.checkName(ctx, userID, name, categoryID)
	if err != nil {
		return nil, err
	}
	category.Name = name
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete clears the category from every task referencing it, then removes
// the row.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID uint) error {
	if _, err := s.Get(ctx, userID, categoryID); err != nil {
		return err
	}
	return s.categories.DeleteAndDetachTasks(ctx, userID, categoryID)
}

func (s *CategoryService) checkName(ctx context.Context, userID uint, name string, excludeID uint) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		verr := NewValidationError()
		verr.Add("name", "name is required")
		return "", verr
	}
	taken, err := s.categories.NameTaken(ctx, userID, name, excludeID)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrDuplicateCategory
	}
	return name, nil
}
