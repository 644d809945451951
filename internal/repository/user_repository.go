package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"planit/internal/model"
)

// UserRepository handles accounts and their provisioning.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Provision creates the user, its profile, and the given starter
// categories as a single transaction. A failure anywhere leaves no
// partial account behind.
func (r *UserRepository) Provision(ctx context.Context, user *model.User, categoryNames []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		profile := model.UserProfile{
			UserID:                    user.ID,
			EmailNotificationsEnabled: true,
			ThemePreference:           model.ThemeLight,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		for _, name := range categoryNames {
			category := model.Category{UserID: user.ID, Name: name}
			if err := tx.Create(&category).Error; err != nil {
				return fmt.Errorf("create category %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("provision user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
