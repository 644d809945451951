package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"planit/internal/auth"
	"planit/internal/model"
	"planit/internal/repository"
)

// DefaultCategories are seeded for every new account.
var DefaultCategories = []string{"Home", "Work", "Personal"}

// RegisterInput is the data required to open an account.
type RegisterInput struct {
	Username        string `json:"username" validate:"required,max=150"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

// AuthService handles registration and credential checks.
type AuthService struct {
	users    *repository.UserRepository
	validate *validator.Validate
}

func NewAuthService(users *repository.UserRepository) *AuthService {
	v := validator.New()
	// Report errors under the json field name the client submitted.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &AuthService{users: users, validate: v}
}

// Register validates the input, then creates the user, its profile, and
// the three default categories as one transactional unit. The caller is
// responsible for establishing a session afterwards.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	verr := NewValidationError()

	if err := s.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				verr.Add(fe.Field(), validationMessage(fe))
			}
		} else {
			return nil, err
		}
	}

	if _, ok := verr.Fields["password"]; !ok && allNumeric(in.Password) {
		verr.Add("password", "password cannot be entirely numeric")
	}
	if _, ok := verr.Fields["password_confirm"]; !ok && in.Password != in.PasswordConfirm {
		verr.Add("password_confirm", "passwords do not match")
	}

	if _, ok := verr.Fields["username"]; !ok {
		taken, err := s.users.ExistsByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			verr.Add("username", "a user with that username already exists")
		}
	}

	if verr.Any() {
		return nil, verr
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := model.User{Username: in.Username, PasswordHash: hash}
	if err := s.users.Provision(ctx, &user, DefaultCategories); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserByID resolves the account a verified token points at. Tokens
// outliving their account resolve to ErrNotFound.
func (s *AuthService) UserByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies a username/password pair. Unknown users and wrong
// passwords fail identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "invalid value"
	}
}

func allNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
