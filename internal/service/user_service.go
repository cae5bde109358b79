package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"apoteka/internal/auth"
	"apoteka/internal/cache"
	apperrors "apoteka/internal/errors"
	"apoteka/internal/model"
	"apoteka/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// ErrWrongPassword is returned when the current password given during a
// password change does not match.
var ErrWrongPassword = errors.New("current password is incorrect")

// PasswordUpdate carries an old/new password pair for a profile update.
type PasswordUpdate struct {
	OldPassword string
	NewPassword string
}

// UpdateProfileInput carries optional profile changes; nil fields are
// left untouched.
type UpdateProfileInput struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Address      *string
	Phone        *string
	PasswordData *PasswordUpdate
}

// TechnicianInput carries the fields for creating a technician account.
type TechnicianInput struct {
	RegisterInput
	Status *model.EmployeeStatus
}

// UserService handles profile and staff management.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*model.User, error)
	ListTechnicians(ctx context.Context) ([]model.User, error)
	CreateTechnician(ctx context.Context, input TechnicianInput) (*model.User, error)
	UpdateTechnicianStatus(ctx context.Context, id uint, status model.EmployeeStatus) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(userRepo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{userRepo: userRepo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// GetUser retrieves a user by ID with caching.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// UpdateProfile applies the given changes to the user's own profile.
// Email changes are checked for uniqueness; password changes require the
// current password.
func (s *userService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if existing, err := s.userRepo.FindByEmail(ctx, *input.Email); err == nil && existing != nil {
			return nil, ErrEmailTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
		user.Email = *input.Email
	}

	if input.PasswordData != nil {
		if !auth.CheckPassword(input.PasswordData.OldPassword, user.PasswordHash) {
			return nil, ErrWrongPassword
		}
		hash, err := auth.HashPassword(input.PasswordData.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return user, nil
}

// ListTechnicians lists all technician accounts.
func (s *userService) ListTechnicians(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListByRole(ctx, model.RoleTechnician)
}

// CreateTechnician creates a staff account with the technician role.
func (s *userService) CreateTechnician(ctx context.Context, input TechnicianInput) (*model.User, error) {
	if existing, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil && existing != nil {
		return nil, ErrUsernameTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if existing, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	status := model.StatusActive
	if input.Status != nil {
		status = *input.Status
	}

	user := &model.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         model.RoleTechnician,
		Status:       &status,
		Active:       true,
		Address:      input.Address,
		Phone:        input.Phone,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create technician: %w", err)
	}
	return user, nil
}

// UpdateTechnicianStatus changes a technician's employee status.
func (s *userService) UpdateTechnicianStatus(ctx context.Context, id uint, status model.EmployeeStatus) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	if user.Role != model.RoleTechnician {
		return nil, apperrors.ErrUserNotFound
	}

	user.Status = &status
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return user, nil
}
