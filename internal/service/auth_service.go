package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"apoteka/internal/auth"
	"apoteka/internal/model"
	"apoteka/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when username or password is
	// incorrect. It does not say which.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already registered")
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = errors.New("email already registered")
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
	Address   string
	Phone     string
}

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (token string, user *model.User, err error)
	TokenTTL() time.Duration
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
	tokenTTL time.Duration
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		tokenTTL: tokenTTL,
	}
}

// Register creates a customer account with a hashed password.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
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

	user := &model.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         model.RoleCustomer,
		Active:       true,
		Address:      input.Address,
		Phone:        input.Phone,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login authenticates a user and issues an access token.
func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// TokenTTL exposes the configured token lifetime for cookie max-age.
func (s *authService) TokenTTL() time.Duration {
	return s.tokenTTL
}
