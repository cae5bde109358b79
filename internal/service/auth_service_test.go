package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"apoteka/internal/auth"
	"apoteka/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful registration",
			input: RegisterInput{
				FirstName: "Mirza",
				LastName:  "Begic",
				Username:  "mirza",
				Email:     "mirza@example.com",
				Password:  "password123",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "mirza").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "mirza@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "username already registered",
			input: RegisterInput{
				Username: "taken",
				Email:    "new@example.com",
				Password: "password123",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "taken").Return(&model.User{Username: "taken"}, nil)
			},
			expectedError: ErrUsernameTaken,
		},
		{
			name: "email already registered",
			input: RegisterInput{
				Username: "fresh",
				Email:    "taken@example.com",
				Password: "password123",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "fresh").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, auth.NewTokenService("test-secret"), 30*time.Minute)
			user, err := service.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.input.Username, user.Username)
				assert.Equal(t, model.RoleCustomer, user.Role)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "mirza",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "mirza").Return(&model.User{
					ID:           1,
					Username:     "mirza",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown username",
			username: "nobody",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "mirza",
			password: "wrong-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "mirza").Return(&model.User{
					ID:           1,
					Username:     "mirza",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			tokens := auth.NewTokenService("test-secret")
			service := NewAuthService(mockRepo, tokens, 30*time.Minute)

			token, user, err := service.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.NotNil(t, user)

				// The token subject round-trips to the username.
				subject, err := tokens.Validate(token)
				assert.NoError(t, err)
				assert.Equal(t, tt.username, subject)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
