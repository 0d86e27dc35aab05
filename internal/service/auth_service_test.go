package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"aura/internal/auth"
	apperrors "aura/internal/errors"
	"aura/internal/model"
	"aura/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
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

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func newAuthTestService(repo repository.UserRepository) AuthService {
	return NewAuthService(repo, auth.NewJWTService("test-secret"))
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		setup    func(*MockUserRepository)
		wantErr  error
	}{
		{
			name:     "success",
			username: "alice",
			email:    "a@x.com",
			password: "secret1",
			setup: func(repo *MockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, repository.ErrNotFound)
				repo.On("FindByUsername", mock.Anything, "alice").Return(nil, repository.ErrNotFound)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:     "duplicate email",
			username: "alice2",
			email:    "a@x.com",
			password: "secret1",
			setup: func(repo *MockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{ID: "u1"}, nil)
			},
			wantErr: apperrors.ErrUserExists,
		},
		{
			name:     "duplicate username",
			username: "alice",
			email:    "other@x.com",
			password: "secret1",
			setup: func(repo *MockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "other@x.com").Return(nil, repository.ErrNotFound)
				repo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: "u1"}, nil)
			},
			wantErr: apperrors.ErrUserExists,
		},
		{
			name:     "missing fields",
			username: "",
			email:    "a@x.com",
			password: "secret1",
			setup:    func(repo *MockUserRepository) {},
			wantErr:  &apperrors.ValidationError{},
		},
		{
			name:     "short password",
			username: "alice",
			email:    "a@x.com",
			password: "abc",
			setup:    func(repo *MockUserRepository) {},
			wantErr:  &apperrors.ValidationError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setup(repo)
			svc := newAuthTestService(repo)

			token, user, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)

			if tt.wantErr != nil {
				if _, ok := tt.wantErr.(*apperrors.ValidationError); ok {
					var ve *apperrors.ValidationError
					assert.ErrorAs(t, err, &ve)
				} else {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, tt.username, user.Username)
			assert.Equal(t, tt.email, user.Email)
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_RegisterNeverStoresPlaintext(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	repo.On("FindByUsername", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)

	var stored *model.User
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*model.User) }).
		Return(nil)

	_, _, err := newAuthTestService(repo).Register(context.Background(), "alice", "a@x.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcryptCost)
	require.NoError(t, err)
	existing := &model.User{ID: "u1", Username: "alice", Email: "a@x.com", PasswordHash: string(hashed)}

	t.Run("success updates last login", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "a@x.com").Return(existing, nil)
		repo.On("UpdateLastLogin", mock.Anything, "u1", mock.AnythingOfType("time.Time")).Return(nil)

		token, user, err := newAuthTestService(repo).Login(context.Background(), "a@x.com", "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "alice", user.Username)
		repo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "a@x.com").Return(existing, nil)

		_, _, err := newAuthTestService(repo).Login(context.Background(), "a@x.com", "wrong")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email yields the same error", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "nobody@x.com").Return(nil, repository.ErrNotFound)

		_, _, err := newAuthTestService(repo).Login(context.Background(), "nobody@x.com", "secret1")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestAuthService_VerifyToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	token, err := jwtService.GenerateToken("u1")
	require.NoError(t, err)

	t.Run("valid token resolves the user", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, "u1").
			Return(&model.User{ID: "u1", Username: "alice", Email: "a@x.com"}, nil)

		user, err := NewAuthService(repo, jwtService).VerifyToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("subject no longer exists", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, "u1").Return(nil, repository.ErrNotFound)

		_, err := NewAuthService(repo, jwtService).VerifyToken(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("tampered signature", func(t *testing.T) {
		repo := new(MockUserRepository)

		_, err := NewAuthService(repo, jwtService).VerifyToken(context.Background(), token+"x")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}
