package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("incorrect username or password")
	ErrUsernameRequired     = errors.New("username is required")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// AuthService handles registration and credential checks.
type AuthService struct {
	userRepo   repository.UserRepository
	tokens     *TokenService
	bcryptCost int
	loginTTL   time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *TokenService, bcryptCost int, loginTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		loginTTL:   loginTTL,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username  string
	Email     *string
	FirstName string
	LastName  string
	Password  string
}

// Register hashes the password and stores a new active user. Username
// uniqueness is left to the unique index on users.username.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:       username,
		Email:          input.Email,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		HashedPassword: string(hashedPassword),
		IsActive:       true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateUser, err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Authenticate verifies credentials and returns the user. The username is
// trimmed as in Register. Unknown users, inactive users and wrong passwords
// all yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates the user and issues a login token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	user, err := s.Authenticate(ctx, input)
	if err != nil {
		return "", err
	}

	return s.tokens.Issue(user.Username, user.ID, s.loginTTL)
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
