package services

import (
	"context"
	"errors"

	"github.com/avorobev/todo-service/internal/logger"
	"github.com/avorobev/todo-service/internal/models"
	"github.com/avorobev/todo-service/internal/password"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username already registered")
	ErrUserDoesNotExist   = errors.New("username does not exist")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyCredentials   = errors.New("username and password are required")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, hashedPassword string) (bool, error)
}

// TokenGenerator defines an interface for issuing identity tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, username string) (string, error)
}

// AuthService handles registration and login.
type AuthService struct {
	reader UserReader
	writer UserWriter
	jwt    TokenGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, jwt TokenGenerator) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		jwt:    jwt,
	}
}

// Register creates a new user with a hashed password.
func (svc *AuthService) Register(ctx context.Context, username, pass string) error {
	if username == "" || pass == "" {
		return ErrEmptyCredentials
	}

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "error", err)
		return err
	}
	if user != nil {
		logger.Log.Infow("user already exists", "username", username)
		return ErrUserAlreadyExists
	}

	hashedPassword, err := password.Hash(pass)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "error", err)
		return err
	}

	// The conditional write closes the race between the existence check
	// above and two concurrent registrations of the same username.
	created, err := svc.writer.Save(ctx, username, hashedPassword)
	if err != nil {
		logger.Log.Errorw("failed to save user", "error", err)
		return err
	}
	if !created {
		logger.Log.Infow("user created concurrently", "username", username)
		return ErrUserAlreadyExists
	}

	return nil
}

// Login authenticates a user and returns a signed token.
func (svc *AuthService) Login(ctx context.Context, username, pass string) (string, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "error", err)
		return "", err
	}
	if user == nil {
		logger.Log.Infow("user does not exist", "username", username)
		return "", ErrUserDoesNotExist
	}

	if !password.Verify(pass, user.HashedPassword) {
		logger.Log.Infow("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.Username)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "error", err)
		return "", err
	}

	return token, nil
}
