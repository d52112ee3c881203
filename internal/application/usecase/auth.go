package usecase

import (
	"context"
	"errors"

	"goaltracker/internal/domain"
	"goaltracker/internal/infrastructure/security"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type AuthUseCase struct {
	users  UserRepository
	hasher *security.PasswordHasher
	tokens *security.TokenManager
}

func NewAuthUseCase(users UserRepository, hasher *security.PasswordHasher, tokens *security.TokenManager) *AuthUseCase {
	return &AuthUseCase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

type AuthResult struct {
	UserID   uuid.UUID
	Username string
	Token    string
}

func (uc *AuthUseCase) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:       uuid.New(),
		Username: username,
		Password: hash,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{UserID: user.ID, Username: user.Username, Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := uc.hasher.Compare(user.Password, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{UserID: user.ID, Username: user.Username, Token: token}, nil
}
