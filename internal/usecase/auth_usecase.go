package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/libraria-tech/go-backend/internal/domain"
	"github.com/libraria-tech/go-backend/pkg/e"
	"github.com/libraria-tech/go-backend/pkg/logger"
	"github.com/libraria-tech/go-backend/pkg/tokens"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// AuthUseCase реализует регистрацию и выдачу JWT-токенов.
type AuthUseCase struct {
	userRepo UserRepository
	tokens   *tokens.Manager
	logger   logger.Logger
}

func NewAuthUC(userRepo UserRepository, tokens *tokens.Manager, logger logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register создаёт пользователя с bcrypt-хэшем пароля.
func (a *AuthUseCase) Register(ctx context.Context, req *RegisterReq) (*domain.User, error) {
	const op = "AuthUseCase.Register"

	if strings.TrimSpace(req.Username) == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}
	if len(req.Password) < minPasswordLength {
		return nil, e.Wrap(op, e.ErrPasswordTooShort)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	user, err := a.userRepo.Create(ctx, domain.NewUser(req.Username, req.Email, string(hash)))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return user, nil
}

// Login проверяет учётные данные и возвращает пару access/refresh токенов.
func (a *AuthUseCase) Login(ctx context.Context, req *LoginReq) (*LoginRes, error) {
	const op = "AuthUseCase.Login"

	user, err := a.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		// Не раскрываем, существует ли пользователь.
		return nil, e.Wrap(op, e.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, e.Wrap(op, e.ErrInvalidCredentials)
	}

	pair, err := a.tokens.NewPair(user.ID, time.Now())
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &LoginRes{
		Access:  pair.Access,
		Refresh: pair.Refresh,
	}, nil
}
