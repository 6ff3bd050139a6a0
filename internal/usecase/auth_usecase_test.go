package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/libraria-tech/go-backend/internal/domain"
	"github.com/libraria-tech/go-backend/pkg/e"
	"github.com/libraria-tech/go-backend/pkg/tokens"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := f.users[user.Username]; ok {
		return nil, e.ErrUsernameTaken
	}
	user.ID = int64(len(f.users) + 1)
	f.users[user.Username] = user
	return user, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, e.ErrUserNotFound
	}
	return user, nil
}

func newAuthFixture() (*AuthUseCase, *fakeUserRepo, *tokens.Manager) {
	repo := &fakeUserRepo{users: map[string]*domain.User{}}
	tm := tokens.NewManager("test-secret", 15*time.Minute, 24*time.Hour)
	return NewAuthUC(repo, tm, nopLogger{}), repo, tm
}

func TestRegister(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		uc, repo, _ := newAuthFixture()

		user, err := uc.Register(context.Background(), &RegisterReq{
			Username: "reader",
			Email:    "reader@example.com",
			Password: "correct horse",
		})

		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.NotEqual(t, "correct horse", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(repo.users["reader"].PasswordHash), []byte("correct horse")))
	})

	t.Run("empty username", func(t *testing.T) {
		uc, _, _ := newAuthFixture()

		_, err := uc.Register(context.Background(), &RegisterReq{
			Username: "  ",
			Password: "correct horse",
		})
		assert.ErrorIs(t, err, e.ErrMissingFields)
	})

	t.Run("short password", func(t *testing.T) {
		uc, _, _ := newAuthFixture()

		_, err := uc.Register(context.Background(), &RegisterReq{
			Username: "reader",
			Password: "short",
		})
		assert.ErrorIs(t, err, e.ErrPasswordTooShort)
	})

	t.Run("duplicate username", func(t *testing.T) {
		uc, _, _ := newAuthFixture()

		req := &RegisterReq{Username: "reader", Password: "correct horse"}
		_, err := uc.Register(context.Background(), req)
		require.NoError(t, err)

		_, err = uc.Register(context.Background(), req)
		assert.ErrorIs(t, err, e.ErrUsernameTaken)
	})
}

func TestLogin(t *testing.T) {
	uc, _, tm := newAuthFixture()

	registered, err := uc.Register(context.Background(), &RegisterReq{
		Username: "reader",
		Password: "correct horse",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		res, err := uc.Login(context.Background(), &LoginReq{
			Username: "reader",
			Password: "correct horse",
		})

		require.NoError(t, err)
		userID, err := tm.Parse(res.Access)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, userID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := uc.Login(context.Background(), &LoginReq{
			Username: "reader",
			Password: "wrong horse",
		})
		assert.ErrorIs(t, err, e.ErrInvalidCredentials)
	})

	t.Run("unknown user hides existence", func(t *testing.T) {
		_, err := uc.Login(context.Background(), &LoginReq{
			Username: "nobody",
			Password: "correct horse",
		})
		assert.ErrorIs(t, err, e.ErrInvalidCredentials)
	})
}
