// Package tokens инкапсулирует выпуск и проверку JWT-токенов доступа.
package tokens

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/libraria-tech/go-backend/pkg/e"
)

// TokenPair — пара access/refresh токенов, выдаваемая при логине.
type TokenPair struct {
	Access  string
	Refresh string
}

// Manager выпускает и валидирует подписанные HS256 токены.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// NewPair выпускает пару токенов для пользователя.
func (m *Manager) NewPair(userID int64, now time.Time) (*TokenPair, error) {
	access, err := m.sign(userID, now, m.accessTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := m.sign(userID, now, m.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// Parse проверяет подпись и срок действия токена и возвращает ID пользователя.
func (m *Manager) Parse(raw string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, e.ErrUnauthorized
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, e.ErrUnauthorized
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, e.ErrUnauthorized
	}

	return userID, nil
}

func (m *Manager) sign(userID int64, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}
