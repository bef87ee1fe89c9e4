package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tarefas/model"
)

const sessionIssuer = "tarefas"

// SessionService signs and verifies the session cookie.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(secret string, ttl time.Duration) *SessionService {
	return &SessionService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

func (s *SessionService) CreateSessionToken(identity model.Identity) (string, error) {
	now := s.now()
	claims := &model.SessionClaims{
		Email: identity.Email,
		Name:  identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   identity.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseSessionToken returns ErrInvalidSession for anything but a valid,
// unexpired token signed with this service's secret.
func (s *SessionService) ParseSessionToken(tokenString string) (model.Identity, error) {
	claims := &model.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return model.Identity{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if claims.Email == "" {
		return model.Identity{}, fmt.Errorf("%w: missing email", ErrInvalidSession)
	}
	return claims.Identity(), nil
}
