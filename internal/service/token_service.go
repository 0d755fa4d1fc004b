package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lshigami/quizhub/config"
	"github.com/lshigami/quizhub/internal/model"
)

// DefaultTokenTTL is the validity window of API tokens.
const DefaultTokenTTL = 24 * time.Hour

type TokenService interface {
	Issue(user *model.User) (string, error)
	Parse(raw string) (Principal, error)
}

type tokenClaims struct {
	UserID  uint `json:"user_id"`
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(cfg *config.Config) TokenService {
	return NewTokenServiceWithClock([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL, time.Now)
}

func NewTokenServiceWithClock(secret []byte, ttl time.Duration, now func() time.Time) TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &tokenService{secret: secret, ttl: ttl, now: now}
}

func (s *tokenService) Issue(user *model.User) (string, error) {
	issued := s.now()
	claims := tokenClaims{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Parse checks signature and expiry against the service clock and returns
// the principal carried by the token.
func (s *tokenService) Parse(raw string) (Principal, error) {
	claims := tokenClaims{}
	parser := jwt.Parser{
		ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
		SkipClaimsValidation: true,
	}
	_, err := parser.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if claims.ExpiresAt == nil || !s.now().Before(claims.ExpiresAt.Time) {
		return Principal{}, fmt.Errorf("%w: expired", ErrTokenInvalid)
	}
	if claims.UserID == 0 {
		return Principal{}, fmt.Errorf("%w: missing user_id", ErrTokenInvalid)
	}
	return Principal{UserID: claims.UserID, IsAdmin: claims.IsAdmin}, nil
}
