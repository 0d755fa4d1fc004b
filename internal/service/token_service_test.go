package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lshigami/quizhub/internal/model"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func TestTokenServiceLifetime(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewTokenServiceWithClock([]byte("test-secret"), DefaultTokenTTL, clock.Now)

	raw, err := svc.Issue(&model.User{ID: 7, IsAdmin: true})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	clock.now = clock.now.Add(23*time.Hour + 59*time.Minute)
	p, err := svc.Parse(raw)
	if err != nil {
		t.Fatalf("Parse before expiry: %v", err)
	}
	if p.UserID != 7 || !p.IsAdmin {
		t.Errorf("principal = %+v", p)
	}

	clock.now = clock.now.Add(2 * time.Minute)
	if _, err := svc.Parse(raw); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Parse after expiry err = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenServiceRejectsTampering(t *testing.T) {
	svc := NewTokenServiceWithClock([]byte("test-secret"), time.Hour, time.Now)
	raw, err := svc.Issue(&model.User{ID: 3})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(raw, ".")
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID:  3,
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	otherKey, err := forged.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign forged: %v", err)
	}
	forgedParts := strings.Split(otherKey, ".")

	tests := map[string]string{
		"garbage":         "not-a-token",
		"wrong key":       otherKey,
		"swapped payload": parts[0] + "." + forgedParts[1] + "." + parts[2],
		"empty signature": parts[0] + "." + parts[1] + ".",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Parse(token); !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("err = %v, want ErrTokenInvalid", err)
			}
		})
	}
}

func TestTokenServiceRequiresExpiry(t *testing.T) {
	secret := []byte("test-secret")
	svc := NewTokenServiceWithClock(secret, time.Hour, time.Now)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{UserID: 1}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Parse(raw); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}
