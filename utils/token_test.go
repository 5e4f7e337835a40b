package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec([]byte("secret"), time.Hour)

	token, err := codec.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("email = %q, want a@x.com", claims.Email)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("lifetime = %v, want 1h", got)
	}
}

func TestTokenExpiry(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	codec := NewTokenCodec([]byte("secret"), time.Hour)
	codec.now = func() time.Time { return issued }

	token, err := codec.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	codec.now = func() time.Time { return issued.Add(59 * time.Minute) }
	if _, err := codec.Verify(token); err != nil {
		t.Fatalf("token rejected before expiry: %v", err)
	}

	codec.now = func() time.Time { return issued.Add(61 * time.Minute) }
	if _, err := codec.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token: err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenRejected(t *testing.T) {
	codec := NewTokenCodec([]byte("secret"), time.Hour)
	token, err := codec.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	otherKey, err := NewTokenCodec([]byte("other"), time.Hour).Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Email: "a@x.com"}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Email:            "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong secret", otherKey},
		{"tampered payload", tampered},
		{"missing expiry", noExpiry},
		{"none algorithm", noneAlg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := codec.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestNewTokenCodecDefaultTTL(t *testing.T) {
	if got := NewTokenCodec([]byte("s"), 0).TTL(); got != DefaultTokenTTL {
		t.Errorf("TTL = %v, want %v", got, DefaultTokenTTL)
	}
}
