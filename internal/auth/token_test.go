package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	iss, err := NewIssuer(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	return iss
}

func TestNewIssuer_WeakSecret(t *testing.T) {
	if _, err := NewIssuer("short", time.Hour); !errors.Is(err, ErrWeakSecret) {
		t.Fatalf("expected ErrWeakSecret, got %v", err)
	}
}

func TestNewIssuer_DefaultTTL(t *testing.T) {
	iss, err := NewIssuer(testSecret, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iss.TTL() != DefaultTokenTTL {
		t.Errorf("TTL = %v", iss.TTL())
	}
}

func TestIssueParse_RoundTrip(t *testing.T) {
	iss := newTestIssuer(t)
	token, issued, err := iss.Issue("admin-1", "admin@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("not a JWT: %q", token)
	}

	claims, err := iss.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.AdminID != "admin-1" || claims.Email != "admin@example.com" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.TokenID() == "" || claims.TokenID() != issued.TokenID() {
		t.Errorf("jti = %q, want %q", claims.TokenID(), issued.TokenID())
	}
	if d := claims.Expiry().Sub(claims.IssuedAt.Time); d != time.Hour {
		t.Errorf("lifetime = %v, want 1h", d)
	}
}

func TestIssue_UniqueTokenIDs(t *testing.T) {
	iss := newTestIssuer(t)
	_, a, _ := iss.Issue("admin-1", "a@example.com")
	_, b, _ := iss.Issue("admin-1", "a@example.com")
	if a.TokenID() == b.TokenID() {
		t.Error("token ids must be unique")
	}
}

func TestParse_Expired(t *testing.T) {
	iss := newTestIssuer(t)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := iss.Issue("admin-1", "a@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	iss.now = time.Now
	if _, err := iss.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	token, _, _ := newTestIssuer(t).Issue("admin-1", "a@example.com")
	other, _ := NewIssuer(strings.Repeat("z", MinSecretLength), time.Hour)
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti",
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		AdminID: "admin-1",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := newTestIssuer(t).Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParse_Garbage(t *testing.T) {
	if _, err := newTestIssuer(t).Parse("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
