package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	parser := NewParser("test-secret")

	raw, err := issuer.Issue(42, "guard.petrov", true)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := parser.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.EmployeeID != 42 || claims.Login != "guard.petrov" || !claims.IsAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseWrongSecret(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	parser := NewParser("other-secret")

	raw, err := issuer.Issue(1, "login", false)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := parser.Parse(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseExpired(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)
	parser := NewParser("test-secret")

	raw, err := issuer.Issue(1, "login", false)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := parser.Parse(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseGarbage(t *testing.T) {
	parser := NewParser("test-secret")
	if _, err := parser.Parse("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
