package helpers

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, exp, err := m.Generate("user-42")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Error("expiry must be in the future")
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-42" {
		t.Errorf("uid = %q, want user-42", claims.UserID)
	}
}

func TestJWTRejectsWrongSecretAndExpired(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	token, _, err := m.Generate("user-42")
	if err != nil {
		t.Fatal(err)
	}

	other := NewJWTManager("different", time.Hour)
	if _, err := other.Parse(token); err == nil {
		t.Error("token signed with another secret must not parse")
	}

	expired := NewJWTManager("secret", -time.Minute)
	tok, _, err := expired.Generate("user-42")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Parse(tok); err == nil {
		t.Error("expired token must not parse")
	}
}
