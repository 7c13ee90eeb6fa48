package types

import (
	"testing"
	"time"
)

func TestNewAccessClaims(t *testing.T) {
	before := time.Now()
	claims := NewAccessClaims(42, time.Hour)

	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Issuer != TokenIssuer {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, TokenIssuer)
	}

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != time.Hour {
		t.Errorf("token lifetime = %s, want 1h", ttl)
	}
	if claims.NotBefore.Before(before) {
		t.Error("NotBefore predates claim construction")
	}
}
