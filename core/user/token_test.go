package user

import (
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
)

func TestTokenIssuer(t *testing.T) {
	ttl := 30 * 24 * time.Hour
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("secret", ttl).WithClock(func() time.Time { return issuedAt })

	token, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	at := func(d time.Duration) *TokenIssuer {
		return issuer.WithClock(func() time.Time { return issuedAt.Add(d) })
	}

	// tamper with the payload, keeping the original signature
	parts := strings.Split(token, ".")
	forgedPayload, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:         "admin-1",
		StandardClaims: jwt.StandardClaims{ExpiresAt: issuedAt.Add(ttl).Unix()},
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("SignedString() failed: %v", err)
	}
	tampered := parts[0] + "." + strings.Split(forgedPayload, ".")[1] + "." + parts[2]

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID:         "user-1",
		StandardClaims: jwt.StandardClaims{ExpiresAt: issuedAt.Add(ttl).Unix()},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() failed: %v", err)
	}

	otherSecret, err := NewTokenIssuer("other", ttl).WithClock(func() time.Time { return issuedAt }).Issue("user-1")
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	tests := []struct {
		name    string
		issuer  *TokenIssuer
		token   string
		wantID  string
		wantErr error
	}{
		{name: "valid", issuer: issuer, token: token, wantID: "user-1"},
		{name: "valid just before expiry", issuer: at(ttl - time.Second), token: token, wantID: "user-1"},
		{name: "expired at exp", issuer: at(ttl), token: token, wantErr: ErrExpiredToken},
		{name: "expired after exp", issuer: at(ttl + time.Hour), token: token, wantErr: ErrExpiredToken},
		{name: "empty", issuer: issuer, token: "", wantErr: ErrInvalidToken},
		{name: "malformed", issuer: issuer, token: "lmaooolol", wantErr: ErrInvalidToken},
		{name: "tampered payload", issuer: issuer, token: tampered, wantErr: ErrInvalidToken},
		{name: "alg none", issuer: issuer, token: noneToken, wantErr: ErrInvalidToken},
		{name: "other secret", issuer: issuer, token: otherSecret, wantErr: ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.issuer.Verify(tt.token)
			if err != tt.wantErr {
				t.Fatalf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if id != tt.wantID {
				t.Errorf("Verify() = %q, want %q", id, tt.wantID)
			}
		})
	}
}
