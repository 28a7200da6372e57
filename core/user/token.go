package user

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

var (
	// errors
	ErrExpiredToken = errors.New("Token expired")
	ErrInvalidToken = errors.New("Invalid token")

	signingMethod = jwt.SigningMethodHS256
)

// Claims represents the session claims transmitted via a JWT.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.StandardClaims
}

// TokenIssuer issues and verifies HS256 session tokens. It is immutable after construction.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock returns a copy of the issuer reading the time from now.
func (ti *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	cp := *ti
	cp.now = now
	return &cp
}

// Issue generates a signed token for userID, valid for the issuer's ttl.
func (ti *TokenIssuer) Issue(userID string) (string, error) {
	now := ti.now()
	claims := Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ti.ttl).Unix(),
		},
	}
	ss, err := jwt.NewWithClaims(signingMethod, claims).SignedString(ti.secret)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// Verify checks the signature and expiry of token and returns its user ID.
// It fails with ErrExpiredToken once now >= exp, and ErrInvalidToken for anything malformed.
func (ti *TokenIssuer) Verify(token string) (string, error) {
	parser := jwt.Parser{
		ValidMethods:         []string{signingMethod.Alg()},
		SkipClaimsValidation: true, // expiry is checked below against ti.now
	}
	var claims Claims
	_, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return ti.secret, nil
	})
	if err != nil || claims.UserID == "" || claims.ExpiresAt == 0 {
		return "", ErrInvalidToken
	}
	if !ti.now().Before(time.Unix(claims.ExpiresAt, 0)) {
		return "", ErrExpiredToken
	}
	return claims.UserID, nil
}
