package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken means the token is not a JWT and cannot be read locally.
var ErrOpaqueToken = errors.New("opaque token")

// Claims is what can be read from a JWT without verifying it.
type Claims struct {
	Subject   string
	Issuer    string
	ExpiresAt *time.Time
	IssuedAt  *time.Time
	Raw       jwt.MapClaims
}

// Inspect decodes a JWT payload without checking its signature. The server
// is the one that verifies tokens; this is only for display and expiry hints.
func Inspect(token string) (*Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpaqueToken, err)
	}

	c := &Claims{Raw: claims}
	c.Subject, _ = claims.GetSubject()
	c.Issuer, _ = claims.GetIssuer()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time.UTC()
		c.ExpiresAt = &t
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		t := iat.Time.UTC()
		c.IssuedAt = &t
	}
	return c, nil
}
