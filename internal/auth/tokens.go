// Package auth issues and verifies the HS256 tokens used by the API.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const RoleAdmin = "admin"

var ErrInvalidToken = errors.New("invalid token")

// Claims keeps the app role under app_metadata, the layout the dashboard
// frontend already reads.
type Claims struct {
	jwt.RegisteredClaims
	AppMetadata map[string]any `json:"app_metadata,omitempty"`
}

func (c *Claims) Role() string {
	if c.AppMetadata == nil {
		return ""
	}
	s, _ := c.AppMetadata["role"].(string)
	return s
}

type Issuer struct {
	Secret []byte
	Name   string
	TTL    time.Duration
	Now    func() time.Time
}

func NewIssuer(secret, name string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Issuer{Secret: []byte(secret), Name: name, TTL: ttl, Now: time.Now}
}

func (i *Issuer) AdminToken(adminID string) (string, error) {
	if len(i.Secret) == 0 {
		return "", errors.New("jwt secret is not configured")
	}
	now := i.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID,
			Issuer:    i.Name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.TTL)),
			ID:        uuid.NewString(),
		},
		AppMetadata: map[string]any{"role": RoleAdmin},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.Secret)
}

// Parse verifies signature, expiry and (when set) the issuer.
func (i *Issuer) Parse(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.Now),
	}
	if i.Name != "" {
		opts = append(opts, jwt.WithIssuer(i.Name))
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return i.Secret, nil
	}, opts...)
	if err != nil || tok == nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
