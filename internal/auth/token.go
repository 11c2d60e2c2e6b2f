package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/otcheredev/hms-backend/internal/models"
)

const issuer = "hms-backend"

var (
	// ErrTokenExpired indicates the token was valid but is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid indicates the token is malformed, tampered with or
	// otherwise failed verification.
	ErrTokenInvalid = errors.New("invalid token")
)

// Codec issues and verifies signed bearer tokens. The signing secret and
// TTL are fixed at construction; the codec holds no mutable state and is
// safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec creates a codec with the given symmetric secret and token TTL.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token carrying the user's identity, role and tenant with
// an expiry computed from the configured TTL.
func (c *Codec) Issue(user *models.User) (string, error) {
	now := c.now().UTC()
	claims := models.JWTClaims{
		UserID:     user.ID,
		TenantID:   user.TenantID,
		HospitalID: user.HospitalID,
		Role:       user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and validates its signature and time bounds. The
// claims are returned exactly as encoded; no store lookup happens here.
func (c *Codec) Verify(raw string) (*models.JWTClaims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &models.JWTClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrTokenInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }), jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*models.JWTClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if !claims.Role.Valid() || claims.TenantID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
