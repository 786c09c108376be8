package identity

import (
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/RostianaElla/caihealth/internal/domain/model"
)

// TokenCodec mints and verifies the HS256 identity tokens the provider
// issues, the same shape a real identity provider's id_token would have.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type identityClaims struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (c *TokenCodec) Mint(account Account) (string, error) {
	if len(c.secret) == 0 {
		return "", fmt.Errorf("token secret is empty")
	}
	if strings.TrimSpace(account.Email) == "" {
		return "", fmt.Errorf("account email is required")
	}

	now := c.now().UTC()
	claims := identityClaims{
		Name:    account.Name,
		Email:   account.Email,
		Picture: account.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign identity token: %w", err)
	}

	return signed, nil
}

func (c *TokenCodec) Parse(raw string) (model.ExternalIdentity, error) {
	if strings.TrimSpace(raw) == "" {
		return model.ExternalIdentity{}, ErrTokenInvalid
	}

	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil || token == nil || !token.Valid {
		return model.ExternalIdentity{}, ErrTokenInvalid
	}

	if strings.TrimSpace(claims.Email) == "" {
		return model.ExternalIdentity{}, ErrTokenInvalid
	}

	return model.ExternalIdentity{
		Name:    claims.Name,
		Email:   claims.Email,
		Picture: claims.Picture,
	}, nil
}
