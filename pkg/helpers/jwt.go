package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/oksasatya/go-blog-platform/internal/domain/entity"
)

// JWTManager issues and verifies HS256 signed identity tokens.
// Tokens are stateless and purely time-bounded; there is no
// revocation list, so logout is a client-side discard.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl}
}

// Claims is the decoded token payload: the identity plus the
// registered issued-at and expiry timestamps.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for the given user, valid for the
// configured TTL from now.
func (m *JWTManager) GenerateToken(userID int64, username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%w: sign: %v", entity.ErrToken, err)
	}
	return s, nil
}

// ParseToken validates the signature and expiry and returns the
// decoded claims. It fails for tokens signed with a different secret,
// expired tokens, and structurally malformed input.
func (m *JWTManager) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrToken, err)
	}
	if !tkn.Valid {
		return nil, fmt.Errorf("%w: invalid token", entity.ErrToken)
	}
	return claims, nil
}
