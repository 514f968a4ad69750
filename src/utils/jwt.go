package utils

import (
	"fmt"
	"os"
	"time"

	"Backend-Schoolhub/src/models"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// SetJWTSecret overrides the secret read from JWT_SECRET.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

func getJWTSecret() []byte {
	if len(jwtSecret) > 0 {
		return jwtSecret
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your_secret_key" // fallback for development
	}
	return []byte(secret)
}

type JWTClaims struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Kind      string `json:"kind"`
	SchoolID  string `json:"schoolId,omitempty"`
	ClassID   string `json:"classId,omitempty"`
	SectionID string `json:"sectionId,omitempty"`
	jwt.RegisteredClaims
}

// Principal converts validated claims into the request principal.
func (c *JWTClaims) Principal() (models.Principal, error) {
	kind, ok := models.ParseKind(c.Kind)
	if !ok {
		return models.Principal{}, fmt.Errorf("unknown principal kind %q", c.Kind)
	}
	return models.Principal{
		Kind:      kind,
		ID:        c.UserID,
		Email:     c.Email,
		SchoolID:  c.SchoolID,
		ClassID:   c.ClassID,
		SectionID: c.SectionID,
	}, nil
}

func GenerateJWT(p models.Principal, ttl time.Duration) (string, error) {
	claims := JWTClaims{
		UserID:    p.ID,
		Email:     p.Email,
		Kind:      string(p.Kind),
		SchoolID:  p.SchoolID,
		ClassID:   p.ClassID,
		SectionID: p.SectionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTSecret())
}

func ParseJWT(tokenStr string) (*JWTClaims, error) {
	if tokenStr == "" {
		return nil, fmt.Errorf("empty token string")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		return getJWTSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || token == nil {
		return nil, fmt.Errorf("token parsing failed: %v", err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
