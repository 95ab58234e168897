package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type authClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 bearer token for userID that the API accepts until ttl elapses.
func IssueToken(secret string, userID string, now time.Time, ttl time.Duration) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.New("user id is required")
	}
	if secret == "" {
		return "", errors.New("secret key is required")
	}
	if ttl <= 0 {
		return "", errors.New("token ttl must be positive")
	}

	claims := authClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	userID, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserIDKey, userID)
	return c.Next()
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (string, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, rawToken, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", errors.New("missing bearer token")
	}
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return "", errors.New("missing bearer token")
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	}, jwt.WithTimeFunc(handler.now))
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(handler.now()) {
		return "", errors.New("token expired")
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return "", errors.New("token has no user")
	}
	return claims.UserID, nil
}
