package jwtPkg

import (
	"ServeTrack/internal/entity"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// AccessTokenQuery carries the token for websocket upgrades, where browsers
// cannot set an Authorization header.
const AccessTokenQuery = "access_token"

var (
	ErrEmptyToken       = errors.New("empty token")
	ErrInvalidFormat    = errors.New("invalid Authorization format")
	ErrSecretNotSet     = errors.New("JWT secret not configured")
	ErrMissingClaims    = errors.New("token claims are missing required fields")
	ErrInvalidClaimType = errors.New("invalid token claims")
)

func Sign(Data map[string]interface{}, ExpiredAt time.Duration) (string, int64, error) {
	expiredAt := time.Now().Add(ExpiredAt).Unix()

	JWTSecretKey := os.Getenv("JWT_ACCESS_TOKEN_SECRET")
	if JWTSecretKey == "" {
		return "", 0, fmt.Errorf("JWT_ACCESS_TOKEN_SECRET not set")
	}

	claims := jwt.MapClaims{}
	claims["exp"] = expiredAt
	claims["authorization"] = true

	for i, v := range Data {
		claims[i] = v
	}

	logrus.WithField("claim_keys", len(claims)).Debug("Creating token with claims")

	to := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := to.SignedString([]byte(JWTSecretKey))
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", 0, err
	}

	return accessToken, expiredAt, nil
}

// TokenFromRequest returns the bearer token from the Authorization header,
// falling back to the access_token query parameter.
func TokenFromRequest(c *fiber.Ctx) (string, error) {
	header := c.Get("Authorization")
	if header == "" {
		if q := strings.TrimSpace(c.Query(AccessTokenQuery)); q != "" {
			return q, nil
		}
		return "", ErrEmptyToken
	}

	if !strings.HasPrefix(header, "Bearer ") {
		return "", ErrInvalidFormat
	}

	accessToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if accessToken == "" {
		return "", ErrEmptyToken
	}

	return accessToken, nil
}

func Verify(accessToken, secret string) (*jwt.Token, error) {
	log := logrus.WithField("func", "Verify")

	if secret == "" {
		log.Error("JWT_ACCESS_TOKEN_SECRET environment variable not set")
		return nil, ErrSecretNotSet
	}

	token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			log.WithField("method", token.Header["alg"]).Error("Unexpected signing method")
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		log.WithError(err).Debug("Failed to parse JWT token")
		return nil, err
	}

	return token, nil
}

// UserFromToken maps verified claims onto the login data. A missing role
// claim is treated as a non-admin user.
func UserFromToken(token *jwt.Token) (entity.UserLoginData, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return entity.UserLoginData{}, ErrInvalidClaimType
	}

	id, idOK := claims["id"].(string)
	email, emailOK := claims["email"].(string)
	username, usernameOK := claims["username"].(string)
	if !idOK || !emailOK || !usernameOK || id == "" {
		return entity.UserLoginData{}, ErrMissingClaims
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = entity.RoleClient
	}

	return entity.UserLoginData{
		ID:       id,
		Email:    email,
		Username: username,
		Role:     role,
	}, nil
}

func GetUserLoginData(c *fiber.Ctx) (entity.UserLoginData, error) {
	userData := c.Locals("user")

	user, ok := userData.(entity.UserLoginData)
	if !ok {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	return user, nil
}
