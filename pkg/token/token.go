package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidToken covers tampering, a wrong signature and expiry alike so
// callers cannot tell which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// Service issues and verifies the two JWT flavors. Access tokens are
// short-lived and verified on every protected request; refresh tokens are
// signed with a separate secret and persisted on the user record.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *Service) issue(userID int, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}

func (s *Service) IssueAccessToken(userID int) (string, error) {
	return s.issue(userID, s.accessSecret, s.accessTTL)
}

func (s *Service) IssueRefreshToken(userID int) (string, error) {
	return s.issue(userID, s.refreshSecret, s.refreshTTL)
}

func verify(tokenString string, secret []byte) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	// jwt.Parse already rejects expired tokens, this guards a missing claim
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < time.Now().Unix() {
		return 0, ErrInvalidToken
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return int(userID), nil
}

// VerifyAccessToken returns the user id carried by a valid access token.
func (s *Service) VerifyAccessToken(tokenString string) (int, error) {
	return verify(tokenString, s.accessSecret)
}

// VerifyRefreshToken returns the user id carried by a valid refresh token.
func (s *Service) VerifyRefreshToken(tokenString string) (int, error) {
	return verify(tokenString, s.refreshSecret)
}
