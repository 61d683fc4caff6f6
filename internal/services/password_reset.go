package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// DefaultResetTokenTTL is how long a password-reset token stays valid.
const DefaultResetTokenTTL = time.Hour

// resetClaims are the claims carried by a password-reset token.
type resetClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// passwordResetService issues and verifies signed password-reset tokens.
// It replaces the session-global token map of earlier revisions: tokens are
// self-contained JWTs, so no per-process mutable state is needed. A mail
// delivery route was never wired up, so nothing routes here yet.
type passwordResetService struct {
	secret []byte
	ttl    time.Duration
}

// NewPasswordResetService creates a new PasswordResetServicer.
func NewPasswordResetService(secret string, ttl time.Duration) PasswordResetServicer {
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	return &passwordResetService{secret: []byte(secret), ttl: ttl}
}

// IssueToken creates a signed token identifying the user, valid for the
// configured TTL.
func (s *passwordResetService) IssueToken(user *models.User) (string, error) {
	claims := &resetClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return signed, nil
}

// VerifyToken validates a token and returns the user ID it was issued for.
func (s *passwordResetService) VerifyToken(tokenString string) (uint, error) {
	claims := &resetClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, apperrors.ErrInvalidResetToken
	}
	return claims.UserID, nil
}
