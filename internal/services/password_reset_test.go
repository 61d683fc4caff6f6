package services

import (
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestPasswordResetTokens(t *testing.T) {
	user := &models.User{ID: 42, Username: "alice", Email: "alice@example.com"}

	t.Run("round_trip", func(t *testing.T) {
		svc := NewPasswordResetService("test-secret", time.Hour)

		token, err := svc.IssueToken(user)
		testutil.AssertNoError(t, err)

		userID, err := svc.VerifyToken(token)
		testutil.AssertNoError(t, err)
		if userID != user.ID {
			t.Errorf("expected user ID %d, got %d", user.ID, userID)
		}
	})

	t.Run("expired", func(t *testing.T) {
		svc := NewPasswordResetService("test-secret", -time.Minute)

		token, err := svc.IssueToken(user)
		testutil.AssertNoError(t, err)

		_, err = svc.VerifyToken(token)
		testutil.AssertAppError(t, err, "INVALID_RESET_TOKEN")
	})

	t.Run("wrong_secret", func(t *testing.T) {
		issuer := NewPasswordResetService("secret-a", time.Hour)
		verifier := NewPasswordResetService("secret-b", time.Hour)

		token, err := issuer.IssueToken(user)
		testutil.AssertNoError(t, err)

		_, err = verifier.VerifyToken(token)
		testutil.AssertAppError(t, err, "INVALID_RESET_TOKEN")
	})

	t.Run("garbage_token", func(t *testing.T) {
		svc := NewPasswordResetService("test-secret", time.Hour)

		_, err := svc.VerifyToken("not-a-token")
		testutil.AssertAppError(t, err, "INVALID_RESET_TOKEN")
	})
}
