package testutil

import (
	"time"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, username string, lang domain.Language) domain.User {
	return domain.User{
		ID:           userID,
		Username:     username,
		Language:     lang,
		IsSubscribed: true,
		CreatedAt:    time.Now(),
	}
}

// NewTestException creates a test exception entry
func NewTestException(userID, addedBy int64) domain.Exception {
	return domain.Exception{
		UserID:  userID,
		AddedBy: addedBy,
		AddedAt: time.Now(),
	}
}
