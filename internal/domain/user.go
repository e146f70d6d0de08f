package domain

import (
	"fmt"
	"time"
)

// Language is a user's declared interface language.
type Language string

const (
	LangRUS Language = "RUS"
	LangENG Language = "ENG"
)

// LocaleCode maps the stored language to a locale table code.
func (l Language) LocaleCode() string {
	if l == LangRUS {
		return "ru"
	}
	return "en"
}

// User represents a bot user
type User struct {
	ID           int64
	Username     string
	Language     Language
	IsSubscribed bool
	CreatedAt    time.Time
}

// Identity renders the user for admin-facing messages: handle plus id
// when the handle is known, bare id otherwise.
func (u User) Identity() string {
	if u.Username != "" {
		return fmt.Sprintf("@%s (ID: %d)", u.Username, u.ID)
	}
	return fmt.Sprintf("ID: %d", u.ID)
}

// Statistics is an aggregate view over the user base.
type Statistics struct {
	TotalUsers        int
	ActiveSubscribers int
	FruitStats        map[string]int
	FreeTotems        int
	PaidTotems        int
}

// Exception is an allow/deny list entry managed by admins.
type Exception struct {
	UserID  int64
	AddedBy int64
	AddedAt time.Time
}
