// Package transport abstracts the messaging transport behind a small
// capability interface. Delivery errors are classified here, at the
// adapter boundary, so the rest of the code never pattern-matches raw
// error text.
package transport

import (
	"errors"
	"strings"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// ErrorKind is the closed classification of delivery outcomes.
type ErrorKind int

const (
	KindOK ErrorKind = iota
	// KindBlocked and KindChatNotFound are permanent: the recipient is
	// unreachable and retrying is pointless.
	KindBlocked
	KindChatNotFound
	KindOther
)

// Permanent reports whether the recipient is permanently unreachable.
func (k ErrorKind) Permanent() bool {
	return k == KindBlocked || k == KindChatNotFound
}

// FailKind maps a transport error kind to the broadcast failure taxonomy.
func (k ErrorKind) FailKind() domain.FailKind {
	switch k {
	case KindBlocked:
		return domain.FailBlocked
	case KindChatNotFound:
		return domain.FailChatNotFound
	default:
		return domain.FailOther
	}
}

// Classify maps a transport error to its kind. Known sentinel errors
// are checked first; the substring fallback covers errors the library
// reports only as text.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindOK
	}
	if errors.Is(err, tele.ErrBlockedByUser) || errors.Is(err, tele.ErrUserIsDeactivated) {
		return KindBlocked
	}
	if errors.Is(err, tele.ErrChatNotFound) {
		return KindChatNotFound
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "forbidden"), strings.Contains(msg, "blocked"), strings.Contains(msg, "deactivated"):
		return KindBlocked
	case strings.Contains(msg, "chat not found"):
		return KindChatNotFound
	default:
		return KindOther
	}
}

// Messenger is the send capability services depend on. Handlers reply
// through their own update context; services use Messenger when the
// recipient is not the current actor.
type Messenger interface {
	SendText(chatID int64, text string) error
	Copy(chatID int64, ref domain.MessageRef) error
}
