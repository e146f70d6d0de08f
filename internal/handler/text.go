package handler

import (
	"regexp"
	"strings"
	"time"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

var (
	bangNumberRe = regexp.MustCompile(`^!(\d+)$`)
	bareNumberRe = regexp.MustCompile(`^\d+$`)
)

// handleStart registers or refreshes the sender's profile and greets
// them.
func (h *Handler) handleStart(c tele.Context) error {
	sender := c.Sender()

	lang := domain.LangENG
	if sender.LanguageCode == "ru" {
		lang = domain.LangRUS
	}
	user := domain.User{
		ID:           sender.ID,
		Username:     sender.Username,
		Language:     lang,
		IsSubscribed: true,
		CreatedAt:    time.Now(),
	}
	if err := h.userRepo.Upsert(user); err != nil {
		h.logger.Error("Failed to upsert user", zap.Int64("user_id", sender.ID), zap.Error(err))
	}

	return h.send(c, h.locales.Get(lang.LocaleCode(), "common.start"), nil)
}

// handleText routes freeform text: calculator queries, active admin
// flows, and relayed user messages.
func (h *Handler) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())

	// Unregistered slash commands never feed flows or relays.
	if strings.HasPrefix(text, "/") {
		return nil
	}

	// Explicit calculator query works everywhere, for everyone.
	if m := bangNumberRe.FindStringSubmatch(text); m != nil {
		return h.handleCalculation(c, m[1])
	}

	userID := c.Sender().ID
	if h.access.IsAdmin(userID) {
		if sess := h.sessions.Get(userID); sess != nil {
			return h.dispatchFlow(c, sess)
		}
	} else if _, ok := h.relay.PairedAdmin(userID); ok {
		return h.relayUserMessage(c)
	}

	// A bare number in a private chat is a calculator query too.
	if c.Chat().Type == tele.ChatPrivate && bareNumberRe.MatchString(text) {
		return h.handleCalculation(c, text)
	}
	return nil
}

// handleMedia routes non-text content into the same flows that accept
// it: broadcast payload capture and relay chats.
func (h *Handler) handleMedia(c tele.Context) error {
	userID := c.Sender().ID

	if h.access.IsAdmin(userID) {
		sess := h.sessions.Get(userID)
		if sess == nil {
			return nil
		}
		switch sess.Flow {
		case domain.FlowBroadcastPayload, domain.FlowRelayChat:
			return h.dispatchFlow(c, sess)
		}
		return nil
	}

	if _, ok := h.relay.PairedAdmin(userID); ok {
		return h.relayUserMessage(c)
	}
	return nil
}

// dispatchFlow hands the incoming message to the step the admin's
// session is waiting on.
func (h *Handler) dispatchFlow(c tele.Context, sess *domain.Session) error {
	if sess.InitiatorID != c.Sender().ID {
		// A flow belongs to its initiator: the actor is told so and
		// the session is left untouched.
		return c.Send(h.text(c, "common.not_initiator"))
	}

	switch sess.Flow {
	case domain.FlowBroadcastPayload:
		return h.capturePayload(c, sess)
	case domain.FlowRelaySelect:
		return h.handleRelaySelect(c, sess)
	case domain.FlowRelayChat:
		return h.handleRelayAdminMessage(c, sess)
	case domain.FlowExceptionInput:
		return h.handleExceptionInput(c, sess)
	case domain.FlowBroadcastAudience:
		// Waiting on a button press, not text.
		return c.Send(h.text(c, "broadcast.choose_audience_hint"))
	case domain.FlowBroadcastConfirm:
		return c.Send(h.text(c, "broadcast.confirm_hint"))
	}
	return nil
}
