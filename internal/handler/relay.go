package handler

import (
	"errors"
	"time"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"
	"github.com/andrey2025-maker/SelenaZoo/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleChatCommand opens the relay target-selection step.
func (h *Handler) handleChatCommand(c tele.Context) error {
	return h.startRelay(c)
}

func (h *Handler) startRelay(c tele.Context) error {
	userID := c.Sender().ID

	h.sessions.Put(userID, &domain.Session{
		Flow:        domain.FlowRelaySelect,
		InitiatorID: userID,
		StartedAt:   time.Now(),
	})
	return h.editOrSend(c, h.text(c, "relay.prompt"), nil)
}

// handleRelaySelect resolves the admin's target input and, on success,
// establishes the pairing. The pairing only survives if the contact
// notice reaches the user.
func (h *Handler) handleRelaySelect(c tele.Context, sess *domain.Session) error {
	userID := c.Sender().ID

	target, err := h.relay.ResolveTarget(c.Text())
	if errors.Is(err, service.ErrTargetNotFound) {
		// Retryable: the flow stays in its selection state.
		return c.Send(h.text(c, "relay.not_found"))
	}
	if err != nil {
		h.logger.Error("Relay target lookup failed", zap.Error(err))
		h.sessions.Clear(userID)
		return c.Send(h.text(c, "common.error"))
	}

	if err := h.relay.Establish(userID, *target); err != nil {
		return c.Send(h.text(c, "relay.notice_failed", err.Error()))
	}

	sess.Flow = domain.FlowRelayChat
	sess.PeerID = target.ID
	h.sessions.Put(userID, sess)

	return h.send(c, h.text(c, "relay.started", target.Identity()), nil)
}

// handleRelayAdminMessage copies the admin's message to the paired
// user while the pairing is alive.
func (h *Handler) handleRelayAdminMessage(c tele.Context, sess *domain.Session) error {
	userID := c.Sender().ID
	msg := c.Message()

	ref := domain.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID}
	err := h.relay.RelayFromAdmin(userID, sess.PeerID, ref)
	if errors.Is(err, service.ErrChatInactive) {
		h.sessions.Clear(userID)
		return c.Send(h.text(c, "relay.inactive"))
	}
	if err != nil {
		h.logger.Warn("Relay delivery failed",
			zap.Int64("admin_id", userID),
			zap.Int64("user_id", sess.PeerID),
			zap.Error(err),
		)
		return c.Send(h.text(c, "relay.notice_failed", err.Error()))
	}
	return nil
}

// handleStopChat ends the relay from the admin side.
func (h *Handler) handleStopChat(c tele.Context) error {
	userID := c.Sender().ID

	sess := h.sessions.Get(userID)
	if sess == nil || sess.Flow != domain.FlowRelayChat {
		return c.Send(h.text(c, "common.cancel_none"))
	}

	_ = h.relay.StopByAdmin(userID, sess.PeerID)
	h.sessions.Clear(userID)
	return c.Send(h.text(c, "relay.stopped"))
}

// relayUserMessage forwards a paired end user's message to their
// admin. The user needs no conversational state: any private message
// is relayed while the pairing exists.
func (h *Handler) relayUserMessage(c tele.Context) error {
	msg := c.Message()
	user := h.profileOf(c)

	ref := domain.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID}
	if err := h.relay.RelayFromUser(user, ref); err != nil && !errors.Is(err, service.ErrChatInactive) {
		h.logger.Warn("User relay failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}
	return nil
}

// handleUserStop ends the relay from the user side.
func (h *Handler) handleUserStop(c tele.Context) error {
	if h.access.IsAdmin(c.Sender().ID) {
		return h.handleStopChat(c)
	}
	user := h.profileOf(c)
	if h.relay.StopByUser(user) {
		return c.Send(h.text(c, "relay.user_stopped"))
	}
	return nil
}

// profileOf returns the stored profile for the sender, or a minimal
// one built from the update.
func (h *Handler) profileOf(c tele.Context) domain.User {
	sender := c.Sender()
	user, err := h.userRepo.GetByID(sender.ID)
	if err == nil && user != nil {
		return *user
	}
	return domain.User{
		ID:       sender.ID,
		Username: sender.Username,
		Language: domain.LangENG,
	}
}
