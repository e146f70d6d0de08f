package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"
	"github.com/andrey2025-maker/SelenaZoo/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleExceptionsView renders the exception list with edit actions.
func (h *Handler) handleExceptionsView(c tele.Context) error {
	list, err := h.exceptions.List()
	if err != nil {
		h.logger.Error("Failed to load exceptions", zap.Error(err))
		return h.alert(c, h.text(c, "common.error"))
	}

	var b strings.Builder
	if len(list) == 0 {
		b.WriteString(h.text(c, "exception.list_empty"))
	} else {
		b.WriteString(h.text(c, "exception.list_header", len(list)))
		for i, e := range list {
			fmt.Fprintf(&b, "%d. <code>%d</code> (by %d, %s)\n",
				i+1, e.UserID, e.AddedBy, e.AddedAt.Format("02.01.2006"))
		}
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(
			markup.Data("➕ Добавить", "exc_add"),
			markup.Data("➖ Удалить", "exc_remove"),
		),
		markup.Row(markup.Data("🛠️ Админ-панель", "admin_panel")),
	)
	return h.editOrSend(c, b.String(), markup)
}

// startExceptionFlow opens the identity-input step for add or remove.
func (h *Handler) startExceptionFlow(c tele.Context, action domain.ExceptionAction) error {
	userID := c.Sender().ID

	h.sessions.Put(userID, &domain.Session{
		Flow:        domain.FlowExceptionInput,
		InitiatorID: userID,
		Action:      action,
		StartedAt:   time.Now(),
	})

	key := "exception.prompt_add"
	if action == domain.ExceptionRemove {
		key = "exception.prompt_remove"
	}
	return h.editOrSend(c, h.text(c, key), nil)
}

// handleExceptionInput resolves the admin's input and applies the
// captured action. Malformed or unresolved input keeps the flow in its
// input state so the admin can retry; /cancel still works.
func (h *Handler) handleExceptionInput(c tele.Context, sess *domain.Session) error {
	userID := c.Sender().ID

	targetID, err := h.exceptions.ResolveTarget(c.Text())
	if errors.Is(err, service.ErrBadInput) {
		return c.Send(h.text(c, "exception.bad_input"))
	}
	if errors.Is(err, service.ErrUserNotFound) {
		return c.Send(h.text(c, "exception.not_found"))
	}
	if err != nil {
		h.logger.Error("Exception target lookup failed", zap.Error(err))
		h.sessions.Clear(userID)
		return c.Send(h.text(c, "common.error"))
	}

	conflict, err := h.exceptions.Apply(sess.Action, targetID, userID)
	if err != nil {
		h.logger.Error("Exception update failed", zap.Error(err))
		h.sessions.Clear(userID)
		return c.Send(h.text(c, "common.error"))
	}

	var key string
	switch {
	case sess.Action == domain.ExceptionRemove && conflict:
		key = "exception.absent"
	case sess.Action == domain.ExceptionRemove:
		key = "exception.removed"
	case conflict:
		key = "exception.duplicate"
	default:
		key = "exception.added"
	}

	h.sessions.Clear(userID)
	if err := c.Send(h.text(c, key, targetID)); err != nil {
		return err
	}
	return h.handleExceptionsView(c)
}
