package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleBroadcastCommand starts the broadcast flow from /broadcast.
func (h *Handler) handleBroadcastCommand(c tele.Context) error {
	return h.startBroadcast(c)
}

// startBroadcast opens the audience-selection step. Entering the flow
// replaces any session the admin already had open.
func (h *Handler) startBroadcast(c tele.Context) error {
	userID := c.Sender().ID

	users, err := h.userRepo.GetAll()
	if err != nil {
		h.logger.Error("Failed to load users", zap.Error(err))
		return h.alert(c, h.text(c, "common.error"))
	}
	if len(users) == 0 {
		return h.alert(c, h.text(c, "broadcast.no_users"))
	}

	h.sessions.Put(userID, &domain.Session{
		Flow:        domain.FlowBroadcastAudience,
		InitiatorID: userID,
		StartedAt:   time.Now(),
	})

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("🌍 Все", "bcaud_all")),
		markup.Row(
			markup.Data("🇷🇺 RUS", "bcaud_RUS"),
			markup.Data("🇬🇧 ENG", "bcaud_ENG"),
		),
	)
	return h.editOrSend(c, h.text(c, "broadcast.choose_audience"), markup)
}

// handleAudienceChoice freezes the recipient snapshot and moves the
// flow to payload capture.
func (h *Handler) handleAudienceChoice(c tele.Context, audience string) error {
	userID := c.Sender().ID

	sess := h.sessions.Get(userID)
	if sess == nil || sess.Flow != domain.FlowBroadcastAudience {
		return c.Respond(&tele.CallbackResponse{Text: h.text(c, "common.cancel_none")})
	}
	if sess.InitiatorID != userID {
		return c.Respond(&tele.CallbackResponse{Text: h.text(c, "broadcast.not_initiator"), ShowAlert: true})
	}

	users, err := h.userRepo.GetAll()
	if err != nil {
		h.logger.Error("Failed to load users", zap.Error(err))
		h.sessions.Clear(userID)
		return h.alert(c, h.text(c, "common.error"))
	}

	recipients := filterAudience(users, audience)
	if len(recipients) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: h.text(c, "broadcast.no_users"), ShowAlert: true})
	}

	sess.Flow = domain.FlowBroadcastPayload
	sess.Audience = audience
	sess.Recipients = recipients
	h.sessions.Put(userID, sess)

	return h.editOrSend(c, h.text(c, "broadcast.await_payload", len(recipients)), nil)
}

// filterAudience selects the broadcast snapshot: everyone, or only the
// users with a matching declared language.
func filterAudience(users []domain.User, audience string) []domain.User {
	if audience == "all" {
		return users
	}
	var out []domain.User
	for _, u := range users {
		if string(u.Language) == audience {
			out = append(out, u)
		}
	}
	return out
}

// capturePayload records the admin's message as the broadcast payload
// and asks for confirmation. Any content type is accepted; the engine
// keeps only the transport-level reference.
func (h *Handler) capturePayload(c tele.Context, sess *domain.Session) error {
	userID := c.Sender().ID
	msg := c.Message()

	sess.Flow = domain.FlowBroadcastConfirm
	sess.Payload = domain.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID}
	sess.ContentType = contentType(msg)
	sess.Preview = domain.TruncatePreview(payloadText(msg))
	h.sessions.Put(userID, sess)

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("✅ Да, разослать", "bc_confirm"),
		markup.Data("❌ Отменить", "bc_cancel"),
	))

	text := h.text(c, "broadcast.confirm", len(sess.Recipients), sess.ContentType, sess.Preview)
	return h.send(c, text, markup)
}

// handleBroadcastConfirm runs the fan-out after the initiating admin
// accepts.
func (h *Handler) handleBroadcastConfirm(c tele.Context) error {
	userID := c.Sender().ID

	sess := h.sessions.Get(userID)
	if sess == nil || sess.Flow != domain.FlowBroadcastConfirm {
		return c.Respond(&tele.CallbackResponse{Text: h.text(c, "common.cancel_none")})
	}
	if sess.InitiatorID != userID {
		// Someone else's accept must not consume this flow.
		return c.Respond(&tele.CallbackResponse{Text: h.text(c, "broadcast.not_initiator"), ShowAlert: true})
	}

	// The snapshot is frozen and the session gone before the run
	// starts; nothing the admin does afterwards can touch it.
	lc := h.loc(c)
	recipients := sess.Recipients
	payload := sess.Payload
	h.sessions.Clear(userID)

	if err := c.Edit(h.text(c, "broadcast.started", len(recipients))); err != nil {
		h.logger.Warn("Failed to edit broadcast status", zap.Error(err))
	}

	// The fan-out must never hold up the update loop: relays, the
	// calculator and other admins keep flowing while it runs. The
	// report reaches the initiator as a separate message.
	h.broadcast.Dispatch(recipients, payload, func(report *domain.Report) {
		if err := h.messenger.SendText(userID, h.renderReport(lc, report)); err != nil {
			h.logger.Error("Failed to deliver broadcast report",
				zap.Int64("admin_id", userID),
				zap.String("run_id", report.RunID),
				zap.Error(err),
			)
		}
	})
	return nil
}

// handleBroadcastReject clears a confirm-step flow without sending
// anything. A stale cancel button pressed in any other flow is a no-op
// so it cannot discard unrelated state.
func (h *Handler) handleBroadcastReject(c tele.Context) error {
	userID := c.Sender().ID

	sess := h.sessions.Get(userID)
	if sess == nil || sess.Flow != domain.FlowBroadcastConfirm {
		return c.Respond(&tele.CallbackResponse{Text: h.text(c, "common.cancel_none")})
	}
	if sess.InitiatorID != userID {
		return c.Respond(&tele.CallbackResponse{Text: h.text(c, "broadcast.not_initiator"), ShowAlert: true})
	}

	h.sessions.Clear(userID)
	return h.editOrSend(c, h.text(c, "common.cancel_broadcast"), nil)
}

// renderReport formats the fan-out accounting for the initiator.
func (h *Handler) renderReport(lc string, report *domain.Report) string {
	var b strings.Builder
	b.WriteString(h.locales.Get(lc, "broadcast.report", report.Total, report.Success, report.Failed))

	if len(report.Failures) > 0 {
		b.WriteString(h.locales.Get(lc, "broadcast.report_failures"))
		for i, f := range report.Failures {
			detail := f.Detail
			switch f.Kind {
			case domain.FailBlocked:
				detail = h.locales.Get(lc, "broadcast.fail_blocked")
			case domain.FailChatNotFound:
				detail = h.locales.Get(lc, "broadcast.fail_chat_not_found")
			}
			fail := f
			fail.Detail = detail
			b.WriteString(strconv.Itoa(i+1) + ". " + fail.String() + "\n")
		}
		if report.Extra > 0 {
			b.WriteString(h.locales.Get(lc, "broadcast.report_extra", report.Extra))
		}
	}
	return b.String()
}

// contentType names the payload kind for the confirmation prompt.
func contentType(m *tele.Message) string {
	switch {
	case m.Photo != nil:
		return "photo"
	case m.Video != nil:
		return "video"
	case m.Document != nil:
		return "document"
	case m.Audio != nil:
		return "audio"
	case m.Voice != nil:
		return "voice"
	case m.Animation != nil:
		return "animation"
	case m.Sticker != nil:
		return "sticker"
	default:
		return "text"
	}
}

// payloadText returns the text or caption of a message.
func payloadText(m *tele.Message) string {
	if m.Text != "" {
		return m.Text
	}
	return m.Caption
}
