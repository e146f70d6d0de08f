package handler

import (
	"strconv"
	"strings"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleCallback dispatches every inline button press. Tokens are
// opaque strings set by the keyboards in this package; anything else is
// acknowledged and dropped.
func (h *Handler) handleCallback(c tele.Context) error {
	data := cleanCallbackData(c.Callback().Data)

	// Calculator buttons are public.
	switch {
	case strings.HasPrefix(data, "mut_"):
		return h.handleMutationSelect(c, data)
	case strings.HasPrefix(data, "calc_another_"):
		return h.handleCalcAnother(c, data)
	}

	// Everything below is admin surface.
	if !h.access.IsAdmin(c.Sender().ID) {
		h.logger.Warn("Non-admin pressed admin button",
			zap.Int64("user_id", c.Sender().ID),
			zap.String("data", data),
		)
		return c.Respond(&tele.CallbackResponse{Text: h.text(c, "common.forbidden"), ShowAlert: true})
	}

	switch data {
	case "admin_panel":
		return h.handleAdminPanel(c)
	case "admin_stats":
		return h.handleStats(c)
	case "admin_broadcast":
		return h.startBroadcast(c)
	case "admin_chat":
		return h.startRelay(c)
	case "admin_exceptions":
		return h.handleExceptionsView(c)
	case "admin_backup":
		return h.handleBackupMenu(c)
	case "admin_about":
		return h.handleAbout(c)
	case "admin_refresh":
		_ = c.Respond(&tele.CallbackResponse{Text: h.text(c, "admin.refreshed")})
		return h.handleAdminPanel(c)
	case "bc_confirm":
		return h.handleBroadcastConfirm(c)
	case "bc_cancel":
		return h.handleBroadcastReject(c)
	case "exc_add":
		return h.startExceptionFlow(c, domain.ExceptionAdd)
	case "exc_remove":
		return h.startExceptionFlow(c, domain.ExceptionRemove)
	case "bkp_create":
		return h.handleBackupCreate(c, "")
	case "bkp_gz":
		return h.handleBackupCreate(c, "gz")
	case "bkp_json":
		return h.handleBackupCreate(c, "json")
	case "bkp_list":
		return h.handleBackupList(c)
	}

	switch {
	case strings.HasPrefix(data, "ulist_"):
		page, err := strconv.Atoi(strings.TrimPrefix(data, "ulist_"))
		if err != nil {
			return c.Respond()
		}
		return h.handleUserList(c, page)
	case strings.HasPrefix(data, "bcaud_"):
		return h.handleAudienceChoice(c, strings.TrimPrefix(data, "bcaud_"))
	case strings.HasPrefix(data, "bkp_get_"):
		return h.handleBackupGet(c, strings.TrimPrefix(data, "bkp_get_"))
	}

	h.logger.Debug("Unknown callback token", zap.String("data", data))
	return c.Respond()
}
