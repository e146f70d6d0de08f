package handler

import (
	"strings"
	"unicode"

	"github.com/andrey2025-maker/SelenaZoo/internal/backup"
	"github.com/andrey2025-maker/SelenaZoo/internal/domain"
	"github.com/andrey2025-maker/SelenaZoo/internal/locale"
	"github.com/andrey2025-maker/SelenaZoo/internal/middleware"
	"github.com/andrey2025-maker/SelenaZoo/internal/repository"
	"github.com/andrey2025-maker/SelenaZoo/internal/service"
	"github.com/andrey2025-maker/SelenaZoo/internal/session"
	"github.com/andrey2025-maker/SelenaZoo/internal/transport"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot        *tele.Bot
	access     *service.AccessService
	stats      *service.StatsService
	calc       *service.CalculatorService
	broadcast  *service.BroadcastService
	relay      *service.RelayService
	exceptions *service.ExceptionService
	backups    *backup.Manager
	userRepo   repository.UserRepository
	sessions   *session.Store
	locales    *locale.Manager
	messenger  transport.Messenger
	logger     *zap.Logger

	maxArtifactBytes int64
}

// Deps bundles everything the handler needs.
type Deps struct {
	Bot              *tele.Bot
	Access           *service.AccessService
	Stats            *service.StatsService
	Calculator       *service.CalculatorService
	Broadcast        *service.BroadcastService
	Relay            *service.RelayService
	Exceptions       *service.ExceptionService
	Backups          *backup.Manager
	UserRepo         repository.UserRepository
	Sessions         *session.Store
	Locales          *locale.Manager
	Messenger        transport.Messenger
	Logger           *zap.Logger
	MaxArtifactBytes int64
}

// NewHandler creates a new handler instance
func NewHandler(d Deps) *Handler {
	return &Handler{
		bot:              d.Bot,
		access:           d.Access,
		stats:            d.Stats,
		calc:             d.Calculator,
		broadcast:        d.Broadcast,
		relay:            d.Relay,
		exceptions:       d.Exceptions,
		backups:          d.Backups,
		userRepo:         d.UserRepo,
		sessions:         d.Sessions,
		locales:          d.Locales,
		messenger:        d.Messenger,
		logger:           d.Logger,
		maxArtifactBytes: d.MaxArtifactBytes,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	adminOnly := middleware.AdminOnly(h.access, h.locales, h.logger)

	// Admin commands
	h.bot.Handle("/admin", h.handleAdminPanel, adminOnly)
	h.bot.Handle("/stats", h.handleStats, adminOnly)
	h.bot.Handle("/broadcast", h.handleBroadcastCommand, adminOnly)
	h.bot.Handle("/chat", h.handleChatCommand, adminOnly)
	h.bot.Handle("/stopchat", h.handleStopChat, adminOnly)
	h.bot.Handle("/exceptions", h.handleExceptionsView, adminOnly)
	h.bot.Handle("/backup", h.handleBackupMenu, adminOnly)
	h.bot.Handle("/cancel", h.handleCancel, adminOnly)
	h.bot.Handle("/help_admin", h.handleAdminHelp, adminOnly)

	// Public commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/stop", h.handleUserStop)
	h.bot.Handle("/help_mutations", h.handleMutationHelp)
	h.bot.Handle("/ping", h.handlePing)

	// Freeform messages: session flows, relays, calculator input
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnMedia, h.handleMedia)

	// All inline buttons carry opaque tokens handled in one place
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// loc resolves the locale for replies to the current actor.
func (h *Handler) loc(c tele.Context) string {
	user, err := h.userRepo.GetByID(c.Sender().ID)
	if err != nil || user == nil {
		// Admin surface defaults to Russian.
		if h.access.IsAdmin(c.Sender().ID) {
			return "ru"
		}
		return "en"
	}
	return user.Language.LocaleCode()
}

// text is a shorthand for a localized string for the current actor.
func (h *Handler) text(c tele.Context, key string, args ...interface{}) string {
	return h.locales.Get(h.loc(c), key, args...)
}

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// editOrSend edits the callback message in place, falling back to a
// new message when the edit is rejected.
func (h *Handler) editOrSend(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() == nil {
		return h.send(c, text, markup)
	}
	var err error
	if markup != nil {
		err = c.Edit(text, markup, tele.ModeHTML)
	} else {
		err = c.Edit(text, tele.ModeHTML)
	}
	if err != nil {
		if strings.Contains(err.Error(), "message is not modified") {
			_ = c.Respond()
			return nil
		}
		h.logger.Warn("Failed to edit message, sending new",
			zap.Error(err),
			zap.Int64("user_id", c.Sender().ID),
		)
		if ackErr := c.Respond(); ackErr != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
		}
		return h.send(c, text, markup)
	}
	// Acknowledgment is best-effort: the callback may already be
	// answered by a toast.
	_ = c.Respond()
	return nil
}

func (h *Handler) send(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if markup != nil {
		return c.Send(text, markup, tele.ModeHTML)
	}
	return c.Send(text, tele.ModeHTML)
}

// alert answers a callback with a popup, or sends plain text outside a
// callback context.
func (h *Handler) alert(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}

// handleCancel aborts whatever flow the admin has open. Each flow tag
// selects its own confirmation text.
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID

	sess := h.sessions.Get(userID)
	if sess == nil {
		return c.Send(h.text(c, "common.cancel_none"))
	}

	kind := sess.Flow.Cancel()
	if kind == domain.CancelRelay && sess.PeerID != 0 {
		// Closing a live chat also tears the pairing down.
		_ = h.relay.StopByAdmin(userID, sess.PeerID)
	}
	h.sessions.Clear(userID)

	h.logger.Info("Flow cancelled",
		zap.Int64("user_id", userID),
		zap.String("kind", string(kind)),
	)
	return c.Send(h.text(c, "common.cancel_"+string(kind)))
}
