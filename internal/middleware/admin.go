package middleware

import (
	"github.com/andrey2025-maker/SelenaZoo/internal/locale"
	"github.com/andrey2025-maker/SelenaZoo/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// AdminOnly short-circuits every privileged handler for actors outside
// the admin set. The rejection is visible to the actor and mutates
// nothing.
func AdminOnly(access *service.AccessService, locales *locale.Manager, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID
			if access.IsAdmin(userID) {
				return next(c)
			}

			logger.Warn("Privileged operation rejected",
				zap.Int64("user_id", userID),
				zap.String("text", c.Text()),
			)

			forbidden := locales.Get("ru", "common.forbidden")
			if c.Callback() != nil {
				return c.Respond(&tele.CallbackResponse{Text: forbidden, ShowAlert: true})
			}
			return c.Send(forbidden)
		}
	}
}
