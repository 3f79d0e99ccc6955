package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// RequireToken passes updates from anonymous chats to reject instead of next
func RequireToken(reject tele.HandlerFunc, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if CurrentSession(c).Token() == "" {
				logger.Debug("Update from anonymous chat", zap.Int64("chat_id", c.Sender().ID))
				return reject(c)
			}
			return next(c)
		}
	}
}
