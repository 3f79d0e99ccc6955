// Package middleware holds telebot middleware for the Linguista bot.
package middleware

import (
	"context"
	"sync"

	"linguista/internal/fsm"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const sessionKey = "session"

// MsgInternalError is sent when the bot cannot serve an update
const MsgInternalError = "Произошла ошибка. Попробуйте позже."

// chatLocks serializes updates of one chat
type chatLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func (l *chatLocks) get(chatID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[chatID] = lock
	}
	return lock
}

// Session loads the chat's FSM session before the handler and stores it after
func Session(store fsm.Store, logger *zap.Logger) tele.MiddlewareFunc {
	locks := &chatLocks{locks: make(map[int64]*sync.Mutex)}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil {
				return next(c)
			}
			chatID := c.Sender().ID
			ctx := context.Background()

			lock := locks.get(chatID)
			lock.Lock()
			defer lock.Unlock()

			sess, err := store.Get(ctx, chatID)
			if err != nil {
				logger.Error("Failed to load session", zap.Int64("chat_id", chatID), zap.Error(err))
				return c.Send(MsgInternalError)
			}
			c.Set(sessionKey, sess)

			handlerErr := next(c)

			if sess.State == fsm.None && len(sess.Data) == 0 {
				err = store.Clear(ctx, chatID)
			} else {
				err = store.Set(ctx, chatID, sess)
			}
			if err != nil {
				logger.Error("Failed to save session",
					zap.Int64("chat_id", chatID),
					zap.String("state", string(sess.State)),
					zap.Error(err),
				)
			}
			return handlerErr
		}
	}
}

// CurrentSession returns the session loaded by Session.
// Without the middleware it returns a fresh, unsaved session.
func CurrentSession(c tele.Context) *fsm.Session {
	if sess, ok := c.Get(sessionKey).(*fsm.Session); ok {
		return sess
	}
	sess := fsm.NewSession()
	c.Set(sessionKey, sess)
	return sess
}
