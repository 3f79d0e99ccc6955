package handler

import (
	"context"
	"errors"
	"fmt"

	"linguista/internal/apiclient"
	"linguista/internal/fsm"
	"linguista/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgGreeting         = "Привет %s! Чтобы пользоваться ботом, необходимо войти в свой аккаунт Лингвисты! 👾"
	msgWelcomeBack      = "С возвращением! Выберите пункт меню."
	msgChooseMenu       = "Выберите пункт меню."
	msgCancelled        = "Операция отменена."
	msgCancelledAnon    = "Операция отменена. Зарегистрируйтесь или войдите для продолжения."
	msgLoginRequired    = "Зарегистрируйтесь или войдите для продолжения."
	msgLoggedOut        = "Вы вышли из аккаунта Лингвисты, будем ждать вас снова! 👾"
	msgUnknownCommand   = "Неизвестная команда: %s"
	msgValidationErrors = "🚫 Присутствуют ошибки в переданных значениях: \n\n%s\n\nПожалуйста, исправьте ошибки и повторите попытку."
	msgUnexpectedStatus = "Кажется, что-то пошло не так. Код ответа: %d 👾"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	chatID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("chat_id", chatID),
		zap.String("tg_username", c.Sender().Username),
	)

	if err := h.users.Touch(context.Background(), chatID, c.Sender().Username); err != nil {
		h.logger.Error("Failed to record bot user", zap.Error(err))
	}

	sess := middleware.CurrentSession(c)
	if sess.Token() != "" {
		sess.Reset(false)
		return c.Send(msgWelcomeBack, mainMenuMarkup())
	}

	sess.Reset(true)
	return c.Send(fmt.Sprintf(msgGreeting, c.Sender().FirstName), initialMarkup())
}

// handleCancel leaves the current flow, keeping the login
func (h *Handler) handleCancel(c tele.Context) error {
	if c.Callback() != nil {
		if err := c.Respond(&tele.CallbackResponse{Text: "Отмена"}); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}

	sess := middleware.CurrentSession(c)
	if sess.Token() != "" {
		sess.Reset(false)
		return c.Send(msgCancelled, mainMenuMarkup())
	}

	sess.Reset(true)
	return c.Send(msgCancelledAnon, initialMarkup())
}

// handleMenu shows the main menu
func (h *Handler) handleMenu(c tele.Context) error {
	middleware.CurrentSession(c).Reset(false)
	return c.Send(msgChooseMenu, mainMenuMarkup())
}

// handleLogout revokes the token and forgets the chat's session
func (h *Handler) handleLogout(c tele.Context) error {
	sess := middleware.CurrentSession(c)
	token := sess.Token()
	sess.Reset(true)

	err := h.api.Logout(context.Background(), token)
	if err != nil && !errors.Is(err, apiclient.ErrUnauthorized) {
		h.logger.Error("Failed to log out", zap.Int64("chat_id", c.Sender().ID), zap.Error(err))
	}

	h.logger.Info("User logged out", zap.Int64("chat_id", c.Sender().ID))
	return c.Send(msgLoggedOut, initialMarkup())
}

func (h *Handler) sendLoginRequired(c tele.Context) error {
	return c.Send(msgLoginRequired, initialMarkup())
}

// replyAPIError answers with the message that matches err.
// Validation and conflict errors keep the session as is.
func (h *Handler) replyAPIError(c tele.Context, sess *fsm.Session, err error) error {
	var apiErr *apiclient.Error
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		sess.Reset(true)
		return h.sendLoginRequired(c)
	case errors.As(err, &apiErr) && apiErr.Validation():
		return c.Send(fmt.Sprintf(msgValidationErrors, apiErr.Detail()))
	case errors.As(err, &apiErr) && apiErr.Conflict():
		return c.Send(apiErr.Detail())
	case errors.As(err, &apiErr):
		h.logger.Warn("Unexpected API response",
			zap.Int64("chat_id", c.Sender().ID),
			zap.Int("status", apiErr.Status),
			zap.String("detail", apiErr.Detail()),
		)
		return h.resetWith(c, sess, fmt.Sprintf(msgUnexpectedStatus, apiErr.Status))
	default:
		h.logger.Error("API call failed", zap.Int64("chat_id", c.Sender().ID), zap.Error(err))
		return h.resetWith(c, sess, middleware.MsgInternalError)
	}
}

// resetWith leaves the flow and sends text with the menu that fits the login
func (h *Handler) resetWith(c tele.Context, sess *fsm.Session, text string) error {
	sess.Reset(false)
	if sess.Token() != "" {
		return c.Send(text, mainMenuMarkup())
	}
	return c.Send(text, initialMarkup())
}
