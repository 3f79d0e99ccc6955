package handler

import (
	"strings"
	"unicode"

	"linguista/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const addLanguagePrefix = "add_language_"

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Unique is filled only when telebot matched a registered button
	data := cleanCallbackData(callback.Unique)
	if data == "" {
		data = cleanCallbackData(callback.Data)
	}
	h.logger.Info("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.Int64("chat_id", c.Sender().ID),
	)

	switch {
	case data == btnCancel.Unique:
		return h.handleCancel(c)
	case strings.HasPrefix(data, addLanguagePrefix):
		return h.handleAddLanguageCallback(c, strings.TrimPrefix(data, addLanguagePrefix))
	}

	h.logger.Warn("Unhandled callback in handleCallback", zap.String("data", data))
	return c.Respond()
}

// handleAddLanguageCallback adds the language chosen with an inline button
func (h *Handler) handleAddLanguageCallback(c tele.Context, language string) error {
	sess := middleware.CurrentSession(c)
	if sess.Token() == "" {
		_ = c.Respond()
		return h.sendLoginRequired(c)
	}

	if err := c.Respond(&tele.CallbackResponse{Text: "Выбран язык: " + language}); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	return h.addLearningLanguage(c, sess, language)
}
