package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"
	"unicode"

	"linguista/internal/apiclient"
	"linguista/internal/fsm"
	"linguista/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgNotFilled          = "<i>Не заполнено</i>"
	msgChooseUpdate       = "Выберите данные для редактирования."
	msgAskPicture         = "Отправьте картинку для обновления фото профиля."
	msgNoPicture          = "Ответ не содержит картинки. \nОтправьте картинку для обновления фото профиля."
	msgAskFirstName       = "Введите имя, оно будет отображаться в вашем профиле и будет видно другим пользователям. "
	msgAskNative          = "Введите все родные языки через запятую или/и пробел. Пример: Русский, Английский."
	msgAskLanguage        = "Введите или выберите язык из списка: "
	msgFirstNameUpdated   = "Имя обновлено ✨"
	msgPictureUpdated     = "Фото профиля обновлено ✨"
	msgNativeUpdated      = "Родные языки обновлены ✨"
	msgLanguageAdded      = "Язык добавлен в изучаемые ✨"
	msgLearningExceeded   = "Количество изучаемых языков превышено."
	msgNativeExceeded     = "Количество родных языков превышено."
	msgNoLearningLanguage = "Вы пока не изучаете ни одного языка."
	msgNoNativeLanguage   = "Родные языки не указаны."
)

// handleProfile shows the profile of the logged in user
func (h *Handler) handleProfile(c tele.Context) error {
	sess := middleware.CurrentSession(c)
	profile, err := h.api.Profile(context.Background(), sess.Token())
	if err != nil {
		return h.replyAPIError(c, sess, err)
	}
	return h.sendProfile(c, sess, profile)
}

func (h *Handler) sendProfile(c tele.Context, sess *fsm.Session, p *apiclient.Profile) error {
	sess.Reset(false)
	sess.State = fsm.ProfileRetrieve

	text := profileText(p)
	if p.Image != nil && *p.Image != "" {
		img, err := base64.StdEncoding.DecodeString(*p.Image)
		if err == nil {
			photo := &tele.Photo{File: tele.FromReader(bytes.NewReader(img)), Caption: text}
			return c.Send(photo, profileMarkup())
		}
		h.logger.Warn("Profile image is not base64", zap.String("username", p.Username))
	}
	return c.Send(text, profileMarkup())
}

func profileText(p *apiclient.Profile) string {
	firstName := msgNotFilled
	if p.FirstName != "" {
		firstName = html.EscapeString(p.FirstName)
	}

	native := msgNotFilled
	if len(p.NativeLanguages) > 0 {
		native = html.EscapeString(strings.Join(languageNames(p.NativeLanguages), ", "))
	}

	learning := msgNotFilled
	if len(p.LearningLanguages) > 0 {
		lines := make([]string, 0, len(p.LearningLanguages))
		for _, name := range languageNames(p.LearningLanguages) {
			lines = append(lines, "\t\t- "+html.EscapeString(name))
		}
		learning = strings.Join(lines, "\n")
	}

	return strings.Join([]string{
		fmt.Sprintf("<b>Профиль пользователя %s</b>", html.EscapeString(p.Username)),
		"",
		"<b>Имя:</b> " + firstName,
		"<b>Родные языки:</b> " + native,
		fmt.Sprintf("<b>Мощность словаря (общее кол-во слов):</b> %d", p.WordsCount),
		"",
		fmt.Sprintf("<b>Количество изучаемых языков:</b> %d", len(p.LearningLanguages)),
		"<b>Изучаемые языки:</b>",
		learning,
	}, "\n")
}

// languageNames prefers the local name of each language
func languageNames(langs []apiclient.UserLanguage) []string {
	names := make([]string, 0, len(langs))
	for _, ul := range langs {
		if ul.Language == nil {
			continue
		}
		name := ul.Language.NameLocal
		if name == "" {
			name = ul.Language.Name
		}
		names = append(names, name)
	}
	return names
}

func (h *Handler) handleEditProfile(c tele.Context) error {
	sess := middleware.CurrentSession(c)
	sess.Reset(false)
	sess.State = fsm.ProfileUpdateOptions
	return c.Send(msgChooseUpdate, profileUpdateMarkup())
}

func (h *Handler) handlePhotoPrompt(c tele.Context) error {
	sess := middleware.CurrentSession(c)
	sess.Reset(false)
	sess.State = fsm.ProfileImageUpdate
	return c.Send(msgAskPicture, cancelInlineMarkup())
}

// handlePhoto uploads the largest size of the sent photo as the profile image
func (h *Handler) handlePhoto(c tele.Context) error {
	sess := middleware.CurrentSession(c)
	if sess.State != fsm.ProfileImageUpdate {
		return nil
	}

	msg := c.Message()
	if msg == nil || msg.Photo == nil {
		return c.Send(msgNoPicture, cancelInlineMarkup())
	}

	rc, err := h.files.File(&msg.Photo.File)
	if err != nil {
		h.logger.Error("Failed to download photo", zap.Int64("chat_id", c.Sender().ID), zap.Error(err))
		return h.resetWith(c, sess, middleware.MsgInternalError)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		h.logger.Error("Failed to read photo", zap.Int64("chat_id", c.Sender().ID), zap.Error(err))
		return h.resetWith(c, sess, middleware.MsgInternalError)
	}

	image := base64.StdEncoding.EncodeToString(data)
	return h.updateProfile(c, sess, apiclient.ProfileUpdate{Image: &image}, msgPictureUpdated, "")
}

func (h *Handler) handleFirstNamePrompt(c tele.Context) error {
	sess := middleware.CurrentSession(c)
	sess.Reset(false)
	sess.State = fsm.ProfileFirstNameUpdate
	return c.Send(msgAskFirstName, cancelInlineMarkup())
}

func (h *Handler) updateFirstName(c tele.Context, sess *fsm.Session, text string) error {
	return h.updateProfile(c, sess, apiclient.ProfileUpdate{FirstName: &text}, msgFirstNameUpdated, "")
}

func (h *Handler) handleNativeLanguagesPrompt(c tele.Context) error {
	sess := middleware.CurrentSession(c)
	sess.Reset(false)
	sess.State = fsm.ProfileNativeLanguagesUpdate
	return c.Send(msgAskNative, cancelInlineMarkup())
}

func (h *Handler) updateNativeLanguages(c tele.Context, sess *fsm.Session, text string) error {
	langs := splitLanguages(text)
	if len(langs) == 0 {
		return c.Send(msgAskNative, cancelInlineMarkup())
	}
	upd := apiclient.ProfileUpdate{NativeLanguages: langs}
	return h.updateProfile(c, sess, upd, msgNativeUpdated, msgNativeExceeded)
}

// splitLanguages splits input on commas and white space
func splitLanguages(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// updateProfile patches the profile and shows the result.
// conflictMsg replaces the API detail on 409 when set.
func (h *Handler) updateProfile(c tele.Context, sess *fsm.Session, upd apiclient.ProfileUpdate, done, conflictMsg string) error {
	profile, err := h.api.UpdateProfile(context.Background(), sess.Token(), upd)
	var apiErr *apiclient.Error
	if conflictMsg != "" && errors.As(err, &apiErr) && apiErr.Conflict() {
		return c.Send(conflictMsg, cancelInlineMarkup())
	}
	if err != nil {
		return h.replyAPIError(c, sess, err)
	}

	h.logger.Info("Profile updated", zap.Int64("chat_id", c.Sender().ID))
	if err := c.Send(done); err != nil {
		return err
	}
	return h.sendProfile(c, sess, profile)
}

func (h *Handler) handleLearningLanguagesInfo(c tele.Context) error {
	return h.sendLanguagesInfo(c, fsm.ProfileLearningLanguagesInfo, func(p *apiclient.Profile) []apiclient.UserLanguage {
		return p.LearningLanguages
	}, "<b>Изучаемые языки:</b>", msgNoLearningLanguage)
}

func (h *Handler) handleNativeLanguagesInfo(c tele.Context) error {
	return h.sendLanguagesInfo(c, fsm.ProfileNativeLanguagesInfo, func(p *apiclient.Profile) []apiclient.UserLanguage {
		return p.NativeLanguages
	}, "<b>Родные языки:</b>", msgNoNativeLanguage)
}

func (h *Handler) sendLanguagesInfo(c tele.Context, state fsm.State, pick func(*apiclient.Profile) []apiclient.UserLanguage, title, empty string) error {
	sess := middleware.CurrentSession(c)
	profile, err := h.api.Profile(context.Background(), sess.Token())
	if err != nil {
		return h.replyAPIError(c, sess, err)
	}

	sess.Reset(false)
	sess.State = state

	langs := pick(profile)
	if len(langs) == 0 {
		return c.Send(empty, profileMarkup())
	}

	lines := []string{title}
	for _, ul := range langs {
		if ul.Language == nil {
			continue
		}
		line := fmt.Sprintf("\t\t- %s (%s)", html.EscapeString(ul.Language.NameLocal), html.EscapeString(ul.Language.Name))
		if ul.Level != "" {
			line += ", " + html.EscapeString(ul.Level)
		}
		lines = append(lines, line)
	}
	return c.Send(strings.Join(lines, "\n"), profileMarkup())
}

// handleAddLanguagePrompt offers the languages open for learning
func (h *Handler) handleAddLanguagePrompt(c tele.Context) error {
	sess := middleware.CurrentSession(c)
	langs, err := h.api.LearningAvailableLanguages(context.Background(), sess.Token())
	if err != nil {
		return h.replyAPIError(c, sess, err)
	}

	sess.Reset(false)
	sess.State = fsm.AddLearningLanguageLanguage
	return c.Send(msgAskLanguage, languagesMarkup(langs))
}

// addLearningLanguage adds the named language and shows the updated profile
func (h *Handler) addLearningLanguage(c tele.Context, sess *fsm.Session, name string) error {
	ctx := context.Background()
	err := h.api.AddLearningLanguage(ctx, sess.Token(), name)
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && apiErr.Conflict() {
		return c.Send(msgLearningExceeded, cancelInlineMarkup())
	}
	if err != nil {
		return h.replyAPIError(c, sess, err)
	}

	h.logger.Info("Learning language added",
		zap.Int64("chat_id", c.Sender().ID),
		zap.String("language", name),
	)
	if err := c.Send(msgLanguageAdded); err != nil {
		return err
	}

	profile, err := h.api.Profile(ctx, sess.Token())
	if err != nil {
		return h.replyAPIError(c, sess, err)
	}
	return h.sendProfile(c, sess, profile)
}
