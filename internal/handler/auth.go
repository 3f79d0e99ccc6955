package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"linguista/internal/apiclient"
	"linguista/internal/auth"
	"linguista/internal/fsm"
	"linguista/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgAskUsername      = "Введите уникальный логин для своего аккаунта."
	msgInvalidUsername  = "Логин может содержать только буквы, цифры и символы @/./+/-/_ и быть не длиннее 150 символов. Попробуйте ещё раз."
	msgAskEmail         = "Введите адрес электронной почты, на который придет подтверждение."
	msgInvalidEmail     = "Некорректный адрес электронной почты. Попробуйте ещё раз."
	msgAskPassword      = "Введите пароль. Используйте символ || в начале и конце пароля, если хотите скрыть содержимое."
	msgShortPassword    = "Пароль должен содержать не менее 8 символов. Попробуйте ещё раз."
	msgAskPassword2     = "Введите пароль еще раз, чтобы его подтвердить."
	msgPasswordMismatch = "Пароли не совпадают. Введите пароль еще раз."
	msgRegistered       = "Вы успешно зарегистрировались! Выполняется вход..."
	msgAskLogin         = "Введите свой логин или адрес электронной почты."
	msgLoggedIn         = "Вход выполнен! Добро пожаловать в Лингвисту 👾"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	sess := middleware.CurrentSession(c)

	switch sess.State {
	case fsm.RegistrationUsername:
		return h.registrationUsername(c, sess, text)
	case fsm.RegistrationEmail:
		return h.registrationEmail(c, sess, text)
	case fsm.RegistrationPassword1:
		return h.registrationPassword1(c, sess, c.Text())
	case fsm.RegistrationPassword2:
		return h.registrationPassword2(c, sess, c.Text())
	case fsm.AuthorizationUsername, fsm.AuthorizationEmail:
		return h.authorizationLogin(c, sess, text)
	case fsm.AuthorizationPassword:
		return h.login(c, sess, apiclient.LoginRequest{
			Username: sess.Get(fsm.KeyUsername),
			Email:    sess.Get(fsm.KeyEmail),
			Password: c.Text(),
		})
	case fsm.ProfileFirstNameUpdate:
		return h.updateFirstName(c, sess, text)
	case fsm.ProfileNativeLanguagesUpdate:
		return h.updateNativeLanguages(c, sess, text)
	case fsm.ProfileImageUpdate:
		return c.Send(msgNoPicture, cancelInlineMarkup())
	case fsm.AddLearningLanguageLanguage:
		return h.addLearningLanguage(c, sess, text)
	}

	return c.Send(fmt.Sprintf(msgUnknownCommand, text))
}

// handleSignUp starts registration
func (h *Handler) handleSignUp(c tele.Context) error {
	sess := middleware.CurrentSession(c)
	sess.Reset(false)
	sess.State = fsm.RegistrationUsername
	return c.Send(msgAskUsername, cancelInlineMarkup())
}

func (h *Handler) registrationUsername(c tele.Context, sess *fsm.Session, text string) error {
	if !auth.ValidUsername(text) {
		return c.Send(msgInvalidUsername, cancelInlineMarkup())
	}
	sess.Set(fsm.KeyUsername, text)
	if err := sess.Advance(); err != nil {
		return err
	}
	return c.Send(msgAskEmail, cancelInlineMarkup())
}

func (h *Handler) registrationEmail(c tele.Context, sess *fsm.Session, text string) error {
	if !auth.ValidEmail(text) {
		return c.Send(msgInvalidEmail, cancelInlineMarkup())
	}
	sess.Set(fsm.KeyEmail, text)
	if err := sess.Advance(); err != nil {
		return err
	}
	return c.Send(msgAskPassword, cancelInlineMarkup())
}

func (h *Handler) registrationPassword1(c tele.Context, sess *fsm.Session, text string) error {
	if !auth.ValidPassword(text) {
		return c.Send(msgShortPassword, cancelInlineMarkup())
	}
	sess.Set(fsm.KeyPassword1, text)
	if err := sess.Advance(); err != nil {
		return err
	}
	return c.Send(msgAskPassword2, cancelInlineMarkup())
}

func (h *Handler) registrationPassword2(c tele.Context, sess *fsm.Session, text string) error {
	if text != sess.Get(fsm.KeyPassword1) {
		return c.Send(msgPasswordMismatch, cancelInlineMarkup())
	}

	username := sess.Get(fsm.KeyUsername)
	pending, detail, err := h.api.Register(context.Background(), apiclient.RegisterRequest{
		Username:  username,
		Email:     sess.Get(fsm.KeyEmail),
		Password1: text,
		Password2: text,
	})
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && apiErr.Validation() {
		// start over so that the wrong value can be entered again
		sess.Reset(false)
		sess.State = fsm.RegistrationUsername
		if sendErr := c.Send(fmt.Sprintf(msgValidationErrors, apiErr.Detail())); sendErr != nil {
			return sendErr
		}
		return c.Send(msgAskUsername, cancelInlineMarkup())
	}
	if err != nil {
		return h.replyAPIError(c, sess, err)
	}

	h.logger.Info("User registered via bot",
		zap.Int64("chat_id", c.Sender().ID),
		zap.String("username", username),
		zap.Bool("confirmation_pending", pending),
	)

	if pending {
		sess.Reset(true)
		return c.Send(detail, initialMarkup())
	}

	if err := c.Send(msgRegistered); err != nil {
		return err
	}
	return h.login(c, sess, apiclient.LoginRequest{Username: username, Password: text})
}

// handleLogin starts authorization
func (h *Handler) handleLogin(c tele.Context) error {
	sess := middleware.CurrentSession(c)
	sess.Reset(true)
	sess.State = fsm.AuthorizationUsername
	return c.Send(msgAskLogin, cancelInlineMarkup())
}

// authorizationLogin stores a username or an e-mail and asks for the password
func (h *Handler) authorizationLogin(c tele.Context, sess *fsm.Session, text string) error {
	if auth.LooksLikeEmail(text) {
		h.logger.Debug("Using email as login field", zap.Int64("chat_id", c.Sender().ID))
		sess.Set(fsm.KeyEmail, text)
	} else {
		sess.Set(fsm.KeyUsername, text)
	}
	if err := sess.Advance(); err != nil {
		return err
	}
	return c.Send(msgAskPassword, cancelInlineMarkup())
}

// login requests a token and moves the chat to Authorized
func (h *Handler) login(c tele.Context, sess *fsm.Session, req apiclient.LoginRequest) error {
	ctx := context.Background()
	token, err := h.api.Login(ctx, req)
	if err != nil {
		var apiErr *apiclient.Error
		if errors.As(err, &apiErr) && apiErr.Validation() {
			sess.Reset(true)
			return c.Send(fmt.Sprintf(msgValidationErrors, apiErr.Detail()), initialMarkup())
		}
		return h.replyAPIError(c, sess, err)
	}

	sess.Reset(true)
	sess.State = fsm.AuthorizedToken
	sess.Set(fsm.KeyToken, token)

	login := req.Username
	if login == "" {
		login = req.Email
	}
	if err := h.users.RecordLogin(ctx, c.Sender().ID, login); err != nil {
		h.logger.Error("Failed to record bot login", zap.Error(err))
	}

	h.logger.Info("User authorized", zap.Int64("chat_id", c.Sender().ID))
	return c.Send(msgLoggedIn, mainMenuMarkup())
}
