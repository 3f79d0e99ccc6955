package handler

import (
	"context"
	"io"

	"linguista/internal/apiclient"
	"linguista/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// API is the part of the Linguista API the bot uses
type API interface {
	Register(ctx context.Context, req apiclient.RegisterRequest) (bool, string, error)
	Login(ctx context.Context, req apiclient.LoginRequest) (string, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, token string) (*apiclient.Profile, error)
	UpdateProfile(ctx context.Context, token string, upd apiclient.ProfileUpdate) (*apiclient.Profile, error)
	LearningAvailableLanguages(ctx context.Context, token string) ([]apiclient.Language, error)
	AddLearningLanguage(ctx context.Context, token, language string) error
}

// Users records chats that talk to the bot
type Users interface {
	Touch(ctx context.Context, chatID int64, tgUsername string) error
	RecordLogin(ctx context.Context, chatID int64, username string) error
}

// Files downloads files sent to the bot
type Files interface {
	File(file *tele.File) (io.ReadCloser, error)
}

// Handler manages all bot interactions
type Handler struct {
	api    API
	users  Users
	files  Files
	logger *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(api API, users Users, files Files, logger *zap.Logger) *Handler {
	return &Handler{
		api:    api,
		users:  users,
		files:  files,
		logger: logger,
	}
}

// Router is the part of *tele.Bot handlers are registered on
type Router interface {
	Handle(endpoint interface{}, h tele.HandlerFunc, m ...tele.MiddlewareFunc)
	Group() *tele.Group
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers(r Router) {
	// Commands
	r.Handle("/start", h.handleStart)
	r.Handle("/cancel", h.handleCancel)

	// Anonymous flows
	r.Handle(&btnSignUp, h.handleSignUp)
	r.Handle(&btnLogin, h.handleLogin)
	r.Handle(&btnCancelText, h.handleCancel)
	r.Handle(&btnBack, h.handleCancel)
	r.Handle(&btnCancel, h.handleCancel)

	// Flows that need a token
	authorized := r.Group()
	authorized.Use(middleware.RequireToken(h.sendLoginRequired, h.logger))
	authorized.Handle("/logout", h.handleLogout)
	authorized.Handle(&btnLogout, h.handleLogout)
	authorized.Handle(&btnMenu, h.handleMenu)
	authorized.Handle(&btnProfile, h.handleProfile)
	authorized.Handle(&btnEditProfile, h.handleEditProfile)
	authorized.Handle(&btnPhoto, h.handlePhotoPrompt)
	authorized.Handle(&btnFirstName, h.handleFirstNamePrompt)
	authorized.Handle(&btnNativeLanguages, h.handleNativeLanguagesPrompt)
	authorized.Handle(&btnLearningInfo, h.handleLearningLanguagesInfo)
	authorized.Handle(&btnNativeInfo, h.handleNativeLanguagesInfo)
	authorized.Handle(&btnAddLanguage, h.handleAddLanguagePrompt)
	authorized.Handle(tele.OnPhoto, h.handlePhoto)

	// State driven input
	r.Handle(tele.OnText, h.handleText)

	// Generic callback handler for dynamic data
	r.Handle(tele.OnCallback, h.handleCallback)
}

// Inline and reply keyboard buttons
var (
	btnSignUp     = tele.Btn{Text: "Зарегистрироваться"}
	btnLogin      = tele.Btn{Text: "Войти в аккаунт"}
	btnCancelText = tele.Btn{Text: "Отмена"}
	btnBack       = tele.Btn{Text: "Вернуться назад"}
	btnMenu       = tele.Btn{Text: "Вернуться в меню"}

	btnProfile         = tele.Btn{Text: "Профиль"}
	btnAddLanguage     = tele.Btn{Text: "Добавить изучаемый язык"}
	btnEditProfile     = tele.Btn{Text: "Редактировать профиль"}
	btnLearningInfo    = tele.Btn{Text: "Мои изучаемые языки"}
	btnNativeInfo      = tele.Btn{Text: "Мои родные языки"}
	btnLogout          = tele.Btn{Text: "Выйти из аккаунта"}
	btnPhoto           = tele.Btn{Text: "Обновить фото профиля"}
	btnNativeLanguages = tele.Btn{Text: "Изменить родные языки"}
	btnFirstName       = tele.Btn{Text: "Изменить имя"}

	btnCancel = tele.Btn{Unique: "cancel", Text: "Отмена"}
)

func replyMarkup(rows ...[]tele.Btn) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	out := make([]tele.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, menu.Row(row...))
	}
	menu.Reply(out...)
	return menu
}

// initialMarkup is shown to chats without a token
func initialMarkup() *tele.ReplyMarkup {
	return replyMarkup([]tele.Btn{btnSignUp}, []tele.Btn{btnLogin})
}

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	return replyMarkup([]tele.Btn{btnProfile}, []tele.Btn{btnAddLanguage}, []tele.Btn{btnLogout})
}

func profileMarkup() *tele.ReplyMarkup {
	return replyMarkup(
		[]tele.Btn{btnAddLanguage},
		[]tele.Btn{btnLearningInfo, btnNativeInfo},
		[]tele.Btn{btnEditProfile},
		[]tele.Btn{btnLogout},
		[]tele.Btn{btnMenu},
	)
}

func profileUpdateMarkup() *tele.ReplyMarkup {
	return replyMarkup(
		[]tele.Btn{btnPhoto},
		[]tele.Btn{btnNativeLanguages},
		[]tele.Btn{btnFirstName},
		[]tele.Btn{btnBack},
	)
}

func cancelInlineMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnCancel))
	return menu
}

// languagesMarkup lists languages as add_language_<name> buttons, four per row
func languagesMarkup(langs []apiclient.Language) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	var (
		rows []tele.Row
		row  tele.Row
	)
	for _, l := range langs {
		row = append(row, tele.Btn{Unique: addLanguagePrefix + l.Name, Text: l.Name})
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, menu.Row(btnCancel))
	menu.Inline(rows...)
	return menu
}
