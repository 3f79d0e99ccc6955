package handler

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"testing"

	"linguista/internal/apiclient"
	"linguista/internal/fsm"
	"linguista/internal/middleware"
	"linguista/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

// fakeContext records what a handler sends. Methods not overridden panic.
type fakeContext struct {
	tele.Context
	sender    *tele.User
	text      string
	message   *tele.Message
	callback  *tele.Callback
	store     map[string]interface{}
	sent      []interface{}
	markups   []interface{}
	responses []*tele.CallbackResponse
}

func newFakeContext(text string) *fakeContext {
	return &fakeContext{
		sender: &tele.User{ID: 42, FirstName: "Alice", Username: "alice_tg"},
		text:   text,
		store:  make(map[string]interface{}),
	}
}

func (c *fakeContext) Sender() *tele.User       { return c.sender }
func (c *fakeContext) Text() string             { return c.text }
func (c *fakeContext) Message() *tele.Message   { return c.message }
func (c *fakeContext) Callback() *tele.Callback { return c.callback }

func (c *fakeContext) Get(key string) interface{}      { return c.store[key] }
func (c *fakeContext) Set(key string, val interface{}) { c.store[key] = val }

func (c *fakeContext) Send(what interface{}, opts ...interface{}) error {
	c.sent = append(c.sent, what)
	if len(opts) > 0 {
		c.markups = append(c.markups, opts[0])
	} else {
		c.markups = append(c.markups, nil)
	}
	return nil
}

func (c *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	c.responses = append(c.responses, resp...)
	return nil
}

func (c *fakeContext) lastText() string {
	if len(c.sent) == 0 {
		return ""
	}
	s, _ := c.sent[len(c.sent)-1].(string)
	return s
}

// withSession puts a session in state with the given data into c
func (c *fakeContext) withSession(state fsm.State, data map[string]string) *fsm.Session {
	sess := fsm.NewSession()
	sess.State = state
	for k, v := range data {
		sess.Set(k, v)
	}
	c.Set("session", sess)
	return sess
}

type fakeFiles struct {
	data []byte
	err  error
}

func (f *fakeFiles) File(*tele.File) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

type handlerFixture struct {
	api   *testutil.MockBotAPI
	users *testutil.MockBotUsers
	files *fakeFiles
	h     *Handler
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		api:   new(testutil.MockBotAPI),
		users: new(testutil.MockBotUsers),
		files: &fakeFiles{},
	}
	f.h = NewHandler(f.api, f.users, f.files, testutil.NewTestLogger())
	return f
}

func testProfile() *apiclient.Profile {
	return &apiclient.Profile{
		Username:  "alice",
		FirstName: "Alice",
		NativeLanguages: []apiclient.UserLanguage{
			{Language: &apiclient.Language{Name: "Russian", NameLocal: "Русский"}},
		},
		LearningLanguages: []apiclient.UserLanguage{
			{Language: &apiclient.Language{Name: "English", NameLocal: "English"}, Level: "A2"},
		},
		WordsCount: 12,
	}
}

func TestHandleStart(t *testing.T) {
	t.Run("anonymous chat gets greeting", func(t *testing.T) {
		f := newHandlerFixture()
		f.users.On("Touch", mock.Anything, int64(42), "alice_tg").Return(nil)
		c := newFakeContext("/start")

		require.NoError(t, f.h.handleStart(c))

		assert.Contains(t, c.lastText(), "Привет Alice!")
		assert.Equal(t, fsm.None, middleware.CurrentSession(c).State)
		f.users.AssertExpectations(t)
	})

	t.Run("logged in chat gets main menu", func(t *testing.T) {
		f := newHandlerFixture()
		f.users.On("Touch", mock.Anything, int64(42), "alice_tg").Return(errors.New("db down"))
		c := newFakeContext("/start")
		c.withSession(fsm.ProfileRetrieve, map[string]string{fsm.KeyToken: "tok"})

		require.NoError(t, f.h.handleStart(c))

		sess := middleware.CurrentSession(c)
		assert.Equal(t, msgWelcomeBack, c.lastText())
		assert.Equal(t, fsm.AuthorizedToken, sess.State)
		assert.Equal(t, "tok", sess.Token())
	})
}

func TestRegistrationSteps(t *testing.T) {
	tests := []struct {
		name      string
		state     fsm.State
		input     string
		wantState fsm.State
		wantText  string
	}{
		{"invalid username", fsm.RegistrationUsername, "bad user!", fsm.RegistrationUsername, msgInvalidUsername},
		{"valid username", fsm.RegistrationUsername, "alice", fsm.RegistrationEmail, msgAskEmail},
		{"invalid email", fsm.RegistrationEmail, "not-an-email", fsm.RegistrationEmail, msgInvalidEmail},
		{"valid email", fsm.RegistrationEmail, "alice@example.com", fsm.RegistrationPassword1, msgAskPassword},
		{"short password", fsm.RegistrationPassword1, "short", fsm.RegistrationPassword1, msgShortPassword},
		{"valid password", fsm.RegistrationPassword1, "long-enough", fsm.RegistrationPassword2, msgAskPassword2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture()
			c := newFakeContext(tt.input)
			sess := c.withSession(tt.state, nil)

			require.NoError(t, f.h.handleText(c))

			assert.Equal(t, tt.wantState, sess.State)
			assert.Equal(t, tt.wantText, c.lastText())
		})
	}
}

func TestRegistrationPassword2(t *testing.T) {
	data := map[string]string{
		fsm.KeyUsername:  "alice",
		fsm.KeyEmail:     "alice@example.com",
		fsm.KeyPassword1: "long-enough",
	}
	req := apiclient.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		Password1: "long-enough",
		Password2: "long-enough",
	}

	t.Run("mismatch keeps state", func(t *testing.T) {
		f := newHandlerFixture()
		c := newFakeContext("different-one")
		sess := c.withSession(fsm.RegistrationPassword2, data)

		require.NoError(t, f.h.handleText(c))

		assert.Equal(t, fsm.RegistrationPassword2, sess.State)
		assert.Equal(t, msgPasswordMismatch, c.lastText())
		f.api.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("registers and logs in", func(t *testing.T) {
		f := newHandlerFixture()
		f.api.On("Register", mock.Anything, req).Return(false, "", nil)
		f.api.On("Login", mock.Anything, apiclient.LoginRequest{Username: "alice", Password: "long-enough"}).
			Return("tok", nil)
		f.users.On("RecordLogin", mock.Anything, int64(42), "alice").Return(nil)
		c := newFakeContext("long-enough")
		sess := c.withSession(fsm.RegistrationPassword2, data)

		require.NoError(t, f.h.handleText(c))

		assert.Equal(t, fsm.AuthorizedToken, sess.State)
		assert.Equal(t, "tok", sess.Token())
		assert.Empty(t, sess.Get(fsm.KeyPassword1))
		assert.Equal(t, []interface{}{msgRegistered, msgLoggedIn}, c.sent)
		f.api.AssertExpectations(t)
		f.users.AssertExpectations(t)
	})

	t.Run("confirmation pending", func(t *testing.T) {
		f := newHandlerFixture()
		f.api.On("Register", mock.Anything, req).Return(true, "Verification e-mail sent.", nil)
		c := newFakeContext("long-enough")
		sess := c.withSession(fsm.RegistrationPassword2, data)

		require.NoError(t, f.h.handleText(c))

		assert.Equal(t, fsm.None, sess.State)
		assert.Empty(t, sess.Data)
		assert.Equal(t, "Verification e-mail sent.", c.lastText())
		f.api.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})

	t.Run("validation error restarts registration", func(t *testing.T) {
		f := newHandlerFixture()
		apiErr := &apiclient.Error{
			Status: http.StatusBadRequest,
			Body:   map[string]any{"username": []any{"A user with that username already exists."}},
		}
		f.api.On("Register", mock.Anything, req).Return(false, "", apiErr)
		c := newFakeContext("long-enough")
		sess := c.withSession(fsm.RegistrationPassword2, data)

		require.NoError(t, f.h.handleText(c))

		assert.Equal(t, fsm.RegistrationUsername, sess.State)
		assert.Empty(t, sess.Get(fsm.KeyUsername))
		require.Len(t, c.sent, 2)
		assert.Contains(t, c.sent[0], "username: A user with that username already exists.")
		assert.Equal(t, msgAskUsername, c.lastText())
	})
}

func TestAuthorization(t *testing.T) {
	t.Run("email login goes to email field", func(t *testing.T) {
		f := newHandlerFixture()
		c := newFakeContext("alice@example.com")
		sess := c.withSession(fsm.AuthorizationUsername, nil)

		require.NoError(t, f.h.handleText(c))

		assert.Equal(t, fsm.AuthorizationPassword, sess.State)
		assert.Equal(t, "alice@example.com", sess.Get(fsm.KeyEmail))
		assert.Empty(t, sess.Get(fsm.KeyUsername))

		f.api.On("Login", mock.Anything, apiclient.LoginRequest{Email: "alice@example.com", Password: "secret-pass"}).
			Return("tok", nil)
		f.users.On("RecordLogin", mock.Anything, int64(42), "alice@example.com").Return(nil)
		c.text = "secret-pass"

		require.NoError(t, f.h.handleText(c))

		assert.Equal(t, fsm.AuthorizedToken, sess.State)
		assert.Equal(t, "tok", sess.Token())
		assert.Equal(t, msgLoggedIn, c.lastText())
	})

	t.Run("wrong credentials reset the flow", func(t *testing.T) {
		f := newHandlerFixture()
		apiErr := &apiclient.Error{
			Status: http.StatusBadRequest,
			Body:   map[string]any{"non_field_errors": []any{"Unable to log in with provided credentials."}},
		}
		f.api.On("Login", mock.Anything, mock.Anything).Return("", apiErr)
		c := newFakeContext("wrong-pass")
		sess := c.withSession(fsm.AuthorizationPassword, map[string]string{fsm.KeyUsername: "alice"})

		require.NoError(t, f.h.handleText(c))

		assert.Equal(t, fsm.None, sess.State)
		assert.Empty(t, sess.Data)
		assert.Contains(t, c.lastText(), "Unable to log in with provided credentials.")
	})
}

func TestHandleCancel(t *testing.T) {
	t.Run("keeps the login", func(t *testing.T) {
		f := newHandlerFixture()
		c := newFakeContext("Отмена")
		sess := c.withSession(fsm.ProfileFirstNameUpdate, map[string]string{fsm.KeyToken: "tok"})

		require.NoError(t, f.h.handleCancel(c))

		assert.Equal(t, fsm.AuthorizedToken, sess.State)
		assert.Equal(t, "tok", sess.Token())
		assert.Equal(t, msgCancelled, c.lastText())
	})

	t.Run("anonymous chat is cleared", func(t *testing.T) {
		f := newHandlerFixture()
		c := newFakeContext("")
		c.callback = &tele.Callback{ID: "1", Unique: "cancel"}
		sess := c.withSession(fsm.RegistrationEmail, map[string]string{fsm.KeyUsername: "alice"})

		require.NoError(t, f.h.handleCallback(c))

		assert.Equal(t, fsm.None, sess.State)
		assert.Empty(t, sess.Data)
		assert.Equal(t, msgCancelledAnon, c.lastText())
		assert.Len(t, c.responses, 1)
	})
}

func TestHandleLogout(t *testing.T) {
	f := newHandlerFixture()
	f.api.On("Logout", mock.Anything, "tok").Return(apiclient.ErrUnauthorized)
	c := newFakeContext("Выйти из аккаунта")
	sess := c.withSession(fsm.AuthorizedToken, map[string]string{fsm.KeyToken: "tok"})

	require.NoError(t, f.h.handleLogout(c))

	assert.Equal(t, fsm.None, sess.State)
	assert.Empty(t, sess.Token())
	assert.Equal(t, msgLoggedOut, c.lastText())
	f.api.AssertExpectations(t)
}

func TestHandleProfile(t *testing.T) {
	t.Run("renders profile", func(t *testing.T) {
		f := newHandlerFixture()
		f.api.On("Profile", mock.Anything, "tok").Return(testProfile(), nil)
		c := newFakeContext("Профиль")
		sess := c.withSession(fsm.AuthorizedToken, map[string]string{fsm.KeyToken: "tok"})

		require.NoError(t, f.h.handleProfile(c))

		assert.Equal(t, fsm.ProfileRetrieve, sess.State)
		text := c.lastText()
		assert.Contains(t, text, "<b>Профиль пользователя alice</b>")
		assert.Contains(t, text, "<b>Родные языки:</b> Русский")
		assert.Contains(t, text, "<b>Мощность словаря (общее кол-во слов):</b> 12")
		assert.Contains(t, text, "\t\t- English")
	})

	t.Run("sends photo when image is set", func(t *testing.T) {
		f := newHandlerFixture()
		p := testProfile()
		img := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
		p.Image = &img
		f.api.On("Profile", mock.Anything, "tok").Return(p, nil)
		c := newFakeContext("Профиль")
		c.withSession(fsm.AuthorizedToken, map[string]string{fsm.KeyToken: "tok"})

		require.NoError(t, f.h.handleProfile(c))

		require.Len(t, c.sent, 1)
		photo, ok := c.sent[0].(*tele.Photo)
		require.True(t, ok)
		assert.Contains(t, photo.Caption, "alice")
	})

	t.Run("expired token logs out", func(t *testing.T) {
		f := newHandlerFixture()
		f.api.On("Profile", mock.Anything, "tok").Return(nil, apiclient.ErrUnauthorized)
		c := newFakeContext("Профиль")
		sess := c.withSession(fsm.AuthorizedToken, map[string]string{fsm.KeyToken: "tok"})

		require.NoError(t, f.h.handleProfile(c))

		assert.Empty(t, sess.Token())
		assert.Equal(t, msgLoginRequired, c.lastText())
	})
}

func TestProfileText_EmptyFields(t *testing.T) {
	text := profileText(&apiclient.Profile{Username: "<bob>"})

	assert.Contains(t, text, "&lt;bob&gt;")
	assert.Contains(t, text, "<b>Имя:</b> "+msgNotFilled)
	assert.Contains(t, text, "<b>Количество изучаемых языков:</b> 0")
}

func TestUpdateFirstName(t *testing.T) {
	f := newHandlerFixture()
	name := "Алиса"
	f.api.On("UpdateProfile", mock.Anything, "tok", apiclient.ProfileUpdate{FirstName: &name}).
		Return(testProfile(), nil)
	c := newFakeContext(name)
	sess := c.withSession(fsm.ProfileFirstNameUpdate, map[string]string{fsm.KeyToken: "tok"})

	require.NoError(t, f.h.handleText(c))

	assert.Equal(t, fsm.ProfileRetrieve, sess.State)
	assert.Equal(t, msgFirstNameUpdated, c.sent[0])
	f.api.AssertExpectations(t)
}

func TestUpdateNativeLanguages(t *testing.T) {
	t.Run("splits input", func(t *testing.T) {
		f := newHandlerFixture()
		upd := apiclient.ProfileUpdate{NativeLanguages: []string{"Русский", "Английский"}}
		f.api.On("UpdateProfile", mock.Anything, "tok", upd).Return(testProfile(), nil)
		c := newFakeContext("Русский, Английский")
		c.withSession(fsm.ProfileNativeLanguagesUpdate, map[string]string{fsm.KeyToken: "tok"})

		require.NoError(t, f.h.handleText(c))

		assert.Equal(t, msgNativeUpdated, c.sent[0])
		f.api.AssertExpectations(t)
	})

	t.Run("limit exceeded", func(t *testing.T) {
		f := newHandlerFixture()
		apiErr := &apiclient.Error{Status: http.StatusConflict, Body: map[string]any{"detail": "limit"}}
		f.api.On("UpdateProfile", mock.Anything, "tok", mock.Anything).Return(nil, apiErr)
		c := newFakeContext("Русский Английский Немецкий")
		sess := c.withSession(fsm.ProfileNativeLanguagesUpdate, map[string]string{fsm.KeyToken: "tok"})

		require.NoError(t, f.h.handleText(c))

		assert.Equal(t, fsm.ProfileNativeLanguagesUpdate, sess.State)
		assert.Equal(t, msgNativeExceeded, c.lastText())
	})
}

func TestSplitLanguages(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitLanguages("a, b ,c"))
	assert.Empty(t, splitLanguages(" , "))
}

func TestHandlePhoto(t *testing.T) {
	t.Run("uploads base64 image", func(t *testing.T) {
		f := newHandlerFixture()
		f.files.data = []byte("jpeg-bytes")
		img := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
		f.api.On("UpdateProfile", mock.Anything, "tok", apiclient.ProfileUpdate{Image: &img}).
			Return(testProfile(), nil)
		c := newFakeContext("")
		c.message = &tele.Message{Photo: &tele.Photo{File: tele.File{FileID: "f1"}}}
		sess := c.withSession(fsm.ProfileImageUpdate, map[string]string{fsm.KeyToken: "tok"})

		require.NoError(t, f.h.handlePhoto(c))

		assert.Equal(t, fsm.ProfileRetrieve, sess.State)
		assert.Equal(t, msgPictureUpdated, c.sent[0])
		f.api.AssertExpectations(t)
	})

	t.Run("ignored outside of image update", func(t *testing.T) {
		f := newHandlerFixture()
		c := newFakeContext("")
		c.message = &tele.Message{Photo: &tele.Photo{}}
		c.withSession(fsm.AuthorizedToken, map[string]string{fsm.KeyToken: "tok"})

		require.NoError(t, f.h.handlePhoto(c))

		assert.Empty(t, c.sent)
	})

	t.Run("text instead of picture", func(t *testing.T) {
		f := newHandlerFixture()
		c := newFakeContext("hello")
		c.withSession(fsm.ProfileImageUpdate, map[string]string{fsm.KeyToken: "tok"})

		require.NoError(t, f.h.handleText(c))

		assert.Equal(t, msgNoPicture, c.lastText())
	})
}

func TestAddLearningLanguage(t *testing.T) {
	t.Run("prompt lists languages", func(t *testing.T) {
		f := newHandlerFixture()
		f.api.On("LearningAvailableLanguages", mock.Anything, "tok").
			Return([]apiclient.Language{{Name: "English"}, {Name: "French"}}, nil)
		c := newFakeContext("Добавить изучаемый язык")
		sess := c.withSession(fsm.AuthorizedToken, map[string]string{fsm.KeyToken: "tok"})

		require.NoError(t, f.h.handleAddLanguagePrompt(c))

		assert.Equal(t, fsm.AddLearningLanguageLanguage, sess.State)
		markup, ok := c.markups[0].(*tele.ReplyMarkup)
		require.True(t, ok)
		require.Len(t, markup.InlineKeyboard, 2)
		assert.Len(t, markup.InlineKeyboard[0], 2)
	})

	t.Run("button adds language", func(t *testing.T) {
		f := newHandlerFixture()
		f.api.On("AddLearningLanguage", mock.Anything, "tok", "English").Return(nil)
		f.api.On("Profile", mock.Anything, "tok").Return(testProfile(), nil)
		c := newFakeContext("")
		c.callback = &tele.Callback{ID: "7", Data: "\fadd_language_English"}
		sess := c.withSession(fsm.AddLearningLanguageLanguage, map[string]string{fsm.KeyToken: "tok"})

		require.NoError(t, f.h.handleCallback(c))

		assert.Equal(t, fsm.ProfileRetrieve, sess.State)
		assert.Equal(t, msgLanguageAdded, c.sent[0])
		require.Len(t, c.responses, 1)
		assert.Equal(t, "Выбран язык: English", c.responses[0].Text)
		f.api.AssertExpectations(t)
	})

	t.Run("typed language over the limit", func(t *testing.T) {
		f := newHandlerFixture()
		apiErr := &apiclient.Error{Status: http.StatusConflict, Body: map[string]any{"detail": "limit"}}
		f.api.On("AddLearningLanguage", mock.Anything, "tok", "German").Return(apiErr)
		c := newFakeContext("German")
		sess := c.withSession(fsm.AddLearningLanguageLanguage, map[string]string{fsm.KeyToken: "tok"})

		require.NoError(t, f.h.handleText(c))

		assert.Equal(t, fsm.AddLearningLanguageLanguage, sess.State)
		assert.Equal(t, msgLearningExceeded, c.lastText())
	})
}

func TestHandleText_Unknown(t *testing.T) {
	f := newHandlerFixture()
	c := newFakeContext("hello")
	c.withSession(fsm.AuthorizedToken, map[string]string{fsm.KeyToken: "tok"})

	require.NoError(t, f.h.handleText(c))

	assert.Equal(t, "Неизвестная команда: hello", c.lastText())
}
