package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"linguista/internal/api/middleware"
	"linguista/internal/apperr"
	"linguista/internal/domain"
	"linguista/internal/service"

	"github.com/gin-gonic/gin"
)

type profileHandler struct {
	*handler
	profiles *service.ProfileService
}

type profileUpdateRequest struct {
	FirstName       *string  `json:"first_name" binding:"omitempty,max=32"`
	Gender          *string  `json:"gender"`
	Image           *string  `json:"image"`
	NativeLanguages []string `json:"native_languages"`
}

type learningLanguageRequest struct {
	Language string `json:"language" binding:"required"`
	Level    string `json:"level" binding:"max=256"`
}

func (h *profileHandler) get(c *gin.Context) {
	p, err := h.profiles.Get(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfile(p))
}

func (h *profileHandler) update(c *gin.Context) {
	var req profileUpdateRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	p, err := h.profiles.Update(c.Request.Context(), middleware.CurrentUser(c), domain.ProfileUpdate{
		FirstName:       req.FirstName,
		Gender:          req.Gender,
		Image:           req.Image,
		NativeLanguages: req.NativeLanguages,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfile(p))
}

func (h *profileHandler) delete(c *gin.Context) {
	if err := h.profiles.Delete(c.Request.Context(), middleware.CurrentUser(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *profileHandler) learningLanguages(c *gin.Context) {
	langs, err := h.profiles.LearningLanguages(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserLanguages(langs))
}

// addLearningLanguages accepts a single object or a list of them
func (h *profileHandler) addLearningLanguages(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		h.fail(c, err)
		return
	}

	var reqs []learningLanguageRequest
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &reqs)
	} else {
		var one learningLanguageRequest
		err = json.Unmarshal(trimmed, &one)
		reqs = append(reqs, one)
	}
	if err != nil {
		h.fail(c, apperr.Invalid("non_field_errors", "Invalid data. "+err.Error()))
		return
	}
	for i := range reqs {
		if err := validate(&reqs[i]); err != nil {
			h.fail(c, err)
			return
		}
	}

	in := make([]service.LearningLanguageInput, 0, len(reqs))
	for _, r := range reqs {
		in = append(in, service.LearningLanguageInput{Language: r.Language, Level: r.Level})
	}

	langs, err := h.profiles.AddLearningLanguages(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserLanguages(langs))
}

type languageHandler struct {
	*handler
	languages *service.LanguageService
}

func (h *languageHandler) list(c *gin.Context) {
	h.respond(c, false)
}

func (h *languageHandler) learningAvailable(c *gin.Context) {
	h.respond(c, true)
}

func (h *languageHandler) respond(c *gin.Context, learningOnly bool) {
	langs, err := h.languages.List(c.Request.Context(), learningOnly)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(langs, toLanguage))
}
