package api

import (
	"net/http"

	"linguista/internal/api/middleware"
	"linguista/internal/domain"
	"linguista/internal/repository"
	"linguista/internal/service"

	"github.com/gin-gonic/gin"
)

type vocabularyHandler struct {
	*handler
	vocabulary *service.VocabularyService
}

type wordRequest struct {
	Text           string   `json:"text" binding:"required,max=256"`
	Language       string   `json:"language" binding:"required"`
	ActivityStatus string   `json:"activity_status" binding:"omitempty,oneof=I A M"`
	Note           string   `json:"note" binding:"max=256"`
	Tags           []string `json:"tags"`
	Types          []string `json:"types"`
}

type wordUpdateRequest struct {
	ActivityStatus *string   `json:"activity_status" binding:"omitempty,oneof=I A M"`
	Note           *string   `json:"note" binding:"omitempty,max=256"`
	Types          *[]string `json:"types"`
}

type textRequest struct {
	Text        string `json:"text" binding:"required,max=512"`
	Translation string `json:"translation" binding:"max=512"`
}

type translationRequest struct {
	Text     string `json:"text" binding:"required,max=256"`
	Language string `json:"language" binding:"required"`
}

type tagsRequest struct {
	Tags []string `json:"tags" binding:"required"`
}

type linkRequest struct {
	Text     string `json:"text" binding:"required,max=256"`
	Language string `json:"language"`
	Note     string `json:"note" binding:"max=256"`
}

func (h *vocabularyHandler) list(c *gin.Context) {
	page, err := pageRequest(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	f := repository.WordFilter{
		Language:       c.Query("language"),
		ActivityStatus: domain.ActivityStatus(c.Query("activity_status")),
		Search:         c.Query("search"),
		Type:           c.Query("type"),
	}
	words, count, err := h.vocabulary.List(c.Request.Context(), middleware.CurrentUser(c), f, page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newPage(c, page, count, mapSlice(words, toWord)))
}

func (h *vocabularyHandler) create(c *gin.Context) {
	var req wordRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	w, err := h.vocabulary.Create(c.Request.Context(), middleware.CurrentUser(c), service.WordInput{
		Text:           req.Text,
		Language:       req.Language,
		ActivityStatus: domain.ActivityStatus(req.ActivityStatus),
		Note:           req.Note,
		Tags:           req.Tags,
		Types:          req.Types,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toWord(w))
}

func (h *vocabularyHandler) get(c *gin.Context) {
	d, err := h.vocabulary.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toWordDetail(d))
}

func (h *vocabularyHandler) update(c *gin.Context) {
	var req wordUpdateRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	upd := domain.WordUpdate{Note: req.Note}
	if req.ActivityStatus != nil {
		st := domain.ActivityStatus(*req.ActivityStatus)
		upd.ActivityStatus = &st
	}
	if req.Types != nil {
		upd.Types = *req.Types
		if upd.Types == nil {
			upd.Types = []string{}
		}
	}

	w, err := h.vocabulary.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"), upd)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toWord(w))
}

func (h *vocabularyHandler) delete(c *gin.Context) {
	if err := h.vocabulary.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *vocabularyHandler) definitions(c *gin.Context) {
	defs, err := h.vocabulary.Definitions(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(defs, toDefinition))
}

func (h *vocabularyHandler) addDefinition(c *gin.Context) {
	var req textRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	d, err := h.vocabulary.AddDefinition(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"),
		service.TextInput{Text: req.Text, Translation: req.Translation})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDefinition(d))
}

func (h *vocabularyHandler) examples(c *gin.Context) {
	examples, err := h.vocabulary.Examples(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(examples, toExample))
}

func (h *vocabularyHandler) addExample(c *gin.Context) {
	var req textRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	e, err := h.vocabulary.AddExample(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"),
		service.TextInput{Text: req.Text, Translation: req.Translation})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toExample(e))
}

func (h *vocabularyHandler) translations(c *gin.Context) {
	trs, err := h.vocabulary.Translations(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(trs, toTranslation))
}

func (h *vocabularyHandler) addTranslation(c *gin.Context) {
	var req translationRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	t, err := h.vocabulary.AddTranslation(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"),
		service.TranslationInput{Text: req.Text, Language: req.Language})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTranslation(t))
}

func (h *vocabularyHandler) tags(c *gin.Context) {
	tags, err := h.vocabulary.Tags(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(tags, toTag))
}

func (h *vocabularyHandler) addTags(c *gin.Context) {
	var req tagsRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	tags, err := h.vocabulary.AddTags(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"), req.Tags)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapSlice(tags, toTag))
}

func (h *vocabularyHandler) links(kind domain.LinkKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		links, err := h.vocabulary.Links(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"), kind)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, mapSlice(links, toWordLink))
	}
}

func (h *vocabularyHandler) addLink(kind domain.LinkKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req linkRequest
		if err := bind(c, &req); err != nil {
			h.fail(c, err)
			return
		}

		links, err := h.vocabulary.AddLink(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"), kind,
			service.LinkInput{Text: req.Text, Language: req.Language, Note: req.Note})
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, mapSlice(links, toWordLink))
	}
}

func (h *vocabularyHandler) removeLink(kind domain.LinkKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := h.vocabulary.RemoveLink(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"), kind, c.Param("other"))
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type wordTypeHandler struct {
	*handler
	types *service.WordTypeService
}

func (h *wordTypeHandler) list(c *gin.Context) {
	types, err := h.types.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(types, toWordType))
}
