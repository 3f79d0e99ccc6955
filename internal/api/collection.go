package api

import (
	"net/http"

	"linguista/internal/api/middleware"
	"linguista/internal/domain"
	"linguista/internal/service"

	"github.com/gin-gonic/gin"
)

type collectionHandler struct {
	*handler
	collections *service.CollectionService
}

type collectionRequest struct {
	Title       string   `json:"title" binding:"required,max=32"`
	Description string   `json:"description" binding:"max=128"`
	Words       []string `json:"words"`
}

type collectionUpdateRequest struct {
	Description *string `json:"description" binding:"omitempty,max=128"`
}

type collectionWordsRequest struct {
	Words []string `json:"words" binding:"required"`
}

func (h *collectionHandler) list(c *gin.Context) {
	page, err := pageRequest(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	cols, count, err := h.collections.List(c.Request.Context(), middleware.CurrentUser(c), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newPage(c, page, count, mapSlice(cols, toCollection)))
}

func (h *collectionHandler) create(c *gin.Context) {
	var req collectionRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	col, err := h.collections.Create(c.Request.Context(), middleware.CurrentUser(c), service.CollectionInput{
		Title:       req.Title,
		Description: req.Description,
		Words:       req.Words,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCollection(col))
}

func (h *collectionHandler) get(c *gin.Context) {
	col, err := h.collections.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollection(col))
}

func (h *collectionHandler) update(c *gin.Context) {
	var req collectionUpdateRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	col, err := h.collections.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"),
		domain.CollectionUpdate{Description: req.Description})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollection(col))
}

func (h *collectionHandler) delete(c *gin.Context) {
	if err := h.collections.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *collectionHandler) addWords(c *gin.Context) {
	var req collectionWordsRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	col, err := h.collections.AddWords(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"), req.Words)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCollection(col))
}
