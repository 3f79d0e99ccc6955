package api

import (
	"context"
	"net/http"

	"linguista/internal/api/middleware"
	"linguista/internal/domain"
	"linguista/internal/service"

	"github.com/gin-gonic/gin"
)

type favoriteHandler struct {
	*handler
	favorites *service.FavoriteService
}

type favoriteToggle func(ctx context.Context, user *domain.User, slug string) error

// toggle marks or unmarks the object named by the slug parameter
func (h *favoriteHandler) toggle(fn favoriteToggle, status int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := fn(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug")); err != nil {
			h.fail(c, err)
			return
		}
		c.Status(status)
	}
}

func (h *favoriteHandler) words(c *gin.Context) {
	page, err := pageRequest(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	words, count, err := h.favorites.Words(c.Request.Context(), middleware.CurrentUser(c), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newPage(c, page, count, mapSlice(words, toWord)))
}

func (h *favoriteHandler) collections(c *gin.Context) {
	page, err := pageRequest(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	cols, count, err := h.favorites.Collections(c.Request.Context(), middleware.CurrentUser(c), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newPage(c, page, count, mapSlice(cols, toCollection)))
}

func (h *favoriteHandler) exercises(c *gin.Context) {
	items, err := h.favorites.Exercises(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(items, toExercise))
}
