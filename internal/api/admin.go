package api

import (
	"net/http"

	"linguista/internal/api/middleware"
	"linguista/internal/apperr"
	"linguista/internal/permission"
	"linguista/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type adminHandler struct {
	*handler
	admin     *service.AdminService
	exercises *service.ExerciseService
}

type exerciseRequest struct {
	Name                  string `json:"name" binding:"required,max=256"`
	Description           string `json:"description" binding:"max=4096"`
	ConstraintDescription string `json:"constraint_description" binding:"max=512"`
	Available             bool   `json:"available"`
}

func (h *adminHandler) list(c *gin.Context) {
	page, err := pageRequest(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	rows, count, err := h.admin.List(c.Request.Context(), middleware.CurrentUser(c), c.Param("resource"), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newPage(c, page, count, rows))
}

func (h *adminHandler) delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.fail(c, apperr.ErrNotFound)
		return
	}

	if err := h.admin.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("resource"), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *adminHandler) saveExercise(c *gin.Context) {
	err := permission.IsStaff{}.Allow(c.Request.Context(), permission.Request{
		Method: c.Request.Method,
		User:   middleware.CurrentUser(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	var req exerciseRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	e, err := h.exercises.Save(c.Request.Context(), service.ExerciseInput{
		Name:                  req.Name,
		Description:           req.Description,
		ConstraintDescription: req.ConstraintDescription,
		Available:             req.Available,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toExercise(e))
}
