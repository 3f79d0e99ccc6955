package api

import (
	"net/http"
	"time"

	"linguista/internal/api/middleware"
	"linguista/internal/domain"
	"linguista/internal/service"

	"github.com/gin-gonic/gin"
)

type exerciseHandler struct {
	*handler
	exercises *service.ExerciseService
}

type settingsRequest struct {
	Mode              *string `json:"mode" binding:"omitempty,oneof=FI FIM V"`
	AnswerTimeLimit   *int    `json:"answer_time_limit" binding:"omitempty,min=30,max=300"`
	RepetitionsAmount *int    `json:"repetitions_amount" binding:"omitempty,min=1,max=10"`
	FromLanguage      *string `json:"from_language"`
}

type historyRequest struct {
	WordsAmount      int    `json:"words_amount" binding:"min=1,max=100"`
	CorrectsAmount   int    `json:"corrects_amount" binding:"min=0"`
	IncorrectsAmount int    `json:"incorrects_amount" binding:"min=0"`
	Mode             string `json:"mode" binding:"omitempty,oneof=FI FIM V"`
}

func (h *exerciseHandler) list(c *gin.Context) {
	exs, err := h.exercises.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(exs, toExercise))
}

func (h *exerciseHandler) settings(c *gin.Context) {
	st, err := h.exercises.Settings(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toSettings(st))
}

func (h *exerciseHandler) updateSettings(c *gin.Context) {
	var req settingsRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	upd := domain.TranslatorSettingsUpdate{
		Mode:              req.Mode,
		RepetitionsAmount: req.RepetitionsAmount,
		FromLanguage:      req.FromLanguage,
	}
	if req.AnswerTimeLimit != nil {
		d := time.Duration(*req.AnswerTimeLimit) * time.Second
		upd.AnswerTimeLimit = &d
	}

	st, err := h.exercises.UpdateSettings(c.Request.Context(), middleware.CurrentUser(c), upd)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toSettings(st))
}

func (h *exerciseHandler) history(c *gin.Context) {
	page, err := pageRequest(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	items, count, err := h.exercises.History(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newPage(c, page, count, mapSlice(items, toHistory)))
}

func (h *exerciseHandler) recordHistory(c *gin.Context) {
	var req historyRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	item, err := h.exercises.RecordHistory(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"), service.HistoryInput{
		WordsAmount:      req.WordsAmount,
		CorrectsAmount:   req.CorrectsAmount,
		IncorrectsAmount: req.IncorrectsAmount,
		Mode:             req.Mode,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toHistory(item))
}
