package api

import (
	"net/http"

	"linguista/internal/api/middleware"
	"linguista/internal/service"

	"github.com/gin-gonic/gin"
)

type authHandler struct {
	*handler
	auth *service.AuthService
}

type registerRequest struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,max=254"`
	Password1 string `json:"password1" binding:"required"`
	Password2 string `json:"password2" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

func (h *authHandler) register(c *gin.Context) {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	res, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password1: req.Password1,
		Password2: req.Password2,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	if res.ConfirmationRequired {
		c.JSON(http.StatusCreated, gin.H{"detail": service.MsgConfirmationSent})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *authHandler) confirmEmail(c *gin.Context) {
	if err := h.auth.ConfirmEmail(c.Request.Context(), c.Param("key")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "ok"})
}

func (h *authHandler) login(c *gin.Context) {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	key, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key})
}

func (h *authHandler) logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.CurrentTokenID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Successfully logged out."})
}
