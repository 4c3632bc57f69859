package http

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/avezina/signalhub/internal/auth"
)

type AuthHandler struct {
	Auth *auth.Service
}

type signUpRequest struct {
	Name     string `json:"name" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type signUpResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signup payload"})
		return
	}

	acct, err := h.Auth.SignUp(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "user with this email already exists"})
			return
		}
		log.Error().Err(err).Str("module", "adapters.http").Msg("signup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	sess := sessions.Default(c)
	sess.Set("account_id", string(acct.ID))
	if err := sess.Save(); err != nil {
		log.Warn().Err(err).Str("module", "adapters.http").Msg("save session")
	}

	c.JSON(http.StatusCreated, signUpResponse{ID: string(acct.ID), Email: acct.Email})
}
