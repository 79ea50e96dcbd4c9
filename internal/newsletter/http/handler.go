package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sundayts/portfolio/internal/newsletter/domain"
	"github.com/sundayts/portfolio/internal/newsletter/service"
)

// Handler serves the JSON newsletter signup.
type Handler struct {
	svc *service.NewsletterService
}

func New(svc *service.NewsletterService) *Handler {
	return &Handler{svc: svc}
}

// Register attaches the signup route. mw runs before the handler, which is
// where the rate limiter goes.
func (h *Handler) Register(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	rg.POST("/newsletter", append(mw, h.subscribe)...)
}

type subscribeReq struct {
	Email string `json:"email"`
}

func (h *Handler) subscribe(c *gin.Context) {
	var req subscribeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	sub, err := h.svc.Subscribe(c.Request.Context(), req.Email)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"ok": true, "subscriber": sub})
	case errors.Is(err, domain.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrAlreadySubscribed):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "subscription failed"})
	}
}
