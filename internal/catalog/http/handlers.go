package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sundayts/portfolio/internal/catalog/domain"
)

// StateFromQuery reads ?tag= and ?all= into a filter state. A missing
// "all" means featured only.
func StateFromQuery(c *gin.Context) (domain.FilterState, error) {
	state := domain.FilterState{ActiveTag: strings.TrimSpace(c.Query("tag"))}
	if raw := c.Query("all"); raw != "" {
		all, err := strconv.ParseBool(raw)
		if err != nil {
			return state, errors.New("all must be a boolean")
		}
		state.ShowAll = all
	}
	return state, nil
}

func (h *Handler) list(c *gin.Context) {
	state, err := StateFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	view := h.svc.View(c.Request.Context(), state)
	resp := gin.H{
		"ok":       true,
		"state":    view.State,
		"tags":     view.Tags,
		"projects": view.Projects,
		"total":    view.Total,
		"empty":    view.Empty,
	}
	switch c.Query("group") {
	case "":
	case "year":
		resp["groups"] = view.Groups
	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "group must be year"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) tags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "tags": h.svc.Tags()})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.ProjectBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) filter(c *gin.Context) {
	var req filterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	next, err := h.svc.Apply(req.State, req.Action)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, filterResp{
		OK:    true,
		State: next,
		View:  h.svc.View(c.Request.Context(), next),
	})
}
