// Package site serves the server-rendered portfolio pages.
package site

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cataloghttp "github.com/sundayts/portfolio/internal/catalog/http"
	"github.com/sundayts/portfolio/internal/catalog/service"
	"github.com/sundayts/portfolio/internal/content"
	"github.com/sundayts/portfolio/internal/logging"
	nldomain "github.com/sundayts/portfolio/internal/newsletter/domain"
	nlservice "github.com/sundayts/portfolio/internal/newsletter/service"
)

const (
	themeCookie    = "theme"
	themeCookieAge = 365 * 24 * 60 * 60
)

// Handler renders the site pages.
type Handler struct {
	profile    content.Profile
	catalog    *service.CatalogService
	newsletter *nlservice.NewsletterService
	siteURL    string
	log        *zap.Logger
	now        func() time.Time
}

func New(profile content.Profile, catalog *service.CatalogService, newsletter *nlservice.NewsletterService, siteURL string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		profile:    profile,
		catalog:    catalog,
		newsletter: newsletter,
		siteURL:    strings.TrimRight(siteURL, "/"),
		log:        log,
		now:        time.Now,
	}
}

// Register attaches the page routes and static assets. newsletterMW runs in
// front of the newsletter form post.
func (h *Handler) Register(r *gin.Engine, newsletterMW ...gin.HandlerFunc) {
	r.StaticFS("/static", Static())

	r.GET("/", h.home)
	r.GET("/projects", h.projects)
	r.GET("/about", h.about)
	r.GET("/contact", h.contact)
	r.GET("/theme", h.theme)
	r.POST("/newsletter", append(newsletterMW, h.subscribe)...)
}

// NotFound renders the HTML 404 page.
func (h *Handler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found", h.page(c, "Not found"))
}

// NewsletterLimited is the rate limiter rejection for the form post.
func (h *Handler) NewsletterLimited(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, withFlash(safeNext(c.PostForm("next")), "slow"))
}

func (h *Handler) home(c *gin.Context) {
	p := h.page(c, h.profile.Name+" | "+h.profile.Role)
	p.Projects = h.projectsSection(c, "/")
	c.HTML(http.StatusOK, "home", p)
}

func (h *Handler) projects(c *gin.Context) {
	p := h.page(c, "Projects | "+h.profile.Name)
	p.Projects = h.projectsSection(c, "/projects")
	c.HTML(http.StatusOK, "projects_page", p)
}

func (h *Handler) about(c *gin.Context) {
	c.HTML(http.StatusOK, "about", h.page(c, "About | "+h.profile.Name))
}

func (h *Handler) contact(c *gin.Context) {
	c.HTML(http.StatusOK, "contact", h.page(c, "Contact | "+h.profile.Name))
}

func (h *Handler) theme(c *gin.Context) {
	mode := c.Query("mode")
	if !validTheme(mode) {
		c.String(http.StatusBadRequest, "mode must be light, dark or system")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(themeCookie, mode, themeCookieAge, "/", "", false, false)
	c.Redirect(http.StatusSeeOther, safeNext(c.Query("next")))
}

func (h *Handler) subscribe(c *gin.Context) {
	next := safeNext(c.PostForm("next"))

	code := "subscribed"
	if _, err := h.newsletter.Subscribe(c.Request.Context(), c.PostForm("email")); err != nil {
		switch {
		case errors.Is(err, nldomain.ErrInvalidEmail):
			code = "invalid"
		case errors.Is(err, nldomain.ErrAlreadySubscribed):
			code = "duplicate"
		default:
			code = "error"
		}
	}
	c.Redirect(http.StatusSeeOther, withFlash(next, code))
}

func (h *Handler) projectsSection(c *gin.Context, base string) *projectsSection {
	state, err := cataloghttp.StateFromQuery(c)
	if err != nil {
		logging.FromContext(c.Request.Context(), h.log).Debug("ignoring bad filter query", zap.Error(err))
		state.ShowAll = false
	}
	return newProjectsSection(base, h.catalog.View(c.Request.Context(), state))
}

func (h *Handler) page(c *gin.Context, title string) page {
	path := c.Request.URL.Path

	theme, err := c.Cookie(themeCookie)
	if err != nil || !validTheme(theme) {
		theme = ThemeSystem
	}
	next := nextTheme(theme)

	return page{
		Title:           title,
		Path:            path,
		Canonical:       h.siteURL + path,
		Theme:           theme,
		NextTheme:       next,
		ThemeToggleHref: "/theme?" + url.Values{"mode": {next}, "next": {path}}.Encode(),
		CurrentYear:     h.now().Year(),
		Profile:         h.profile,
		Nav:             navItems(h.profile.Nav, path),
		Flash:           flashFor(c.Query("newsletter")),
	}
}

// safeNext keeps redirects on this site. Anything that is not a local
// absolute path becomes "/".
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return "/"
	}
	u.Fragment = ""
	return u.String()
}

func withFlash(next, code string) string {
	u, err := url.Parse(next)
	if err != nil {
		u = &url.URL{Path: "/"}
	}
	q := u.Query()
	q.Set("newsletter", code)
	u.RawQuery = q.Encode()
	u.Fragment = "newsletter"
	return u.String()
}
