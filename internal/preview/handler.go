package preview

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cv-forge/internal/shared/server/middleware"
	"cv-forge/internal/shared/server/respond"
	"cv-forge/resume/contract"
	"cv-forge/resume/model"
	"cv-forge/resume/render"
	"cv-forge/resume/resolve"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches preview routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cv/:lang", h.render)
	rg.GET("/cv/:lang/resolved", h.resolved)
	rg.GET("/formats", h.formats)
}

func (h *Handler) render(c *gin.Context) {
	lang, ok := parseLanguage(c)
	if !ok {
		return
	}
	format, err := render.ParseFormat(c.DefaultQuery("format", string(render.FormatHTML)))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "unsupported_format", err.Error(), gin.H{"formats": h.Svc.Renderers.Formats()})
		return
	}
	c.Set(middleware.FormatKey, string(format))

	entry, err := h.Svc.Render(c.Request.Context(), Request{
		Language: lang,
		Profiles: resolve.ParseProfiles(c.Query("profiles")),
		Format:   format,
		JobTitle: c.Query("job_title"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	if c.Query("download") != "" {
		respond.Attachment(c, entry.Name)
	}
	c.Data(http.StatusOK, entry.ContentType, entry.Data)
}

func (h *Handler) resolved(c *gin.Context) {
	lang, ok := parseLanguage(c)
	if !ok {
		return
	}
	resume, err := h.Svc.Resolve(c.Request.Context(), lang, resolve.ParseProfiles(c.Query("profiles")))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) formats(c *gin.Context) {
	respond.OK(c, gin.H{"formats": h.Svc.Renderers.Formats()})
}

func (h *Handler) fail(c *gin.Context, err error) {
	var missing contract.MissingFieldsError
	switch {
	case errors.Is(err, model.ErrUnsupportedLanguage):
		respond.Error(c, http.StatusBadRequest, "unsupported_language", err.Error(), nil)
	case errors.Is(err, render.ErrUnknownFormat):
		respond.Error(c, http.StatusBadRequest, "unsupported_format", err.Error(), nil)
	case errors.As(err, &missing):
		respond.Error(c, http.StatusUnprocessableEntity, "invalid_source", "resume source is incomplete", gin.H{"fields": missing.Fields})
	default:
		respond.Error(c, http.StatusInternalServerError, "render_failed", err.Error(), nil)
	}
}

func parseLanguage(c *gin.Context) (model.Language, bool) {
	lang, err := model.ParseLanguage(c.Param("lang"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "unsupported_language", err.Error(), gin.H{"supported": model.SupportedLanguages})
		return "", false
	}
	c.Set(middleware.LangKey, string(lang))
	return lang, true
}
