package builds

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cv-forge/internal/extract"
	"cv-forge/internal/shared/server/middleware"
	"cv-forge/internal/shared/server/respond"
	"cv-forge/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches build routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/builds", h.list)
	rg.GET("/build-runs/:buildId", h.run)
	rg.GET("/builds/:id", h.get)
	rg.GET("/builds/:id/download", h.download)
	rg.GET("/builds/:id/text", h.text)
}

func (h *Handler) list(c *gin.Context) {
	limit, ok := queryInt(c, "limit", DefaultListLimit)
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		return
	}

	items, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.fail(c, err, "failed to list builds")
		return
	}
	respond.OK(c, toResponses(items))
}

func (h *Handler) run(c *gin.Context) {
	c.Set(middleware.BuildIDKey, c.Param("buildId"))
	items, err := h.Svc.ListByBuild(c.Request.Context(), c.Param("buildId"))
	if err != nil {
		h.fail(c, err, "failed to list build artifacts")
		return
	}
	respond.OK(c, toResponses(items))
}

func (h *Handler) get(c *gin.Context) {
	build, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to fetch build")
		return
	}
	respond.OK(c, toResponse(build))
}

func (h *Handler) download(c *gin.Context) {
	build, reader, err := h.Svc.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to open artifact")
		return
	}
	defer reader.Close()

	respond.Attachment(c, FileName(build))
	c.Header("Content-Type", build.ContentType)
	if build.SizeBytes > 0 {
		c.Header("Content-Length", strconv.FormatInt(build.SizeBytes, 10))
	}
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		telemetry.Error("builds.download.copy_failed", map[string]any{
			"id":    build.ID,
			"key":   build.StorageKey,
			"error": err.Error(),
		})
	}
}

func (h *Handler) text(c *gin.Context) {
	text, err := h.Svc.Text(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to extract text")
		return
	}
	respond.OK(c, gin.H{"text": text})
}

func (h *Handler) fail(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "build not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, extract.ErrUnsupportedType):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_type", "no text extractor for this artifact", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", message, nil)
	}
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", key+" must be an integer", nil)
		return 0, false
	}
	return val, true
}
