package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"BubbleIndex/internal/domain/models"
	domrepo "BubbleIndex/internal/domain/repository"
	"BubbleIndex/internal/handler/api/ui"
	"BubbleIndex/internal/service/cache"
	xhttp "BubbleIndex/pkg/http"
	xlogger "BubbleIndex/pkg/logger"

	"github.com/labstack/echo/v4"
)

const documentCacheKey = "document"

// BubbleQuery selects how many trailing days /api/bubble returns; 0 means all.
type BubbleQuery struct {
	Last int `query:"last" default:"0" validate:"gte=0,lte=100000"`
}

// ViewerHandler serves the chart page and the last document written by the sinks.
type ViewerHandler struct {
	logger *xlogger.Logger
	reader domrepo.DocumentReader
	cache  cache.BytesCache
	ttl    time.Duration
	index  []byte
}

func NewViewerHandler(logger *xlogger.Logger, reader domrepo.DocumentReader, c cache.BytesCache, ttl time.Duration) (*ViewerHandler, error) {
	index, err := ui.Index()
	if err != nil {
		return nil, fmt.Errorf("load chart page: %w", err)
	}
	if logger == nil {
		logger = xlogger.Nop()
	}
	if c == nil {
		c = cache.NewTTLCache()
	}
	return &ViewerHandler{logger: logger, reader: reader, cache: c, ttl: ttl, index: index}, nil
}

func (h *ViewerHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/index.html", h.Index)
	e.GET("/data.json", h.Data)
	e.GET("/chart", h.Chart)
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/bubble", h.Bubble)
}

func (h *ViewerHandler) Index(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, h.index)
}

// Data serves the rendered document as a script the chart page includes.
func (h *ViewerHandler) Data(c echo.Context) error {
	doc, err := h.document(c.Request().Context())
	if err != nil {
		if errors.Is(err, models.ErrDataUnavailable) {
			return c.String(http.StatusNotFound, "no document yet")
		}
		h.logger.Error("read document failed", xlogger.Error(err))
		return c.String(http.StatusInternalServerError, "read document failed")
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	return c.Blob(http.StatusOK, "application/javascript; charset=utf-8", doc)
}

// Bubble returns the document columns as JSON.
func (h *ViewerHandler) Bubble(c echo.Context) error {
	req := &BubbleQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	doc, err := h.parsed(c.Request().Context())
	if err != nil {
		if errors.Is(err, models.ErrDataUnavailable) {
			return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("no document has been produced yet").WithError(err))
		}
		h.logger.Error("read document failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, doc.Tail(req.Last))
}

// Chart renders the document server-side.
func (h *ViewerHandler) Chart(c echo.Context) error {
	doc, err := h.parsed(c.Request().Context())
	if err != nil {
		if errors.Is(err, models.ErrDataUnavailable) {
			return c.String(http.StatusNotFound, "no document yet")
		}
		h.logger.Error("chart document unreadable", xlogger.Error(err))
		return c.String(http.StatusInternalServerError, "document unreadable")
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return RenderChart(c.Response(), doc)
}

func (h *ViewerHandler) Health(c echo.Context) error {
	_, err := h.document(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"document": err == nil,
	})
}

func (h *ViewerHandler) document(ctx context.Context) ([]byte, error) {
	if b, ok := h.cache.GetBytes(documentCacheKey); ok {
		return b, nil
	}
	if h.reader == nil {
		return nil, models.NewError(models.ErrDataUnavailable, "", -1, "no readable sink configured")
	}
	doc, err := h.reader.Read(ctx)
	if err != nil {
		return nil, err
	}
	b := []byte(doc)
	if h.ttl > 0 {
		h.cache.SetBytes(documentCacheKey, b, h.ttl)
	}
	return b, nil
}

func (h *ViewerHandler) parsed(ctx context.Context) (*models.OutputDocument, error) {
	raw, err := h.document(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := models.ParseRendered(string(raw))
	if err != nil {
		return nil, fmt.Errorf("stored document is unreadable: %w", err)
	}
	return doc, nil
}

// Invalidate drops the cached document so the next request re-reads the sink.
func (h *ViewerHandler) Invalidate() {
	h.cache.Delete(documentCacheKey)
}
