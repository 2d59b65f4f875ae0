package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"coursecast/internal/core/domain"
	"coursecast/internal/core/ports"
	"coursecast/internal/infrastructure/middleware"
	"coursecast/internal/infrastructure/monitoring"
	"coursecast/internal/infrastructure/streaming"
	apperrors "coursecast/pkg/errors"
	"coursecast/pkg/httprange"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MediaHandler serves entitlement-gated course media with byte-range
// support. Every failure mode is resolved before the status line is
// written; once streaming starts the only outcomes are completing,
// aborting or cutting the connection.
type MediaHandler struct {
	media    ports.MediaService
	pipeline *streaming.Pipeline
	metrics  *monitoring.Collector
	log      *zap.SugaredLogger
}

func NewMediaHandler(
	media ports.MediaService,
	pipeline *streaming.Pipeline,
	metrics *monitoring.Collector,
	log *zap.SugaredLogger,
) *MediaHandler {
	return &MediaHandler{
		media:    media,
		pipeline: pipeline,
		metrics:  metrics,
		log:      log,
	}
}

// SetupRoutes mounts the media routes behind the auth middleware.
func (h *MediaHandler) SetupRoutes(router gin.IRouter, auth gin.HandlerFunc) {
	media := router.Group("/media", auth)
	{
		media.GET("/video/:filename", h.StreamVideo)
		media.GET("/file/:filename", h.DownloadResource)
	}
}

func (h *MediaHandler) StreamVideo(c *gin.Context) {
	h.serve(c, domain.KindVideo)
}

func (h *MediaHandler) DownloadResource(c *gin.Context) {
	h.serve(c, domain.KindResource)
}

func (h *MediaHandler) serve(c *gin.Context, kind domain.AssetKind) {
	filename := c.Param("filename")
	ctx := c.Request.Context()

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		h.reject(c, kind, http.StatusUnauthorized, apperrors.ErrCodeUnauthorized, "authentication required")
		return
	}

	stream, err := h.media.OpenStream(ctx, identity, filename, kind)
	if err != nil {
		h.rejectWithError(c, kind, filename, err)
		return
	}
	defer stream.Blob.Close()

	rng, err := httprange.Negotiate(c.GetHeader("Range"), stream.Size)
	if err != nil {
		c.Header("Content-Range", httprange.Unsatisfiable(stream.Size))
		h.reject(c, kind, http.StatusRequestedRangeNotSatisfiable, apperrors.ErrCodeRangeNotSatisfiable, "range not satisfiable")
		return
	}

	status := http.StatusOK
	length := stream.Size
	if rng != nil {
		status = http.StatusPartialContent
		length = rng.Length()
		c.Header("Content-Range", rng.ContentRange())
	}

	c.Header("Content-Type", stream.ContentType)
	c.Header("Accept-Ranges", "bytes")
	c.Header("Content-Length", strconv.FormatInt(length, 10))
	if kind == domain.KindResource {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}

	c.Status(status)
	c.Writer.WriteHeaderNow()
	h.metrics.ObserveRequest(kind, strconv.Itoa(status))

	h.metrics.StreamStarted()
	start := time.Now()
	written, state, terr := h.pipeline.Transfer(ctx, stream.Blob, rng, c.Writer)
	h.metrics.StreamFinished(kind, state, written, time.Since(start))

	switch state {
	case domain.StreamFailed:
		// Headers are on the wire; the connection just ends short.
		h.log.Errorw("transfer failed",
			"storage_key", stream.Asset.StorageKey,
			"filename", filename,
			"written", written,
			"error", terr,
		)
	case domain.StreamAborted:
		h.log.Debugw("client aborted transfer",
			"filename", filename,
			"written", written,
		)
	}
}

// rejectWithError maps pre-stream pipeline errors onto status codes.
// A missing blob is reported exactly like an unknown filename so the
// response never leaks which courses exist.
func (h *MediaHandler) rejectWithError(c *gin.Context, kind domain.AssetKind, filename string, err error) {
	switch {
	case errors.Is(err, domain.ErrAssetNotFound), errors.Is(err, domain.ErrBlobMissing):
		h.reject(c, kind, http.StatusNotFound, apperrors.ErrCodeNotFound, "asset not found")
	case errors.Is(err, domain.ErrNotEntitled):
		h.reject(c, kind, http.StatusForbidden, apperrors.ErrCodeForbidden, "not entitled to this course")
	case errors.Is(err, domain.ErrNoIdentity):
		h.reject(c, kind, http.StatusUnauthorized, apperrors.ErrCodeUnauthorized, "authentication required")
	default:
		h.log.Errorw("media request failed",
			"filename", filename,
			"kind", kind,
			"error", err,
		)
		h.reject(c, kind, http.StatusInternalServerError, apperrors.ErrCodeInternal, "internal server error")
	}
}

func (h *MediaHandler) reject(c *gin.Context, kind domain.AssetKind, status int, code apperrors.ErrorCode, message string) {
	h.metrics.ObserveRequest(kind, strconv.Itoa(status))
	c.JSON(status, gin.H{
		"error":   string(code),
		"message": message,
	})
}
