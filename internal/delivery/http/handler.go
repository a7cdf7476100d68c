package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/layoutforge/backend/internal/domain"
	"github.com/layoutforge/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	pipeline      *usecase.Pipeline
	maxUploadSize int64
}

// NewHandler creates a new HTTP handler
func NewHandler(pipeline *usecase.Pipeline, maxUploadSize int64) *Handler {
	if maxUploadSize <= 0 {
		maxUploadSize = 10 << 20
	}
	return &Handler{
		pipeline:      pipeline,
		maxUploadSize: maxUploadSize,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "layoutforge-backend",
		"version": "1.0.0",
	})
}

// AnalyzeImages handles POST /api/v1/images/analyze. Multipart form
// with one or more files under "images"; returns per-image analyses
// with per-image failures reported alongside.
func (h *Handler) AnalyzeImages(c *gin.Context) {
	inputs, err := h.readImages(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	analyses, failures, err := h.pipeline.AnalyzeImages(c.Request.Context(), inputs)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analyses": analyses,
		"failures": failures,
	})
}

// ParseProducts handles POST /api/v1/products/parse. Multipart form
// with a CSV file under "table".
func (h *Handler) ParseProducts(c *gin.Context) {
	fh, err := c.FormFile("table")
	if err != nil {
		h.writeError(c, fmt.Errorf("%w: table file is required", domain.ErrInvalidRequest))
		return
	}

	data, err := h.readFile(fh)
	if err != nil {
		h.writeError(c, err)
		return
	}

	result, err := h.pipeline.ParseTable(data)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GenerateLayouts handles POST /api/v1/layouts/generate. Multipart
// form: "images" files (required), "table" CSV file (optional),
// "frame_url" (optional), "icon_urls" comma-separated (optional).
func (h *Handler) GenerateLayouts(c *gin.Context) {
	inputs, err := h.readImages(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	req := &usecase.GenerateRequest{Images: inputs}

	if fh, err := c.FormFile("table"); err == nil {
		data, err := h.readFile(fh)
		if err != nil {
			h.writeError(c, err)
			return
		}
		req.Table = data
	}

	if frameURL := strings.TrimSpace(c.PostForm("frame_url")); frameURL != "" {
		req.Frame = &domain.Asset{SourceRef: frameURL}
	}
	for _, raw := range strings.Split(c.PostForm("icon_urls"), ",") {
		if u := strings.TrimSpace(raw); u != "" {
			req.Icons = append(req.Icons, domain.Asset{SourceRef: u})
		}
	}

	resp, err := h.pipeline.GenerateLayouts(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// readImages collects the uploaded image files in form order.
func (h *Handler) readImages(c *gin.Context) ([]usecase.ImageInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	files := form.File["images"]
	if len(files) == 0 {
		return nil, domain.ErrNoImages
	}

	inputs := make([]usecase.ImageInput, 0, len(files))
	for _, fh := range files {
		data, err := h.readFile(fh)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, usecase.ImageInput{
			FileName: fh.Filename,
			Data:     data,
		})
	}
	return inputs, nil
}

func (h *Handler) readFile(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > h.maxUploadSize {
		return nil, fmt.Errorf("%w: %s exceeds the %d byte limit", domain.ErrInvalidRequest, fh.Filename, h.maxUploadSize)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrInvalidRequest, fh.Filename, err)
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, h.maxUploadSize+1))
}

// writeError maps domain errors to HTTP status codes.
func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNoImages),
		errors.Is(err, domain.ErrNoRecords),
		errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrTableHeader),
		errors.Is(err, domain.ErrImageDecode):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrRateLimited):
		status = http.StatusTooManyRequests
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
