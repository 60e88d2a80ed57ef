package v1

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// maxUploadBytes is the multipart upload ceiling.
const maxUploadBytes = 10 << 20 // 10 MB

// UploadPDF accepts a multipart PDF upload, extracts and summarizes its
// text, and stores the result in the session.
// POST /upload-pdf (field "pdf")
func (h *Handler) UploadPDF(c echo.Context) error {
	data, filename, err := h.readUpload(c, "pdf", []string{"application/pdf"})
	if err != nil {
		return err // readUpload already wrote the response
	}
	if data == nil {
		return nil
	}

	store := h.sessionStore(c)
	key, item, serr := h.service.UploadPDF(c.Request().Context(), store, filename, data)
	if serr != nil {
		return fail(c, serr)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"storageKey": key,
		"filename":   filename,
		"summary":    item.Summary,
		"textLength": item.OriginalTextLength,
	})
}

// UploadText accepts a multipart plain-text upload and stores it verbatim.
// POST /upload-text (field "textFile")
func (h *Handler) UploadText(c echo.Context) error {
	data, filename, err := h.readUpload(c, "textFile", []string{"text/"})
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}

	store := h.sessionStore(c)
	key, item, serr := h.service.UploadTextFile(store, filename, data)
	if serr != nil {
		return fail(c, serr)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":       true,
		"storageKey":    key,
		"filename":      filename,
		"contentLength": item.ContentLength,
	})
}

// PasteTextRequest is the body of POST /paste-text.
type PasteTextRequest struct {
	Text  string `json:"text"`
	Title string `json:"title"`
}

// PasteText stores pasted text in the session.
// POST /paste-text
func (h *Handler) PasteText(c echo.Context) error {
	var req PasteTextRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "invalid request body",
		})
	}

	store := h.sessionStore(c)
	key, item, err := h.service.PasteText(store, req.Title, req.Text)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":       true,
		"storageKey":    key,
		"title":         item.Title,
		"contentLength": item.ContentLength,
	})
}

// ListContext returns the session's context overview, or search results when
// a query is given.
// GET /context?q=...
func (h *Handler) ListContext(c echo.Context) error {
	store := h.sessionStore(c)
	if q := c.QueryParam("q"); q != "" {
		matches := store.SearchContext(q)
		return c.JSON(http.StatusOK, map[string]any{
			"success": true,
			"query":   q,
			"count":   len(matches),
			"matches": matches,
		})
	}
	overview := store.AllContext()
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"context": overview,
	})
}

// GetContext returns one stored item by key.
// GET /context/:key
func (h *Handler) GetContext(c echo.Context) error {
	key := c.Param("key")
	item, ok := h.sessionStore(c).GetContext(key)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "context not found",
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"item":    item,
	})
}

// DeleteContext removes one stored item by key.
// DELETE /context/:key
func (h *Handler) DeleteContext(c echo.Context) error {
	key := c.Param("key")
	if !h.sessionStore(c).DeleteContext(key) {
		return c.JSON(http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "context not found",
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "context deleted",
		"key":     key,
	})
}

// ClearContext empties the session's context store.
// DELETE /context
func (h *Handler) ClearContext(c echo.Context) error {
	textCount, pdfCount := h.sessionStore(c).ClearAllContext()
	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"message":   "context cleared",
		"textCount": textCount,
		"pdfCount":  pdfCount,
	})
}

// readUpload validates and reads one multipart file field. On a client
// error it writes the 400 response itself and returns nil data; callers
// must stop when data is nil.
func (h *Handler) readUpload(c echo.Context, field string, allowedTypes []string) ([]byte, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, "", c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "missing file field: " + field,
		})
	}

	if fileHeader.Size > maxUploadBytes {
		return nil, "", c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "File too large. Maximum size is 10MB.",
		})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !typeAllowed(contentType, allowedTypes) {
		return nil, "", c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Unsupported file type: " + contentType,
		})
	}

	data, err := readAll(fileHeader)
	if err != nil {
		return nil, "", c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "failed to read uploaded file",
		})
	}
	return data, fileHeader.Filename, nil
}

func typeAllowed(contentType string, allowed []string) bool {
	for _, prefix := range allowed {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
}
