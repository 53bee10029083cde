package handler

import (
	"io"
	"mime"
	"net/url"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/sunbeamlabs/sundoc/internal/pkg/errcode"
	"github.com/sunbeamlabs/sundoc/internal/pkg/response"
	"github.com/sunbeamlabs/sundoc/internal/service"
)

type DocumentHandler struct {
	docs           *service.DocumentService
	maxUploadBytes int64
}

func NewDocumentHandler(docs *service.DocumentService, maxUploadBytes int64) *DocumentHandler {
	return &DocumentHandler{docs: docs, maxUploadBytes: maxUploadBytes}
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "file is required")
		return
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		response.Error(c, errcode.ErrInvalidFile, "file too large")
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to open file")
		return
	}
	defer opened.Close()

	doc, err := h.docs.Upload(c.Request.Context(), projectID, file.Filename, opened, file.Size)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	docs, err := h.docs.List(c.Request.Context(), projectID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, docs)
}

func (h *DocumentHandler) Download(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	documentID, ok := parseID(c, "doc_id")
	if !ok {
		return
	}
	doc, file, err := h.docs.Download(c.Request.Context(), projectID, documentID)
	if err != nil {
		handleError(c, err)
		return
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(doc.FileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(doc.FileName))
	_, _ = file.Seek(0, io.SeekStart)
	_, _ = io.Copy(c.Writer, file)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	documentID, ok := parseID(c, "doc_id")
	if !ok {
		return
	}
	if err := h.docs.Delete(c.Request.Context(), projectID, documentID); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
