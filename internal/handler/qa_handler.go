package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sunbeamlabs/sundoc/internal/pkg/errcode"
	"github.com/sunbeamlabs/sundoc/internal/pkg/response"
	"github.com/sunbeamlabs/sundoc/internal/service"
)

type QAHandler struct {
	qa *service.QAService
}

func NewQAHandler(qa *service.QAService) *QAHandler {
	return &QAHandler{qa: qa}
}

type askRequest struct {
	Question string `json:"question"`
}

func (h *QAHandler) Ask(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	entry, err := h.qa.Ask(c.Request.Context(), projectID, req.Question)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, entry)
}

func (h *QAHandler) History(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	entries, err := h.qa.History(c.Request.Context(), projectID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, entries)
}

func (h *QAHandler) Export(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	body, contentType, err := h.qa.ExportHistory(c.Request.Context(), projectID, c.Query("format"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.Data(200, contentType, body)
}
