package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openreportkit/backend/internal/model"
	"github.com/openreportkit/backend/internal/service"
)

// ReportHandler 报表生成 Handler
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler 创建 Handler
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RenderRequest 渲染请求：数据记录，键值任意嵌套
type RenderRequest struct {
	Data map[string]any `json:"data"`
}

// RenderInlineRequest 带模板体的渲染请求
type RenderInlineRequest struct {
	Template *model.ReportTemplate `json:"template" binding:"required"`
	Data     map[string]any        `json:"data"`
}

// Render 按模板 ID 渲染报表
func (h *ReportHandler) Render(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.reportService.RenderByID(c.Request.Context(), c.Param("id"), req.Data)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "text/markdown; charset=utf-8", out)
}

// RenderInline 渲染请求体里携带的模板，不落库
// 模板 JSON 不合法属于 MalformedTemplate，直接 400
func (h *ReportHandler) RenderInline(c *gin.Context) {
	var req RenderInlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.reportService.Render(c.Request.Context(), req.Template, req.Data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "text/markdown; charset=utf-8", out)
}
