package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openreportkit/backend/internal/registry"
	"github.com/openreportkit/backend/internal/service"
)

// TemplateHandler 模板管理 Handler
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler 创建 Handler
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// List 获取模板列表
func (h *TemplateHandler) List(c *gin.Context) {
	filter := registry.ListFilter{
		Category: c.Query("category"),
		Entity:   c.Query("entity"),
		Query:    c.Query("q"),
	}

	summaries, err := h.templateService.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summaries})
}

// Get 获取模板详情
func (h *TemplateHandler) Get(c *gin.Context) {
	tpl, err := h.templateService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tpl})
}

// Create 创建模板
func (h *TemplateHandler) Create(c *gin.Context) {
	var req service.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tpl, err := h.templateService.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownEntity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown entity"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": tpl})
}

// Update 更新模板
func (h *TemplateHandler) Update(c *gin.Context) {
	var req service.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tpl, err := h.templateService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		if errors.Is(err, service.ErrUnknownEntity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown entity"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tpl})
}

// Delete 删除模板
func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.templateService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// Duplicate 复制模板
func (h *TemplateHandler) Duplicate(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	// 请求体可省略，省略时用默认命名
	_ = c.ShouldBindJSON(&req)

	tpl, err := h.templateService.Duplicate(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": tpl})
}

// AddSection 向模板添加节
func (h *TemplateHandler) AddSection(c *gin.Context) {
	var req service.AddSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tpl, err := h.templateService.AddSection(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tpl})
}

// Entities 获取内置实体目录
func (h *TemplateHandler) Entities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.templateService.Entities(c.Request.Context())})
}
