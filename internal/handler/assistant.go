package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openreportkit/backend/internal/assistant"
)

// AssistantHandler 模板助手 Handler
type AssistantHandler struct {
	assistant assistant.Assistant
}

// NewAssistantHandler 创建 Handler
func NewAssistantHandler(a assistant.Assistant) *AssistantHandler {
	return &AssistantHandler{assistant: a}
}

// Chat 处理一条对话消息
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req assistant.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.assistant.Handle(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": reply})
}
