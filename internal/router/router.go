package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/openreportkit/backend/config"
	"github.com/openreportkit/backend/internal/handler"
)

// Setup 组装路由。assistantHandler 为 nil 时不挂载助手接口
func Setup(
	cfg *config.Config,
	templateHandler *handler.TemplateHandler,
	reportHandler *handler.ReportHandler,
	assistantHandler *handler.AssistantHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	api := r.Group("/api")
	{
		templates := api.Group("/templates")
		{
			templates.POST("", templateHandler.Create)
			templates.GET("", templateHandler.List)
			templates.GET("/:id", templateHandler.Get)
			templates.PUT("/:id", templateHandler.Update)
			templates.DELETE("/:id", templateHandler.Delete)
			templates.POST("/:id/duplicate", templateHandler.Duplicate)
			templates.POST("/:id/sections", templateHandler.AddSection)
			templates.POST("/:id/render", reportHandler.Render)
		}

		api.GET("/entities", templateHandler.Entities)

		// 模板随请求体提交，不落库，直接渲染
		api.POST("/render", reportHandler.RenderInline)

		if assistantHandler != nil {
			api.POST("/assistant/chat", assistantHandler.Chat)
		}
	}

	return r
}
