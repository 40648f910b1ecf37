package main

import (
	"flag"
	"log"
	"os"

	"k8s.io/klog/v2"

	"github.com/openreportkit/backend/config"
	"github.com/openreportkit/backend/internal/assistant"
	"github.com/openreportkit/backend/internal/docbuilder"
	"github.com/openreportkit/backend/internal/handler"
	"github.com/openreportkit/backend/internal/model"
	"github.com/openreportkit/backend/internal/pkg/database"
	"github.com/openreportkit/backend/internal/registry"
	"github.com/openreportkit/backend/internal/render"
	"github.com/openreportkit/backend/internal/router"
	"github.com/openreportkit/backend/internal/service"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 初始化模板注册中心，默认文件存储，可切换到数据库
	var reg registry.Registry
	switch cfg.Data.Store {
	case "db":
		db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		reg = registry.NewDBRegistry(db)
	default:
		fileReg, err := registry.NewFileRegistry(cfg.Data.TemplateDir)
		if err != nil {
			log.Fatalf("Failed to initialize template registry: %v", err)
		}
		reg = fileReg
	}

	// 初始化渲染器，Markdown 构建器作为文档输出
	renderer := render.NewRenderer(func(theme model.Theme) docbuilder.Builder {
		return docbuilder.NewMarkdownBuilder(theme)
	})

	// 初始化 Service
	templateService := service.NewTemplateService(reg)
	reportService := service.NewReportService(reg, renderer)

	// 初始化 Handler
	templateHandler := handler.NewTemplateHandler(templateService)
	reportHandler := handler.NewReportHandler(reportService)

	// 模板助手需要 LLM，没配 API Key 时不挂载
	var assistantHandler *handler.AssistantHandler
	if cfg.LLM.APIKey != "" {
		chatModel, err := assistant.NewChatModel(cfg.LLM.APIKey, cfg.LLM.APIURL, cfg.LLM.Model, cfg.LLM.MaxTokens)
		if err != nil {
			log.Fatalf("Failed to initialize chat model: %v", err)
		}
		assistantHandler = handler.NewAssistantHandler(
			assistant.New(chatModel, templateService, reportService),
		)
	} else {
		klog.V(6).Info("未配置 LLM API Key，模板助手不可用")
	}

	// 设置路由
	r := router.Setup(cfg, templateHandler, reportHandler, assistantHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
