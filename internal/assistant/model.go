package assistant

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"
)

// Generator 生成接口，真实实现是 OpenAI ChatModel，测试时可替换
type Generator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// ChatModel 封装 Eino 原生的 OpenAI ChatModel
type ChatModel struct {
	chatModel model.ToolCallingChatModel
}

// NewChatModel 创建 LLM ChatModel
// apiKey: OpenAI API Key
// baseURL: API 基础 URL (可选，为空时使用默认 OpenAI URL)
// modelName: 模型名称 (如 "gpt-4o")
// maxTokens: 最大生成 token 数
func NewChatModel(apiKey, baseURL, modelName string, maxTokens int) (*ChatModel, error) {
	klog.V(6).Infof("[ChatModel] 创建 OpenAI ChatModel: model=%s, baseURL=%s", modelName, baseURL)

	config := &openai.ChatModelConfig{
		APIKey: apiKey,
		Model:  modelName,
	}

	if baseURL != "" {
		config.BaseURL = baseURL
	}

	if maxTokens > 0 {
		config.MaxTokens = &maxTokens
	}

	chatModel, err := openai.NewChatModel(context.Background(), config)
	if err != nil {
		klog.Errorf("[ChatModel] 创建 ChatModel 失败: %v", err)
		return nil, err
	}

	return &ChatModel{chatModel: chatModel}, nil
}

// Generate 同步生成 LLM 响应
func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	klog.V(6).Infof("[ChatModel] Generate 开始: messageCount=%d", len(input))

	resp, err := m.chatModel.Generate(ctx, input, opts...)
	if err != nil {
		klog.Errorf("[ChatModel] Generate 失败: %v", err)
		return nil, err
	}

	klog.V(6).Infof("[ChatModel] Generate 完成: responseLength=%d", len(resp.Content))
	return resp, nil
}
