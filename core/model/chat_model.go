package model

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino-ext/components/model/qwen"
	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/gogf/gf/v2/frame/g"
)

var (
	chatModel    einoModel.BaseChatModel
	rewriteModel einoModel.BaseChatModel
)

// GetChatModel 根据配置创建聊天模型
// chat.provider 支持 openai、qwen 和 mistral，默认 openai
func GetChatModel(ctx context.Context, cfg *openai.ChatModelConfig) (einoModel.BaseChatModel, error) {
	if chatModel != nil {
		return chatModel, nil
	}

	provider := g.Cfg().MustGet(ctx, "chat.provider", "openai").String()

	switch provider {
	case "mistral":
		cm, err := NewMistralChatModel(ctx)
		if err != nil {
			return nil, err
		}
		chatModel = cm
		return cm, nil
	case "qwen":
		qwenCfg := &qwen.ChatModelConfig{}
		if err := g.Cfg().MustGet(ctx, "chat").Scan(qwenCfg); err != nil {
			return nil, err
		}
		cm, err := qwen.NewChatModel(ctx, qwenCfg)
		if err != nil {
			return nil, err
		}
		chatModel = cm
		return cm, nil
	case "openai":
		if cfg == nil {
			cfg = &openai.ChatModelConfig{}
			if err := g.Cfg().MustGet(ctx, "chat").Scan(cfg); err != nil {
				return nil, err
			}
		}
		cm, err := openai.NewChatModel(ctx, cfg)
		if err != nil {
			return nil, err
		}
		chatModel = cm
		return cm, nil
	default:
		return nil, fmt.Errorf("unsupported chat provider: %s. Supported providers: openai, qwen, mistral", provider)
	}
}

// GetRewriteModel 获取查询重写使用的模型
// 重写模型从 rewrite 配置段读取，缺省时复用 chat 配置
func GetRewriteModel(ctx context.Context) (einoModel.BaseChatModel, error) {
	if rewriteModel != nil {
		return rewriteModel, nil
	}

	cfg := &openai.ChatModelConfig{}
	section := "rewrite"
	if !g.Cfg().MustGet(ctx, "rewrite").IsMap() {
		section = "chat"
	}
	if err := g.Cfg().MustGet(ctx, section).Scan(cfg); err != nil {
		return nil, err
	}

	cm, err := openai.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	rewriteModel = cm
	return cm, nil
}
