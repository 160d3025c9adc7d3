package model

import (
	"context"
	"strings"

	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// MistralChatModel 将自部署的Mistral推理服务适配为聊天模型
// 服务端只接受单个prompt字符串，消息列表按角色拼接后发送
type MistralChatModel struct {
	client *MistralClient
}

// NewMistralChatModel 创建Mistral聊天模型适配器
func NewMistralChatModel(ctx context.Context) (*MistralChatModel, error) {
	client, err := NewMistralClientFromConfig(ctx)
	if err != nil {
		return nil, err
	}
	return &MistralChatModel{client: client}, nil
}

// Generate 生成回复
func (m *MistralChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einoModel.Option) (*schema.Message, error) {
	text, err := m.client.Generate(ctx, joinMessages(input))
	if err != nil {
		return nil, err
	}
	return &schema.Message{
		Role:    schema.Assistant,
		Content: text,
	}, nil
}

// Stream 以流式接口返回结果
// 推理服务本身不支持流式输出，整体结果作为单帧返回
func (m *MistralChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einoModel.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

// joinMessages 将消息列表拼接为纯文本prompt
func joinMessages(messages []*schema.Message) string {
	var builder strings.Builder
	for _, msg := range messages {
		if msg == nil || msg.Content == "" {
			continue
		}
		switch msg.Role {
		case schema.System:
			builder.WriteString(msg.Content)
			builder.WriteString("\n\n")
		case schema.User:
			builder.WriteString(msg.Content)
			builder.WriteString("\n")
		case schema.Assistant:
			builder.WriteString(msg.Content)
			builder.WriteString("\n")
		}
	}
	return strings.TrimSpace(builder.String())
}
