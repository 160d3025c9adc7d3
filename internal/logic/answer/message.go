package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	einoSchema "github.com/cloudwego/eino/schema"

	"github.com/minewander/docrag/core/common"
	"github.com/minewander/docrag/pkg/schema"
)

const role = "你是一个专业的AI助手，能够根据提供的参考信息准确回答用户问题。如果没有提供参考信息，也请根据你的知识自由回答用户问题。"

// formatDocuments 格式化文档列表为包含引用信息的字符串
// 引用信息来自规范化后的四键元数据，字段恒定存在
func formatDocuments(docs []*schema.Document) string {
	if len(docs) == 0 {
		// 当没有检索到相关文档时，返回空字符串，让大模型自由回答
		return ""
	}

	var builder strings.Builder
	builder.WriteString("\n")

	for i, doc := range docs {
		builder.WriteString(fmt.Sprintf("【参考资料 %d】\n", i+1))

		if doc.MetaData != nil {
			if docID, ok := doc.MetaData[common.DocumentId]; ok {
				builder.WriteString(fmt.Sprintf("文档ID: %v\n", docID))
			}
			if source, ok := doc.MetaData[common.MetaKeySource].(string); ok && source != "" {
				builder.WriteString(fmt.Sprintf("来源: %s\n", source))
			}
			if title, ok := doc.MetaData[common.MetaKeyTitle].(string); ok && title != "" {
				builder.WriteString(fmt.Sprintf("标题: %s\n", title))
			}
			if page, ok := doc.MetaData[common.MetaKeyPage].(float64); ok && page > 0 {
				if total, ok := doc.MetaData[common.MetaKeyTotalPages].(float64); ok && total > 0 {
					builder.WriteString(fmt.Sprintf("页码: 第%v页/共%v页\n", page, total))
				} else {
					builder.WriteString(fmt.Sprintf("页码: 第%v页\n", page))
				}
			}
		}

		builder.WriteString("内容: ")
		builder.WriteString(doc.Content)
		builder.WriteString("\n\n")
	}

	return builder.String()
}

// createTemplate 创建并返回一个配置好的聊天模板
func createTemplate() prompt.ChatTemplate {
	return prompt.FromMessages(einoSchema.FString,
		einoSchema.SystemMessage("{role}\n"+
			"请基于下方「参考资料」回答用户的问题：\n"+
			"- 如果问题能从参考资料中直接或间接回答，请优先基于这些资料作答；\n"+
			"- 若参考资料不完整，可合理推断但需说明；若完全无关，请根据你的知识自由回答用户问题；\n"+
			"- 引用参考资料时请标注来源和页码，便于用户核查；\n"+
			"- 保持专业、简洁、准确。\n\n"+
			"{formatted_docs}"),

		einoSchema.UserMessage("Question: {question}"),
	)
}

// buildMessages 将检索到的上下文和问题转换为消息列表
func buildMessages(ctx context.Context, docs []*schema.Document, question string) ([]*einoSchema.Message, error) {
	template := createTemplate()

	data := map[string]any{
		"role":           role,
		"question":       question,
		"formatted_docs": formatDocuments(docs),
	}

	messages, err := template.Format(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("格式化模板失败: %w", err)
	}
	return messages, nil
}
