package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minewander/docrag/core/common"
	"github.com/minewander/docrag/pkg/schema"
)

func TestFormatDocumentsEmpty(t *testing.T) {
	// 没有检索到文档时返回空字符串，让模型自由回答
	assert.Equal(t, "", formatDocuments(nil))
	assert.Equal(t, "", formatDocuments([]*schema.Document{}))
}

func TestFormatDocumentsWithCitation(t *testing.T) {
	docs := []*schema.Document{
		{
			ID:      "chunk-1",
			Content: "分布式训练的核心是数据并行。",
			MetaData: map[string]interface{}{
				common.DocumentId:        "doc-1",
				common.MetaKeySource:     "train.pdf",
				common.MetaKeyTitle:      "分布式训练",
				common.MetaKeyPage:       float64(3),
				common.MetaKeyTotalPages: float64(10),
			},
		},
	}

	formatted := formatDocuments(docs)

	assert.Contains(t, formatted, "【参考资料 1】")
	assert.Contains(t, formatted, "文档ID: doc-1")
	assert.Contains(t, formatted, "来源: train.pdf")
	assert.Contains(t, formatted, "标题: 分布式训练")
	assert.Contains(t, formatted, "第3页/共10页")
	assert.Contains(t, formatted, "分布式训练的核心是数据并行。")
}

func TestFormatDocumentsDefaultMetadata(t *testing.T) {
	// 规范化后的默认值（空来源、0页码）不应出现在引用信息里
	docs := []*schema.Document{
		{
			ID:      "chunk-1",
			Content: "无出处的内容。",
			MetaData: map[string]interface{}{
				common.MetaKeySource:     "",
				common.MetaKeyTitle:      "",
				common.MetaKeyPage:       float64(0),
				common.MetaKeyTotalPages: float64(0),
			},
		},
	}

	formatted := formatDocuments(docs)

	assert.Contains(t, formatted, "【参考资料 1】")
	assert.NotContains(t, formatted, "来源:")
	assert.NotContains(t, formatted, "标题:")
	assert.NotContains(t, formatted, "页码:")
	assert.Contains(t, formatted, "无出处的内容。")
}

func TestBuildMessages(t *testing.T) {
	docs := []*schema.Document{
		{
			ID:      "chunk-1",
			Content: "参考内容。",
			MetaData: map[string]interface{}{
				common.MetaKeySource: "ref.pdf",
			},
		},
	}

	messages, err := buildMessages(t.Context(), docs, "这是什么？")
	assert.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Contains(t, messages[0].Content, "ref.pdf")
	assert.Contains(t, messages[1].Content, "这是什么？")
}
