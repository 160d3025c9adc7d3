package indexer

import (
	"context"
	"testing"

	"github.com/minewander/docrag/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMetadataAllFieldsPresent(t *testing.T) {
	raw := map[string]interface{}{
		"source":      "report.pdf",
		"page_label":  "3",
		"total_pages": "12",
		"title":       "Q1 Report",
	}

	norm, err := NormalizeMetadata(raw)
	require.NoError(t, err)

	assert.Equal(t, "report.pdf", norm.Source)
	assert.Equal(t, 3.0, norm.Page)
	assert.Equal(t, 12.0, norm.TotalPages)
	assert.Equal(t, "Q1 Report", norm.Title)
}

func TestNormalizeMetadataAllFieldsAbsent(t *testing.T) {
	norm, err := NormalizeMetadata(map[string]interface{}{})
	require.NoError(t, err)

	assert.Equal(t, "", norm.Source)
	assert.Equal(t, 0.0, norm.Page)
	assert.Equal(t, 0.0, norm.TotalPages)
	assert.Equal(t, "", norm.Title)
}

func TestNormalizeMetadataPartialFields(t *testing.T) {
	// 缺失字段不是错误，按默认值补齐
	raw := map[string]interface{}{
		"source": "a.pdf",
	}

	norm, err := NormalizeMetadata(raw)
	require.NoError(t, err)

	assert.Equal(t, "a.pdf", norm.Source)
	assert.Equal(t, 0.0, norm.Page)
	assert.Equal(t, 0.0, norm.TotalPages)
	assert.Equal(t, "", norm.Title)
}

func TestNormalizeMetadataNumericTypes(t *testing.T) {
	// 不同 parser 给出的数值类型不一致，都要接受
	cases := []struct {
		name  string
		value interface{}
		want  float64
	}{
		{"string", "7", 7.0},
		{"float64", 7.5, 7.5},
		{"int", 7, 7.0},
		{"int64", int64(7), 7.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			norm, err := NormalizeMetadata(map[string]interface{}{"page_label": tc.value})
			require.NoError(t, err)
			assert.Equal(t, tc.want, norm.Page)
		})
	}
}

func TestNormalizeMetadataMalformedPageLabel(t *testing.T) {
	// 罗马数字页码无法解析，字段置默认值并返回错误
	raw := map[string]interface{}{
		"source":     "book.pdf",
		"page_label": "iv",
	}

	norm, err := NormalizeMetadata(raw)
	require.Error(t, err)
	assert.True(t, IsMalformedMetadata(err))

	mErr := err.(*MalformedMetadataError)
	assert.Equal(t, "page", mErr.Field)
	assert.Equal(t, "iv", mErr.Value)

	// 返回的记录仍然完整可用，其他字段不受影响
	assert.Equal(t, "book.pdf", norm.Source)
	assert.Equal(t, 0.0, norm.Page)
}

func TestNormalizeMetadataMalformedStringField(t *testing.T) {
	norm, err := NormalizeMetadata(map[string]interface{}{"title": 42})
	require.Error(t, err)
	assert.True(t, IsMalformedMetadata(err))
	assert.Equal(t, "title", err.(*MalformedMetadataError).Field)
	assert.Equal(t, "", norm.Title)
}

func TestNormalizeMetadataDeterministic(t *testing.T) {
	// 同一原始输入跑两次，结果逐位一致
	raw := map[string]interface{}{
		"source":      "report.pdf",
		"page_label":  "3",
		"total_pages": "12",
		"title":       "Q1 Report",
	}

	first, err1 := NormalizeMetadata(raw)
	second, err2 := NormalizeMetadata(raw)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestNormalizeChunksBatchIndependence(t *testing.T) {
	// 回归测试：批处理时片段之间绝不共享元数据对象
	// 第一个片段有 title，第二个没有，第二个绝不能"继承"第一个的值
	ctx := context.Background()
	chunks := []*schema.Document{
		{
			Content: "chunk one",
			MetaData: map[string]interface{}{
				"source": "a.pdf",
				"title":  "Document A",
			},
		},
		{
			Content:  "chunk two",
			MetaData: map[string]interface{}{},
		},
	}

	result := NormalizeChunks(ctx, chunks)
	require.Len(t, result, 2)

	assert.Equal(t, "Document A", result[0].MetaData["title"])
	assert.Equal(t, "", result[1].MetaData["title"])
	assert.Equal(t, "", result[1].MetaData["source"])

	// 元数据必须是独立分配的 map，修改一个不能影响另一个
	result[0].MetaData["title"] = "mutated"
	assert.Equal(t, "", result[1].MetaData["title"])
}

func TestNormalizeChunksExactlyFourKeys(t *testing.T) {
	// 无论原始键如何，规范化后恒为四键，多余键被丢弃
	ctx := context.Background()
	chunks := []*schema.Document{
		{
			Content: "c",
			MetaData: map[string]interface{}{
				"source":     "x.pdf",
				"_extension": ".pdf",
				"producer":   "some-pdf-lib",
			},
		},
	}

	result := NormalizeChunks(ctx, chunks)
	require.Len(t, result, 1)
	assert.Len(t, result[0].MetaData, 4)
	assert.Contains(t, result[0].MetaData, "source")
	assert.Contains(t, result[0].MetaData, "page")
	assert.Contains(t, result[0].MetaData, "total_pages")
	assert.Contains(t, result[0].MetaData, "title")
}

func TestNormalizeChunksMalformedDoesNotAbortBatch(t *testing.T) {
	// 单个片段解析失败只降级该片段，同批其他片段不受影响
	ctx := context.Background()
	chunks := []*schema.Document{
		{Content: "good", MetaData: map[string]interface{}{"page_label": "1", "title": "ok"}},
		{Content: "bad", MetaData: map[string]interface{}{"page_label": "iv"}},
		{Content: "also good", MetaData: map[string]interface{}{"page_label": "3"}},
	}

	result := NormalizeChunks(ctx, chunks)
	require.Len(t, result, 3)

	assert.Equal(t, 1.0, result[0].MetaData["page"])
	assert.Equal(t, "ok", result[0].MetaData["title"])
	assert.Equal(t, 0.0, result[1].MetaData["page"])
	assert.Equal(t, 3.0, result[2].MetaData["page"])
}

func TestNormalizeChunksPreservesOrder(t *testing.T) {
	ctx := context.Background()
	chunks := []*schema.Document{
		{Content: "first", MetaData: map[string]interface{}{"page_label": "1"}},
		{Content: "second", MetaData: map[string]interface{}{"page_label": "2"}},
		{Content: "third", MetaData: map[string]interface{}{"page_label": "3"}},
	}

	result := NormalizeChunks(ctx, chunks)
	require.Len(t, result, 3)
	assert.Equal(t, "first", result[0].Content)
	assert.Equal(t, "second", result[1].Content)
	assert.Equal(t, "third", result[2].Content)
}

func TestNormalizeMetadataNilMap(t *testing.T) {
	norm, err := NormalizeMetadata(nil)
	require.NoError(t, err)
	assert.Equal(t, NormalizedMetadata{}, norm)
}
