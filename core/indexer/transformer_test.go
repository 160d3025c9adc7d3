package indexer

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
)

func TestTransformerWithMarkdown(t *testing.T) {
	ctx := context.Background()

	// 创建一个包含Markdown内容的测试文档
	docs := []*schema.Document{
		{
			Content: "# 标题1\n这是标题1下的内容。\n## 标题2\n这是标题2下的内容。\n### 标题3\n这是标题3下的内容。",
			MetaData: map[string]interface{}{
				"_extension": ".md",
			},
		},
	}

	transformer, err := NewTransformer(ctx, 100, 20)
	assert.NoError(t, err)
	assert.NotNil(t, transformer)

	transformedDocs, err := transformer.Transform(ctx, docs)
	assert.NoError(t, err)
	assert.NotNil(t, transformedDocs)

	t.Logf("Transformed %d documents", len(transformedDocs))
	for i, doc := range transformedDocs {
		t.Logf("Document %d: %s", i, doc.Content)
	}
}

func TestTransformerWithPlainText(t *testing.T) {
	ctx := context.Background()

	docs := []*schema.Document{
		{
			Content: "这是第一段内容。这是第二句话，用来测试分割效果。这是第三句话，看看是否会被正确分割。最后是第四句话。",
			MetaData: map[string]interface{}{
				"_extension": ".txt",
			},
		},
	}

	transformer, err := NewTransformer(ctx, 30, 5)
	assert.NoError(t, err)
	assert.NotNil(t, transformer)

	transformedDocs, err := transformer.Transform(ctx, docs)
	assert.NoError(t, err)
	assert.NotNil(t, transformedDocs)

	t.Logf("Transformed %d documents", len(transformedDocs))
	for i, doc := range transformedDocs {
		t.Logf("Document %d: %s", i, doc.Content)
	}
}

func TestTransformerWithCustomSeparator(t *testing.T) {
	ctx := context.Background()

	docs := []*schema.Document{
		{
			Content: "第一部分|第二部分|第三部分|第四部分",
			MetaData: map[string]interface{}{
				"_extension": ".txt",
			},
		},
	}

	transformer, err := NewTransformerWithSeparator(ctx, 3, 1, "|")
	assert.NoError(t, err)
	assert.NotNil(t, transformer)

	transformedDocs, err := transformer.Transform(ctx, docs)
	assert.NoError(t, err)
	assert.NotNil(t, transformedDocs)

	assert.GreaterOrEqual(t, len(transformedDocs), 3, "Should have at least 3 documents after splitting")

	t.Logf("Transformed %d documents", len(transformedDocs))
	for i, doc := range transformedDocs {
		t.Logf("Document %d: %s", i, doc.Content)
	}
}

func TestSeparatorSplitterEscapedSeparator(t *testing.T) {
	ctx := context.Background()

	// 分隔符 "\\n" 应被还原为换行符使用
	docs := []*schema.Document{
		{
			Content: "第一行内容\n第二行内容\n第三行内容",
			MetaData: map[string]interface{}{
				"_extension": ".txt",
			},
		},
	}

	transformer, err := NewTransformerWithSeparator(ctx, 5, 0, "\\n")
	assert.NoError(t, err)

	transformedDocs, err := transformer.Transform(ctx, docs)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, len(transformedDocs), 2, "Escaped newline separator should split lines")
}

func TestTransformerWithEmptyDocument(t *testing.T) {
	ctx := context.Background()

	docs := []*schema.Document{
		{
			Content: "",
			MetaData: map[string]interface{}{
				"_extension": ".txt",
			},
		},
	}

	transformer, err := NewTransformer(ctx, 100, 20)
	assert.NoError(t, err)

	transformedDocs, err := transformer.Transform(ctx, docs)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(transformedDocs), "Empty documents should be filtered out")
}
