package vector_store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minewander/docrag/pkg/schema"
)

func TestReadTokenFile(t *testing.T) {
	dir := t.TempDir()

	writeFile := func(name, content string) string {
		path := filepath.Join(dir, name)
		err := os.WriteFile(path, []byte(content), 0600)
		assert.NoError(t, err)
		return path
	}

	t.Run("valid token with surrounding whitespace", func(t *testing.T) {
		path := writeFile("token", "  my-secret-token\n")
		token, err := readTokenFile(path)
		assert.NoError(t, err)
		assert.Equal(t, "my-secret-token", token)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readTokenFile(filepath.Join(dir, "no_such_file"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read milvus token file")
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile("empty", "")
		_, err := readTokenFile(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "is empty")
	})

	t.Run("whitespace only file", func(t *testing.T) {
		path := writeFile("blank", " \n\t \n")
		_, err := readTokenFile(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "is empty")
	})
}

func TestFilterByScoreThreshold(t *testing.T) {
	// 原始COSINE分数为0~2，阈值为归一化后的0~1
	docs := []*schema.Document{
		{ID: "a", Score: 1.8}, // 归一化后 0.9
		{ID: "b", Score: 1.0}, // 归一化后 0.5
		{ID: "c", Score: 0.4}, // 归一化后 0.2
	}

	filtered := filterByScoreThreshold(docs, 0.5)
	assert.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].ID)
	assert.Equal(t, "b", filtered[1].ID)

	filtered = filterByScoreThreshold(docs, 0.95)
	assert.Empty(t, filtered)

	filtered = filterByScoreThreshold(docs, 0)
	assert.Len(t, filtered, 3)

	filtered = filterByScoreThreshold(nil, 0.5)
	assert.Empty(t, filtered)
}
