package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/file.pdf"))
	assert.True(t, IsURL("http://localhost:8080/doc"))
	assert.False(t, IsURL("/local/path/file.pdf"))
	assert.False(t, IsURL("file.pdf"))
	assert.False(t, IsURL(""))
}

func TestRemoveDuplicates(t *testing.T) {
	type item struct {
		ID   string
		Name string
	}

	items := []item{
		{ID: "1", Name: "first"},
		{ID: "2", Name: "second"},
		{ID: "1", Name: "duplicate"},
		{ID: "3", Name: "third"},
	}

	result := RemoveDuplicates(items, func(i item) string { return i.ID })

	assert.Len(t, result, 3)
	// 保留首次出现的元素
	assert.Equal(t, "first", result[0].Name)
	assert.Equal(t, "second", result[1].Name)
	assert.Equal(t, "third", result[2].Name)
}

func TestOf(t *testing.T) {
	p := Of(5)
	assert.NotNil(t, p)
	assert.Equal(t, 5, *p)

	s := Of("hello")
	assert.Equal(t, "hello", *s)
}
