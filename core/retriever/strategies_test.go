package retriever

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minewander/docrag/pkg/schema"
)

func TestFuseByRRFBothListsFirst(t *testing.T) {
	// 同一文档在两路都排第一，融合分数应为最大值1.0
	docs1 := []*schema.Document{
		{ID: "a", Content: "doc a"},
		{ID: "b", Content: "doc b"},
	}
	docs2 := []*schema.Document{
		{ID: "a", Content: "doc a"},
		{ID: "c", Content: "doc c"},
	}

	fused := fuseByRRF(docs1, docs2)

	assert.Len(t, fused, 3)
	assert.Equal(t, "a", fused[0].ID)
	assert.InDelta(t, 1.0, float64(fused[0].Score), 1e-6)
}

func TestFuseByRRFRankOrder(t *testing.T) {
	docs1 := []*schema.Document{
		{ID: "a", Content: "doc a"},
		{ID: "b", Content: "doc b"},
		{ID: "c", Content: "doc c"},
	}
	docs2 := []*schema.Document{
		{ID: "c", Content: "doc c"},
		{ID: "b", Content: "doc b"},
	}

	fused := fuseByRRF(docs1, docs2)

	assert.Len(t, fused, 3)
	// c: 1/(60+3) + 1/(60+1), b: 1/(60+2) + 1/(60+2), a: 1/(60+1)
	// c和b都在两路出现，分数高于只出现一路的a
	assert.Equal(t, "a", fused[2].ID)
	// 融合后按分数降序
	assert.GreaterOrEqual(t, fused[0].Score, fused[1].Score)
	assert.GreaterOrEqual(t, fused[1].Score, fused[2].Score)
}

func TestFuseByRRFScoreNormalization(t *testing.T) {
	docs1 := []*schema.Document{
		{ID: "a", Content: "doc a"},
	}

	fused := fuseByRRF(docs1, nil)

	assert.Len(t, fused, 1)
	// 只有一路第一名: (1/61) / (2/61) = 0.5
	assert.InDelta(t, 0.5, float64(fused[0].Score), 1e-6)
}

func TestFuseByRRFEmptyInputs(t *testing.T) {
	fused := fuseByRRF(nil, nil)
	assert.Empty(t, fused)
}

func TestBuildExcludeFilter(t *testing.T) {
	assert.Equal(t, "", buildExcludeFilter(nil))

	filter := buildExcludeFilter([]string{"id1", "id2"})
	assert.Contains(t, filter, "id1")
	assert.Contains(t, filter, "id2")
	assert.Contains(t, filter, "not in")
}
