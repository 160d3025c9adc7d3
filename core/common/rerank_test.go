package common

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// MockRerankConfig 用于测试的mock配置
type MockRerankConfig struct {
	apiKey  string
	baseURL string
	model   string
}

func (m *MockRerankConfig) GetRerankAPIKey() string {
	return m.apiKey
}

func (m *MockRerankConfig) GetRerankBaseURL() string {
	return m.baseURL
}

func (m *MockRerankConfig) GetRerankModel() string {
	return m.model
}

func TestNewReranker(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		config  *MockRerankConfig
		wantErr bool
	}{
		{
			name: "valid config",
			config: &MockRerankConfig{
				apiKey:  "test-key",
				baseURL: "https://api.example.com/v1",
				model:   "rerank-test",
			},
			wantErr: false,
		},
		{
			name: "missing apiKey (should use env)",
			config: &MockRerankConfig{
				apiKey:  "",
				baseURL: "https://api.example.com/v1",
				model:   "rerank-test",
			},
			wantErr: false,
		},
		{
			name: "missing baseURL",
			config: &MockRerankConfig{
				apiKey:  "test-key",
				baseURL: "",
				model:   "rerank-test",
			},
			wantErr: true,
		},
		{
			name: "missing model (should use default)",
			config: &MockRerankConfig{
				apiKey:  "test-key",
				baseURL: "https://api.example.com/v1",
				model:   "",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reranker, err := NewReranker(ctx, tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, reranker)
		})
	}
}

func TestRerankEmptyDocs(t *testing.T) {
	ctx := context.Background()

	reranker, err := NewReranker(ctx, &MockRerankConfig{
		apiKey:  "test-key",
		baseURL: "https://api.example.com/v1",
		model:   "rerank-test",
	})
	assert.NoError(t, err)

	// 空文档列表不应发起请求，直接返回空结果
	result, err := reranker.Rerank(ctx, "test query", []RerankDocument{}, 5)
	assert.NoError(t, err)
	assert.Empty(t, result)
}

func TestSplitIntoSubChunks(t *testing.T) {
	// 短内容不切分
	chunks := SplitIntoSubChunks("短内容", 100, 20, 0)
	assert.Len(t, chunks, 1)
	assert.Equal(t, "短内容", chunks[0])

	// 空内容返回空列表
	assert.Empty(t, SplitIntoSubChunks("", 100, 20, 0))

	// 长内容按滑窗切分，相邻子切片有重叠
	content := "0123456789abcdefghij"
	chunks = SplitIntoSubChunks(content, 10, 5, 0)
	assert.GreaterOrEqual(t, len(chunks), 3)
	assert.Equal(t, "0123456789", chunks[0])
	assert.Equal(t, "56789abcde", chunks[1])

	// maxSubChunks 限制子切片数量
	chunks = SplitIntoSubChunks(content, 5, 0, 2)
	assert.Len(t, chunks, 2)

	// 多字节字符按 rune 切分不产生乱码
	chunks = SplitIntoSubChunks("一二三四五六七八九十", 4, 1, 0)
	for _, c := range chunks {
		assert.True(t, len([]rune(c)) <= 4)
	}
}

func TestAggregateScores(t *testing.T) {
	scores := []float64{0.2, 0.9, 0.5}

	assert.Equal(t, 0.9, aggregateScores(scores, AggregateStrategyMax, 0))
	assert.InDelta(t, 0.7, aggregateScores(scores, AggregateStrategyTopKMean, 2), 1e-9)
	assert.InDelta(t, (0.2+0.9+0.5)/3, aggregateScores(scores, AggregateStrategyMean, 0), 1e-9)

	// 空分数列表返回0
	assert.Equal(t, 0.0, aggregateScores(nil, AggregateStrategyMax, 0))

	// 未知策略回退到max
	assert.Equal(t, 0.9, aggregateScores(scores, AggregateStrategy("unknown"), 0))
}

func TestFilterLowScoreSubChunks(t *testing.T) {
	scores := []float64{1.0, 0.7, 0.3}

	// 阈值0.6: 保留 >= 1.0*0.6 的分数
	filtered := filterLowScoreSubChunks(scores, 0.6)
	assert.Equal(t, []float64{1.0, 0.7}, filtered)

	// 阈值<=0 不过滤
	assert.Equal(t, scores, filterLowScoreSubChunks(scores, 0))
}
