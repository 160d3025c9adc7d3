package common

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	openaiEmbed "github.com/cloudwego/eino-ext/components/embedding/openai"

	"github.com/minewander/docrag/core/errors"
)

// EmbeddingConfig 接口，用于提取embedding配置
type EmbeddingConfig interface {
	GetAPIKey() string
	GetBaseURL() string
	GetEmbeddingModel() string
}

// CustomEmbedder embedding客户端（OpenAI兼容接口）
// 底层按请求维度惰性创建 eino 的 openai embedder 并复用
type CustomEmbedder struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client

	mu        sync.Mutex
	embedders map[int]*openaiEmbed.Embedder // dimensions -> embedder，0 表示服务端默认维度
}

func NewEmbedding(ctx context.Context, conf EmbeddingConfig) (*CustomEmbedder, error) {
	apiKey := conf.GetAPIKey()
	baseURL := conf.GetBaseURL()
	model := conf.GetEmbeddingModel()

	if apiKey == "" {
		return nil, errors.Newf(errors.ErrInvalidParameter, "embedding apiKey is required")
	}
	if baseURL == "" {
		return nil, errors.Newf(errors.ErrInvalidParameter, "embedding baseURL is required")
	}
	if model == "" {
		return nil, errors.Newf(errors.ErrInvalidParameter, "embedding model not found")
	}

	// 自定义HTTP客户端，设置合理的超时时间
	httpClient := &http.Client{
		Timeout: 5 * time.Minute,
		Transport: &http.Transport{
			Dial: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).Dial,
			TLSHandshakeTimeout:   30 * time.Second,
			ResponseHeaderTimeout: 2 * time.Minute,
			ExpectContinueTimeout: 1 * time.Second,
			IdleConnTimeout:       90 * time.Second,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
		},
	}

	return &CustomEmbedder{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: httpClient,
		embedders:  make(map[int]*openaiEmbed.Embedder),
	}, nil
}

// getEmbedder 返回指定维度的embedder实例，首次使用时创建
func (e *CustomEmbedder) getEmbedder(ctx context.Context, dimensions int) (*openaiEmbed.Embedder, error) {
	key := dimensions
	if key < 0 {
		key = 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if embedder, ok := e.embedders[key]; ok {
		return embedder, nil
	}

	config := &openaiEmbed.EmbeddingConfig{
		APIKey:     e.apiKey,
		BaseURL:    e.baseURL,
		Model:      e.model,
		HTTPClient: e.httpClient,
	}
	if dimensions > 0 {
		config.Dimensions = &dimensions
	}

	embedder, err := openaiEmbed.NewEmbedder(ctx, config)
	if err != nil {
		return nil, errors.Newf(errors.ErrEmbeddingFailed, "failed to create embedder: %v", err)
	}

	e.embedders[key] = embedder
	return embedder, nil
}

// EmbedStrings 实现字符串数组的向量化
// dimensions <= 0 时不携带 dimensions 参数，由服务端决定维度
func (e *CustomEmbedder) EmbedStrings(ctx context.Context, texts []string, dimensions int) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	embedder, err := e.getEmbedder(ctx, dimensions)
	if err != nil {
		return nil, err
	}

	vectors, err := embedder.EmbedStrings(ctx, texts)
	if err != nil {
		return nil, errors.Newf(errors.ErrEmbeddingFailed, "embedding request failed: %v", err)
	}

	if len(vectors) != len(texts) {
		return nil, errors.Newf(errors.ErrEmbeddingFailed, "response data length (%d) doesn't match input length (%d)", len(vectors), len(texts))
	}

	// 转换为float32
	result := make([][]float32, len(vectors))
	for i, vec := range vectors {
		float32Vec := make([]float32, len(vec))
		for j, v := range vec {
			float32Vec[j] = float32(v)
		}
		result[i] = float32Vec
	}

	return result, nil
}
