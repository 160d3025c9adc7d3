package rag

import (
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gctx"

	"github.com/minewander/docrag/core/config"
	"github.com/minewander/docrag/core/vector_store"
)

// retrieverDefaults 检索默认参数配置
type retrieverDefaults struct {
	EnableRewrite   bool    `json:"enableRewrite" yaml:"enableRewrite"`     // 是否启用查询重写（默认 false）
	RewriteAttempts int     `json:"rewriteAttempts" yaml:"rewriteAttempts"` // 查询重写尝试次数（默认 3）
	RetrieveMode    string  `json:"retrieveMode" yaml:"retrieveMode"`       // 检索模式: vector/rerank/rrf（默认 rerank）
	TopK            int     `json:"topK" yaml:"topK"`                       // 默认返回结果数量（默认 5）
	Score           float64 `json:"score" yaml:"score"`                     // 默认分数阈值（默认 0.2）
}

var retrieverConfig *config.RetrieverConfig

// InitRetrieverConfig 初始化检索配置
func InitRetrieverConfig() {
	ctx := gctx.New()

	var defaults retrieverDefaults
	err := g.Cfg().MustGet(ctx, "retriever").Scan(&defaults)
	if err != nil {
		g.Log().Warningf(ctx, "load retriever config failed, using defaults, err=%v", err)
		defaults = retrieverDefaults{}
	}
	if defaults.RewriteAttempts <= 0 {
		defaults.RewriteAttempts = 3
	}
	if defaults.RetrieveMode == "" {
		defaults.RetrieveMode = "rerank"
	}
	if defaults.TopK <= 0 {
		defaults.TopK = 5
	}
	if defaults.Score <= 0 {
		defaults.Score = 0.2
	}

	vectorStore, err := vector_store.GetVectorStore()
	if err != nil {
		g.Log().Fatalf(ctx, "Failed to get vector store: %v", err)
		return
	}

	retrieverConfig = &config.RetrieverConfig{
		VectorStore:     vectorStore,
		MetricType:      g.Cfg().MustGet(ctx, "milvus.metricType", "L2").String(),
		APIKey:          g.Cfg().MustGet(ctx, "embedding.apiKey").String(),
		BaseURL:         g.Cfg().MustGet(ctx, "embedding.baseURL").String(),
		EmbeddingModel:  g.Cfg().MustGet(ctx, "embedding.model").String(),
		RerankAPIKey:    g.Cfg().MustGet(ctx, "rerank.apiKey").String(),
		RerankBaseURL:   g.Cfg().MustGet(ctx, "rerank.baseURL").String(),
		RerankModel:     g.Cfg().MustGet(ctx, "rerank.model").String(),
		EnableRewrite:   defaults.EnableRewrite,
		RewriteAttempts: defaults.RewriteAttempts,
		RetrieveMode:    defaults.RetrieveMode,
		TopK:            defaults.TopK,
		Score:           defaults.Score,
	}

	g.Log().Infof(ctx, "retriever config loaded: EnableRewrite=%v, RewriteAttempts=%d, RetrieveMode=%s, TopK=%d, Score=%v",
		defaults.EnableRewrite, defaults.RewriteAttempts, defaults.RetrieveMode, defaults.TopK, defaults.Score)
}

// GetRetrieverConfig 获取检索配置
func GetRetrieverConfig() *config.RetrieverConfig {
	if retrieverConfig == nil {
		InitRetrieverConfig()
	}
	return retrieverConfig
}
