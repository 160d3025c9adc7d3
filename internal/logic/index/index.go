package index

import (
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gctx"

	"github.com/minewander/docrag/core/config"
	"github.com/minewander/docrag/core/indexer"
	"github.com/minewander/docrag/core/vector_store"
)

var (
	docIndexSvr *indexer.DocumentIndexer
	indexConfig *config.IndexerConfig
)

func InitDocumentIndexer() {
	ctx := gctx.New()

	database := g.Cfg().MustGet(ctx, "milvus.database").String()
	apiKey := g.Cfg().MustGet(ctx, "embedding.apiKey").String()
	baseURL := g.Cfg().MustGet(ctx, "embedding.baseURL").String()
	embeddingModel := g.Cfg().MustGet(ctx, "embedding.model").String()
	metricType := g.Cfg().MustGet(ctx, "milvus.metricType", "L2").String()
	dim := g.Cfg().MustGet(ctx, "milvus.dim", 1024).Int()

	vectorStore, err := vector_store.GetVectorStore()
	if err != nil {
		g.Log().Fatalf(ctx, "Failed to get vector store: %v", err)
		return
	}
	err = vectorStore.CreateDatabaseIfNotExists(ctx)
	if err != nil {
		g.Log().Fatalf(ctx, "Failed to create vector database: %v", err)
		return
	}

	indexConfig = &config.IndexerConfig{
		VectorStore:    vectorStore,
		Database:       database,
		APIKey:         apiKey,
		BaseURL:        baseURL,
		EmbeddingModel: embeddingModel,
		MetricType:     metricType,
		Dim:            dim,
	}

	docIndexSvr = &indexer.DocumentIndexer{
		Config:      indexConfig,
		VectorStore: vectorStore,
	}

	g.Log().Info(ctx, "DocumentIndexService initialized successfully")
}

// GetDocIndexSvr 获取文档索引服务实例
func GetDocIndexSvr() *indexer.DocumentIndexer {
	return docIndexSvr
}
