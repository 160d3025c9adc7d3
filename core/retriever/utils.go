package retriever

import (
	"context"

	"github.com/gogf/gf/v2/frame/g"

	"github.com/minewander/docrag/core/config"
	"github.com/minewander/docrag/core/vector_store"
	"github.com/minewander/docrag/pkg/schema"
)

// retrieve 执行底层的向量检索
func retrieve(ctx context.Context, conf *config.RetrieverConfig, req *RetrieveReq) ([]*schema.Document, error) {
	filter := buildExcludeFilter(req.excludeIDs)

	// library id == collection name
	collectionName := req.LibraryId

	vectorStore := conf.VectorStore

	r, err := vectorStore.NewRetriever(ctx, conf, collectionName)
	if err != nil {
		g.Log().Errorf(ctx, "failed to create retriever for collection %s, err=%v", collectionName, err)
		return nil, err
	}

	topK := conf.TopK
	if req.TopK != nil {
		topK = *req.TopK
	}

	// 因为后续会经过 rerank 重新排序，所以增大TopK
	realTopK := topK * 3 // 取3倍数量，给 rerank 更多选择空间
	if realTopK < 15 {
		realTopK = 15 // 至少取15个
	}

	var options []vector_store.Option
	options = append(options, vector_store.WithTopK(realTopK))

	if req.Score != nil {
		options = append(options, vector_store.WithScoreThreshold(*req.Score))
	}

	// 只有在有过滤条件时才添加 filter
	if filter != "" {
		options = append(options, vector_store.WithFilter(filter))
	}

	msg, err := r.Retrieve(ctx, req.optQuery, options...)
	if err != nil {
		return nil, err
	}

	// 归一化COSINE分数（0-2范围）到标准的0-1范围
	for _, s := range msg {
		s.Score = s.Score / 2.0
	}

	return msg, nil
}

// buildExcludeFilter 构建排除指定chunk ID的过滤表达式
func buildExcludeFilter(excludeIDs []string) string {
	if len(excludeIDs) == 0 {
		return ""
	}
	filter := "id not in ["
	for i, id := range excludeIDs {
		if i > 0 {
			filter += ", "
		}
		filter += `"` + id + `"`
	}
	filter += "]"
	return filter
}
