package rerank

import (
	"context"
	"strconv"

	"github.com/gogf/gf/v2/frame/g"

	"github.com/minewander/docrag/core/common"
	"github.com/minewander/docrag/core/errors"
	"github.com/minewander/docrag/pkg/schema"
)

// Conf rerank服务配置
type Conf struct {
	apiKey string
	url    string
	Model  string
}

func (c *Conf) GetRerankAPIKey() string  { return c.apiKey }
func (c *Conf) GetRerankBaseURL() string { return c.url }
func (c *Conf) GetRerankModel() string   { return c.Model }

// GetConf 从配置文件读取rerank配置
func GetConf(ctx context.Context) *Conf {
	return &Conf{
		apiKey: g.Cfg().MustGet(ctx, "rerank.apiKey").String(),
		url:    g.Cfg().MustGet(ctx, "rerank.baseURL").String(),
		Model:  g.Cfg().MustGet(ctx, "rerank.model").String(),
	}
}

// NewRerank 对检索结果执行重排序，返回按相关性降序的topK个文档
// 长文档按子切片打分后聚合，避免超出rerank模型的输入长度限制
func NewRerank(ctx context.Context, query string, docs []*schema.Document, topK int) ([]*schema.Document, error) {
	if len(docs) == 0 {
		return []*schema.Document{}, nil
	}

	reranker, err := common.NewReranker(ctx, GetConf(ctx))
	if err != nil {
		return nil, errors.Newf(errors.ErrRerankFailed, "failed to create reranker: %v", err)
	}

	// 下标作为批内ID，rerank结果按ID映射回原文档
	batchDocs := make([]common.RerankDocument, len(docs))
	for i, doc := range docs {
		batchDocs[i] = common.RerankDocument{
			ID:      strconv.Itoa(i),
			Content: doc.Content,
		}
	}

	ranked, err := reranker.RerankWithSubChunks(ctx, query, batchDocs, topK, common.DefaultSubChunkConfig())
	if err != nil {
		return nil, errors.Newf(errors.ErrRerankFailed, "rerank failed: %v", err)
	}

	result := make([]*schema.Document, 0, len(ranked))
	for _, rd := range ranked {
		idx, err := strconv.Atoi(rd.ID)
		if err != nil || idx < 0 || idx >= len(docs) {
			continue
		}
		doc := docs[idx]
		doc.Score = float32(rd.Score)
		result = append(result, doc)
	}

	return result, nil
}
