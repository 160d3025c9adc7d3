package docrag

import (
	"context"

	v1 "github.com/minewander/docrag/api/docrag/v1"
	"github.com/minewander/docrag/core/common"
	"github.com/minewander/docrag/core/errors"
	"github.com/minewander/docrag/core/retriever"
	"github.com/minewander/docrag/internal/logic/rag"
	"github.com/gogf/gf/v2/frame/g"
)

func (c *ControllerV1) Retriever(ctx context.Context, req *v1.RetrieverReq) (res *v1.RetrieverRes, err error) {
	// Log request parameters
	g.Log().Infof(ctx, "Retriever request received - Question: %s, TopK: %d, Score: %f, LibraryId: %s, EnableRewrite: %v, RewriteAttempts: %d, RetrieveMode: %s",
		req.Question, req.TopK, req.Score, req.LibraryId, req.EnableRewrite, req.RewriteAttempts, req.RetrieveMode)

	retrieveReq := &retriever.RetrieveReq{
		Query:     req.Question,
		LibraryId: req.LibraryId,
	}
	// 仅在请求显式给出时覆盖配置默认值
	if req.TopK > 0 {
		retrieveReq.TopK = common.Of(req.TopK)
	}
	if req.Score > 0 {
		retrieveReq.Score = common.Of(req.Score)
	}
	if req.EnableRewrite {
		retrieveReq.EnableRewrite = common.Of(true)
	}
	if req.RewriteAttempts > 0 {
		retrieveReq.RewriteAttempts = common.Of(req.RewriteAttempts)
	}
	if req.RetrieveMode != "" {
		retrieveReq.RetrieveMode = common.Of(retriever.RetrieveMode(req.RetrieveMode))
	}

	documents, err := retriever.Retrieve(ctx, rag.GetRetrieverConfig(), retrieveReq)
	if err != nil {
		return nil, errors.Newf(errors.ErrRetrievalFailed, "retrieval failed: %v", err)
	}

	return &v1.RetrieverRes{Document: documents}, nil
}
