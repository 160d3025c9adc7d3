package answer

import (
	"context"

	"github.com/gogf/gf/v2/frame/g"

	v1 "github.com/minewander/docrag/api/docrag/v1"
	"github.com/minewander/docrag/core/common"
	"github.com/minewander/docrag/core/errors"
	"github.com/minewander/docrag/core/model"
	"github.com/minewander/docrag/core/retriever"
	"github.com/minewander/docrag/internal/logic/rag"
	"github.com/minewander/docrag/pkg/schema"
)

// retrieveReferences 执行检索，返回用于回答的参考文档
func retrieveReferences(ctx context.Context, req *v1.ChatReq) ([]*schema.Document, error) {
	retrieveReq := &retriever.RetrieveReq{
		Query:     req.Question,
		LibraryId: req.LibraryId,
	}
	if req.TopK > 0 {
		retrieveReq.TopK = common.Of(req.TopK)
	}
	if req.Score > 0 {
		retrieveReq.Score = common.Of(req.Score)
	}

	docs, err := retriever.Retrieve(ctx, rag.GetRetrieverConfig(), retrieveReq)
	if err != nil {
		g.Log().Errorf(ctx, "retrieve failed, question=%s, err=%v", req.Question, err)
		return nil, errors.Newf(errors.ErrRetrievalFailed, "retrieve failed: %v", err)
	}
	return docs, nil
}

// Generate 检索并生成带引用的回答
func Generate(ctx context.Context, req *v1.ChatReq) (answerText string, references []*schema.Document, err error) {
	docs, err := retrieveReferences(ctx, req)
	if err != nil {
		return "", nil, err
	}

	messages, err := buildMessages(ctx, docs, req.Question)
	if err != nil {
		return "", nil, err
	}

	cm, err := model.GetChatModel(ctx, nil)
	if err != nil {
		return "", nil, errors.Newf(errors.ErrLLMCallFailed, "failed to get chat model: %v", err)
	}

	msg, err := cm.Generate(ctx, messages)
	if err != nil {
		g.Log().Errorf(ctx, "chat model generate failed, err=%v", err)
		return "", nil, errors.Newf(errors.ErrLLMCallFailed, "generate failed: %v", err)
	}

	return msg.Content, docs, nil
}

// GenerateStream 检索并以SSE流式返回回答，参考文档在流结束前下发
func GenerateStream(ctx context.Context, req *v1.ChatReq) error {
	docs, err := retrieveReferences(ctx, req)
	if err != nil {
		return err
	}

	messages, err := buildMessages(ctx, docs, req.Question)
	if err != nil {
		return err
	}

	cm, err := model.GetChatModel(ctx, nil)
	if err != nil {
		return errors.Newf(errors.ErrLLMCallFailed, "failed to get chat model: %v", err)
	}

	streamReader, err := cm.Stream(ctx, messages)
	if err != nil {
		g.Log().Errorf(ctx, "chat model stream failed, err=%v", err)
		return errors.Newf(errors.ErrStreamingFailed, "stream failed: %v", err)
	}

	return common.StreamAnswer(ctx, streamReader, docs)
}
