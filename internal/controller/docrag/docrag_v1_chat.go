package docrag

import (
	"context"

	v1 "github.com/minewander/docrag/api/docrag/v1"
	"github.com/minewander/docrag/internal/logic/answer"
	"github.com/gogf/gf/v2/frame/g"
)

func (c *ControllerV1) Chat(ctx context.Context, req *v1.ChatReq) (res *v1.ChatRes, err error) {
	// Log request parameters
	g.Log().Infof(ctx, "Chat request received - Question: %s, LibraryId: %s, TopK: %d, Score: %f, Stream: %v",
		req.Question, req.LibraryId, req.TopK, req.Score, req.Stream)

	// 流式返回直接写 SSE，响应已在 handler 内写出
	if req.Stream {
		return nil, answer.GenerateStream(ctx, req)
	}

	answerText, references, err := answer.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	return &v1.ChatRes{
		Answer:     answerText,
		References: references,
	}, nil
}
