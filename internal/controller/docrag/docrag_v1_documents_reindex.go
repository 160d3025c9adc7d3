package docrag

import (
	"context"
	"fmt"

	v1 "github.com/minewander/docrag/api/docrag/v1"
	"github.com/minewander/docrag/core/indexer"
	"github.com/minewander/docrag/internal/logic/index"
	"github.com/gogf/gf/v2/frame/g"
)

// DocumentsReIndex 重新索引已有文档，清理旧数据后重新切分并向量化
func (c *ControllerV1) DocumentsReIndex(ctx context.Context, req *v1.DocumentsReIndexReq) (res *v1.DocumentsReIndexRes, err error) {
	g.Log().Infof(ctx, "DocumentsReIndex request received - DocumentIds: %v, ChunkSize: %d, OverlapSize: %d, Separator: '%s'",
		req.DocumentIds, req.ChunkSize, req.OverlapSize, req.Separator)

	docIndexSvr := index.GetDocIndexSvr()

	batchReq := &indexer.BatchIndexReq{
		DocumentIds: req.DocumentIds,
		ChunkSize:   req.ChunkSize,
		OverlapSize: req.OverlapSize,
		Separator:   req.Separator,
	}

	go func() {
		asyncCtx := context.Background()
		g.Log().Infof(asyncCtx, "开始异步重建索引，文档数量: %d", len(req.DocumentIds))

		err := docIndexSvr.BatchDocumentIndex(asyncCtx, batchReq)
		if err != nil {
			g.Log().Errorf(asyncCtx, "批量重建索引启动失败, err=%v", err)
			return
		}

		g.Log().Infof(asyncCtx, "重建索引任务已成功启动")
	}()

	res = &v1.DocumentsReIndexRes{
		Message: fmt.Sprintf("已启动 %d 个文档的重建索引任务", len(req.DocumentIds)),
	}
	return
}
