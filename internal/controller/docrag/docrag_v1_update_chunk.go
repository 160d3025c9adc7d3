package docrag

import (
	"context"

	v1 "github.com/minewander/docrag/api/docrag/v1"
	"github.com/minewander/docrag/core/errors"
	"github.com/minewander/docrag/internal/dao"
	"github.com/minewander/docrag/internal/logic/library"
	"github.com/gogf/gf/v2/frame/g"
)

func (c *ControllerV1) UpdateChunk(ctx context.Context, req *v1.UpdateChunkReq) (res *v1.UpdateChunkRes, err error) {
	// Log request parameters
	g.Log().Infof(ctx, "UpdateChunk request received - Ids: %v, Status: %d", req.Ids, req.Status)

	// 开始事务
	tx := dao.GetDB().Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			err = errors.Newf(errors.ErrInternalError, "panic occurred during UpdateChunk: %v", r)
		}
	}()

	// 使用事务更新块状态，禁用的块在检索时会被过滤
	err = library.UpdateChunkStatusByIdsWithTx(ctx, tx, req.Ids, req.Status)
	if err != nil {
		tx.Rollback()
		return nil, errors.Newf(errors.ErrDatabaseUpdate, "failed to update chunk: %v", err)
	}

	// 提交事务
	if err = tx.Commit().Error; err != nil {
		return nil, errors.Newf(errors.ErrDatabaseUpdate, "failed to commit transaction: %v", err)
	}

	return &v1.UpdateChunkRes{}, nil
}
