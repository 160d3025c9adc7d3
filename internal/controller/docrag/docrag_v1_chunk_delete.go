package docrag

import (
	"context"

	v1 "github.com/minewander/docrag/api/docrag/v1"
	"github.com/minewander/docrag/core/errors"
	"github.com/minewander/docrag/core/vector_store"
	"github.com/minewander/docrag/internal/dao"
	"github.com/minewander/docrag/internal/logic/library"
	"github.com/gogf/gf/v2/frame/g"
)

func (c *ControllerV1) ChunkDelete(ctx context.Context, req *v1.ChunkDeleteReq) (res *v1.ChunkDeleteRes, err error) {
	g.Log().Infof(ctx, "ChunkDelete request received - ChunkId: %s", req.ChunkId)

	vectorStore, err := vector_store.GetVectorStore()
	if err != nil {
		return nil, errors.Newf(errors.ErrVectorStoreInit, "failed to get vector store: %v", err)
	}

	// 开始事务
	tx := dao.GetDB().Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			err = errors.Newf(errors.ErrInternalError, "panic occurred during ChunkDelete: %v", r)
		}
	}()

	// 获取块信息，拿到所在集合
	chunk, err := library.GetChunkById(ctx, req.ChunkId)
	if err != nil {
		tx.Rollback()
		return nil, errors.Newf(errors.ErrChunkNotFound, "failed to get chunk %s: %v", req.ChunkId, err)
	}

	// 先删向量库中的分片
	if chunk.CollectionName == "" {
		g.Log().Warningf(ctx, "ChunkDelete: CollectionName is empty for chunk id %s, skipping vector deletion", req.ChunkId)
	} else {
		err = vectorStore.DeleteByChunkID(ctx, chunk.CollectionName, req.ChunkId)
		if err != nil {
			tx.Rollback()
			return nil, errors.Newf(errors.ErrVectorDelete, "failed to delete chunk %s from vector store: %v", req.ChunkId, err)
		}
	}

	// 再删数据库记录
	err = library.DeleteChunkByIdWithTx(ctx, tx, req.ChunkId)
	if err != nil {
		tx.Rollback()
		return nil, errors.Newf(errors.ErrDatabaseDelete, "failed to delete chunk %s: %v", req.ChunkId, err)
	}

	// 提交事务
	if err = tx.Commit().Error; err != nil {
		return nil, errors.Newf(errors.ErrDatabaseDelete, "failed to commit transaction: %v", err)
	}

	return &v1.ChunkDeleteRes{}, nil
}
