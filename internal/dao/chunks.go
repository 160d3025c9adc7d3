package dao

import (
	"context"

	"github.com/gogf/gf/v2/container/gset"
	"github.com/gogf/gf/v2/frame/g"

	v1 "github.com/minewander/docrag/api/docrag/v1"
	gormModel "github.com/minewander/docrag/internal/model/gorm"
)

type chunksDao struct{}

// Chunks 文档块数据访问入口
var Chunks = chunksDao{}

// GetActiveChunkIDs 获取启用状态的chunk ID集合
// 检索结果需要经过该集合过滤，被禁用的块不对外返回
func (chunksDao) GetActiveChunkIDs(ctx context.Context, chunkIDs []string) (*gset.StrSet, error) {
	activeIDSet := gset.NewStrSet(true)
	if len(chunkIDs) == 0 {
		return activeIDSet, nil
	}

	var activeChunks []gormModel.Chunk
	err := GetDB().WithContext(ctx).
		Select("id").
		Where("id IN ? AND status = ?", chunkIDs, int8(v1.ChunkStatusActive)).
		Find(&activeChunks).Error

	if err != nil {
		g.Log().Errorf(ctx, "Failed to get active chunk IDs: %v", err)
		return nil, err
	}

	for _, chunk := range activeChunks {
		activeIDSet.Add(chunk.ID)
	}

	return activeIDSet, nil
}
