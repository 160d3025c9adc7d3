package library

import (
	"context"

	"github.com/gogf/gf/v2/frame/g"
	"gorm.io/gorm"

	v1 "github.com/minewander/docrag/api/docrag/v1"
	"github.com/minewander/docrag/internal/dao"
	gormModel "github.com/minewander/docrag/internal/model/gorm"
)

// SaveChunksData 批量保存文档块数据
func SaveChunksData(ctx context.Context, documentId string, chunks []gormModel.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	db := dao.GetDB()
	result := db.WithContext(ctx).CreateInBatches(&chunks, len(chunks))

	status := int(v1.StatusIndexing)
	if result.Error != nil {
		g.Log().Errorf(ctx, "SaveChunksData err=%+v", result.Error)
		status = int(v1.StatusFailed)
	}

	err := UpdateDocumentsStatus(ctx, documentId, status)
	if err != nil {
		g.Log().Errorf(ctx, "更新文档状态失败: ID=%s, 错误: %v", documentId, err)
	}

	return result.Error
}

// GetChunksList 查询文档块列表
func GetChunksList(ctx context.Context, documentId string, page, size int) (list []gormModel.Chunk, total int64, err error) {
	model := dao.GetDB().WithContext(ctx).Model(&gormModel.Chunk{})

	if documentId != "" {
		model = model.Where("document_id = ?", documentId)
	}

	err = model.Count(&total).Error
	if err != nil {
		return
	}

	if page > 0 && size > 0 {
		model = model.Offset((page - 1) * size).Limit(size)
	}

	// 按创建时间倒序
	err = model.Order("create_time desc").Find(&list).Error
	return
}

// GetChunkById 根据ID查询单个文档块
func GetChunkById(ctx context.Context, id string) (chunk gormModel.Chunk, err error) {
	err = dao.GetDB().WithContext(ctx).Where("id = ?", id).First(&chunk).Error
	return
}

// DeleteChunkByIdWithTx 根据ID删除文档块（事务版本）
func DeleteChunkByIdWithTx(ctx context.Context, tx *gorm.DB, id string) error {
	result := tx.WithContext(ctx).Where("id = ?", id).Delete(&gormModel.Chunk{})
	return result.Error
}

// DeleteChunksByDocumentIdWithTx 根据文档ID删除该文档的所有chunks（事务版本）
func DeleteChunksByDocumentIdWithTx(ctx context.Context, tx *gorm.DB, documentId string) error {
	result := tx.WithContext(ctx).Where("document_id = ?", documentId).Delete(&gormModel.Chunk{})
	if result.Error != nil {
		g.Log().Errorf(ctx, "DeleteChunksByDocumentIdWithTx failed for document %s, err: %v", documentId, result.Error)
		return result.Error
	}
	g.Log().Infof(ctx, "DeleteChunksByDocumentIdWithTx: Deleted %d chunks for document %s", result.RowsAffected, documentId)
	return nil
}

// UpdateChunkStatusByIdsWithTx 根据ID批量更新文档块状态（事务版本）
func UpdateChunkStatusByIdsWithTx(ctx context.Context, tx *gorm.DB, ids []string, status int) error {
	result := tx.WithContext(ctx).
		Model(&gormModel.Chunk{}).
		Where("id IN ?", ids).
		Update("status", status)
	return result.Error
}
