package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minewander/docrag/internal/dao"
	gormModel "github.com/minewander/docrag/internal/model/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// SaveDocumentsInfoWithTx 保存文档信息（事务版本）
func SaveDocumentsInfoWithTx(ctx context.Context, tx *gorm.DB, document gormModel.Document) (gormModel.Document, error) {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	document.ID = id

	result := tx.WithContext(ctx).Create(&document)
	if result.Error != nil {
		g.Log().Errorf(ctx, "保存文档信息失败: %+v, 错误: %v", document, result.Error)
		return document, fmt.Errorf("保存文档信息失败: %w", result.Error)
	}
	g.Log().Infof(ctx, "文档保存成功, ID: %s", id)
	return document, nil
}

// UpdateDocumentsStatus 更新文档状态
func UpdateDocumentsStatus(ctx context.Context, documentId string, status int) error {
	err := dao.GetDB().WithContext(ctx).
		Model(&gormModel.Document{}).
		Where("id = ?", documentId).
		Update("status", status).Error
	if err != nil {
		g.Log().Errorf(ctx, "更新文档状态失败: ID=%s, 错误: %v", documentId, err)
	}
	return err
}

// UpdateDocumentsTotalPages 更新文档总页数（解析完成后回填）
func UpdateDocumentsTotalPages(ctx context.Context, documentId string, totalPages int) error {
	err := dao.GetDB().WithContext(ctx).
		Model(&gormModel.Document{}).
		Where("id = ?", documentId).
		Update("total_pages", totalPages).Error
	if err != nil {
		g.Log().Errorf(ctx, "更新文档总页数失败: ID=%s, 错误: %v", documentId, err)
	}
	return err
}

// GetDocumentById 根据ID获取文档信息
func GetDocumentById(ctx context.Context, id string) (document gormModel.Document, err error) {
	g.Log().Debugf(ctx, "获取文档信息: ID=%s", id)

	err = dao.GetDB().WithContext(ctx).Where("id = ?", id).First(&document).Error
	if err != nil {
		g.Log().Errorf(ctx, "获取文档信息失败: ID=%s, 错误: %v", id, err)
		return document, fmt.Errorf("获取文档信息失败: %w", err)
	}

	return document, nil
}

// CountDocumentsBySHA256 统计同一知识库内相同内容哈希的文档数
func CountDocumentsBySHA256(ctx context.Context, libraryId, sha256 string) (int64, error) {
	var count int64
	err := dao.GetDB().WithContext(ctx).
		Model(&gormModel.Document{}).
		Where("library_id = ? AND sha256 = ?", libraryId, sha256).
		Count(&count).Error
	if err != nil {
		g.Log().Errorf(ctx, "查询文档哈希失败: library=%s, 错误: %v", libraryId, err)
		return 0, err
	}
	return count, nil
}

// GetDocumentsList 获取文档列表
func GetDocumentsList(ctx context.Context, libraryId string, page int, pageSize int) (documents []gormModel.Document, total int64, err error) {
	// 参数验证和默认值设置
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	model := dao.GetDB().WithContext(ctx).Model(&gormModel.Document{})
	if libraryId != "" {
		model = model.Where("library_id = ?", libraryId)
	}

	err = model.Count(&total).Error
	if err != nil {
		g.Log().Errorf(ctx, "获取文档总数失败: %v", err)
		return nil, 0, fmt.Errorf("获取文档总数失败: %w", err)
	}

	if total == 0 {
		return nil, 0, nil
	}

	err = model.Order("create_time desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&documents).Error
	if err != nil {
		g.Log().Errorf(ctx, "获取文档列表失败: %v", err)
		return nil, 0, fmt.Errorf("获取文档列表失败: %w", err)
	}

	return documents, total, nil
}

// DeleteDocumentWithTx 删除文档及其相关数据（事务版本）
func DeleteDocumentWithTx(ctx context.Context, tx *gorm.DB, id string) error {
	g.Log().Debugf(ctx, "删除文档: ID=%s", id)

	// 先删除文档块
	result := tx.WithContext(ctx).Where("document_id = ?", id).Delete(&gormModel.Chunk{})
	if result.Error != nil {
		g.Log().Errorf(ctx, "删除文档块失败: ID=%s, 错误: %v", id, result.Error)
		return fmt.Errorf("删除文档块失败: %w", result.Error)
	}

	// 再删除文档
	result = tx.WithContext(ctx).Where("id = ?", id).Delete(&gormModel.Document{})
	if result.Error != nil {
		g.Log().Errorf(ctx, "删除文档失败: ID=%s, 错误: %v", id, result.Error)
		return fmt.Errorf("删除文档失败: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("文档不存在")
	}

	g.Log().Infof(ctx, "文档删除成功: ID=%s", id)
	return nil
}
