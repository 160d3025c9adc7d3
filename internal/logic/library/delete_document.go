package library

import (
	"context"

	"github.com/gogf/gf/v2/frame/g"

	"github.com/minewander/docrag/core/errors"
	"github.com/minewander/docrag/core/vector_store"
	"github.com/minewander/docrag/internal/dao"
)

// DeleteDocumentDataOnly 删除指定文档的块数据（数据库与向量库），保留文档记录本身
// 重新索引前清理旧数据时使用
func DeleteDocumentDataOnly(ctx context.Context, documentId string, vectorStore vector_store.VectorStore) error {
	tx := dao.GetDB().Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	document, err := GetDocumentById(ctx, documentId)
	if err != nil {
		g.Log().Errorf(ctx, "DeleteDocumentDataOnly: GetDocumentById failed for id %s, err: %v", documentId, err)
		tx.Rollback()
		return errors.Newf(errors.ErrDocumentNotFound, "failed to get document information: %v", err)
	}

	if document.CollectionName == "" {
		g.Log().Warningf(ctx, "DeleteDocumentDataOnly: CollectionName is empty for document id %s", documentId)
	} else {
		err = vectorStore.DeleteByDocumentID(ctx, document.CollectionName, documentId)
		if err != nil {
			g.Log().Errorf(ctx, "DeleteDocumentDataOnly: Vector store deleteDocument failed for documentId %s in collection %s, err: %v", documentId, document.CollectionName, err)
			tx.Rollback()
			return errors.Newf(errors.ErrVectorDelete, "failed to delete document data in vector store: %v", err)
		}
		g.Log().Infof(ctx, "DeleteDocumentDataOnly: Successfully deleted document %s from collection %s", documentId, document.CollectionName)
	}

	// 只删除chunks数据，保留文档记录
	err = DeleteChunksByDocumentIdWithTx(ctx, tx, documentId)
	if err != nil {
		g.Log().Errorf(ctx, "DeleteDocumentDataOnly: DeleteChunksByDocumentIdWithTx failed for id %s, err: %v", documentId, err)
		tx.Rollback()
		return errors.Newf(errors.ErrDatabaseDelete, "failed to delete chunks data: %v", err)
	}

	if err = tx.Commit().Error; err != nil {
		g.Log().Errorf(ctx, "DeleteDocumentDataOnly: transaction commit failed, err: %v", err)
		return errors.Newf(errors.ErrInternalError, "failed to commit transaction: %v", err)
	}

	g.Log().Infof(ctx, "DeleteDocumentDataOnly: Successfully deleted chunks data for document id %s", documentId)
	return nil
}
