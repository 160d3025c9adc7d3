package docrag

import (
	"context"
	"os"

	v1 "github.com/minewander/docrag/api/docrag/v1"
	"github.com/minewander/docrag/core/file_store"
	"github.com/minewander/docrag/core/vector_store"
	"github.com/minewander/docrag/internal/dao"
	"github.com/minewander/docrag/internal/logic/library"
	gormModel "github.com/minewander/docrag/internal/model/gorm"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
)

func (c *ControllerV1) DocumentsDelete(ctx context.Context, req *v1.DocumentsDeleteReq) (res *v1.DocumentsDeleteRes, err error) {
	vectorStore, err := vector_store.GetVectorStore()
	if err != nil {
		return nil, gerror.Newf("failed to get vector store: %v", err)
	}

	// 开始事务
	tx := dao.GetDB().Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			err = gerror.Newf("panic occurred during DocumentsDelete: %v", r)
		}
	}()

	// 从数据库获取文档信息，包括 collection_name
	document, err := library.GetDocumentById(ctx, req.DocumentId)
	if err != nil {
		g.Log().Errorf(ctx, "DocumentsDelete: GetDocumentById failed for id %s, err: %v", req.DocumentId, err)
		tx.Rollback()
		return nil, err
	}

	var needDeleteObject bool
	var needDeleteLocalFile bool
	var objectBucket, objectLocation string
	var localFilePath string

	// 检查是否有其他文档引用了相同的 SHA256 文件
	if document.SHA256 != "" {
		var count int64
		err := tx.WithContext(ctx).Model(&gormModel.Document{}).Where("sha256 = ?", document.SHA256).Count(&count).Error
		if err != nil {
			g.Log().Errorf(ctx, "DocumentsDelete: failed to count documents with same SHA256, err: %v", err)
			tx.Rollback()
			return nil, err
		}

		// 如果只有当前这一个文档，则需要删除存储中的文件
		if count == 1 {
			storageType := file_store.GetStorageType()
			if storageType == file_store.StorageTypeObject {
				if document.ObjectBucket != "" && document.ObjectLocation != "" {
					needDeleteObject = true
					objectBucket = document.ObjectBucket
					objectLocation = document.ObjectLocation
				}
			} else {
				if document.LocalFilePath != "" {
					needDeleteLocalFile = true
					localFilePath = document.LocalFilePath
				}
			}
		} else {
			g.Log().Infof(ctx, "DocumentsDelete: file is referenced by %d documents, skipping file deletion", count)
		}
	}

	// 删除向量库中该文档的所有分片
	if document.CollectionName == "" {
		g.Log().Warningf(ctx, "DocumentsDelete: CollectionName is empty for document id %s, skipping vector deletion", req.DocumentId)
	} else {
		err = vectorStore.DeleteByDocumentID(ctx, document.CollectionName, req.DocumentId)
		if err != nil {
			g.Log().Errorf(ctx, "DocumentsDelete: vector deletion failed for documentId %s in collection %s, err: %v", req.DocumentId, document.CollectionName, err)
			tx.Rollback()
			return nil, err
		}
	}

	// 从数据库删除文档记录（会级联删除相关的 chunks）
	err = library.DeleteDocumentWithTx(ctx, tx, req.DocumentId)
	if err != nil {
		g.Log().Errorf(ctx, "DocumentsDelete: DeleteDocument failed for id %s, err: %v", req.DocumentId, err)
		tx.Rollback()
		return nil, err
	}

	if err = tx.Commit().Error; err != nil {
		g.Log().Errorf(ctx, "DocumentsDelete: transaction commit failed, err: %v", err)
		return nil, gerror.Newf("failed to commit transaction: %v", err)
	}

	// 事务成功提交后再删除存储中的文件，失败不影响数据一致性
	if needDeleteObject && objectBucket != "" && objectLocation != "" {
		g.Log().Infof(ctx, "DocumentsDelete: deleting object, bucket=%s, location=%s", objectBucket, objectLocation)

		objectConfig := file_store.GetObjectStoreConfig()
		err = file_store.DeleteObject(ctx, objectConfig.Client, objectBucket, objectLocation)
		if err != nil {
			g.Log().Errorf(ctx, "DocumentsDelete: failed to delete object, bucket=%s, location=%s, err: %v", objectBucket, objectLocation, err)
		} else {
			g.Log().Infof(ctx, "DocumentsDelete: successfully deleted object, bucket=%s, location=%s", objectBucket, objectLocation)
		}
	} else if needDeleteLocalFile && localFilePath != "" {
		g.Log().Infof(ctx, "DocumentsDelete: deleting local file, path=%s", localFilePath)

		err = os.Remove(localFilePath)
		if err != nil {
			g.Log().Errorf(ctx, "DocumentsDelete: failed to delete local file, path=%s, err: %v", localFilePath, err)
		} else {
			g.Log().Infof(ctx, "DocumentsDelete: successfully deleted local file, path=%s", localFilePath)
		}
	}

	return &v1.DocumentsDeleteRes{}, nil
}
