package indexer

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/components/document"
	einoSchema "github.com/cloudwego/eino/schema"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gfile"
	"github.com/google/uuid"

	v1 "github.com/minewander/docrag/api/docrag/v1"
	"github.com/minewander/docrag/core/common"
	"github.com/minewander/docrag/core/config"
	"github.com/minewander/docrag/core/errors"
	"github.com/minewander/docrag/core/file_store"
	"github.com/minewander/docrag/core/vector_store"
	"github.com/minewander/docrag/internal/logic/library"
	gormModel "github.com/minewander/docrag/internal/model/gorm"
	"github.com/minewander/docrag/pkg/schema"
)

// DocumentIndexer 文档索引服务
type DocumentIndexer struct {
	Config      *config.IndexerConfig
	VectorStore vector_store.VectorStore
}

// BatchIndexReq 批量索引请求参数
type BatchIndexReq struct {
	DocumentIds []string // Document ID list
	ChunkSize   int      // Document chunk size
	OverlapSize int      // Chunk overlap size
	Separator   string   // Custom separator
}

// IndexReq 单文档索引请求参数
type IndexReq struct {
	DocumentId  string // Document ID
	ChunkSize   int    // Document chunk size
	OverlapSize int    // Chunk overlap size
	Separator   string // Custom separator
}

// indexContext 索引上下文，在pipeline步骤间传递数据
type indexContext struct {
	ctx            context.Context
	documentId     string
	doc            gormModel.Document
	storageType    file_store.StorageType
	localFilePath  string
	rawDocs        []*einoSchema.Document
	chunks         []*schema.Document
	chunkSize      int
	overlapSize    int
	separator      string
	collectionName string
}

// IndexResult 索引结果
type IndexResult struct {
	DocumentID string
	Success    bool
	Error      error
}

// BatchDocumentIndex 批量文档索引处理（异步操作）
func (s *DocumentIndexer) BatchDocumentIndex(ctx context.Context, req *BatchIndexReq) error {
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 5) // 限制并发数为5
	results := make(chan IndexResult, len(req.DocumentIds))

	for _, documentId := range req.DocumentIds {
		wg.Add(1)
		documentId := documentId
		common.SafeGo(ctx, fmt.Sprintf("IndexDoc-%s", documentId), func() {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			indexReq := &IndexReq{
				DocumentId:  documentId,
				ChunkSize:   req.ChunkSize,
				OverlapSize: req.OverlapSize,
				Separator:   req.Separator,
			}

			err := s.DocumentIndex(ctx, indexReq)

			results <- IndexResult{
				DocumentID: documentId,
				Success:    err == nil,
				Error:      err,
			}

			if err != nil {
				g.Log().Errorf(ctx, "Document indexing failed, documentId=%s, err=%v", documentId, err)
			} else {
				g.Log().Infof(ctx, "Document indexed successfully, documentId=%s", documentId)
			}
		})
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// 统计结果
	go func() {
		successCount := 0
		failCount := 0
		for result := range results {
			if result.Success {
				successCount++
			} else {
				failCount++
			}
		}
		g.Log().Infof(ctx, "Batch document indexing completed: success=%d, failed=%d, total=%d",
			successCount, failCount, len(req.DocumentIds))
	}()

	return nil
}

// DocumentIndex 单文档索引处理（Pipeline模式）
func (s *DocumentIndexer) DocumentIndex(ctx context.Context, req *IndexReq) error {
	idxCtx := &indexContext{
		ctx:         ctx,
		documentId:  req.DocumentId,
		chunkSize:   req.ChunkSize,
		overlapSize: req.OverlapSize,
		separator:   req.Separator,
	}

	pipeline := []struct {
		name string
		fn   func(*indexContext) error
	}{
		{"Get document info", s.stepGetDocument},
		{"Clean old data", s.stepCleanOldData},
		{"Prepare file", s.stepPrepareFile},
		{"Load document", s.stepLoadDocument},
		{"Split document", s.stepSplitDocument},
		{"Normalize metadata", s.stepNormalizeMetadata},
		{"Save chunks", s.stepSaveChunks},
		{"Ensure collection", s.stepEnsureCollection},
		{"Vectorize and store", s.stepVectorizeAndStore},
		{"Update status", s.stepUpdateStatus},
	}

	for _, step := range pipeline {
		g.Log().Debugf(ctx, "Executing step: %s, documentId=%s", step.name, req.DocumentId)
		if err := step.fn(idxCtx); err != nil {
			return fmt.Errorf("%s failed: %w", step.name, err)
		}
	}

	return nil
}

// stepGetDocument 步骤1: 获取文档信息
func (s *DocumentIndexer) stepGetDocument(idxCtx *indexContext) error {
	doc, err := library.GetDocumentById(idxCtx.ctx, idxCtx.documentId)
	if err != nil {
		g.Log().Errorf(idxCtx.ctx, "Failed to get document info, documentId=%s, err=%v", idxCtx.documentId, err)
		library.UpdateDocumentsStatus(idxCtx.ctx, idxCtx.documentId, int(v1.StatusFailed))
		return err
	}
	idxCtx.doc = doc
	idxCtx.collectionName = doc.CollectionName
	return nil
}

// stepCleanOldData 步骤2: 清理旧的文档数据（重复索引时）
func (s *DocumentIndexer) stepCleanOldData(idxCtx *indexContext) error {
	err := library.DeleteDocumentDataOnly(idxCtx.ctx, idxCtx.documentId, s.VectorStore)
	if err != nil {
		g.Log().Errorf(idxCtx.ctx, "Failed to delete old document data, documentId=%s, err=%v", idxCtx.documentId, err)
		library.UpdateDocumentsStatus(idxCtx.ctx, idxCtx.documentId, int(v1.StatusFailed))
		return err
	}
	return nil
}

// stepPrepareFile 步骤3: 准备文件（处理存储类型和文件路径）
func (s *DocumentIndexer) stepPrepareFile(idxCtx *indexContext) error {
	storageType := file_store.GetStorageType()
	idxCtx.storageType = storageType

	if storageType == file_store.StorageTypeObject {
		// 对象存储: 下载文件到 upload/library_file/知识库id/文件名，覆盖已有文件
		localFilePath := idxCtx.doc.LocalFilePath
		if localFilePath == "" {
			localFilePath = gfile.Join("upload", "library_file", idxCtx.doc.LibraryId, idxCtx.doc.FileName)
		}

		objectConfig := file_store.GetObjectStoreConfig()
		err := file_store.DownloadFile(idxCtx.ctx, objectConfig.Client, idxCtx.doc.ObjectBucket, idxCtx.doc.ObjectLocation, localFilePath)
		if err != nil {
			g.Log().Errorf(idxCtx.ctx, "Failed to download file from object store, documentId=%s, bucket=%s, location=%s, err=%v",
				idxCtx.documentId, idxCtx.doc.ObjectBucket, idxCtx.doc.ObjectLocation, err)
			library.UpdateDocumentsStatus(idxCtx.ctx, idxCtx.documentId, int(v1.StatusFailed))
			return err
		}
		g.Log().Infof(idxCtx.ctx, "File downloaded from object store to %s, documentId=%s", localFilePath, idxCtx.documentId)
		idxCtx.localFilePath = localFilePath
	} else {
		// 本地存储: 直接使用数据库中记录的相对路径
		if idxCtx.doc.LocalFilePath == "" {
			err := fmt.Errorf("local file path is empty, documentId=%s", idxCtx.documentId)
			g.Log().Errorf(idxCtx.ctx, "Local file path is empty, documentId=%s", idxCtx.documentId)
			library.UpdateDocumentsStatus(idxCtx.ctx, idxCtx.documentId, int(v1.StatusFailed))
			return err
		}
		idxCtx.localFilePath = idxCtx.doc.LocalFilePath
	}

	if idxCtx.localFilePath == "" || !fileExists(idxCtx.localFilePath) {
		err := fmt.Errorf("file does not exist, path=%s", idxCtx.localFilePath)
		g.Log().Errorf(idxCtx.ctx, "File does not exist, documentId=%s, path=%s", idxCtx.documentId, idxCtx.localFilePath)
		library.UpdateDocumentsStatus(idxCtx.ctx, idxCtx.documentId, int(v1.StatusFailed))
		return err
	}

	return nil
}

// stepLoadDocument 步骤4: 加载并解析文档
func (s *DocumentIndexer) stepLoadDocument(idxCtx *indexContext) error {
	objectConfig := file_store.GetObjectStoreConfig()
	ldr, err := Loader(idxCtx.ctx, objectConfig.Client, objectConfig.BucketName)
	if err != nil {
		g.Log().Errorf(idxCtx.ctx, "Failed to create document loader, documentId=%s, err=%v", idxCtx.documentId, err)
		return err
	}

	rawDocs, err := ldr.Load(idxCtx.ctx, document.Source{URI: idxCtx.localFilePath})
	if err != nil {
		g.Log().Errorf(idxCtx.ctx, "Failed to parse document, documentId=%s, err=%v", idxCtx.documentId, err)
		library.UpdateDocumentsStatus(idxCtx.ctx, idxCtx.documentId, int(v1.StatusFailed))
		return err
	}

	idxCtx.rawDocs = rawDocs
	g.Log().Infof(idxCtx.ctx, "Document loading completed, documentId=%s, page count=%d", idxCtx.documentId, len(rawDocs))
	return nil
}

// stepSplitDocument 步骤5: 切分文档
func (s *DocumentIndexer) stepSplitDocument(idxCtx *indexContext) error {
	var (
		tfr document.Transformer
		err error
	)
	if idxCtx.separator != "" {
		tfr, err = NewTransformerWithSeparator(idxCtx.ctx, idxCtx.chunkSize, idxCtx.overlapSize, idxCtx.separator)
	} else {
		tfr, err = NewTransformer(idxCtx.ctx, idxCtx.chunkSize, idxCtx.overlapSize)
	}
	if err != nil {
		g.Log().Errorf(idxCtx.ctx, "Failed to create transformer, documentId=%s, err=%v", idxCtx.documentId, err)
		return err
	}

	splitDocs, err := tfr.Transform(idxCtx.ctx, idxCtx.rawDocs)
	if err != nil {
		g.Log().Errorf(idxCtx.ctx, "Failed to split document, documentId=%s, err=%v", idxCtx.documentId, err)
		library.UpdateDocumentsStatus(idxCtx.ctx, idxCtx.documentId, int(v1.StatusFailed))
		return err
	}

	idxCtx.chunks = toStoreDocuments(splitDocs)
	g.Log().Infof(idxCtx.ctx, "Document splitting completed, documentId=%s, chunk count=%d", idxCtx.documentId, len(idxCtx.chunks))
	return nil
}

// stepNormalizeMetadata 步骤6: 规范化片段元数据为固定四键结构
// 单个片段解析失败不会中断整批，出错的字段回退为默认值
func (s *DocumentIndexer) stepNormalizeMetadata(idxCtx *indexContext) error {
	idxCtx.chunks = NormalizeChunks(idxCtx.ctx, idxCtx.chunks)

	// 回填文档总页数，供文档列表展示
	if len(idxCtx.chunks) > 0 {
		if tp, ok := idxCtx.chunks[0].MetaData[common.MetaKeyTotalPages].(float64); ok && tp > 0 {
			if err := library.UpdateDocumentsTotalPages(idxCtx.ctx, idxCtx.documentId, int(tp)); err != nil {
				g.Log().Warningf(idxCtx.ctx, "Failed to update document total pages, documentId=%s, err=%v", idxCtx.documentId, err)
			}
		}
	}
	return nil
}

// stepSaveChunks 步骤7: 保存chunks到数据库
func (s *DocumentIndexer) stepSaveChunks(idxCtx *indexContext) error {
	if len(idxCtx.chunks) == 0 {
		return nil
	}

	chunkRows := make([]gormModel.Chunk, len(idxCtx.chunks))
	for i, chunk := range idxCtx.chunks {
		chunkId := uuid.New().String()

		meta := chunk.MetaData
		source, _ := meta[common.MetaKeySource].(string)
		page, _ := meta[common.MetaKeyPage].(float64)
		totalPages, _ := meta[common.MetaKeyTotalPages].(float64)
		title, _ := meta[common.MetaKeyTitle].(string)

		chunkRows[i] = gormModel.Chunk{
			ID:             chunkId,
			DocumentID:     idxCtx.documentId,
			Content:        chunk.Content,
			CollectionName: idxCtx.collectionName,
			Source:         source,
			Page:           page,
			TotalPages:     totalPages,
			Title:          title,
			Status:         int8(v1.ChunkStatusActive),
		}
		chunk.ID = chunkId
	}

	err := library.SaveChunksData(idxCtx.ctx, idxCtx.documentId, chunkRows)
	if err != nil {
		g.Log().Errorf(idxCtx.ctx, "Failed to save chunks to database, documentId=%s, err=%v", idxCtx.documentId, err)
		library.UpdateDocumentsStatus(idxCtx.ctx, idxCtx.documentId, int(v1.StatusIndexing))
		return fmt.Errorf("failed to save chunks to database: %w", err)
	}

	return nil
}

// stepEnsureCollection 步骤8: 确保向量集合存在（新文档库首次索引时创建）
func (s *DocumentIndexer) stepEnsureCollection(idxCtx *indexContext) error {
	err := ensureCollection(idxCtx.ctx, s.VectorStore, idxCtx.collectionName)
	if err != nil {
		g.Log().Errorf(idxCtx.ctx, "Failed to ensure collection, documentId=%s, collection=%s, err=%v",
			idxCtx.documentId, idxCtx.collectionName, err)
		library.UpdateDocumentsStatus(idxCtx.ctx, idxCtx.documentId, int(v1.StatusFailed))
		return err
	}
	return nil
}

// ensureCollection 校验集合名称合法性，集合不存在时创建
func ensureCollection(ctx context.Context, store vector_store.VectorStore, collectionName string) error {
	if !common.ValidateCollectionName(collectionName) {
		return errors.Newf(errors.ErrInvalidParameter, "invalid collection name: %s", collectionName)
	}

	exists, err := store.CollectionExists(ctx, collectionName)
	if err != nil {
		return errors.Newf(errors.ErrVectorStoreInit, "failed to check collection %s: %v", collectionName, err)
	}
	if exists {
		return nil
	}

	if err := store.CreateCollection(ctx, collectionName); err != nil {
		return errors.Newf(errors.ErrVectorStoreInit, "failed to create collection %s: %v", collectionName, err)
	}
	g.Log().Infof(ctx, "Collection %s created", collectionName)
	return nil
}

// stepVectorizeAndStore 步骤9: 向量化并存储
func (s *DocumentIndexer) stepVectorizeAndStore(idxCtx *indexContext) error {
	embedder, err := NewVectorStoreEmbedder(idxCtx.ctx, s.Config, s.VectorStore, s.Config.Dim)
	if err != nil {
		g.Log().Errorf(idxCtx.ctx, "Failed to create vector embedder, documentId=%s, err=%v", idxCtx.documentId, err)
		library.UpdateDocumentsStatus(idxCtx.ctx, idxCtx.documentId, int(v1.StatusIndexing))
		return fmt.Errorf("failed to create vector embedder: %w", err)
	}

	// 通过context传递归属信息，入库时写入向量库字段
	ctx := context.WithValue(idxCtx.ctx, common.DocumentId, idxCtx.documentId)
	if idxCtx.doc.LibraryId != "" {
		ctx = context.WithValue(ctx, common.LibraryId, idxCtx.doc.LibraryId)
	}

	chunkIds, err := embedder.EmbedAndStore(ctx, idxCtx.collectionName, idxCtx.chunks)
	if err != nil {
		g.Log().Errorf(idxCtx.ctx, "Failed to vectorize and store, documentId=%s, err=%v", idxCtx.documentId, err)
		library.UpdateDocumentsStatus(idxCtx.ctx, idxCtx.documentId, int(v1.StatusIndexing))
		return fmt.Errorf("failed to vectorize and store: %w", err)
	}

	g.Log().Infof(idxCtx.ctx, "Vectorization completed, documentId=%s, collectionName=%s, chunks count=%d, successfully stored=%d",
		idxCtx.documentId, idxCtx.collectionName, len(idxCtx.chunks), len(chunkIds))

	return nil
}

// stepUpdateStatus 步骤10: 更新文档状态
func (s *DocumentIndexer) stepUpdateStatus(idxCtx *indexContext) error {
	err := library.UpdateDocumentsStatus(idxCtx.ctx, idxCtx.documentId, int(v1.StatusActive))
	if err != nil {
		g.Log().Errorf(idxCtx.ctx, "Failed to update document status, documentId=%s, err=%v", idxCtx.documentId, err)
		return err
	}
	return nil
}
