package vector_store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/google/uuid"
	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"
	"github.com/minewander/docrag/core/common"
	"github.com/minewander/docrag/internal/dao"
	milvusModel "github.com/minewander/docrag/internal/model/milvus"
	"github.com/minewander/docrag/pkg/schema"
)

// MilvusStore Milvus向量数据库实现
type MilvusStore struct {
	client   *milvusclient.Client
	database string
}

// embeddingConfigWrapper 实现 EmbeddingConfig 接口的包装器
type embeddingConfigWrapper struct {
	apiKey         string
	baseURL        string
	embeddingModel string
}

func (e *embeddingConfigWrapper) GetAPIKey() string         { return e.apiKey }
func (e *embeddingConfigWrapper) GetBaseURL() string        { return e.baseURL }
func (e *embeddingConfigWrapper) GetEmbeddingModel() string { return e.embeddingModel }

// readMilvusToken 从固定路径的 token 文件读取 Milvus 凭证
// 凭证不允许出现在 config.yaml 或环境变量中，文件缺失时立即失败
func readMilvusToken(ctx context.Context) (string, error) {
	tokenFile := g.Cfg().MustGet(ctx, "milvus.tokenFile", "").String()
	if tokenFile == "" {
		return "", fmt.Errorf("milvus.tokenFile is required but not found in config file. Please check your config.yaml file and ensure milvus.tokenFile is properly set")
	}
	return readTokenFile(tokenFile)
}

// readTokenFile 读取并清理 token 文件内容，文件不可读或内容为空时报错
func readTokenFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read milvus token file %s: %w", path, err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("milvus token file %s is empty", path)
	}
	return token, nil
}

func InitializeMilvusStore(ctx context.Context) (VectorStore, error) {
	address := g.Cfg().MustGet(ctx, "milvus.address", "").String()
	database := g.Cfg().MustGet(ctx, "milvus.database", "default").String()

	if address == "" {
		return nil, fmt.Errorf("milvus.address is required but not found in config file. Please check your config.yaml file and ensure milvus.address is properly set")
	}

	token, err := readMilvusToken(ctx)
	if err != nil {
		return nil, err
	}

	g.Log().Infof(ctx, "Connecting to Milvus at: %s, database: %s", address, database)

	client, err := milvusclient.New(ctx, &milvusclient.ClientConfig{
		Address: address,
		DBName:  database,
		APIKey:  token,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create milvus client (address: %s, database: %s): %w", address, database, err)
	}

	config := &VectorStoreConfig{
		Type:     VectorStoreTypeMilvus,
		Client:   client,
		Database: database,
	}

	milvusStore, err := NewMilvusStore(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create milvus store: %w", err)
	}

	return milvusStore, nil
}

// NewMilvusStore 创建Milvus向量存储实例
func NewMilvusStore(config *VectorStoreConfig) (VectorStore, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	client, ok := config.Client.(*milvusclient.Client)
	if !ok {
		return nil, fmt.Errorf("client must be *milvusclient.Client")
	}

	if config.Database == "" {
		return nil, fmt.Errorf("database name cannot be empty")
	}

	return &MilvusStore{
		client:   client,
		database: config.Database,
	}, nil
}

// CreateDatabaseIfNotExists 创建数据库（如果不存在）
func (m *MilvusStore) CreateDatabaseIfNotExists(ctx context.Context) error {
	dbNames, err := m.client.ListDatabase(ctx, milvusclient.NewListDatabaseOption())
	if err != nil {
		return fmt.Errorf("failed to list databases: %w", err)
	}

	for _, name := range dbNames {
		if strings.EqualFold(name, m.database) {
			g.Log().Infof(ctx, "Database '%s' already exists, skipping creation", m.database)
			return nil
		}
	}

	err = m.client.CreateDatabase(ctx, milvusclient.NewCreateDatabaseOption(m.database))
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	g.Log().Infof(ctx, "Database '%s' created successfully", m.database)
	return nil
}

// CreateCollection 创建集合
func (m *MilvusStore) CreateCollection(ctx context.Context, collectionName string) error {
	// 获取向量维度，优先从配置文件读取
	dim := g.Cfg().MustGet(ctx, "milvus.dim", 1024).Int()
	dimStr := fmt.Sprintf("%d", dim)

	// 使用标准 text collection schema
	collSchema := &entity.Schema{
		CollectionName: collectionName,
		Description:    "存储文档分片及其向量",
		AutoID:         false,
		Fields:         milvusModel.GetStandardCollectionFields(dimStr),
	}

	// 创建文档片段集合，并设置vector为索引
	err := m.client.CreateCollection(ctx, milvusclient.NewCreateCollectionOption(collectionName, collSchema).WithIndexOptions(
		milvusclient.NewCreateIndexOption(collectionName, common.FieldContentVector, index.NewHNSWIndex(entity.L2, 64, 128))))
	if err != nil {
		return fmt.Errorf("failed to create Milvus collection: %w", err)
	}

	// Load collection into memory
	_, err = m.client.LoadCollection(ctx, milvusclient.NewLoadCollectionOption(collectionName))
	if err != nil {
		return fmt.Errorf("failed to load Milvus collection: %w", err)
	}

	g.Log().Infof(ctx, "Collection '%s' created with dimension %d, index built and loaded", collectionName, dim)
	return nil
}

// CollectionExists 检查集合是否存在
func (m *MilvusStore) CollectionExists(ctx context.Context, collectionName string) (bool, error) {
	has, err := m.client.HasCollection(ctx, milvusclient.NewHasCollectionOption(collectionName))
	if err != nil {
		return false, fmt.Errorf("failed to check if collection exists: %w", err)
	}
	return has, nil
}

// DeleteCollection 删除集合
func (m *MilvusStore) DeleteCollection(ctx context.Context, collectionName string) error {
	err := m.client.DropCollection(ctx, milvusclient.NewDropCollectionOption(collectionName))
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	g.Log().Infof(ctx, "Collection '%s' deleted", collectionName)
	return nil
}

// InsertVectors 插入向量数据
// 调用方保证 chunk.MetaData 已经是规范化后的四键引用元数据
func (m *MilvusStore) InsertVectors(ctx context.Context, collectionName string, chunks []*schema.Document, vectors [][]float32) ([]string, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("chunks and vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}

	ids := make([]string, len(chunks))
	texts := make([]string, len(chunks))
	documentIds := make([]string, len(chunks))
	metadataList := make([][]byte, len(chunks))

	// 从上下文中提取library_id
	var libraryId string
	if value, ok := ctx.Value(common.LibraryId).(string); ok {
		libraryId = value
	}

	// 从上下文中提取document_id
	var contextDocumentId string
	if value, ok := ctx.Value(common.DocumentId).(string); ok {
		contextDocumentId = value
	}

	for idx, chunk := range chunks {
		// 生成chunk ID（如果不存在）
		if len(chunk.ID) == 0 {
			chunk.ID = uuid.New().String()
		}
		ids[idx] = chunk.ID

		// 截断文本（如果需要）
		texts[idx] = truncateString(chunk.Content, 65535)

		// 设置document_id
		if contextDocumentId == "" {
			return nil, fmt.Errorf("document_id not found in context for chunk %s", chunk.ID)
		}
		documentIds[idx] = contextDocumentId

		// 构建metadata
		metaCopy := make(map[string]any)
		for k, v := range chunk.MetaData {
			metaCopy[k] = v
		}

		// 添加library_id到metadata
		if libraryId != "" {
			metaCopy[common.LibraryId] = libraryId
		}

		// 序列化metadata
		metaBytes, err := marshalMetadata(metaCopy)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadataList[idx] = metaBytes
	}

	// 获取向量维度，优先从配置文件读取
	dim := g.Cfg().MustGet(ctx, "milvus.dim", 1024).Int()

	// 创建列数据
	columns := []column.Column{
		column.NewColumnVarChar("id", ids),
		column.NewColumnVarChar(common.FieldContent, texts),
		column.NewColumnFloatVector(common.FieldContentVector, dim, vectors),
		column.NewColumnVarChar(common.DocumentId, documentIds),
		column.NewColumnJSONBytes(common.FieldMetadata, metadataList),
	}

	// 插入数据
	insertOpt := milvusclient.NewColumnBasedInsertOption(collectionName, columns...)
	result, err := m.client.Insert(ctx, insertOpt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert vectors: %w", err)
	}

	g.Log().Infof(ctx, "Successfully inserted %d vectors into collection '%s'", result.InsertCount, collectionName)
	return ids, nil
}

// DeleteByDocumentID 根据文档ID删除所有相关chunks
func (m *MilvusStore) DeleteByDocumentID(ctx context.Context, collectionName string, documentID string) error {
	// 验证 documentID 格式（防止注入）
	if !common.ValidateUUID(documentID) {
		return fmt.Errorf("invalid document ID format: %s (must be valid UUID)", documentID)
	}

	// 转义特殊字符（双重保护）
	safeDocID := common.SanitizeMilvusString(documentID)
	filterExpr := fmt.Sprintf(`document_id == "%s"`, safeDocID)

	g.Log().Infof(ctx, "Deleting all chunks of document %s from collection %s", documentID, collectionName)

	deleteOpt := milvusclient.NewDeleteOption(collectionName).WithExpr(filterExpr)
	result, err := m.client.Delete(ctx, deleteOpt)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}

	g.Log().Infof(ctx, "Delete operation completed for document %s, affected rows: %d", documentID, result.DeleteCount)

	if result.DeleteCount == 0 {
		g.Log().Infof(ctx, "Warning: No chunks were deleted for document_id=%s", documentID)
	}

	return nil
}

// DeleteByChunkID 根据chunkID删除单个chunk
func (m *MilvusStore) DeleteByChunkID(ctx context.Context, collectionName string, chunkID string) error {
	// 验证 chunkID 格式（防止注入）
	if !common.ValidateUUID(chunkID) {
		return fmt.Errorf("invalid chunk ID format: %s (must be valid UUID)", chunkID)
	}

	// 转义特殊字符（双重保护）
	safeChunkID := common.SanitizeMilvusString(chunkID)
	filterExpr := fmt.Sprintf(`id == "%s"`, safeChunkID)

	g.Log().Infof(ctx, "Deleting chunk %s from collection %s", chunkID, collectionName)

	deleteOpt := milvusclient.NewDeleteOption(collectionName).WithExpr(filterExpr)
	result, err := m.client.Delete(ctx, deleteOpt)
	if err != nil {
		return fmt.Errorf("failed to delete chunk %s: %w", chunkID, err)
	}

	g.Log().Infof(ctx, "Delete operation completed for chunk %s, affected rows: %d", chunkID, result.DeleteCount)

	if result.DeleteCount == 0 {
		g.Log().Infof(ctx, "Warning: No chunk was deleted for id=%s", chunkID)
	}

	return nil
}

// Helper functions

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if len(metadata) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(metadata)
}

// GetMilvusClient returns the underlying Milvus client with specific type
func (m *MilvusStore) GetMilvusClient() *milvusclient.Client {
	return m.client
}

// NewRetriever 创建检索器实例
func (m *MilvusStore) NewRetriever(ctx context.Context, conf interface{}, collectionName string) (Retriever, error) {
	if m.client == nil {
		return nil, fmt.Errorf("milvus client not provided")
	}

	if collectionName == "" {
		return nil, fmt.Errorf("collection name cannot be empty")
	}

	// 检查集合是否存在
	exists, err := m.client.HasCollection(ctx, milvusclient.NewHasCollectionOption(collectionName))
	if err != nil {
		return nil, fmt.Errorf("failed to check collection: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("collection '%s' not found", collectionName)
	}

	// 获取集合描述
	collection, err := m.client.DescribeCollection(ctx, milvusclient.NewDescribeCollectionOption(collectionName))
	if err != nil {
		return nil, fmt.Errorf("failed to describe collection: %w", err)
	}

	// 检查向量字段是否存在
	vectorField := common.FieldContentVector
	found := false
	for _, field := range collection.Schema.Fields {
		if field.Name == vectorField {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("vector field '%s' not found in collection schema", vectorField)
	}

	// 确保集合已加载
	if !collection.Loaded {
		_, err = m.client.LoadCollection(ctx, milvusclient.NewLoadCollectionOption(collectionName))
		if err != nil {
			return nil, fmt.Errorf("failed to load collection: %w", err)
		}
	}

	return &milvusRetriever{
		client:         m.client,
		collectionName: collectionName,
		vectorField:    vectorField,
		config:         conf,
	}, nil
}

// milvusRetriever 实现了 Retriever 接口
type milvusRetriever struct {
	client         *milvusclient.Client
	collectionName string
	vectorField    string
	config         interface{} // 使用 interface{} 避免循环导入
}

// Retrieve 实现检索功能
func (r *milvusRetriever) Retrieve(ctx context.Context, query string, opts ...Option) ([]*schema.Document, error) {
	topK := 5 // 默认值

	// 解析选项
	options := GetCommonOptions(&Options{TopK: &topK}, opts...)
	if options.TopK != nil {
		topK = *options.TopK
	}
	filter := options.Filter
	partition := options.Partition

	// 通过接口方法获取 embedding 配置，避免循环导入
	var apiKey, baseURL, embeddingModel string
	if r.config != nil {
		type embeddingConfigGetter interface {
			GetAPIKey() string
			GetBaseURL() string
			GetEmbeddingModel() string
		}
		if configGetter, ok := r.config.(embeddingConfigGetter); ok {
			apiKey = configGetter.GetAPIKey()
			baseURL = configGetter.GetBaseURL()
			embeddingModel = configGetter.GetEmbeddingModel()
		}
	}

	embeddingConfig := &embeddingConfigWrapper{
		apiKey:         apiKey,
		baseURL:        baseURL,
		embeddingModel: embeddingModel,
	}

	embedder, err := common.NewEmbedding(ctx, embeddingConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	// embedding查询 - 直接获取float32向量
	dim := g.Cfg().MustGet(ctx, "milvus.dim", 1024).Int()
	vectors, err := embedder.EmbedStrings(ctx, []string{query}, dim)
	if err != nil {
		return nil, fmt.Errorf("embedding has error: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("invalid return length of vector, got=%d, expected=1", len(vectors))
	}

	entityVectors := []entity.Vector{entity.FloatVector(vectors[0])}

	// 准备搜索选项
	searchOpt := milvusclient.NewSearchOption(r.collectionName, topK, entityVectors).
		WithANNSField(r.vectorField).
		WithOutputFields("id", common.FieldContent, common.DocumentId, common.FieldMetadata).
		WithConsistencyLevel(entity.ClBounded)

	if partition != "" {
		searchOpt = searchOpt.WithPartitions(partition)
	}

	if filter != "" {
		searchOpt = searchOpt.WithFilter(filter)
	}

	// 搜索集合
	results, err := r.client.Search(ctx, searchOpt)
	if err != nil {
		return nil, fmt.Errorf("search has error: %w", err)
	}

	if len(results) == 0 {
		return []*schema.Document{}, nil
	}

	docs, err := convertColumnsToDocuments(results[0].Fields, results[0].Scores)
	if err != nil {
		return nil, err
	}

	// 权限控制：被禁用的chunk不对外返回
	docs, err = filterActiveChunks(ctx, docs)
	if err != nil {
		return nil, err
	}

	if options.ScoreThreshold != nil {
		docs = filterByScoreThreshold(docs, *options.ScoreThreshold)
	}

	return docs, nil
}

// filterByScoreThreshold 按归一化分数阈值过滤
// COSINE原始分数范围为0~2，阈值是0~1的归一化值，比较前先除以2
func filterByScoreThreshold(docs []*schema.Document, threshold float64) []*schema.Document {
	filtered := make([]*schema.Document, 0, len(docs))
	for _, doc := range docs {
		if float64(doc.Score)/2.0 >= threshold {
			filtered = append(filtered, doc)
		}
	}
	return filtered
}

// GetType 返回检索器类型
func (r *milvusRetriever) GetType() string {
	return "MilvusRetriever"
}

// convertColumnsToDocuments 将Milvus列数据转换为文档
func convertColumnsToDocuments(columns []column.Column, scores []float32) ([]*schema.Document, error) {
	if len(columns) == 0 {
		return nil, nil
	}

	numDocs := columns[0].Len()
	result := make([]*schema.Document, numDocs)
	for i := range result {
		result[i] = &schema.Document{
			MetaData: make(map[string]any),
		}
	}

	for i := 0; i < numDocs && i < len(scores); i++ {
		result[i].Score = scores[i]
	}

	for _, col := range columns {
		switch col.Name() {
		case "id":
			for i := 0; i < col.Len(); i++ {
				val, err := col.Get(i)
				if err != nil {
					return nil, fmt.Errorf("failed to get id: %w", err)
				}
				if str, ok := val.(string); ok {
					result[i].ID = str
				}
			}
		case common.FieldContent:
			for i := 0; i < col.Len(); i++ {
				val, err := col.Get(i)
				if err != nil {
					return nil, fmt.Errorf("failed to get content: %w", err)
				}
				if str, ok := val.(string); ok {
					result[i].Content = str
				}
			}
		case common.FieldContentVector:
			// 向量只用于相似度搜索，不需要回填到文档中
		case common.FieldMetadata:
			for i := 0; i < col.Len(); i++ {
				val, err := col.Get(i)
				if err != nil || val == nil {
					continue
				}
				// metadata 字段可能以 string 或 []byte 返回，统一按 JSON 解析
				switch v := val.(type) {
				case string:
					var metadata map[string]any
					if err := json.Unmarshal([]byte(v), &metadata); err == nil {
						for k, mv := range metadata {
							result[i].MetaData[k] = mv
						}
					}
				case []byte:
					var metadata map[string]any
					if err := json.Unmarshal(v, &metadata); err == nil {
						for k, mv := range metadata {
							result[i].MetaData[k] = mv
						}
					}
				}
			}
		case common.DocumentId:
			for i := 0; i < col.Len(); i++ {
				val, err := col.Get(i)
				if err != nil {
					continue
				}
				if str, ok := val.(string); ok {
					result[i].MetaData[common.DocumentId] = str
				}
			}
		default:
			// 其他字段添加到metadata
			for i := 0; i < col.Len(); i++ {
				val, err := col.Get(i)
				if err != nil {
					continue
				}
				result[i].MetaData[col.Name()] = val
			}
		}
	}

	return result, nil
}

// ConvertSearchResultsToDocuments converts Milvus search results to schema.Document
// and filters out chunks with status != 1 for permission control
func (m *MilvusStore) ConvertSearchResultsToDocuments(ctx context.Context, columns []column.Column, scores []float32) ([]*schema.Document, error) {
	result, err := convertColumnsToDocuments(columns, scores)
	if err != nil {
		return nil, err
	}
	return filterActiveChunks(ctx, result)
}

// filterActiveChunks 过滤掉 status != 1 的chunks（权限控制）
func filterActiveChunks(ctx context.Context, result []*schema.Document) ([]*schema.Document, error) {
	if len(result) == 0 {
		return result, nil
	}

	chunkIDs := make([]string, 0, len(result))
	for _, doc := range result {
		if doc.ID != "" {
			chunkIDs = append(chunkIDs, doc.ID)
		}
	}

	if len(chunkIDs) > 0 {
		activeIDs, err := dao.Chunks.GetActiveChunkIDs(ctx, chunkIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to query chunk status: %w", err)
		}

		filtered := make([]*schema.Document, 0, len(result))
		for _, doc := range result {
			if activeIDs.Contains(doc.ID) {
				filtered = append(filtered, doc)
			}
		}

		return filtered, nil
	}

	return result, nil
}

// VectorSearchOnly 仅使用向量检索的通用方法
func (m *MilvusStore) VectorSearchOnly(ctx context.Context, conf GeneralRetrieverConfig, query string, libraryId string, topK int, score float64) ([]*schema.Document, error) {
	var filter string
	// library name == collection name
	collectionName := libraryId

	r, err := m.NewRetriever(ctx, conf, collectionName)
	if err != nil {
		g.Log().Errorf(ctx, "failed to create retriever for collection %s, err=%v", collectionName, err)
		return nil, err
	}

	// Milvus 检索的 TopK，可以设置得比最终需要的数量大一些
	// 因为后续会经过 rerank 重新排序
	milvusTopK := topK * 5 // 取5倍数量，给 rerank 更多选择空间
	if milvusTopK < 20 {
		milvusTopK = 20 // 至少取20个
	}

	var options []Option
	options = append(options, WithTopK(milvusTopK))

	// 只有在有过滤条件时才添加 filter
	if filter != "" {
		options = append(options, WithFilter(filter))
	}

	docs, err := r.Retrieve(ctx, query, options...)
	if err != nil {
		return nil, err
	}

	// 归一化Milvus的COSINE分数（0-2范围）到标准的0-1范围
	// Milvus COSINE分数含义：0=完全相反, 1=正交, 2=完全相同
	for _, s := range docs {
		s.Score = s.Score / 2.0
	}

	// 去重
	docs = common.RemoveDuplicates(docs, func(doc *schema.Document) string {
		return doc.ID
	})

	// 按照向量相似度排序并截取 TopK
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Score > docs[j].Score
	})
	if len(docs) > topK {
		docs = docs[:topK]
	}

	// 过滤低分文档
	var relatedDocs []*schema.Document
	for _, doc := range docs {
		if doc.Score < float32(score) {
			g.Log().Debugf(ctx, "score less: %v, related: %v", doc.Score, doc.Content)
			continue
		}
		relatedDocs = append(relatedDocs, doc)
	}

	return relatedDocs, nil
}
