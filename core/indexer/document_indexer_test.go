package indexer

import (
	"context"
	"testing"

	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/milvusclient"
	"github.com/stretchr/testify/assert"

	"github.com/minewander/docrag/core/vector_store"
	"github.com/minewander/docrag/pkg/schema"
)

// stubVectorStore 用于测试的内存向量库实现
type stubVectorStore struct {
	existing map[string]bool
	created  []string
}

func newStubVectorStore(existing ...string) *stubVectorStore {
	s := &stubVectorStore{existing: make(map[string]bool)}
	for _, name := range existing {
		s.existing[name] = true
	}
	return s
}

func (s *stubVectorStore) CreateCollection(ctx context.Context, collectionName string) error {
	s.created = append(s.created, collectionName)
	s.existing[collectionName] = true
	return nil
}

func (s *stubVectorStore) CollectionExists(ctx context.Context, collectionName string) (bool, error) {
	return s.existing[collectionName], nil
}

func (s *stubVectorStore) DeleteCollection(ctx context.Context, collectionName string) error {
	delete(s.existing, collectionName)
	return nil
}

func (s *stubVectorStore) InsertVectors(ctx context.Context, collectionName string, chunks []*schema.Document, vectors [][]float32) ([]string, error) {
	return nil, nil
}

func (s *stubVectorStore) DeleteByDocumentID(ctx context.Context, collectionName string, documentID string) error {
	return nil
}

func (s *stubVectorStore) DeleteByChunkID(ctx context.Context, collectionName string, chunkID string) error {
	return nil
}

func (s *stubVectorStore) CreateDatabaseIfNotExists(ctx context.Context) error {
	return nil
}

func (s *stubVectorStore) GetMilvusClient() *milvusclient.Client {
	return nil
}

func (s *stubVectorStore) NewRetriever(ctx context.Context, conf interface{}, collectionName string) (vector_store.Retriever, error) {
	return nil, nil
}

func (s *stubVectorStore) ConvertSearchResultsToDocuments(ctx context.Context, columns []column.Column, scores []float32) ([]*schema.Document, error) {
	return nil, nil
}

func (s *stubVectorStore) VectorSearchOnly(ctx context.Context, conf vector_store.GeneralRetrieverConfig, query string, libraryId string, topK int, score float64) ([]*schema.Document, error) {
	return nil, nil
}

func TestEnsureCollectionCreatesMissingCollection(t *testing.T) {
	ctx := context.Background()
	store := newStubVectorStore()

	// 新文档库首次索引时集合不存在，需要创建
	err := ensureCollection(ctx, store, "library_abc123")
	assert.NoError(t, err)
	assert.Equal(t, []string{"library_abc123"}, store.created)

	// 再次索引时集合已存在，不重复创建
	err = ensureCollection(ctx, store, "library_abc123")
	assert.NoError(t, err)
	assert.Len(t, store.created, 1)
}

func TestEnsureCollectionSkipsExisting(t *testing.T) {
	ctx := context.Background()
	store := newStubVectorStore("library_existing")

	err := ensureCollection(ctx, store, "library_existing")
	assert.NoError(t, err)
	assert.Empty(t, store.created)
}

func TestEnsureCollectionRejectsInvalidName(t *testing.T) {
	ctx := context.Background()
	store := newStubVectorStore()

	// 非法集合名（数字开头、含连字符、空）直接拒绝，不触碰向量库
	for _, name := range []string{"123library", "library-abc", ""} {
		err := ensureCollection(ctx, store, name)
		assert.Error(t, err, "name %q should be rejected", name)
	}
	assert.Empty(t, store.created)
}
