package indexer

import (
	"os"

	einoSchema "github.com/cloudwego/eino/schema"

	"github.com/minewander/docrag/pkg/schema"
)

// toStoreDocuments 将加载/切分产物转换为入库用的文档结构
// 原始元数据原样带入，由后续的 NormalizeChunks 统一成四键结构
func toStoreDocuments(docs []*einoSchema.Document) []*schema.Document {
	out := make([]*schema.Document, len(docs))
	for i, doc := range docs {
		out[i] = &schema.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			MetaData: doc.MetaData,
		}
	}
	return out
}

// fileExists 检查文件是否存在
func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
