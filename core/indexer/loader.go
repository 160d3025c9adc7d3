package indexer

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/cloudwego/eino-ext/components/document/loader/file"
	document_url "github.com/cloudwego/eino-ext/components/document/loader/url"
	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/components/document/parser"
	"github.com/cloudwego/eino/schema"
	"github.com/minio/minio-go/v7"

	"github.com/minewander/docrag/core/common"
	"github.com/minewander/docrag/core/file_store"
)

// Loader 创建多来源文档加载器
// 支持本地文件、HTTP(S) URL 和对象存储 store:// 协议
func Loader(ctx context.Context, client *minio.Client, bucketName string) (ldr document.Loader, err error) {
	mldr := &multiLoader{
		objectBucketName: bucketName,
		objectClient:     client,
	}

	parserInstance, err := newParser(ctx)
	if err != nil {
		return nil, err
	}

	fldr, err := file.NewFileLoader(ctx, &file.FileLoaderConfig{
		UseNameAsID: false,
		Parser:      parserInstance,
	})
	if err != nil {
		return nil, err
	}
	mldr.fileLoader = fldr

	uldr, err := document_url.NewLoader(ctx, &document_url.LoaderConfig{})
	if err != nil {
		return nil, err
	}
	mldr.urlLoader = uldr

	mldr.parser = parserInstance

	return mldr, nil
}

type multiLoader struct {
	fileLoader       document.Loader
	urlLoader        document.Loader
	objectClient     *minio.Client
	objectBucketName string
	parser           parser.Parser
}

func (x *multiLoader) Load(ctx context.Context, src document.Source, opts ...document.LoaderOption) ([]*schema.Document, error) {
	var (
		docs []*schema.Document
		err  error
	)
	switch {
	case isObjectStoreURL(src.URI):
		docs, err = x.loadObjectStoreObject(ctx, src)
	case common.IsURL(src.URI):
		docs, err = x.urlLoader.Load(ctx, src, opts...)
	default:
		docs, err = x.fileLoader.Load(ctx, src, opts...)
	}
	if err != nil {
		return nil, err
	}

	stampRawMetadata(docs, src.URI)
	return docs, nil
}

// isObjectStoreURL 检查 URI 是否是对象存储协议
func isObjectStoreURL(uri string) bool {
	return strings.HasPrefix(uri, "store://")
}

// loadObjectStoreObject 从对象存储加载文档
func (x *multiLoader) loadObjectStoreObject(ctx context.Context, src document.Source) ([]*schema.Document, error) {
	u, err := url.Parse(src.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse object store URL: %w", err)
	}

	if u.Scheme != "store" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}

	objectName := strings.TrimPrefix(u.Path, "/")
	if objectName == "" {
		return nil, fmt.Errorf("empty object name in URL: %s", src.URI)
	}

	content, err := file_store.ReadObject(ctx, x.objectClient, x.objectBucketName, objectName)
	if err != nil {
		return nil, fmt.Errorf("failed to read object from store: %w", err)
	}

	reader := bytes.NewReader(content)
	docs, err := x.parser.Parse(ctx, reader, parser.WithURI(src.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document content: %w", err)
	}

	return docs, nil
}

// stampRawMetadata 在加载结果上补齐原始引用元数据
// 这里的键是解析器产出的原始形态，后续由规范化步骤统一成固定四键
func stampRawMetadata(docs []*schema.Document, uri string) {
	total := len(docs)
	title := titleFromURI(uri)

	for i, doc := range docs {
		if doc.MetaData == nil {
			doc.MetaData = make(map[string]interface{})
		}
		if _, ok := doc.MetaData[common.RawKeySource]; !ok {
			doc.MetaData[common.RawKeySource] = uri
		}
		// 按页解析的文档携带页码，单体文档保持缺省
		if total > 1 {
			if _, ok := doc.MetaData[common.RawKeyPageLabel]; !ok {
				doc.MetaData[common.RawKeyPageLabel] = i + 1
			}
			if _, ok := doc.MetaData[common.RawKeyTotalPages]; !ok {
				doc.MetaData[common.RawKeyTotalPages] = total
			}
		}
		if _, ok := doc.MetaData[common.RawKeyTitle]; !ok && title != "" {
			doc.MetaData[common.RawKeyTitle] = title
		}
	}
}

// titleFromURI 从 URI 提取文档标题（不带扩展名的文件名）
func titleFromURI(uri string) string {
	base := filepath.Base(strings.TrimSuffix(uri, "/"))
	if base == "." || base == "/" || base == "" {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
