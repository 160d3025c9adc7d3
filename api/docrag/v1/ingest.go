package v1

import (
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"
)

// UploadFileReq 文件上传请求，仅登记文档，索引由 /v1/index 触发
type UploadFileReq struct {
	g.Meta    `path:"/v1/upload" method:"post" mime:"multipart/form-data" tags:"documents"`
	File      *ghttp.UploadFile `p:"file" type:"file" dc:"If it's a local file, upload the file directly"`
	URL       string            `p:"url" dc:"If it's a web file, just enter the URL" d:""`
	LibraryId string            `p:"library_id" dc:"Library ID" v:"required"`
}

type UploadFileRes struct {
	g.Meta     `mime:"application/json"`
	DocumentId string `json:"document_id" dc:"Document ID"`
	Status     string `json:"status" dc:"Upload status"`
	Message    string `json:"message" dc:"Status message"`
}

// IndexDocumentsReq 文档索引请求（批量切分并向量化）
type IndexDocumentsReq struct {
	g.Meta      `path:"/v1/index" method:"post" tags:"documents"`
	DocumentIds []string `p:"document_ids" dc:"Document ID list" v:"required"`
	ChunkSize   int      `p:"chunk_size" dc:"Document chunk size" d:"1000"`
	OverlapSize int      `p:"overlap_size" dc:"Chunk overlap size" d:"100"`
	Separator   string   `p:"separator" dc:"Custom separator for document splitting"`
}

type IndexDocumentsRes struct {
	g.Meta  `mime:"application/json"`
	Message string `json:"message" dc:"Indexing task started"`
}
