package v1

import (
	"github.com/gogf/gf/v2/frame/g"
)

// Status 文档索引状态
type Status int

const (
	StatusPending  Status = 0 // 待索引
	StatusIndexing Status = 1 // 索引中
	StatusActive   Status = 2 // 已激活
	StatusFailed   Status = 3 // 索引失败
)

// ChunkStatus 文档块状态
type ChunkStatus int8

const (
	ChunkStatusDisabled ChunkStatus = 0 // 禁用，检索时被过滤
	ChunkStatusActive   ChunkStatus = 1 // 启用
)

// DocumentInfo 文档信息（列表返回用）
type DocumentInfo struct {
	Id             string `json:"id"`
	LibraryId      string `json:"library_id"`
	FileName       string `json:"file_name"`
	Title          string `json:"title"`
	CollectionName string `json:"collection_name"`
	TotalPages     int    `json:"total_pages"`
	Status         int    `json:"status"`
	CreateTime     string `json:"create_time"`
	UpdateTime     string `json:"update_time"`
}

type DocumentsListReq struct {
	g.Meta    `path:"/v1/documents" method:"get" tags:"documents"`
	LibraryId string `p:"library_id" dc:"Library ID"`
	Page      int    `p:"page" dc:"page" v:"required|min:1" d:"1"`
	Size      int    `p:"size" dc:"size" v:"required|min:1|max:100" d:"10"`
}

type DocumentsListRes struct {
	g.Meta `mime:"application/json"`
	Data   []DocumentInfo `json:"data"`
	Total  int            `json:"total"`
	Page   int            `json:"page"`
	Size   int            `json:"size"`
}

type DocumentsDeleteReq struct {
	g.Meta     `path:"/v1/documents" method:"delete" tags:"documents"`
	DocumentId string `p:"document_id" dc:"Document ID" v:"required"`
}

type DocumentsDeleteRes struct {
	g.Meta `mime:"application/json"`
}

// DocumentsReIndexReq 重新索引已有文档（重新切分并向量化）
type DocumentsReIndexReq struct {
	g.Meta      `path:"/v1/documents/reindex" method:"post" tags:"documents"`
	DocumentIds []string `p:"document_ids" dc:"Document ID list" v:"required"`
	ChunkSize   int      `p:"chunk_size" dc:"Document chunk size" d:"1000"`
	OverlapSize int      `p:"overlap_size" dc:"Chunk overlap size" d:"100"`
	Separator   string   `p:"separator" dc:"Custom separator for document splitting"`
}

type DocumentsReIndexRes struct {
	g.Meta  `mime:"application/json"`
	Message string `json:"message" dc:"Indexing task started"`
}
