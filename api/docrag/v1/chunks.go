package v1

import (
	"github.com/gogf/gf/v2/frame/g"
)

// ChunkInfo 文档块信息，引用元数据四键与块内容一并返回
type ChunkInfo struct {
	Id             string  `json:"id"`
	DocumentId     string  `json:"document_id"`
	Content        string  `json:"content"`
	CollectionName string  `json:"collection_name"`
	Source         string  `json:"source"`
	Page           float64 `json:"page"`
	TotalPages     float64 `json:"total_pages"`
	Title          string  `json:"title"`
	Status         int8    `json:"status"`
	CreateTime     string  `json:"create_time"`
}

type ChunksListReq struct {
	g.Meta     `path:"/v1/chunks" method:"get" tags:"chunks"`
	DocumentId string `p:"document_id" dc:"document_id" v:"required"`
	Page       int    `p:"page" dc:"page" v:"required|min:1" d:"1"`
	Size       int    `p:"size" dc:"size" v:"required|min:1|max:100" d:"10"`
}

type ChunksListRes struct {
	g.Meta `mime:"application/json"`
	Data   []ChunkInfo `json:"data"`
	Total  int         `json:"total"`
	Page   int         `json:"page"`
	Size   int         `json:"size"`
}

type ChunkDeleteReq struct {
	g.Meta  `path:"/v1/chunks" method:"delete" tags:"chunks"`
	ChunkId string `p:"id" dc:"id" v:"required"`
}

type ChunkDeleteRes struct {
	g.Meta `mime:"application/json"`
}

type UpdateChunkReq struct {
	g.Meta `path:"/v1/chunks" method:"put" tags:"chunks"`
	Ids    []string `p:"ids" dc:"ids" v:"required"`
	Status int      `p:"status" dc:"status" v:"required|in:0,1"`
}

type UpdateChunkRes struct {
	g.Meta `mime:"application/json"`
}
