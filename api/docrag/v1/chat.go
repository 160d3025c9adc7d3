package v1

import (
	"github.com/gogf/gf/v2/frame/g"
	"github.com/minewander/docrag/pkg/schema"
)

type ChatReq struct {
	g.Meta    `path:"/v1/chat" method:"post" tags:"chat"`
	Question  string  `json:"question" v:"required"`
	LibraryId string  `json:"library_id" v:"required"`
	TopK      int     `json:"top_k"` // 默认为5
	Score     float64 `json:"score"` // 默认为0.2
	Stream    bool    `json:"stream"`
}

type ChatRes struct {
	g.Meta     `mime:"application/json"`
	Answer     string             `json:"answer"`
	References []*schema.Document `json:"references"`
}
