package docrag

import (
	"context"

	v1 "github.com/minewander/docrag/api/docrag/v1"
	"github.com/minewander/docrag/internal/logic/library"
)

func (c *ControllerV1) ChunksList(ctx context.Context, req *v1.ChunksListReq) (res *v1.ChunksListRes, err error) {
	chunks, total, err := library.GetChunksList(ctx, req.DocumentId, req.Page, req.Size)
	if err != nil {
		return
	}

	data := make([]v1.ChunkInfo, 0, len(chunks))
	for _, chunk := range chunks {
		info := v1.ChunkInfo{
			Id:             chunk.ID,
			DocumentId:     chunk.DocumentID,
			Content:        chunk.Content,
			CollectionName: chunk.CollectionName,
			Source:         chunk.Source,
			Page:           chunk.Page,
			TotalPages:     chunk.TotalPages,
			Title:          chunk.Title,
			Status:         chunk.Status,
		}
		if chunk.CreateTime != nil {
			info.CreateTime = chunk.CreateTime.Format(timeLayout)
		}
		data = append(data, info)
	}

	return &v1.ChunksListRes{
		Data:  data,
		Total: int(total),
		Page:  req.Page,
		Size:  req.Size,
	}, nil
}
