package docrag

import (
	"context"

	v1 "github.com/minewander/docrag/api/docrag/v1"
	"github.com/minewander/docrag/internal/logic/library"
	gormModel "github.com/minewander/docrag/internal/model/gorm"
	"github.com/gogf/gf/v2/frame/g"
)

const timeLayout = "2006-01-02 15:04:05"

func (c *ControllerV1) DocumentsList(ctx context.Context, req *v1.DocumentsListReq) (res *v1.DocumentsListRes, err error) {
	g.Log().Infof(ctx, "DocumentsList request received - LibraryId: %s, Page: %d, Size: %d",
		req.LibraryId, req.Page, req.Size)

	documents, total, err := library.GetDocumentsList(ctx, req.LibraryId, req.Page, req.Size)
	if err != nil {
		return
	}

	data := make([]v1.DocumentInfo, 0, len(documents))
	for _, doc := range documents {
		data = append(data, toDocumentInfo(doc))
	}

	res = &v1.DocumentsListRes{
		Data:  data,
		Total: int(total),
		Page:  req.Page,
		Size:  req.Size,
	}

	return
}

func toDocumentInfo(doc gormModel.Document) v1.DocumentInfo {
	info := v1.DocumentInfo{
		Id:             doc.ID,
		LibraryId:      doc.LibraryId,
		FileName:       doc.FileName,
		Title:          doc.Title,
		CollectionName: doc.CollectionName,
		TotalPages:     doc.TotalPages,
		Status:         int(doc.Status),
	}
	if doc.CreateTime != nil {
		info.CreateTime = doc.CreateTime.Format(timeLayout)
	}
	if doc.UpdateTime != nil {
		info.UpdateTime = doc.UpdateTime.Format(timeLayout)
	}
	return info
}
