package file_store

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/minewander/docrag/core/errors"
)

// SaveFileToLocal 保存文件到本地存储
func SaveFileToLocal(ctx context.Context, libraryId string, fileName string, file multipart.File) (finalPath string, err error) {
	// 构建目标目录路径: upload/library_file/文档库id
	targetDir := filepath.Join("upload", "library_file", libraryId)

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		g.Log().Errorf(ctx, "Failed to create directory %s: %v", targetDir, err)
		return "", errors.Newf(errors.ErrFileUploadFailed, "failed to create directory %s: %v", targetDir, err)
	}

	finalPath = filepath.Join(targetDir, fileName)

	destFile, err := os.Create(finalPath)
	if err != nil {
		g.Log().Errorf(ctx, "Failed to create file %s: %v", finalPath, err)
		return "", errors.Newf(errors.ErrFileUploadFailed, "failed to create file %s: %v", finalPath, err)
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, file)
	if err != nil {
		g.Log().Errorf(ctx, "Failed to write file %s: %v", finalPath, err)
		_ = os.Remove(finalPath)
		return "", errors.Newf(errors.ErrFileUploadFailed, "failed to write file %s: %v", finalPath, err)
	}

	g.Log().Infof(ctx, "File saved to local storage: %s", finalPath)
	return finalPath, nil
}
