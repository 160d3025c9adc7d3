package file_store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gogf/gf/v2/os/gctx"

	"github.com/gogf/gf/v2/frame/g"
)

// StorageType 存储类型
type StorageType string

const (
	StorageTypeObject StorageType = "object"
	StorageTypeLocal  StorageType = "local"
)

var storageType StorageType

// InitUploadDirectories 初始化 upload 目录结构到项目根目录
func InitUploadDirectories() {
	ctx := gctx.New()

	wd, err := os.Getwd()
	if err != nil {
		g.Log().Warningf(ctx, "Failed to get working directory: %v", err)
		return
	}

	// 查找项目根目录
	projectRoot := wd
	for !strings.HasSuffix(projectRoot, "docrag") && projectRoot != "/" {
		projectRoot = filepath.Dir(projectRoot)
	}

	// 如果找不到 docrag 目录，则使用当前工作目录
	if projectRoot == "/" {
		projectRoot = wd
	}

	uploadDirs := []string{
		filepath.Join(projectRoot, "upload"),
		filepath.Join(projectRoot, "upload/library_file"),
	}

	for _, dir := range uploadDirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			g.Log().Warningf(ctx, "Failed to create directory %s: %v", dir, err)
		}
	}
}

// SetStorageType 设置存储类型
func SetStorageType(storageTypeVal StorageType) {
	storageType = storageTypeVal
}

// GetStorageType 获取存储类型
func GetStorageType() StorageType {
	return storageType
}
