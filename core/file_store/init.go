package file_store

import (
	"github.com/gogf/gf/v2/os/gctx"

	"github.com/gogf/gf/v2/frame/g"
)

// InitStorage 初始化存储系统
func InitStorage() {
	ctx := gctx.New()

	// 获取存储类型配置，默认为 local
	storageTypeStr := g.Cfg().MustGet(ctx, "storage.type", "local").String()

	switch storageTypeStr {
	case "object":
		// 检查对象存储配置是否存在
		endpoint := g.Cfg().MustGet(ctx, "objectStore.endpoint", "").String()
		if endpoint == "" {
			// 如果没有配置对象存储，降级为本地存储
			SetStorageType(StorageTypeLocal)
			g.Log().Infof(ctx, "Object store not configured, using local storage")
			InitUploadDirectories()
			return
		}

		SetStorageType(StorageTypeObject)
		accessKey := g.Cfg().MustGet(ctx, "objectStore.accessKey").String()
		secretKey := g.Cfg().MustGet(ctx, "objectStore.secretKey").String()
		bucketName := g.Cfg().MustGet(ctx, "objectStore.bucketName").String()
		ssl := g.Cfg().MustGet(ctx, "objectStore.ssl", false).Bool()

		err := InitObjectStore(ctx, endpoint, accessKey, secretKey, bucketName, ssl)
		if err != nil {
			g.Log().Fatalf(ctx, "failed to initialize object store: %v", err)
			return
		}

		g.Log().Infof(ctx, "Using object storage as configured")
		InitUploadDirectories()
	default:
		SetStorageType(StorageTypeLocal)
		g.Log().Infof(ctx, "Using local storage")
		InitUploadDirectories()
	}
}
