package file_store

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/minewander/docrag/core/errors"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type ObjectStoreConfig struct {
	Client     *minio.Client
	BucketName string
}

var objectStoreConfig ObjectStoreConfig

// InitObjectStore 初始化对象存储
func InitObjectStore(ctx context.Context, endpoint, accessKey, secretKey, bucketName string, ssl bool) error {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: ssl,
	})

	if err != nil {
		return errors.Newf(errors.ErrInternalError, "failed to create MinIO client: %v", err)
	}

	objectStoreConfig = ObjectStoreConfig{
		Client:     client,
		BucketName: bucketName,
	}

	// 创建 bucket，如果已存在则跳过
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return errors.Newf(errors.ErrInternalError, "failed to check if bucket exists: %v", err)
	}

	if exists {
		g.Log().Printf(ctx, "Bucket '%s' already exists, skipping creation.", bucketName)
		return nil
	}

	err = client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: ""})
	if err != nil {
		return errors.Newf(errors.ErrInternalError, "failed to create bucket: %v", err)
	}

	g.Log().Printf(ctx, "Created bucket '%s'", bucketName)
	return nil
}

// GetObjectStoreConfig 获取对象存储配置
func GetObjectStoreConfig() *ObjectStoreConfig {
	return &objectStoreConfig
}

// SaveFileToObjectStore 保存文件到对象存储
// 文件会先落到本地 upload/library_file/文档库id/文件名，再上传到对象存储
func SaveFileToObjectStore(ctx context.Context, client *minio.Client, bucketName string, libraryId string, fileName string, file io.ReadSeeker) (localPath string, objectKey string, err error) {
	targetDir := filepath.Join("upload", "library_file", libraryId)

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		g.Log().Errorf(ctx, "Failed to create directory %s: %v", targetDir, err)
		return "", "", errors.Newf(errors.ErrFileUploadFailed, "failed to create directory %s: %v", targetDir, err)
	}

	localPath = filepath.Join(targetDir, fileName)

	destFile, err := os.Create(localPath)
	if err != nil {
		g.Log().Errorf(ctx, "Failed to create local file %s: %v", localPath, err)
		return "", "", errors.Newf(errors.ErrFileUploadFailed, "failed to create local file %s: %v", localPath, err)
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, file)
	if err != nil {
		g.Log().Errorf(ctx, "Failed to write local file %s: %v", localPath, err)
		_ = os.Remove(localPath)
		return "", "", errors.Newf(errors.ErrFileUploadFailed, "failed to write local file %s: %v", localPath, err)
	}

	g.Log().Infof(ctx, "File saved to local storage: %s", localPath)

	// 上传到对象存储，路径为 bucketName/library_file/文档库id/文件名
	objectKey = filepath.Join("library_file", libraryId, fileName)

	uploadFile, err := os.Open(localPath)
	if err != nil {
		g.Log().Errorf(ctx, "Failed to open local file for upload: %v", err)
		return localPath, "", errors.Newf(errors.ErrFileReadFailed, "failed to open local file for upload: %v", err)
	}
	defer uploadFile.Close()

	stat, err := uploadFile.Stat()
	if err != nil {
		g.Log().Errorf(ctx, "Failed to get file stat: %v", err)
		return localPath, "", errors.Newf(errors.ErrFileReadFailed, "failed to get file stat: %v", err)
	}
	fileSize := stat.Size()

	// 检测内容类型
	buffer := make([]byte, 512)
	_, err = uploadFile.Read(buffer)
	if err != nil && err != io.EOF {
		g.Log().Errorf(ctx, "Failed to read file header: %v", err)
		return localPath, "", errors.Newf(errors.ErrFileReadFailed, "failed to read file header: %v", err)
	}

	_, err = uploadFile.Seek(0, 0)
	if err != nil {
		g.Log().Errorf(ctx, "Failed to seek file to beginning: %v", err)
		return localPath, "", errors.Newf(errors.ErrFileReadFailed, "failed to seek file to beginning: %v", err)
	}

	contentType := http.DetectContentType(buffer)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = client.PutObject(ctx, bucketName, objectKey, uploadFile, fileSize,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		g.Log().Errorf(ctx, "Failed to upload file to object store: %v", err)
		return localPath, "", errors.Newf(errors.ErrFileUploadFailed, "failed to upload to object store: %v", err)
	}

	g.Log().Infof(ctx, "File uploaded to object store: bucket=%s, key=%s", bucketName, objectKey)
	return localPath, objectKey, nil
}

// ReadObject 读取对象存储中的对象内容
func ReadObject(ctx context.Context, client *minio.Client, bucketName, objectName string) ([]byte, error) {
	obj, err := client.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Newf(errors.ErrFileReadFailed, "failed to get object %s: %v", objectName, err)
	}
	defer obj.Close()

	content, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Newf(errors.ErrFileReadFailed, "failed to read object %s: %v", objectName, err)
	}
	return content, nil
}

// DeleteObject 删除指定的对象
func DeleteObject(ctx context.Context, client *minio.Client, bucketName, objectName string) error {
	err := client.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Newf(errors.ErrOperationFailed, "failed to delete object %s: %v", objectName, err)
	}
	g.Log().Infof(ctx, "Deleted object '%s' from bucket '%s'", objectName, bucketName)
	return nil
}

// DownloadFile 从 bucket 下载文件到本地
func DownloadFile(ctx context.Context, client *minio.Client, bucketName, objectName, destFile string) error {
	err := client.FGetObject(ctx, bucketName, objectName, destFile, minio.GetObjectOptions{})
	if err != nil {
		return errors.Newf(errors.ErrFileReadFailed, "failed to download file %s: %v", objectName, err)
	}
	g.Log().Infof(ctx, "Downloaded '%s' from bucket '%s' to '%s'", objectName, bucketName, destFile)
	return nil
}

// GetFileNameFromURL 从URL中提取文件名
func GetFileNameFromURL(url string) string {
	parts := strings.Split(url, "/")
	name := parts[len(parts)-1]
	if name == "" {
		name = "unknown_file"
	}
	return name
}
