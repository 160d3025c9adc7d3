package docrag

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gfile"

	v1 "github.com/minewander/docrag/api/docrag/v1"
	"github.com/minewander/docrag/core/common"
	"github.com/minewander/docrag/core/errors"
	"github.com/minewander/docrag/core/file_store"
	"github.com/minewander/docrag/internal/dao"
	"github.com/minewander/docrag/internal/logic/library"
	gormModel "github.com/minewander/docrag/internal/model/gorm"
)

// UploadFile 文件上传接口，仅登记文档记录，索引由 /v1/index 触发
func (c *ControllerV1) UploadFile(ctx context.Context, req *v1.UploadFileReq) (res *v1.UploadFileRes, err error) {
	g.Log().Infof(ctx, "UploadFile request received - URL: %s, LibraryId: %s", req.URL, req.LibraryId)

	res = &v1.UploadFileRes{}

	var (
		fileSHA256 string
		fileName   string
	)

	// 步骤1: 计算 SHA256（无论是 file 还是 URL）
	if req.File != nil {
		fileSHA256, err = common.CalculateFileSHA256(req.File.FileHeader)
		if err != nil {
			g.Log().Errorf(ctx, "calculate file SHA256 failed, err=%v", err)
			return nil, errors.Newf(errors.ErrFileReadFailed, "calculate file SHA256 failed: %v", err)
		}
		fileName = req.File.Filename
	} else if req.URL != "" {
		fileSHA256, err = common.CalculateURLFileSHA256(req.URL)
		if err != nil {
			g.Log().Errorf(ctx, "calculate URL file SHA256 failed, err=%v", err)
			return nil, errors.Newf(errors.ErrFileReadFailed, "calculate URL file SHA256 failed: %v", err)
		}
		fileName = file_store.GetFileNameFromURL(req.URL)
	} else {
		return nil, errors.New(errors.ErrInvalidParameter, "no file or URL provided")
	}

	// 步骤2: 同一知识库内相同内容哈希的文档拒绝重复上传
	count, err := library.CountDocumentsBySHA256(ctx, req.LibraryId, fileSHA256)
	if err != nil {
		return nil, errors.Newf(errors.ErrDatabaseQuery, "query document by SHA256 failed: %v", err)
	}
	if count > 0 {
		g.Log().Infof(ctx, "File already exists, SHA256: %s, upload rejected", fileSHA256)
		res.Status = "failed"
		res.Message = "File already exists, upload rejected"
		return res, errors.New(errors.ErrFileAlreadyExists, "file already exists")
	}

	// 步骤3: 根据配置决定存储方式，保存文件
	var (
		localFilePath  string
		objectBucket   string
		objectLocation string
	)

	storageType := file_store.GetStorageType()
	if storageType == file_store.StorageTypeObject {
		objectConfig := file_store.GetObjectStoreConfig()

		var reader io.ReadSeeker
		if req.File != nil {
			f, openErr := req.File.Open()
			if openErr != nil {
				return nil, errors.Newf(errors.ErrFileReadFailed, "failed to open uploaded file: %v", openErr)
			}
			defer f.Close()
			reader = f
		} else {
			tmpFile, dlErr := downloadToTempFile(req.URL)
			if dlErr != nil {
				return nil, errors.Newf(errors.ErrFileUploadFailed, "failed to download URL file: %v", dlErr)
			}
			defer func() {
				_ = tmpFile.Close()
				_ = os.Remove(tmpFile.Name())
			}()
			reader = tmpFile
		}

		localFilePath, objectLocation, err = file_store.SaveFileToObjectStore(ctx, objectConfig.Client, objectConfig.BucketName, req.LibraryId, fileName, reader)
		if err != nil {
			g.Log().Errorf(ctx, "Failed to upload file to object store: %v", err)
			if localFilePath != "" {
				_ = gfile.Remove(localFilePath)
			}
			return nil, errors.Newf(errors.ErrFileUploadFailed, "failed to upload file to object store: %v", err)
		}
		objectBucket = objectConfig.BucketName
	} else {
		if req.File != nil {
			f, openErr := req.File.Open()
			if openErr != nil {
				return nil, errors.Newf(errors.ErrFileReadFailed, "failed to open uploaded file: %v", openErr)
			}
			defer f.Close()
			localFilePath, err = file_store.SaveFileToLocal(ctx, req.LibraryId, fileName, f)
			if err != nil {
				return nil, errors.Newf(errors.ErrFileUploadFailed, "failed to save file to local storage: %v", err)
			}
		} else {
			localFilePath = filepath.Join("upload", "library_file", req.LibraryId, fileName)
			if err = downloadAndSaveFile(req.URL, localFilePath); err != nil {
				g.Log().Errorf(ctx, "download and save file failed, url=%s, path=%s, err=%v", req.URL, localFilePath, err)
				return nil, errors.Newf(errors.ErrFileUploadFailed, "failed to download URL file: %v", err)
			}
		}
	}

	// 步骤4: 保存文档记录（事务版本）
	tx := dao.GetDB().Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			err = gerror.Newf("panic occurred during UploadFile: %v", r)
		}
	}()

	document := gormModel.Document{
		LibraryId:      req.LibraryId,
		FileName:       fileName,
		CollectionName: req.LibraryId, // 知识库ID作为collection名称
		SHA256:         fileSHA256,
		ObjectBucket:   objectBucket,
		ObjectLocation: objectLocation,
		LocalFilePath:  localFilePath,
		Status:         int8(v1.StatusPending),
	}

	document, err = library.SaveDocumentsInfoWithTx(ctx, tx, document)
	if err != nil {
		g.Log().Errorf(ctx, "SaveDocumentsInfo failed, err=%v", err)
		tx.Rollback()
		_ = gfile.Remove(localFilePath)
		return nil, errors.Newf(errors.ErrDatabaseInsert, "failed to save document information: %v", err)
	}

	if err = tx.Commit().Error; err != nil {
		g.Log().Errorf(ctx, "UploadFile: transaction commit failed, err: %v", err)
		return nil, errors.Newf(errors.ErrInternalError, "failed to commit transaction: %v", err)
	}

	res.DocumentId = document.ID
	res.Status = "success"
	res.Message = "File uploaded successfully"
	return res, nil
}

// downloadToTempFile 下载URL文件到临时文件
func downloadToTempFile(url string) (*os.File, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, gerror.Newf("URL returned status: %s", resp.Status)
	}

	tmpFile, err := os.CreateTemp("", "docrag-upload-*")
	if err != nil {
		return nil, err
	}

	if _, err = io.Copy(tmpFile, resp.Body); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpFile.Name())
		return nil, err
	}

	if _, err = tmpFile.Seek(0, io.SeekStart); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpFile.Name())
		return nil, err
	}

	return tmpFile, nil
}

// downloadAndSaveFile 下载URL文件并保存到指定路径
func downloadAndSaveFile(url, targetPath string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return gerror.Newf("URL returned status: %s", resp.Status)
	}

	if err = os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return err
	}

	dst, err := os.Create(targetPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, resp.Body)
	return err
}
