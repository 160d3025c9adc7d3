package gorm

import (
	"time"
)

// Document GORM模型定义
type Document struct {
	ID             string     `gorm:"primaryKey;column:id;varchar(255)"`
	LibraryId      string     `gorm:"column:library_id;type:varchar(255);not null;index"`
	FileName       string     `gorm:"column:file_name;type:varchar(255)"`
	Title          string     `gorm:"column:title;type:varchar(512)"`
	CollectionName string     `gorm:"column:collection_name;type:varchar(255)"`
	SHA256         string     `gorm:"column:sha256;type:varchar(64);index"`
	TotalPages     int        `gorm:"column:total_pages;type:int;not null;default:0"`
	ObjectBucket   string     `gorm:"column:object_bucket;type:varchar(255)"`
	ObjectLocation string     `gorm:"column:object_location;type:varchar(255)"`
	LocalFilePath  string     `gorm:"column:local_file_path;type:varchar(512)"` // 本地文件路径
	Status         int8       `gorm:"column:status;type:tinyint;not null;default:0"`
	CreateTime     *time.Time `gorm:"column:create_time;type:timestamp;autoCreateTime"`
	UpdateTime     *time.Time `gorm:"column:update_time;type:timestamp;autoUpdateTime"`
}

// TableName 设置表名
func (Document) TableName() string {
	return "documents"
}
