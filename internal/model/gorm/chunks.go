package gorm

import (
	"time"
)

// Chunk GORM模型定义
// source/page/total_pages/title 为规范化后的引用元数据，与向量库中的 metadata 一致
type Chunk struct {
	ID             string     `gorm:"primaryKey;column:id;varchar(255)"`
	DocumentID     string     `gorm:"column:document_id;type:varchar(255);not null;index"`
	Content        string     `gorm:"column:content;type:text"`
	CollectionName string     `gorm:"column:collection_name;type:varchar(255)"`
	Source         string     `gorm:"column:source;type:varchar(512)"`
	Page           float64    `gorm:"column:page;not null;default:0"`
	TotalPages     float64    `gorm:"column:total_pages;not null;default:0"`
	Title          string     `gorm:"column:title;type:varchar(512)"`
	Status         int8       `gorm:"column:status;not null;default:1"`
	CreateTime     *time.Time `gorm:"column:create_time;autoCreateTime"`
	UpdateTime     *time.Time `gorm:"column:update_time;autoUpdateTime"`

	Document Document `gorm:"foreignKey:DocumentID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:RESTRICT"`
}

// TableName 设置表名
func (Chunk) TableName() string {
	return "chunks"
}
