package indexer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/minewander/docrag/core/common"
	"github.com/minewander/docrag/pkg/schema"
)

// NormalizedMetadata 片段入库前的引用元数据，四个字段恒定存在
type NormalizedMetadata struct {
	// Source 来源文件路径，缺失时为空字符串
	Source string `json:"source"`
	// Page 页码标签，使用浮点以容忍非整数标签，缺失或无法解析时为 0
	Page float64 `json:"page"`
	// TotalPages 来源文档总页数，缺失或无法解析时为 0
	TotalPages float64 `json:"total_pages"`
	// Title 文档标题，缺失时为空字符串
	Title string `json:"title"`
}

// ToMap 返回一个新分配的四键 map
// 每次调用都产生独立副本，批处理时各片段之间绝不共享同一个元数据对象
func (m NormalizedMetadata) ToMap() map[string]interface{} {
	return map[string]interface{}{
		common.MetaKeySource:     m.Source,
		common.MetaKeyPage:       m.Page,
		common.MetaKeyTotalPages: m.TotalPages,
		common.MetaKeyTitle:      m.Title,
	}
}

// MalformedMetadataError 原始元数据中存在但无法解析为期望类型的字段
type MalformedMetadataError struct {
	Field      string      // 出错的字段名
	Value      interface{} // 原始值
	ChunkIndex int         // 批处理中的片段下标，单条处理时为 -1
}

func (e *MalformedMetadataError) Error() string {
	if e.ChunkIndex >= 0 {
		return fmt.Sprintf("malformed metadata field %q (value=%v) at chunk %d", e.Field, e.Value, e.ChunkIndex)
	}
	return fmt.Sprintf("malformed metadata field %q (value=%v)", e.Field, e.Value)
}

// IsMalformedMetadata 判断是否为元数据解析错误
func IsMalformedMetadata(err error) bool {
	_, ok := err.(*MalformedMetadataError)
	return ok
}

// NormalizeMetadata 将 loader/parser 提供的原始元数据映射规范化为固定四键结构
//
// 字段缺失不是错误，按默认值补齐；字段存在但无法解析为期望类型时，
// 该字段置为默认值并返回 *MalformedMetadataError（首个出错字段），
// 返回的记录仍然是完整可用的，由调用方决定跳过、降级还是中止。
func NormalizeMetadata(raw map[string]interface{}) (NormalizedMetadata, error) {
	var norm NormalizedMetadata
	var firstErr error

	norm.Source, firstErr = stringField(raw, common.RawKeySource, common.MetaKeySource, firstErr)
	norm.Page, firstErr = numericField(raw, common.RawKeyPageLabel, common.MetaKeyPage, firstErr)
	norm.TotalPages, firstErr = numericField(raw, common.RawKeyTotalPages, common.MetaKeyTotalPages, firstErr)
	norm.Title, firstErr = stringField(raw, common.RawKeyTitle, common.MetaKeyTitle, firstErr)

	return norm, firstErr
}

// NormalizeChunks 批量规范化片段元数据
//
// 输入 N 个片段则输出 N 个片段，顺序不变；每个片段的元数据被替换为
// 独立分配的四键 map。单个片段解析失败只记录告警并使用默认值，
// 绝不中断同批其他片段的处理。
func NormalizeChunks(ctx context.Context, chunks []*schema.Document) []*schema.Document {
	for i, chunk := range chunks {
		norm, err := NormalizeMetadata(chunk.MetaData)
		if err != nil {
			if mErr, ok := err.(*MalformedMetadataError); ok {
				mErr.ChunkIndex = i
			}
			// 引用展示降级优于中断整批入库
			g.Log().Warningf(ctx, "metadata normalization degraded, using defaults: %v", err)
		}
		chunk.MetaData = norm.ToMap()
	}
	return chunks
}

// stringField 读取字符串字段，缺失返回空串
func stringField(raw map[string]interface{}, rawKey, field string, prevErr error) (string, error) {
	v, ok := raw[rawKey]
	if !ok || v == nil {
		return "", prevErr
	}
	s, ok := v.(string)
	if !ok {
		if prevErr == nil {
			prevErr = &MalformedMetadataError{Field: field, Value: v, ChunkIndex: -1}
		}
		return "", prevErr
	}
	return s, prevErr
}

// numericField 读取数值字段，缺失返回 0
// 不同 parser 给出的类型不一致：字符串、json 反序列化的 float64、或原生整型都可接受
func numericField(raw map[string]interface{}, rawKey, field string, prevErr error) (float64, error) {
	v, ok := raw[rawKey]
	if !ok || v == nil {
		return 0, prevErr
	}

	switch n := v.(type) {
	case float64:
		return n, prevErr
	case float32:
		return float64(n), prevErr
	case int:
		return float64(n), prevErr
	case int32:
		return float64(n), prevErr
	case int64:
		return float64(n), prevErr
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			if prevErr == nil {
				prevErr = &MalformedMetadataError{Field: field, Value: v, ChunkIndex: -1}
			}
			return 0, prevErr
		}
		return f, prevErr
	default:
		if prevErr == nil {
			prevErr = &MalformedMetadataError{Field: field, Value: v, ChunkIndex: -1}
		}
		return 0, prevErr
	}
}
