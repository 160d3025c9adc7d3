package common

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/minewander/docrag/core/errors"
	"golang.org/x/sync/errgroup"
)

// RerankConfig 接口，用于提取rerank配置
type RerankConfig interface {
	GetRerankAPIKey() string
	GetRerankBaseURL() string
	GetRerankModel() string
}

// CustomReranker 自定义rerank客户端
type CustomReranker struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// RerankDocument 简化的文档结构
type RerankDocument struct {
	ID      string
	Content string
	Score   float64
}

// RerankRequest rerank API请求结构
type RerankRequest struct {
	Model           string   `json:"model"`
	Query           string   `json:"query"`
	Documents       []string `json:"documents"`
	TopN            int      `json:"top_n"`
	ReturnDocuments bool     `json:"return_documents"`
}

// RerankResult rerank结果项
type RerankResult struct {
	Index          int     `json:"index"`
	RelevanceScore float64 `json:"relevance_score"`
}

// RerankResponse rerank API响应结构
type RerankResponse struct {
	ID      string          `json:"id"`
	Results []*RerankResult `json:"results"`
}

// RerankErrorResponse API错误响应
type RerankErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code,omitempty"`
	} `json:"error"`
}

// AggregateStrategy 定义聚合策略类型
type AggregateStrategy string

const (
	// AggregateStrategyMax Max Pooling策略：取所有sub-chunk分数的最大值
	AggregateStrategyMax AggregateStrategy = "max"
	// AggregateStrategyTopKMean Top-K Mean策略：取前K个sub-chunk分数的平均值
	AggregateStrategyTopKMean AggregateStrategy = "topk_mean"
	// AggregateStrategyMean Mean策略：取所有sub-chunk分数的平均值
	AggregateStrategyMean AggregateStrategy = "mean"
)

// SubChunkConfig 子切片配置
type SubChunkConfig struct {
	// SubChunkSize 每个子切片的字符大小（默认 250）
	SubChunkSize int
	// OverlapSize 子切片之间的重叠字符数（默认 50）
	OverlapSize int
	// AggregateStrategy 聚合策略（默认 "max"）
	AggregateStrategy AggregateStrategy
	// TopKForMean Top-K Mean策略中的K值（默认 2）
	TopKForMean int
	// MaxSubChunksPerDoc 每个文档最多切分的子片段数（0 表示不限制）
	MaxSubChunksPerDoc int
	// ScoreThreshold 相对阈值：保留 score >= max_score * threshold 的子切片（默认 0.6）
	// 设置为 0 表示不过滤
	ScoreThreshold float64
}

// DefaultSubChunkConfig 返回默认的子切片配置
func DefaultSubChunkConfig() SubChunkConfig {
	return SubChunkConfig{
		SubChunkSize:       250,
		OverlapSize:        50,
		AggregateStrategy:  AggregateStrategyMax,
		TopKForMean:        2,
		MaxSubChunksPerDoc: 0,
		ScoreThreshold:     0.6,
	}
}

// NewReranker 创建rerank客户端
func NewReranker(ctx context.Context, conf RerankConfig) (*CustomReranker, error) {
	apiKey := conf.GetRerankAPIKey()
	baseURL := conf.GetRerankBaseURL()
	model := conf.GetRerankModel()

	if apiKey == "" {
		apiKey = os.Getenv("RERANK_API_KEY")
	}
	if baseURL == "" {
		baseURL = os.Getenv("RERANK_BASE_URL")
		if baseURL == "" {
			return nil, errors.New(errors.ErrInvalidParameter, "rerank baseURL is required")
		}
	}
	if model == "" {
		model = "rerank-v1"
	}

	// rerank 通常比 embedding 快，超时收紧
	httpClient := &http.Client{
		Timeout: 2 * time.Minute,
		Transport: &http.Transport{
			Dial: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).Dial,
			TLSHandshakeTimeout:   30 * time.Second,
			ResponseHeaderTimeout: 60 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			IdleConnTimeout:       90 * time.Second,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   20,
		},
	}

	return &CustomReranker{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: httpClient,
	}, nil
}

// Rerank 执行重排序
func (r *CustomReranker) Rerank(ctx context.Context, query string, docs []RerankDocument, topK int) ([]RerankDocument, error) {
	if len(docs) == 0 {
		return []RerankDocument{}, nil
	}

	if topK <= 0 || topK > len(docs) {
		topK = len(docs)
	}

	documents := make([]string, len(docs))
	for i, doc := range docs {
		documents[i] = doc.Content
	}

	req := RerankRequest{
		Model:           r.model,
		Query:           query,
		Documents:       documents,
		TopN:            topK,
		ReturnDocuments: false,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Newf(errors.ErrRerankFailed, "failed to marshal request: %v", err)
	}

	url := r.baseURL + "/rerank"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, errors.Newf(errors.ErrRerankFailed, "failed to create request: %v", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Newf(errors.ErrRerankFailed, "failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp RerankErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return nil, errors.Newf(errors.ErrRerankFailed, "HTTP %d: failed to decode error response: %v", resp.StatusCode, err)
		}
		return nil, errors.Newf(errors.ErrRerankFailed, "API error (HTTP %d): %s", resp.StatusCode, errResp.Error.Message)
	}

	var rerankResp RerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&rerankResp); err != nil {
		return nil, errors.Newf(errors.ErrRerankFailed, "failed to decode response: %v", err)
	}

	if len(rerankResp.Results) == 0 {
		return []RerankDocument{}, nil
	}

	result := make([]RerankDocument, 0, len(rerankResp.Results))
	for _, res := range rerankResp.Results {
		if res.Index >= len(docs) {
			return nil, errors.Newf(errors.ErrRerankFailed, "invalid result index: %d", res.Index)
		}
		doc := docs[res.Index]
		doc.Score = res.RelevanceScore
		result = append(result, doc)
	}

	return result, nil
}

// SplitIntoSubChunks 将文档内容切分为多个子切片（滑窗重叠）
// maxSubChunks 为 0 表示不限制
func SplitIntoSubChunks(content string, subChunkSize, overlapSize, maxSubChunks int) []string {
	if content == "" {
		return []string{}
	}

	// 使用 rune 计数以正确处理多字节字符
	runes := []rune(content)
	contentLen := len(runes)
	if contentLen <= subChunkSize {
		return []string{content}
	}

	step := subChunkSize - overlapSize
	if step <= 0 {
		step = subChunkSize
	}

	var subChunks []string
	for start := 0; start < contentLen; start += step {
		end := start + subChunkSize
		if end > contentLen {
			end = contentLen
		}

		subChunks = append(subChunks, string(runes[start:end]))

		if end >= contentLen {
			break
		}
		if maxSubChunks > 0 && len(subChunks) >= maxSubChunks {
			break
		}
	}

	return subChunks
}

// aggregateScores 根据策略聚合多个子切片的分数
func aggregateScores(scores []float64, strategy AggregateStrategy, topK int) float64 {
	if len(scores) == 0 {
		return 0.0
	}

	switch strategy {
	case AggregateStrategyMax:
		return maxScore(scores)
	case AggregateStrategyTopKMean:
		if topK <= 0 {
			topK = 2
		}
		return topKMeanScore(scores, topK)
	case AggregateStrategyMean:
		return meanScore(scores)
	default:
		return maxScore(scores)
	}
}

func maxScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}
	maxVal := scores[0]
	for _, score := range scores[1:] {
		if score > maxVal {
			maxVal = score
		}
	}
	return maxVal
}

func topKMeanScore(scores []float64, k int) float64 {
	if len(scores) == 0 {
		return 0.0
	}

	sortedScores := make([]float64, len(scores))
	copy(sortedScores, scores)
	sort.Slice(sortedScores, func(i, j int) bool {
		return sortedScores[i] > sortedScores[j]
	})

	if k > len(sortedScores) {
		k = len(sortedScores)
	}

	sum := 0.0
	for i := 0; i < k; i++ {
		sum += sortedScores[i]
	}
	return sum / float64(k)
}

func meanScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, score := range scores {
		sum += score
	}
	return sum / float64(len(scores))
}

// filterLowScoreSubChunks 使用相对阈值过滤低分子切片
// 保留 score >= max_score * threshold 的子切片，自动适配不同 query 的整体分数水平
func filterLowScoreSubChunks(scores []float64, threshold float64) []float64 {
	if len(scores) == 0 || threshold <= 0 {
		return scores
	}

	maxScoreVal := maxScore(scores)
	if maxScoreVal == 0 {
		return scores
	}

	relativeThreshold := maxScoreVal * threshold

	var filtered []float64
	for _, score := range scores {
		if score >= relativeThreshold {
			filtered = append(filtered, score)
		}
	}

	// 全部被过滤时保留最高分
	if len(filtered) == 0 {
		filtered = append(filtered, maxScoreVal)
	}

	return filtered
}

// subChunkRef 子切片及其所属文档的索引
type subChunkRef struct {
	docIndex int
	content  string
}

// RerankWithSubChunks 使用子切片滑窗并行 rerank
// 对每个 chunk 进行子切分，分批并行调用 rerank API，最后按策略聚合分数
func (r *CustomReranker) RerankWithSubChunks(ctx context.Context, query string, docs []RerankDocument, topK int, config SubChunkConfig) ([]RerankDocument, error) {
	if len(docs) == 0 {
		return []RerankDocument{}, nil
	}

	if config.SubChunkSize <= 0 {
		config = DefaultSubChunkConfig()
	}

	// 第一步：为每个文档生成子切片，记录所属文档索引
	var refs []subChunkRef
	for i, doc := range docs {
		for _, sc := range SplitIntoSubChunks(doc.Content, config.SubChunkSize, config.OverlapSize, config.MaxSubChunksPerDoc) {
			refs = append(refs, subChunkRef{docIndex: i, content: sc})
		}
	}

	// 第二步：分批并行调用 rerank API
	const batchSize = 30
	numBatches := int(math.Ceil(float64(len(refs)) / float64(batchSize)))

	var mu sync.Mutex
	docScores := make([][]float64, len(docs))

	eg, gCtx := errgroup.WithContext(ctx)
	for batchIdx := 0; batchIdx < numBatches; batchIdx++ {
		start := batchIdx * batchSize
		end := start + batchSize
		if end > len(refs) {
			end = len(refs)
		}
		batch := refs[start:end]
		batchIdx := batchIdx

		eg.Go(func() error {
			batchDocs := make([]RerankDocument, len(batch))
			for i, ref := range batch {
				// ID 记录批内索引，用于把分数映射回所属文档
				batchDocs[i] = RerankDocument{ID: strconv.Itoa(i), Content: ref.content}
			}

			// topN 设置为批大小以获取所有子切片的分数
			results, err := r.Rerank(gCtx, query, batchDocs, len(batchDocs))
			if err != nil {
				return errors.Newf(errors.ErrRerankFailed, "batch %d rerank failed: %v", batchIdx, err)
			}

			mu.Lock()
			defer mu.Unlock()
			for _, res := range results {
				j, err := strconv.Atoi(res.ID)
				if err != nil || j < 0 || j >= len(batch) {
					continue
				}
				docScores[batch[j].docIndex] = append(docScores[batch[j].docIndex], res.Score)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, errors.Newf(errors.ErrRerankFailed, "parallel rerank failed: %v", err)
	}

	// 第三步：过滤低分子切片并聚合每个文档的最终分数
	finalResults := make([]RerankDocument, 0, len(docs))
	for i, doc := range docs {
		scores := docScores[i]
		if len(scores) == 0 {
			doc.Score = 0.0
		} else {
			filteredScores := filterLowScoreSubChunks(scores, config.ScoreThreshold)
			doc.Score = aggregateScores(filteredScores, config.AggregateStrategy, config.TopKForMean)
		}
		finalResults = append(finalResults, doc)
	}

	// 按分数降序排序并截取 TopK
	sort.Slice(finalResults, func(i, j int) bool {
		return finalResults[i].Score > finalResults[j].Score
	})
	if topK > 0 && topK < len(finalResults) {
		finalResults = finalResults[:topK]
	}

	return finalResults, nil
}
