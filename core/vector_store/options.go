package vector_store

// Options 检索调用时的可选参数集合
type Options struct {
	TopK           *int     // 返回结果数量
	ScoreThreshold *float64 // 相似度分数阈值
	Filter         string   // 过滤表达式
	Partition      string   // 分区名称
}

// Option 检索选项函数
type Option func(*Options)

// GetCommonOptions 将选项函数依次应用到基础配置上
func GetCommonOptions(base *Options, opts ...Option) *Options {
	if base == nil {
		base = &Options{}
	}
	for _, opt := range opts {
		opt(base)
	}
	return base
}

// WithTopK 设置返回结果数量
func WithTopK(topK int) Option {
	return func(o *Options) {
		o.TopK = &topK
	}
}

// WithScoreThreshold 设置分数阈值
func WithScoreThreshold(threshold float64) Option {
	return func(o *Options) {
		o.ScoreThreshold = &threshold
	}
}

// WithFilter 设置过滤表达式
func WithFilter(filter string) Option {
	return func(o *Options) {
		o.Filter = filter
	}
}

// WithPartition 设置分区
func WithPartition(partition string) Option {
	return func(o *Options) {
		o.Partition = partition
	}
}
