package errors

// ErrCode 业务错误码类型
type ErrCode int

const (
	// 通用错误 1000-1999
	ErrInvalidParameter ErrCode = 1001 // 参数错误
	ErrUnauthorized     ErrCode = 1002 // 未授权
	ErrInternalError    ErrCode = 1003 // 内部错误
	ErrNotFound         ErrCode = 1004 // 资源未找到
	ErrAlreadyExists    ErrCode = 1005 // 资源已存在
	ErrOperationFailed  ErrCode = 1006 // 操作失败

	// 模型相关 2000-2999
	ErrEmbeddingFailed ErrCode = 2001 // Embedding失败
	ErrLLMCallFailed   ErrCode = 2002 // LLM调用失败
	ErrRerankFailed    ErrCode = 2003 // Rerank失败
	ErrStreamingFailed ErrCode = 2004 // 流式响应失败

	// 文档相关 4000-4999
	ErrDocumentNotFound    ErrCode = 4001 // 文档未找到
	ErrDocumentParseFailed ErrCode = 4002 // 文档解析失败
	ErrFileAlreadyExists   ErrCode = 4003 // 文件已存在
	ErrFileUploadFailed    ErrCode = 4004 // 文件上传失败
	ErrFileReadFailed      ErrCode = 4005 // 文件读取失败
	ErrChunkNotFound       ErrCode = 4006 // 文档块未找到
	ErrIndexingFailed      ErrCode = 4007 // 索引失败
	ErrMalformedMetadata   ErrCode = 4008 // 元数据字段无法解析

	// 向量数据库 5000-5999
	ErrVectorStoreInit ErrCode = 5001 // 向量库初始化失败
	ErrVectorSearch    ErrCode = 5002 // 向量搜索失败
	ErrVectorInsert    ErrCode = 5003 // 向量插入失败
	ErrVectorDelete    ErrCode = 5004 // 向量删除失败

	// 数据库相关 6000-6999
	ErrDatabaseQuery  ErrCode = 6001 // 数据库查询失败
	ErrDatabaseInsert ErrCode = 6002 // 数据库插入失败
	ErrDatabaseUpdate ErrCode = 6003 // 数据库更新失败
	ErrDatabaseDelete ErrCode = 6004 // 数据库删除失败
	ErrDatabaseInit   ErrCode = 6005 // 数据库初始化失败

	// 检索相关 9000-9999
	ErrRetrievalFailed ErrCode = 9001 // 检索失败
	ErrRewriteFailed   ErrCode = 9002 // 查询重写失败
)

// HTTPStatusCode 返回错误码对应的HTTP状态码
func (e ErrCode) HTTPStatusCode() int {
	switch e {
	case ErrInvalidParameter:
		return 400
	case ErrUnauthorized:
		return 401
	case ErrNotFound, ErrDocumentNotFound, ErrChunkNotFound:
		return 404
	case ErrAlreadyExists, ErrFileAlreadyExists:
		return 409
	default:
		return 500
	}
}
