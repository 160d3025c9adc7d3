package common

const (
	FieldContent       = "text"
	FieldContentVector = "vector"
	FieldMetadata      = "metadata"
	LibraryId          = "_library_id"
	DocumentId         = "document_id"

	// 原始元数据键（由 loader/parser 提供，可能缺失）
	RawKeySource     = "source"
	RawKeyPageLabel  = "page_label"
	RawKeyTotalPages = "total_pages"
	RawKeyTitle      = "title"

	// 规范化元数据键（入库与引用展示使用，四键恒定）
	MetaKeySource     = "source"
	MetaKeyPage       = "page"
	MetaKeyTotalPages = "total_pages"
	MetaKeyTitle      = "title"

	Title1 = "h1"
	Title2 = "h2"
	Title3 = "h3"
)
