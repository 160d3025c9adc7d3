package docrag

// ControllerV1 实现 api/docrag/v1 定义的全部接口
type ControllerV1 struct{}

func NewV1() *ControllerV1 {
	return &ControllerV1{}
}
