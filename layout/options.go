package layout

// Measurer 返回文本在给定字体与字号（pt）下的渲染宽度（pt）。
// 由渲染后端实现；布局阶段只依赖这一个度量函数。
type Measurer interface {
	TextWidth(text string, font string, size float64) float64
}

// 字体名称。渲染器把它们映射到实际加载的字体族。
const (
	FontBody  = "Body"
	FontTitle = "Title"
)
