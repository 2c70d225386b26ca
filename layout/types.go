package layout

// 该文件定义布局结果，供卡片/答案表布局、渲染与调试 JSON 共用。
// 所有坐标与尺寸均以 pt 为单位，原点在页面左上角，y 向下增长。

// Result 保存布局后的页面与文档元信息。
type Result struct {
	Pages []Page       `json:"pages"`
	Meta  DocumentMeta `json:"meta"`
}

// Page 记录页面尺寸与可以直接绘制的元素。
// 绘制顺序：矩形（背景、格子）→ 图片 → 文本。
type Page struct {
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Rects  []Rect     `json:"rects,omitempty"`
	Images []ImageBox `json:"images,omitempty"`
	Texts  []TextBox  `json:"texts"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// TextBox 表示一个已经完成折行、排好坐标的文本块。Y 为第一行的顶部。
type TextBox struct {
	Lines    []string `json:"lines"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Font     string   `json:"font"`
	FontSize float64  `json:"fontSize"`
	LineGap  float64  `json:"lineGap"`
	Color    Color    `json:"color"`
	Align    string   `json:"align,omitempty"` // left（默认）/center/right
}

// Height 返回文本块占用的总高度。
func (tb TextBox) Height() float64 {
	return float64(len(tb.Lines)) * (tb.FontSize + tb.LineGap)
}

// ImageBox 描述图片位置与尺寸。图片可以直接携带字节，也可以给出路径。
type ImageBox struct {
	Path   string  `json:"path,omitempty"`
	Data   []byte  `json:"-"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect 表示一个矩形。StrokeColor 为空表示不描边，FillColor 为空表示不填充。
type Rect struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	StrokeColor *Color  `json:"strokeColor,omitempty"`
	StrokeWidth float64 `json:"strokeWidth"`
	FillColor   *Color  `json:"fillColor,omitempty"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
