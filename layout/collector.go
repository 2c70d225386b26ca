package layout

// Style 汇总卡片与答案表共用的颜色。
type Style struct {
	Background Color `json:"background"`
	Text       Color `json:"text"`
	Free       Color `json:"free"`    // FREE 格子的底色
	Reserve    Color `json:"reserve"` // 答案表中备用条目的文字颜色
}

// DefaultStyle 与原始界面的取色器默认值一致。
func DefaultStyle() Style {
	return Style{
		Background: MustColor("#FFFFFF"),
		Text:       MustColor("#000000"),
		Free:       MustColor("#F0F8FF"),
		Reserve:    MustColor("#8A8A8A"),
	}
}

// pageCollector 负责按顺序收集页面；newPage 时调用 decorate 绘制每页固定的背景与页眉。
type pageCollector struct {
	width    float64
	height   float64
	pages    []*Page
	decorate func(p *Page, index int)
}

func newPageCollector(width, height float64, decorate func(p *Page, index int)) *pageCollector {
	return &pageCollector{width: width, height: height, decorate: decorate}
}

func (pc *pageCollector) newPage() *Page {
	p := &Page{Width: pc.width, Height: pc.height}
	if pc.decorate != nil {
		pc.decorate(p, len(pc.pages))
	}
	pc.pages = append(pc.pages, p)
	return p
}

func (pc *pageCollector) curr() *Page {
	if len(pc.pages) == 0 {
		return pc.newPage()
	}
	return pc.pages[len(pc.pages)-1]
}

func (pc *pageCollector) result() []Page {
	out := make([]Page, len(pc.pages))
	for i, p := range pc.pages {
		out[i] = *p
	}
	return out
}

func backgroundRect(width, height float64, fill Color) Rect {
	return Rect{Width: width, Height: height, FillColor: &fill}
}
