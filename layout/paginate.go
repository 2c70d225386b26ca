package layout

import "math"

// Geometry 描述答案表的分栏几何。所有长度单位为 pt。
//
// Margin 是页面高度中不可用于条目的部分（页眉起始偏移 + 底边距）。
// BlockHeight 是为每个条目预留的固定高度，与实际折行行数无关：
// 行数较多的条目可能与下一行重叠，这是已知的布局限制。
type Geometry struct {
	Columns     int
	PageHeight  float64
	Margin      float64
	BlockHeight float64
}

// Slot 是某个条目被分配到的位置。
type Slot struct {
	Page    int  `json:"page"`
	Column  int  `json:"column"`
	Row     int  `json:"row"`
	NewPage bool `json:"newPage,omitempty"` // 该条目之前需要分页
}

// PerColumn 返回每栏可容纳的条目数，至少为 1。
func (g Geometry) PerColumn() int {
	if g.BlockHeight <= 0 {
		return 1
	}
	n := int(math.Floor((g.PageHeight - g.Margin) / g.BlockHeight))
	if n < 1 {
		return 1
	}
	return n
}

// PerPage 返回每页可容纳的条目数。
func (g Geometry) PerPage() int {
	return g.PerColumn() * g.columns()
}

// RowY 返回第 row 行条目的顶部 y 坐标（左上角原点）。
func (g Geometry) RowY(startY float64, row int) float64 {
	return startY + float64(row)*g.BlockHeight
}

func (g Geometry) columns() int {
	if g.Columns < 1 {
		return 1
	}
	return g.Columns
}

// Paginate assigns a (page, column, row) slot to each of count entries, in input order.
// 不做任何重排；需要随机顺序时由调用方先洗牌。
func Paginate(count int, g Geometry) []Slot {
	if count <= 0 {
		return nil
	}
	perColumn := g.PerColumn()
	perPage := g.PerPage()
	slots := make([]Slot, count)
	for i := range slots {
		onPage := i % perPage
		slots[i] = Slot{
			Page:    i / perPage,
			Column:  onPage / perColumn,
			Row:     onPage % perColumn,
			NewPage: i > 0 && onPage == 0,
		}
	}
	return slots
}
