package layout

import (
	"fmt"
	"math/rand/v2"

	"github.com/ByLCY/bingo/binding"
	"github.com/ByLCY/bingo/deck"
)

// 答案表版式（pt，左上角原点）。
const (
	callerSideMargin   = 40.0
	callerBottomMargin = 50.0
	callerTitleY       = 40.0
	callerTitleSize    = 20.0
	callerStartY       = 100.0
	callerColumnGap    = 16.0
	callerEntrySize    = 12.0
	callerEntryMin     = 9.0
	callerLineGap      = 2.0
	callerLegendSize   = 8.0

	// DefaultWordBlockHeight / DefaultQABlockHeight 是每个条目预留的默认高度。
	DefaultWordBlockHeight = 28.0
	DefaultQABlockHeight   = 64.0
	DefaultCallerColumns   = 2

	reserveMarker = "* "
	reserveLegend = "* reserve entries: not printed on any card"
)

// CallerEntry 是答案表上的一个条目。Primary 表示该条目属于前 G² 个条目（会出现在卡片上）。
type CallerEntry struct {
	Item    deck.Item `json:"-"`
	Lines   []string  `json:"lines"`
	Primary bool      `json:"primary"`
	Slot    Slot      `json:"slot"`
}

// CallerOptions 配置答案表布局。Title 与 Footer 支持 ${title}、${page.number}、${page.total}。
type CallerOptions struct {
	Measurer    Measurer
	Title       string
	Footer      string
	Style       Style
	Columns     int
	BlockHeight float64
	Rand        *rand.Rand
	SplitTokens bool
	PageWidth   float64
	PageHeight  float64
	Meta        DocumentMeta
}

// BuildCallerSheet shuffles items and lays them out in columns over as many pages as needed.
// gridSize 用于区分主条目与备用条目。
func BuildCallerSheet(items deck.ItemSet, gridSize int, opts CallerOptions) (*Result, []CallerEntry, error) {
	if opts.Measurer == nil {
		return nil, nil, fmt.Errorf("layout: 缺少文本度量后端 Measurer")
	}
	width, height := opts.PageWidth, opts.PageHeight
	if width <= 0 || height <= 0 {
		width, height, _ = PageSize("A4", false)
	}
	rng := opts.Rand
	if rng == nil {
		rng = deck.NewRand(0)
	}
	columns := opts.Columns
	if columns <= 0 {
		columns = DefaultCallerColumns
	}
	block := opts.BlockHeight
	if block <= 0 {
		block = DefaultWordBlockHeight
		if hasQA(items) {
			block = DefaultQABlockHeight
		}
	}
	footer := opts.Footer
	if footer == "" {
		footer = "${page.number} / ${page.total}"
	}
	style := opts.Style

	geo := Geometry{
		Columns:     columns,
		PageHeight:  height,
		Margin:      callerStartY + callerBottomMargin,
		BlockHeight: block,
	}

	primary := gridSize * gridSize
	entries := make([]CallerEntry, len(items))
	for i, it := range items {
		entries[i] = CallerEntry{Item: it, Lines: it.CallerLines(), Primary: i < primary}
	}
	rng.Shuffle(len(entries), func(i, j int) { entries[i], entries[j] = entries[j], entries[i] })

	slots := Paginate(len(entries), geo)
	pageCount := 1
	if len(slots) > 0 {
		pageCount = slots[len(slots)-1].Page + 1
	}
	hasReserve := len(items) > primary

	colWidth := (width - 2*callerSideMargin - float64(columns-1)*callerColumnGap) / float64(columns)
	pc := newPageCollector(width, height, func(p *Page, index int) {
		scope := binding.Page(opts.Title, index+1, pageCount)
		p.Rects = append(p.Rects, backgroundRect(width, height, style.Background))
		p.Texts = append(p.Texts,
			TextBox{
				Lines:    []string{binding.Interpolate(opts.Title, scope)},
				Y:        callerTitleY,
				Width:    width,
				Font:     FontTitle,
				FontSize: callerTitleSize,
				Color:    style.Text,
				Align:    "center",
			},
			TextBox{
				Lines:    []string{binding.Interpolate(footer, scope)},
				X:        callerSideMargin,
				Y:        height - callerBottomMargin + callerLegendSize,
				Width:    width - 2*callerSideMargin,
				Font:     FontBody,
				FontSize: callerLegendSize,
				Color:    style.Text,
				Align:    "right",
			})
		if hasReserve {
			p.Texts = append(p.Texts, TextBox{
				Lines:    []string{reserveLegend},
				X:        callerSideMargin,
				Y:        height - callerBottomMargin + callerLegendSize,
				Width:    width - 2*callerSideMargin,
				Font:     FontBody,
				FontSize: callerLegendSize,
				Color:    style.Reserve,
			})
		}
	})
	pc.newPage()

	for i := range entries {
		slot := slots[i]
		if slot.NewPage {
			pc.newPage()
		}
		entries[i].Slot = slot
		page := pc.curr()
		x := callerSideMargin + float64(slot.Column)*(colWidth+callerColumnGap)
		y := geo.RowY(callerStartY, slot.Row)
		page.Texts = append(page.Texts, entryBoxes(opts.Measurer, wrapper(opts.SplitTokens), entries[i], x, y, colWidth, style)...)
	}

	meta := opts.Meta
	if meta.Title == "" {
		meta.Title = opts.Title
	}
	if meta.Creator == "" {
		meta.Creator = "Bingo"
	}
	return &Result{Pages: pc.result(), Meta: meta}, entries, nil
}

// entryBoxes 为条目的每一行（单词，或问题与答案）各生成一个文本块，自上而下堆叠。
func entryBoxes(m Measurer, wrap wrapFunc, entry CallerEntry, x, y, width float64, style Style) []TextBox {
	color := style.Text
	if !entry.Primary {
		color = style.Reserve
	}
	boxes := make([]TextBox, 0, len(entry.Lines))
	cursor := y
	for i, line := range entry.Lines {
		if i == 0 && !entry.Primary {
			line = reserveMarker + line
		}
		block := wrap(m, FontBody, line, width, callerEntrySize, callerEntryMin)
		tb := TextBox{
			Lines:    block.Lines,
			X:        x,
			Y:        cursor,
			Width:    width,
			Font:     FontBody,
			FontSize: block.FontSize,
			LineGap:  callerLineGap,
			Color:    color,
		}
		boxes = append(boxes, tb)
		cursor += tb.Height()
	}
	return boxes
}

func hasQA(items deck.ItemSet) bool {
	for _, it := range items {
		if it.Kind() == deck.KindQA {
			return true
		}
	}
	return false
}
