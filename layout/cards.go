package layout

import (
	"fmt"

	"github.com/ByLCY/bingo/binding"
	"github.com/ByLCY/bingo/deck"
)

// 卡片页的固定版式（pt，左上角原点）。
const (
	cardMargin     = 50.0
	cardTitleSize  = 30.0
	cardTitleY     = 50.0  // 标题行顶部
	cardGridTop    = 150.0 // 表格顶部
	cardLogoSize   = 60.0
	cardLogoY      = 60.0
	cardCellSize   = 16.0
	cardCellMin    = 10.0
	cardLineGap    = 2.0
	cardFooterSize = 9.0
	cardStroke     = 1.0
)

// CardOptions 配置卡片页布局。Title 与 Footer 支持 ${title}、${card.number}、${card.total}。
type CardOptions struct {
	Measurer Measurer
	Title    string
	Footer   string
	Style    Style
	Logo     []byte
	LogoPath string
	// SplitTokens 为 true 时超宽 token 按字素簇切开（WrapGraphemes）。
	SplitTokens bool
	PageWidth   float64
	PageHeight  float64
	Meta        DocumentMeta
}

// BuildCards lays out one page per card.
func BuildCards(cards deck.CardSet, gridSize int, opts CardOptions) (*Result, error) {
	if opts.Measurer == nil {
		return nil, fmt.Errorf("layout: 缺少文本度量后端 Measurer")
	}
	if gridSize <= 0 {
		return nil, fmt.Errorf("layout: 无效的表格尺寸 %d", gridSize)
	}
	width, height := opts.PageWidth, opts.PageHeight
	if width <= 0 || height <= 0 {
		width, height, _ = PageSize("A4", false)
	}
	style := opts.Style
	footer := opts.Footer
	if footer == "" {
		footer = "#${card.number}"
	}

	wrap := wrapper(opts.SplitTokens)
	cellSize := (width - 2*cardMargin) / float64(gridSize)
	total := len(cards)
	pc := newPageCollector(width, height, func(p *Page, _ int) {
		p.Rects = append(p.Rects, backgroundRect(width, height, style.Background))
	})

	for n, card := range cards {
		page := pc.newPage()
		scope := binding.Card(opts.Title, n+1, total)

		if len(opts.Logo) > 0 || opts.LogoPath != "" {
			page.Images = append(page.Images, ImageBox{
				Path:   opts.LogoPath,
				Data:   opts.Logo,
				X:      cardMargin,
				Y:      cardLogoY,
				Width:  cardLogoSize,
				Height: cardLogoSize,
			})
		}

		page.Texts = append(page.Texts, TextBox{
			Lines:    []string{binding.Interpolate(opts.Title, scope)},
			X:        0,
			Y:        cardTitleY,
			Width:    width,
			Font:     FontTitle,
			FontSize: cardTitleSize,
			Color:    style.Text,
			Align:    "center",
		})

		for row := 0; row < gridSize; row++ {
			for col := 0; col < gridSize; col++ {
				idx := row*gridSize + col
				if idx >= len(card) {
					continue
				}
				x := cardMargin + float64(col)*cellSize
				y := cardGridTop + float64(row)*cellSize
				page.Rects = append(page.Rects, cellRect(x, y, cellSize, card[idx] == deck.Free, style))

				block := wrap(opts.Measurer, FontBody, card[idx], cellSize, cardCellSize, cardCellMin)
				page.Texts = append(page.Texts, TextBox{
					Lines:    block.Lines,
					X:        x,
					Y:        y + (cellSize-block.Height(cardLineGap))/2,
					Width:    cellSize,
					Font:     FontBody,
					FontSize: block.FontSize,
					LineGap:  cardLineGap,
					Color:    style.Text,
					Align:    "center",
				})
			}
		}

		page.Texts = append(page.Texts, TextBox{
			Lines:    []string{binding.Interpolate(footer, scope)},
			X:        cardMargin,
			Y:        height - cardMargin,
			Width:    width - 2*cardMargin,
			Font:     FontBody,
			FontSize: cardFooterSize,
			Color:    style.Text,
			Align:    "right",
		})
	}

	meta := opts.Meta
	if meta.Title == "" {
		meta.Title = opts.Title
	}
	if meta.Creator == "" {
		meta.Creator = "Bingo"
	}
	return &Result{Pages: pc.result(), Meta: meta}, nil
}

func cellRect(x, y, size float64, free bool, style Style) Rect {
	fill := style.Background
	if free {
		fill = style.Free
	}
	stroke := style.Text
	return Rect{
		X:           x,
		Y:           y,
		Width:       size,
		Height:      size,
		StrokeColor: &stroke,
		StrokeWidth: cardStroke,
		FillColor:   &fill,
	}
}
