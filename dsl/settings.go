package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/bingo/deck"
	"github.com/ByLCY/bingo/extract"
	"github.com/ByLCY/bingo/layout"
)

// 与原始界面一致的默认值与取值范围。
const (
	DefaultTitle    = "Bingo Game"
	DefaultGrid     = 5
	DefaultCards    = 5
	MaxCards        = 50
	MinGrid         = 1
	MaxGrid         = 9
	DefaultPageSize = "A4"
)

// Settings 是一个 deck 文件解析后的完整配置。
type Settings struct {
	Title     string
	GridSize  int
	Cards     int
	Mode      extract.Mode
	Columns   int
	Seed      uint64
	PageSize  string
	Landscape bool
	Footer    string
	// SplitTokens 对应 wrap: grapheme，超宽 token 按字素簇切开。
	SplitTokens bool
	// BlockHeight 是答案表每个条目的固定高度（pt），0 表示按模式取默认值。
	BlockHeight float64

	Style    layout.Style
	FontPath string
	LogoPath string

	Items    deck.ItemSet
	Generate *Generate
}

// Generate 描述交给外部生成器的请求；Min 为 0 时取 GridSize²。
type Generate struct {
	Topic string
	Count int
	Min   int
}

// Defaults returns the settings used when a deck file omits a key.
func Defaults() Settings {
	return Settings{
		Title:    DefaultTitle,
		GridSize: DefaultGrid,
		Cards:    DefaultCards,
		Mode:     extract.ModeWord,
		Columns:  layout.DefaultCallerColumns,
		PageSize: DefaultPageSize,
		Style:    layout.DefaultStyle(),
	}
}

// Settings converts the AST into Settings, validating every key.
func (d *Deck) Settings() (Settings, error) {
	s := Defaults()
	if title := strings.TrimSpace(string(d.Title)); title != "" {
		s.Title = title
	}
	if d.Block == nil {
		return s, nil
	}
	for _, st := range d.Block.Statements {
		switch {
		case st.Assignment != nil:
			if err := s.assign(st.Assignment); err != nil {
				return Settings{}, err
			}
		case st.Section != nil:
			if err := s.section(st.Section); err != nil {
				return Settings{}, err
			}
		case st.Item != nil:
			return Settings{}, fmt.Errorf("%s: 条目必须写在 items { } 中", st.Item.Pos)
		}
	}
	if s.Generate != nil {
		if s.Generate.Count <= 0 {
			s.Generate.Count = s.GridSize * s.GridSize
		}
		if s.Generate.Min <= 0 {
			s.Generate.Min = s.GridSize * s.GridSize
		}
	}
	return s, nil
}

func (s *Settings) assign(a *Assignment) error {
	raw := a.Value.Raw()
	var err error
	switch a.Key {
	case "title":
		s.Title = raw
	case "grid":
		s.GridSize, err = intInRange(raw, MinGrid, MaxGrid)
	case "cards":
		s.Cards, err = intInRange(raw, 1, MaxCards)
	case "mode":
		s.Mode, err = extract.ParseMode(raw)
	case "columns":
		s.Columns, err = intInRange(raw, 1, 6)
	case "seed":
		s.Seed, err = strconv.ParseUint(raw, 10, 64)
	case "page":
		_, _, err = layout.PageSize(raw, false)
		s.PageSize = strings.ToUpper(raw)
	case "orientation":
		switch strings.ToLower(raw) {
		case "portrait":
			s.Landscape = false
		case "landscape":
			s.Landscape = true
		default:
			err = fmt.Errorf("未知的方向 %q", raw)
		}
	case "footer":
		s.Footer = raw
	case "wrap":
		switch strings.ToLower(raw) {
		case "word":
			s.SplitTokens = false
		case "grapheme":
			s.SplitTokens = true
		default:
			err = fmt.Errorf("未知的折行方式 %q", raw)
		}
	case "block":
		s.BlockHeight, err = layout.ParseLength(raw)
		if err == nil && s.BlockHeight <= 0 {
			err = fmt.Errorf("条目高度必须为正数")
		}
	default:
		err = fmt.Errorf("未知的设置项")
	}
	if err != nil {
		return fmt.Errorf("%s: %s: %w", a.Pos, a.Key, err)
	}
	return nil
}

func (s *Settings) section(sec *Section) error {
	switch sec.Name {
	case "style":
		return s.styleSection(sec.Block)
	case "generate":
		return s.generateSection(sec.Block)
	case "items":
		return s.itemsSection(sec.Block)
	default:
		return fmt.Errorf("%s: 未知的区块 %s", sec.Pos, sec.Name)
	}
}

func (s *Settings) styleSection(b *Block) error {
	for _, st := range b.Statements {
		a := st.Assignment
		if a == nil {
			return fmt.Errorf("style 区块只能包含 key: value")
		}
		raw := a.Value.Raw()
		var err error
		switch a.Key {
		case "background":
			s.Style.Background, err = layout.ParseColor(raw)
		case "text":
			s.Style.Text, err = layout.ParseColor(raw)
		case "free":
			s.Style.Free, err = layout.ParseColor(raw)
		case "reserve":
			s.Style.Reserve, err = layout.ParseColor(raw)
		case "font":
			s.FontPath = raw
		case "logo":
			s.LogoPath = raw
		default:
			err = fmt.Errorf("未知的样式项")
		}
		if err != nil {
			return fmt.Errorf("%s: style.%s: %w", a.Pos, a.Key, err)
		}
	}
	return nil
}

func (s *Settings) generateSection(b *Block) error {
	g := &Generate{}
	for _, st := range b.Statements {
		a := st.Assignment
		if a == nil {
			return fmt.Errorf("generate 区块只能包含 key: value")
		}
		raw := a.Value.Raw()
		var err error
		switch a.Key {
		case "topic":
			g.Topic = strings.TrimSpace(raw)
		case "count":
			g.Count, err = intInRange(raw, 1, 500)
		case "min":
			g.Min, err = intInRange(raw, 1, 500)
		default:
			err = fmt.Errorf("未知的生成项")
		}
		if err != nil {
			return fmt.Errorf("%s: generate.%s: %w", a.Pos, a.Key, err)
		}
	}
	if g.Topic == "" {
		return fmt.Errorf("generate 区块缺少 topic")
	}
	s.Generate = g
	return nil
}

// itemsSection 收集条目；带答案的条目自动把模式切换为 qa，混用两种条目视为错误。
func (s *Settings) itemsSection(b *Block) error {
	var words, pairs int
	for _, st := range b.Statements {
		it := st.Item
		if it == nil {
			return fmt.Errorf("items 区块只能包含字符串条目")
		}
		text := strings.TrimSpace(string(it.Text))
		if it.Answer == nil {
			if text == "" {
				continue
			}
			words++
			s.Items = append(s.Items, deck.Word(text))
			continue
		}
		answer := strings.TrimSpace(string(*it.Answer))
		if text == "" || answer == "" {
			return fmt.Errorf("%s: 问答条目两侧都不能为空", it.Pos)
		}
		pairs++
		s.Items = append(s.Items, deck.QA(text, answer))
	}
	if words > 0 && pairs > 0 {
		return fmt.Errorf("items 区块不能混用单词与问答条目")
	}
	if pairs > 0 {
		s.Mode = extract.ModeQA
	}
	return nil
}

func intInRange(raw string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("需要整数，得到 %q", raw)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%d 超出范围 [%d, %d]", n, lo, hi)
	}
	return n, nil
}
