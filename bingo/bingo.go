// Package bingo wires deck settings, item generation, card assignment, layout and
// rendering into a single build step.
package bingo

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ByLCY/bingo/deck"
	"github.com/ByLCY/bingo/dsl"
	"github.com/ByLCY/bingo/extract"
	"github.com/ByLCY/bingo/layout"
	"github.com/ByLCY/bingo/renderer"
	canvasrenderer "github.com/ByLCY/bingo/renderer/canvas"
)

// ErrNoGenerator is returned when a deck needs generated items but no generator is configured.
var ErrNoGenerator = errors.New("bingo: 条目不足且未配置生成器")

// Options configures Build. 零值可用：Backend 为空时按 deck 的字体创建 canvas 渲染器。
type Options struct {
	Backend  renderer.Backend
	Generate extract.GenerateFunc
	Retry    extract.RetryOptions
	Rand     *rand.Rand
	Author   string
	Logger   *zap.Logger
}

// Output 汇总一次生成的全部产物。
type Output struct {
	Items         deck.ItemSet
	Cards         deck.CardSet
	CallerEntries []layout.CallerEntry
	CardsLayout   *layout.Result
	CallerLayout  *layout.Result
	CardsPDF      []byte
	CallerPDF     []byte
}

// LoadDeck parses a deck file. 样式中的字体与 logo 相对路径按 deck 文件所在目录解析。
func LoadDeck(path string) (dsl.Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return dsl.Settings{}, fmt.Errorf("打开 deck 文件失败: %w", err)
	}
	defer f.Close()

	d, err := dsl.Parse(path, f)
	if err != nil {
		return dsl.Settings{}, fmt.Errorf("解析 deck 文件失败: %w", err)
	}
	s, err := d.Settings()
	if err != nil {
		return dsl.Settings{}, err
	}
	dir := filepath.Dir(path)
	s.FontPath = resolve(dir, s.FontPath)
	s.LogoPath = resolve(dir, s.LogoPath)
	return s, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// NewBackend creates the canvas renderer for settings.
// fontPath 覆盖 deck 中的正文字体；titleFontPath 为空时标题沿用正文字体。
func NewBackend(s dsl.Settings, fontPath, titleFontPath string, logger *zap.Logger) (renderer.Backend, error) {
	if fontPath == "" {
		fontPath = s.FontPath
	}
	if titleFontPath == "" {
		titleFontPath = fontPath
	}
	opts := canvasrenderer.Options{Logger: logger, Fonts: map[string]canvasrenderer.Resource{}}
	if fontPath != "" {
		opts.Fonts[layout.FontBody] = canvasrenderer.Resource{Path: fontPath}
	}
	if titleFontPath != "" {
		opts.Fonts[layout.FontTitle] = canvasrenderer.Resource{Path: titleFontPath}
	}
	r, err := canvasrenderer.NewRenderer(opts)
	if err != nil {
		return nil, fmt.Errorf("初始化渲染器失败: %w", err)
	}
	return r, nil
}

// ResolveItems returns the deck's inline items, topped up by the generator when a
// generate block is present.
func ResolveItems(ctx context.Context, s dsl.Settings, opts Options) (deck.ItemSet, error) {
	items := append(deck.ItemSet{}, s.Items...)
	if s.Generate == nil {
		return items, nil
	}
	need := s.GridSize * s.GridSize
	if opts.Generate == nil {
		if len(items) >= need {
			return items, nil
		}
		return nil, ErrNoGenerator
	}

	retry := opts.Retry
	if retry.Logger == nil {
		retry.Logger = opts.Logger
	}
	generated := extract.WithRetry(ctx, opts.Generate, extract.Request{
		Topic:         s.Generate.Topic,
		Count:         s.Generate.Count,
		MinAcceptable: s.Generate.Min,
		Mode:          s.Mode,
	}, retry)

	seen := make(map[string]bool, len(items))
	for _, it := range items {
		seen[it.String()] = true
	}
	for _, it := range generated {
		if seen[it.String()] {
			continue
		}
		seen[it.String()] = true
		items = append(items, it)
	}
	return items, nil
}

// Build runs the whole pipeline for one deck.
func Build(ctx context.Context, s dsl.Settings, opts Options) (*Output, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	items, err := ResolveItems(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	if err := deck.Validate(items, s.GridSize); err != nil {
		return nil, err
	}

	backend := opts.Backend
	if backend == nil {
		backend, err = NewBackend(s, "", "", log)
		if err != nil {
			return nil, err
		}
	}
	width, height, err := layout.PageSize(s.PageSize, s.Landscape)
	if err != nil {
		return nil, err
	}
	rng := opts.Rand
	if rng == nil {
		rng = deck.NewRand(s.Seed)
	}

	cards := deck.Generate(items, s.Cards, s.GridSize, rng)
	log.Info("cards generated",
		zap.Int("items", len(items)),
		zap.Int("cards", len(cards)),
		zap.Int("grid", s.GridSize))

	meta := layout.DocumentMeta{
		Title:    s.Title,
		Author:   opts.Author,
		Creator:  "Bingo",
		Keywords: []string{"bingo", s.Mode.String()},
	}
	if s.Generate != nil {
		meta.Subject = s.Generate.Topic
	}

	cardsLayout, err := layout.BuildCards(cards, s.GridSize, layout.CardOptions{
		Measurer:    backend,
		Title:       s.Title,
		Footer:      s.Footer,
		Style:       s.Style,
		LogoPath:    s.LogoPath,
		SplitTokens: s.SplitTokens,
		PageWidth:   width,
		PageHeight:  height,
		Meta:        meta,
	})
	if err != nil {
		return nil, fmt.Errorf("卡片布局失败: %w", err)
	}

	callerMeta := meta
	callerMeta.Title = s.Title + " (caller sheet)"
	callerLayout, entries, err := layout.BuildCallerSheet(items, s.GridSize, layout.CallerOptions{
		Measurer:    backend,
		Title:       callerMeta.Title,
		Style:       s.Style,
		Columns:     s.Columns,
		BlockHeight: s.BlockHeight,
		SplitTokens: s.SplitTokens,
		Rand:        rng,
		PageWidth:   width,
		PageHeight:  height,
		Meta:        callerMeta,
	})
	if err != nil {
		return nil, fmt.Errorf("答案表布局失败: %w", err)
	}

	cardsPDF, err := backend.Render(cardsLayout)
	if err != nil {
		return nil, fmt.Errorf("渲染卡片失败: %w", err)
	}
	callerPDF, err := backend.Render(callerLayout)
	if err != nil {
		return nil, fmt.Errorf("渲染答案表失败: %w", err)
	}

	return &Output{
		Items:         items,
		Cards:         cards,
		CallerEntries: entries,
		CardsLayout:   cardsLayout,
		CallerLayout:  callerLayout,
		CardsPDF:      cardsPDF,
		CallerPDF:     callerPDF,
	}, nil
}
