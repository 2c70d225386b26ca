package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/ByLCY/bingo/bingo"
	"github.com/ByLCY/bingo/bundle"
	"github.com/ByLCY/bingo/config"
	"github.com/ByLCY/bingo/deck"
	"github.com/ByLCY/bingo/dsl"
	"github.com/ByLCY/bingo/extract"
	"github.com/ByLCY/bingo/generator"
	"github.com/ByLCY/bingo/layout"
	"github.com/ByLCY/bingo/logging"
)

// Globals 是所有子命令共享的参数。
type Globals struct {
	Config  string `name:"config" short:"c" help:"YAML 配置文件路径" type:"path" default:"bingo.yaml"`
	Verbose bool   `short:"v" help:"输出 debug 日志"`
}

// CLI defines the command-line interface for bingo.
var CLI struct {
	Globals

	Generate GenerateCmd `cmd:"" help:"根据 deck 文件生成卡片与答案表 PDF"`
	Suggest  SuggestCmd  `cmd:"" help:"调用生成器为主题生成条目，输出为 items 区块"`
	Preview  PreviewCmd  `cmd:"" help:"在终端预览卡片分配，不渲染 PDF，也不调用生成器"`
}

// GenerateCmd renders a deck into PDFs.
type GenerateCmd struct {
	Deck   string `arg:"" help:"deck 文件路径" type:"existingfile"`
	Out    string `short:"o" help:"输出目录" type:"path" default:"output"`
	Bundle string `help:"同时打包为 .zip 或 .tar.xz 归档" type:"path"`
	Font   string `help:"覆盖 deck 中的字体（TTF/OTF）" type:"path"`
	Seed   uint64 `help:"随机种子（0 表示使用 deck 中的设置或随机）"`
	Debug  string `name:"debug-json" help:"卡片布局调试 JSON 输出路径" type:"path"`
}

// SuggestCmd asks the generator for items on a topic.
type SuggestCmd struct {
	Topic string `arg:"" help:"主题"`
	Count int    `short:"n" help:"请求的条目数" default:"25"`
	Min   int    `help:"可接受的最少条目数（默认等于 count）"`
	Mode  string `help:"word 或 qa" enum:"word,qa" default:"word"`
}

// PreviewCmd prints the card assignment as text.
type PreviewCmd struct {
	Deck  string `arg:"" help:"deck 文件路径" type:"existingfile"`
	Seed  uint64 `help:"随机种子"`
	Cards int    `help:"只显示前 N 张卡片" default:"1"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("bingo"),
		kong.Description("Bingo card and caller sheet generator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&CLI.Globals)
	ctx.FatalIfErrorf(err)
}

// setup 加载配置并创建日志。
func (g *Globals) setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadOrDefault(g.Config)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Logging, g.Verbose)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func retryOptions(cfg *config.Config, logger *zap.Logger) extract.RetryOptions {
	return extract.RetryOptions{
		MaxAttempts: cfg.Retry.MaxAttempts,
		Backoff:     cfg.Retry.Backoff,
		Logger:      logger,
	}
}

// Run 串联解析、生成、布局与渲染。
func (c *GenerateCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	ctx := context.Background()

	s, err := bingo.LoadDeck(c.Deck)
	if err != nil {
		return err
	}
	if c.Seed != 0 {
		s.Seed = c.Seed
	}
	if s.PageSize == dsl.DefaultPageSize && cfg.Render.PageSize != "" {
		s.PageSize = cfg.Render.PageSize
	}

	font := c.Font
	if font == "" && s.FontPath == "" {
		font = cfg.Render.FontPath
	}
	backend, err := bingo.NewBackend(s, font, cfg.Render.TitleFontPath, logger)
	if err != nil {
		return err
	}

	opts := bingo.Options{
		Backend: backend,
		Retry:   retryOptions(cfg, logger),
		Author:  cfg.Render.Author,
		Logger:  logger,
	}
	if s.Generate != nil && cfg.Generator.Enabled() {
		gem, err := generator.NewGemini(ctx, cfg.Generator)
		if err != nil {
			return err
		}
		opts.Generate = gem.Func(s.Mode)
	}

	out, err := bingo.Build(ctx, s, opts)
	if err != nil {
		return fmt.Errorf("生成失败: %w", err)
	}

	if c.Debug != "" {
		if err := os.MkdirAll(filepath.Dir(c.Debug), 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
		if err := layout.WriteDebugJSON(out.CardsLayout, c.Debug); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	files := []bundle.File{
		{Name: "cards.pdf", Data: out.CardsPDF},
		{Name: "caller.pdf", Data: out.CallerPDF},
	}
	if err := os.MkdirAll(c.Out, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	for _, f := range files {
		path := filepath.Join(c.Out, f.Name)
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return fmt.Errorf("写入 PDF 文件失败: %w", err)
		}
		fmt.Printf("已生成 %s（%s）\n", path, humanize.Bytes(uint64(len(f.Data))))
	}

	if c.Bundle != "" {
		m, err := bundle.Write(c.Bundle, s.Title, files)
		if err != nil {
			return err
		}
		fmt.Printf("已打包 %s（run %s）\n", c.Bundle, m.RunID)
	}
	fmt.Printf("%d 个条目，%d 张卡片，答案表 %d 页\n",
		len(out.Items), len(out.Cards), len(out.CallerLayout.Pages))
	return nil
}

// Run prints generated items in deck syntax.
func (c *SuggestCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	if !cfg.Generator.Enabled() {
		return fmt.Errorf("未配置生成器：请设置 GEMINI_API_KEY 或 GCP_PROJECT_ID")
	}
	mode, err := extract.ParseMode(c.Mode)
	if err != nil {
		return err
	}
	ctx := context.Background()
	gem, err := generator.NewGemini(ctx, cfg.Generator)
	if err != nil {
		return err
	}
	want := c.Min
	if want <= 0 {
		want = c.Count
	}
	items := extract.WithRetry(ctx, gem.Func(mode), extract.Request{
		Topic:         c.Topic,
		Count:         c.Count,
		MinAcceptable: want,
		Mode:          mode,
	}, retryOptions(cfg, logger))
	if len(items) == 0 {
		return fmt.Errorf("生成器没有返回可用条目")
	}

	fmt.Println("items {")
	for _, it := range items {
		if it.Kind() == deck.KindQA {
			fmt.Printf("  %q: %q\n", it.Question(), it.Answer())
			continue
		}
		fmt.Printf("  %q\n", it.String())
	}
	fmt.Println("}")
	if len(items) < want {
		logger.Warn("条目数量少于期望", zap.Int("got", len(items)), zap.Int("want", want))
	}
	return nil
}

// Run prints the first cards as text grids.
func (c *PreviewCmd) Run(g *Globals) error {
	s, err := bingo.LoadDeck(c.Deck)
	if err != nil {
		return err
	}
	if c.Seed != 0 {
		s.Seed = c.Seed
	}
	if err := deck.Validate(s.Items, s.GridSize); err != nil {
		// 只用 deck 中写明的条目，不足的格子留空
		fmt.Printf("注意：%v，空格子以空白显示\n", err)
	}
	cards := deck.Generate(s.Items, s.Cards, s.GridSize, deck.NewRand(s.Seed))
	fmt.Printf("%s：%d×%d，%d 张卡片，%d 个条目（%s）\n",
		s.Title, s.GridSize, s.GridSize, len(cards), len(s.Items), s.Mode)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for n, card := range cards {
		if n >= c.Cards {
			break
		}
		fmt.Fprintf(w, "\n#%d\n", n+1)
		for _, row := range card.Rows(s.GridSize) {
			fmt.Fprintln(w, strings.Join(row, "\t")+"\t")
		}
	}
	return w.Flush()
}
