package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"go.uber.org/zap"

	"github.com/ByLCY/bingo/fonts"
	"github.com/ByLCY/bingo/layout"
	"github.com/ByLCY/bingo/renderer"
)

const defaultStrokeWidth = 0.2 // mm

// Renderer draws layout results via github.com/tdewolff/canvas.
// 布局使用 pt、左上角原点；canvas 使用 mm、左下角原点，换算只发生在本包内。
type Renderer struct {
	log *zap.Logger

	families map[string]*canvas.FontFamily // 按布局字体名（Body / Title）
	fallback *canvas.FontFamily

	faceMu sync.Mutex
	faces  map[faceKey]*canvas.FontFace
}

var _ renderer.Backend = (*Renderer)(nil)

type faceKey struct {
	font  string
	size  float64
	color layout.Color
}

// Options configures the canvas renderer.
type Options struct {
	// Fonts 以布局字体名为键；未提供的名字使用内置字体（正文 go-regular，标题 go-bold）。
	Fonts  map[string]Resource
	Logger *zap.Logger
}

// Resource can be provided either by Bytes or by Path ("embed:<name>" 指向内置字体).
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer 加载全部字体。配置的字体无法加载时记录警告并回退到内置字体；
// 只有内置字体也无法加载时才返回错误，调用方应视为致命错误。
func NewRenderer(opts Options) (*Renderer, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		log:      log,
		families: map[string]*canvas.FontFamily{},
		faces:    map[faceKey]*canvas.FontFace{},
	}

	fallback, err := loadFamily("bingo-fallback", fonts.Fallback())
	if err != nil {
		return nil, fmt.Errorf("加载内置字体失败: %w", err)
	}
	r.fallback = fallback

	defaults := map[string]Resource{
		layout.FontBody:  {Path: "embed:" + fonts.Regular},
		layout.FontTitle: {Path: "embed:" + fonts.Bold},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		defaults[name] = res
	}
	for name, res := range defaults {
		family, err := loadResource(name, res)
		if err != nil {
			log.Warn("字体加载失败，改用内置字体", zap.String("font", name), zap.String("path", res.Path), zap.Error(err))
			family = fallback
		}
		r.families[name] = family
	}
	return r, nil
}

func loadResource(name string, res Resource) (*canvas.FontFamily, error) {
	data := res.Bytes
	if len(data) == 0 {
		var err error
		data, err = fonts.Load(res.Path)
		if err != nil {
			return nil, err
		}
	}
	family, err := loadFamily(name, data)
	if err != nil {
		return nil, fmt.Errorf("解析字体 %s 失败: %w", name, err)
	}
	return family, nil
}

func loadFamily(name string, data []byte) (*canvas.FontFamily, error) {
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, err
	}
	return family, nil
}

// TextWidth 实现 layout.Measurer：size 与返回值均为 pt。
func (r *Renderer) TextWidth(text, font string, size float64) float64 {
	face := r.face(font, size, layout.Color{})
	return toPt(face.TextWidth(text))
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	var buf bytes.Buffer
	first := result.Pages[0]
	writer := pdf.New(&buf, toMm(first.Width), toMm(first.Height), nil)
	applyMeta(writer, result.Meta)
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(toMm(page.Width), toMm(page.Height))
		}
		c := canvas.New(toMm(page.Width), toMm(page.Height))
		ctx := canvas.NewContext(c)
		r.drawPage(ctx, page)
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// drawPage 按 矩形 → 图片 → 文本 的顺序绘制。
func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) {
	flip := pageFlip(page.Height)
	for _, rc := range page.Rects {
		drawRect(ctx, rc, flip)
	}
	for _, img := range page.Images {
		r.drawImage(ctx, img, flip)
	}
	for _, tb := range page.Texts {
		r.drawTextBox(ctx, tb, flip)
	}
}

func drawRect(ctx *canvas.Context, rc layout.Rect, flip func(float64) float64) {
	if rc.FillColor != nil {
		ctx.SetFillColor(colorFromLayout(*rc.FillColor))
	} else {
		ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	}
	if rc.StrokeColor != nil {
		w := toMm(rc.StrokeWidth)
		if w <= 0 {
			w = defaultStrokeWidth
		}
		ctx.SetStrokeColor(colorFromLayout(*rc.StrokeColor))
		ctx.SetStrokeWidth(w)
	} else {
		ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
		ctx.SetStrokeWidth(0)
	}
	ctx.DrawPath(toMm(rc.X), flip(rc.Y+rc.Height), canvas.Rectangle(toMm(rc.Width), toMm(rc.Height)))
}

func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox, flip func(float64) float64) {
	face := r.face(tb.Font, tb.FontSize, tb.Color)

	var textAlign canvas.TextAlign
	var anchorX float64
	switch strings.ToLower(tb.Align) {
	case "center":
		textAlign = canvas.Center
		anchorX = tb.X + tb.Width/2
	case "right", "end":
		textAlign = canvas.Right
		anchorX = tb.X + tb.Width
	default:
		textAlign = canvas.Left
		anchorX = tb.X
	}

	// 基线：行顶部加上字体上升部（Ascent 为 mm，换算回 pt）
	ascent := toPt(face.Metrics().Ascent)
	cursorY := tb.Y
	for _, line := range tb.Lines {
		if line != "" {
			ctx.DrawText(toMm(anchorX), flip(cursorY+ascent), canvas.NewTextLine(face, line, textAlign))
		}
		cursorY += tb.FontSize + tb.LineGap
	}
}

// drawImage 解码失败或文件缺失时只记录警告并跳过，不影响其余内容。
func (r *Renderer) drawImage(ctx *canvas.Context, box layout.ImageBox, flip func(float64) float64) {
	img, err := decodeImage(box)
	if err != nil {
		r.log.Warn("跳过图片", zap.String("path", box.Path), zap.Error(err))
		return
	}
	px := img.Bounds().Dx()
	if px <= 0 || box.Width <= 0 {
		r.log.Warn("跳过图片", zap.String("path", box.Path), zap.String("reason", "empty bounds"))
		return
	}
	dpmm := float64(px) / toMm(box.Width)
	heightMm := float64(img.Bounds().Dy()) / dpmm
	ctx.DrawImage(toMm(box.X), flip(box.Y)-heightMm, img, canvas.DPMM(dpmm))
}

func decodeImage(box layout.ImageBox) (image.Image, error) {
	data := box.Data
	if len(data) == 0 {
		if box.Path == "" {
			return nil, fmt.Errorf("图片既没有数据也没有路径")
		}
		var err error
		data, err = os.ReadFile(box.Path)
		if err != nil {
			return nil, fmt.Errorf("读取图片 %s 失败: %w", box.Path, err)
		}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("解码图片失败: %w", err)
	}
	return img, nil
}

// face 返回缓存的字体面。
func (r *Renderer) face(font string, size float64, col layout.Color) *canvas.FontFace {
	key := faceKey{font: font, size: size, color: col}
	r.faceMu.Lock()
	defer r.faceMu.Unlock()
	if f, ok := r.faces[key]; ok {
		return f
	}
	family, ok := r.families[font]
	if !ok {
		family = r.fallback
	}
	f := family.Face(size, colorFromLayout(col), canvas.FontRegular, canvas.FontNormal)
	r.faces[key] = f
	return f
}

func pageFlip(heightPt float64) func(float64) float64 {
	h := toMm(heightPt)
	return func(yPt float64) float64 { return h - toMm(yPt) }
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
