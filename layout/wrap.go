package layout

import (
	"strings"

	"github.com/rivo/uniseg"
)

const (
	// WrapPadding 是每行可用宽度之外预留的水平余量（pt）。
	WrapPadding = 10.0
	// MaxLines 是首轮折行允许的最大行数，超过后改用最小字号重排一次。
	MaxLines = 4
)

// WrappedBlock 是一次折行的结果：行序列与实际采用的字号。
type WrappedBlock struct {
	Lines    []string `json:"lines"`
	FontSize float64  `json:"fontSize"`
}

// Height 返回 len(Lines) * (FontSize + lineGap)。
func (b WrappedBlock) Height(lineGap float64) float64 {
	return float64(len(b.Lines)) * (b.FontSize + lineGap)
}

// Wrap greedily wraps text into lines narrower than maxWidth-WrapPadding.
//
// 第一轮使用 startSize；若行数超过 MaxLines，则用 minSize 从头重排一次并直接返回，
// 不保证第二轮一定落在上限内。空文本返回一行空串，字号为 startSize。
// 比整行还宽的单个 token 独占一行，不做切分。
func Wrap(m Measurer, font, text string, maxWidth, startSize, minSize float64) WrappedBlock {
	return wrapBlock(m, font, text, maxWidth, startSize, minSize, false)
}

// WrapGraphemes 与 Wrap 相同，但把比整行还宽的 token 在字素簇边界处切开，
// 用于没有空格的文字（例如泰文短语）。切开后的行同样计入 MaxLines。
func WrapGraphemes(m Measurer, font, text string, maxWidth, startSize, minSize float64) WrappedBlock {
	return wrapBlock(m, font, text, maxWidth, startSize, minSize, true)
}

type wrapFunc func(m Measurer, font, text string, maxWidth, startSize, minSize float64) WrappedBlock

// wrapper 按 split 选择 Wrap 或 WrapGraphemes。
func wrapper(split bool) wrapFunc {
	if split {
		return WrapGraphemes
	}
	return Wrap
}

func wrapBlock(m Measurer, font, text string, maxWidth, startSize, minSize float64, split bool) WrappedBlock {
	lines := wrapAt(m, font, text, maxWidth, startSize, split)
	if len(lines) <= MaxLines {
		return WrappedBlock{Lines: lines, FontSize: startSize}
	}
	return WrappedBlock{Lines: wrapAt(m, font, text, maxWidth, minSize, split), FontSize: minSize}
}

func wrapAt(m Measurer, font, text string, maxWidth, size float64, split bool) []string {
	limit := maxWidth - WrapPadding
	var lines []string
	current := ""
	for _, token := range strings.Fields(text) {
		if current != "" && m.TextWidth(current+" "+token, font, size) < limit {
			current += " " + token
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if !split || limit <= 0 || m.TextWidth(token, font, size) < limit {
			current = token
			continue
		}
		parts := splitTokenByWidth(m, font, token, limit, size)
		lines = append(lines, parts[:len(parts)-1]...)
		current = parts[len(parts)-1]
	}
	if current != "" || len(lines) == 0 {
		lines = append(lines, current)
	}
	return lines
}

// splitTokenByWidth 在字素簇边界处切分 token，使每段宽度小于 limit；
// 单个字素簇本身超宽时独占一段。
func splitTokenByWidth(m Measurer, font, token string, limit, size float64) []string {
	var parts []string
	var builder strings.Builder
	gr := uniseg.NewGraphemes(token)
	for gr.Next() {
		cluster := gr.Str()
		if builder.Len() > 0 && m.TextWidth(builder.String()+cluster, font, size) >= limit {
			parts = append(parts, builder.String())
			builder.Reset()
		}
		builder.WriteString(cluster)
	}
	if builder.Len() > 0 {
		parts = append(parts, builder.String())
	}
	return parts
}
