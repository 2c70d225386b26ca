package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// pagePresets 以毫米记录常用纸张尺寸（纵向）。
var pagePresets = map[string][2]float64{
	"A4":     {210, 297},
	"A5":     {148, 210},
	"LETTER": {215.9, 279.4},
}

// PageSize 返回纸张的宽高（pt）。landscape 为 true 时交换宽高。
func PageSize(name string, landscape bool) (float64, float64, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if key == "" {
		key = "A4"
	}
	base, ok := pagePresets[key]
	if !ok {
		return 0, 0, fmt.Errorf("暂不支持的纸张尺寸：%s", name)
	}
	w, h := base[0]*MmToPt, base[1]*MmToPt
	if landscape {
		w, h = h, w
	}
	return w, h, nil
}

// ParseLength 解析带单位的长度（pt/mm/cm/in），返回 pt；无单位时按 pt 处理。
func ParseLength(value string) (float64, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return 0, fmt.Errorf("长度为空")
	}
	factor := 1.0
	for _, suf := range []struct {
		s string
		f float64
	}{{"mm", MmToPt}, {"cm", 10 * MmToPt}, {"in", 72}, {"pt", 1}} {
		if strings.HasSuffix(v, suf.s) {
			factor = suf.f
			v = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("长度 %q 无法解析: %w", value, err)
	}
	return f * factor, nil
}

// ParseColor 解析 #RGB / #RRGGBB / #RRGGBBAA（忽略 alpha）。
func ParseColor(value string) (Color, error) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(value) {
	case 3:
		r := strings.Repeat(string(value[0]), 2)
		g := strings.Repeat(string(value[1]), 2)
		b := strings.Repeat(string(value[2]), 2)
		return hexColor(r, g, b)
	case 6, 8:
		return hexColor(value[0:2], value[2:4], value[4:6])
	default:
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
}

func hexColor(r, g, b string) (Color, error) {
	var out [3]int
	for i, s := range []string{r, g, b} {
		v, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("颜色分量 %s 无法解析: %w", s, err)
		}
		out[i] = int(v)
	}
	return Color{R: out[0], G: out[1], B: out[2]}, nil
}

// MustColor 用于包内默认值。
func MustColor(value string) Color {
	c, err := ParseColor(value)
	if err != nil {
		panic(err)
	}
	return c
}
