package extract

import (
	"regexp"
	"strings"
)

const (
	// Separator 是字段分隔符。
	Separator = ","
	// PairSeparator 分隔问题与答案，只在第一次出现处切分。
	PairSeparator = ":"
)

// 空白字符类：ASCII 空白、Unicode 分隔符（含不换行空格）以及 BOM 与零宽字符。
const wsClass = `[\s\p{Z}\x{feff}\x{200b}\x{200c}\x{200d}\x{2060}]`

var (
	newlinePattern     = regexp.MustCompile(`\r\n|\r|\n`)
	enumerationPattern = regexp.MustCompile(`(^|,)` + wsClass + `*\d+\.` + wsClass + `+`)
	whitespacePattern  = regexp.MustCompile(wsClass + `+`)
	separatorPattern   = regexp.MustCompile(` ?, ?`)
	repeatedSeparators = regexp.MustCompile(`,{2,}`)
)

// Clean normalises a raw generator response into a single separator-delimited line.
//
// 顺序固定：换行→逗号；去掉每个字段开头的 "1. " 编号；折叠各种空白为单个空格；
// 去掉逗号两侧空格；合并连续逗号。
func Clean(raw string) string {
	s := newlinePattern.ReplaceAllString(raw, Separator)
	s = enumerationPattern.ReplaceAllString(s, "${1}")
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = separatorPattern.ReplaceAllString(s, Separator)
	s = repeatedSeparators.ReplaceAllString(s, Separator)
	return s
}

// Tokens 清洗 raw 后按分隔符切分，去掉首尾空白并丢弃空 token。
func Tokens(raw string) []string {
	parts := strings.Split(Clean(raw), Separator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
