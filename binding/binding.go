package binding

import (
	"fmt"
	"regexp"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Scope 是插值可见的数据，值可以嵌套 Scope。
type Scope map[string]any

// Card 返回卡片页使用的作用域：${title}、${card.number}、${card.total}。
func Card(title string, number, total int) Scope {
	return Scope{
		"title": title,
		"card":  Scope{"number": number, "total": total},
	}
}

// Page 返回答案表页使用的作用域：${title}、${page.number}、${page.total}。
func Page(title string, number, total int) Scope {
	return Scope{
		"title": title,
		"page":  Scope{"number": number, "total": total},
	}
}

// Interpolate 将文本中的 ${path.to.value} 替换为 scope 中的值。
// 路径不存在时保留原占位符，便于在输出中发现拼写错误。
func Interpolate(text string, scope Scope) string {
	if scope == nil || !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		if val, ok := resolvePath(scope, path); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

func resolvePath(scope Scope, path string) (any, bool) {
	var current any = scope
	for _, segment := range strings.Split(path, ".") {
		next, ok := current.(Scope)
		if !ok {
			return nil, false
		}
		if current, ok = next[segment]; !ok {
			return nil, false
		}
	}
	return current, true
}
