package fonts

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体名。渲染器在没有指定字体或加载失败时回退到 Regular。
const (
	Regular = "go-regular"
	Bold    = "go-bold"
)

var builtin = map[string][]byte{
	Regular: goregular.TTF,
	Bold:    gobold.TTF,
}

// Fallback 返回内置的常规字体。
func Fallback() []byte { return goregular.TTF }

// Load 返回字体字节数据。src 可写为 "embed:go-regular"、"embed:go-bold"，或者一个本地 TTF/OTF 路径。
func Load(src string) ([]byte, error) {
	if name, ok := strings.CutPrefix(src, "embed:"); ok {
		data, ok := builtin[name]
		if !ok {
			return nil, fmt.Errorf("找不到内置字体 %s", name)
		}
		return data, nil
	}
	if src == "" {
		return nil, fmt.Errorf("字体路径为空")
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}
