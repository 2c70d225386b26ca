package renderer

import "github.com/ByLCY/bingo/layout"

// Renderer 将布局结果输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据（例如 PDF 字节切片）以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Backend 同时提供文本度量与渲染；布局阶段使用同一个后端测量宽度，保证折行结果与最终输出一致。
type Backend interface {
	Renderer
	layout.Measurer
}
