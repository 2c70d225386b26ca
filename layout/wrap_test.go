package layout

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// stubMeasurer 是测试用的等宽度量：每个字符宽 size*0.5pt，避免依赖真实字体。
type stubMeasurer struct{}

func (stubMeasurer) TextWidth(text, font string, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * size * 0.5
}

func TestWrapEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		b := Wrap(stubMeasurer{}, FontBody, text, 100, 16, 10)
		if len(b.Lines) != 1 || b.Lines[0] != "" {
			t.Fatalf("Wrap(%q) lines = %q, want one empty line", text, b.Lines)
		}
		if b.FontSize != 16 {
			t.Fatalf("Wrap(%q) font size = %g, want 16", text, b.FontSize)
		}
	}
}

func TestWrapSingleLine(t *testing.T) {
	b := Wrap(stubMeasurer{}, FontBody, "cat dog", 200, 10, 8)
	if len(b.Lines) != 1 || b.Lines[0] != "cat dog" || b.FontSize != 10 {
		t.Fatalf("unexpected block: %#v", b)
	}
}

func TestWrapGreedyBreaks(t *testing.T) {
	// 字号 10 时每字符 5pt；可用宽度 60-10=50pt，严格小于 → 每行最多 9 个字符。
	b := Wrap(stubMeasurer{}, FontBody, "aaa bbb ccc ddd", 60, 10, 8)
	want := []string{"aaa bbb", "ccc ddd"}
	if strings.Join(b.Lines, "|") != strings.Join(want, "|") {
		t.Fatalf("lines = %q, want %q", b.Lines, want)
	}
	for _, line := range b.Lines {
		if w := (stubMeasurer{}).TextWidth(line, FontBody, 10); w >= 60-WrapPadding {
			t.Fatalf("line %q too wide: %g", line, w)
		}
	}
}

func TestWrapShrinksToMinSize(t *testing.T) {
	// 字号 16 时每字符 8pt，可用 40pt：每行只能放一个词 → 6 行 > 4，必须改用最小字号。
	text := "one two six ten red big"
	b := Wrap(stubMeasurer{}, FontBody, text, 50, 16, 10)
	if b.FontSize != 10 {
		t.Fatalf("font size = %g, want min size 10", b.FontSize)
	}
	first := wrapAt(stubMeasurer{}, FontBody, text, 50, 16, false)
	if len(first) <= MaxLines {
		t.Fatalf("test precondition: first pass should exceed %d lines, got %d", MaxLines, len(first))
	}
	if len(b.Lines) >= len(first) {
		t.Fatalf("expected fewer lines at min size, got %d (first pass %d)", len(b.Lines), len(first))
	}
}

func TestWrapShrinkIsSingleStep(t *testing.T) {
	// 即便最小字号仍超过上限，也只重排一次，字号等于 minSize。
	text := strings.Repeat("word ", 20)
	b := Wrap(stubMeasurer{}, FontBody, text, 40, 16, 12)
	if b.FontSize != 12 {
		t.Fatalf("font size = %g, want 12", b.FontSize)
	}
	if len(b.Lines) <= MaxLines {
		t.Fatalf("expected the min-size pass to still exceed the cap, got %d lines", len(b.Lines))
	}
}

func TestWrapExactlyMaxLinesKeepsStartSize(t *testing.T) {
	b := Wrap(stubMeasurer{}, FontBody, "aaaa bbbb cccc dddd", 35, 10, 6)
	if len(b.Lines) != 4 || b.FontSize != 10 {
		t.Fatalf("expected 4 lines at start size, got %d at %g", len(b.Lines), b.FontSize)
	}
}

func TestWrapKeepsOverlongTokenWhole(t *testing.T) {
	// 超宽 token 独占一行，不切分，也不会因此触发缩小字号。
	token := "abcdefghijklmnopqrstuvwxyzabcdefghij"
	b := Wrap(stubMeasurer{}, FontBody, token, 50, 16, 10)
	if len(b.Lines) != 1 || b.Lines[0] != token || b.FontSize != 16 {
		t.Fatalf("expected one line at 16, got %q at %g", b.Lines, b.FontSize)
	}

	b = Wrap(stubMeasurer{}, FontBody, "cat "+token+" dog", 50, 16, 10)
	want := []string{"cat", token, "dog"}
	if strings.Join(b.Lines, "|") != strings.Join(want, "|") {
		t.Fatalf("lines = %q, want %q", b.Lines, want)
	}
}

func TestWrapGraphemesSplitsOverlongToken(t *testing.T) {
	// 没有空格的长词按字素簇切开，每段宽度小于可用宽度。
	b := WrapGraphemes(stubMeasurer{}, FontBody, "abcdefghijklmnop", 50, 10, 8)
	if len(b.Lines) < 2 {
		t.Fatalf("expected the token to be split, got %q", b.Lines)
	}
	if strings.Join(b.Lines, "") != "abcdefghijklmnop" {
		t.Fatalf("split lost characters: %q", b.Lines)
	}
	for _, line := range b.Lines {
		if w := (stubMeasurer{}).TextWidth(line, FontBody, b.FontSize); w >= 50-WrapPadding {
			t.Fatalf("segment %q too wide: %g", line, w)
		}
	}
}

func TestWrapGraphemesKeepsClusters(t *testing.T) {
	// "ที่" 由一个辅音加两个组合符组成，不能被拆开。
	token := strings.Repeat("ที่", 12)
	b := WrapGraphemes(stubMeasurer{}, FontBody, token, 40, 10, 10)
	if len(b.Lines) < 2 {
		t.Fatalf("expected the token to be split, got %q", b.Lines)
	}
	for _, line := range b.Lines {
		if len(line)%len("ที่") != 0 {
			t.Fatalf("line %q splits a grapheme cluster", line)
		}
	}
}

func TestWrappedBlockHeight(t *testing.T) {
	b := WrappedBlock{Lines: []string{"a", "b", "c"}, FontSize: 12}
	if got := b.Height(2); got != 42 {
		t.Fatalf("height = %g, want 42", got)
	}
}
