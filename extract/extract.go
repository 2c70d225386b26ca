package extract

import (
	"fmt"
	"strings"

	"github.com/ByLCY/bingo/deck"
)

// Mode selects how tokens are turned into items. 零值为 ModeQA。
type Mode int

const (
	ModeQA Mode = iota
	ModeWord
)

func (m Mode) String() string {
	if m == ModeWord {
		return "word"
	}
	return "qa"
}

// ParseMode 解析 "word" / "qa"（大小写不敏感，空串视为 word）。
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "word", "words":
		return ModeWord, nil
	case "qa", "q:a", "question", "questions":
		return ModeQA, nil
	default:
		return ModeWord, fmt.Errorf("未知的条目模式: %q", s)
	}
}

// Items parses raw into at most requested items (requested <= 0 keeps everything).
//
// word 模式下删除 token 内部所有空格（目标文字没有词内空格，出现的空格都是生成端噪声）。
// qa 模式下只在第一个 ':' 处切分，任一侧为空则整条丢弃，不做修补。
func Items(raw string, mode Mode, requested int) deck.ItemSet {
	tokens := Tokens(raw)
	items := make(deck.ItemSet, 0, len(tokens))
	for _, tok := range tokens {
		if requested > 0 && len(items) >= requested {
			break
		}
		switch mode {
		case ModeQA:
			q, a, ok := strings.Cut(tok, PairSeparator)
			if !ok {
				continue
			}
			q, a = strings.TrimSpace(q), strings.TrimSpace(a)
			if q == "" || a == "" {
				continue
			}
			items = append(items, deck.QA(q, a))
		default:
			w := strings.ReplaceAll(tok, " ", "")
			if w == "" {
				continue
			}
			items = append(items, deck.Word(w))
		}
	}
	return items
}
