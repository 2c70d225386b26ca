package deck

// Kind 区分条目的两种形态：单词或问答对。
type Kind int

const (
	KindWord Kind = iota
	KindQA
)

func (k Kind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindQA:
		return "qa"
	default:
		return "unknown"
	}
}

// Item is a parsed deck entry: either a bare word or a question/answer pair.
// 字段不导出，解析完成后不可修改；构造只能经由 Word / QA。
type Item struct {
	kind     Kind
	word     string
	question string
	answer   string
}

// Word 构造单词条目。
func Word(s string) Item { return Item{kind: KindWord, word: s} }

// QA 构造问答条目。调用方（extract 包）负责保证两侧非空。
func QA(question, answer string) Item {
	return Item{kind: KindQA, question: question, answer: answer}
}

func (i Item) Kind() Kind       { return i.kind }
func (i Item) Question() string { return i.question }
func (i Item) Answer() string   { return i.answer }

// CardText 返回放入卡片格子的文本：单词本身，或问答对的答案（玩家在卡片上找答案，主持人念题目）。
func (i Item) CardText() string {
	if i.kind == KindQA {
		return i.answer
	}
	return i.word
}

// CallerLines 返回主持人答案表上显示的行。
func (i Item) CallerLines() []string {
	if i.kind == KindQA {
		return []string{"Q: " + i.question, "A: " + i.answer}
	}
	return []string{i.word}
}

// String renders the item the way it was parsed ("q:a" for pairs).
func (i Item) String() string {
	if i.kind == KindQA {
		return i.question + ":" + i.answer
	}
	return i.word
}

// ItemSet 保持首次成功解析的顺序；顺序只影响截断，不影响卡片抽样。
type ItemSet []Item

// Strings 返回每个条目的 String 形式。
func (s ItemSet) Strings() []string {
	out := make([]string, len(s))
	for i, it := range s {
		out[i] = it.String()
	}
	return out
}
