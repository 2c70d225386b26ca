package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// Free 是奇数尺寸卡片中心格的占位文本。
const Free = "FREE"

// ErrInsufficientItems 表示条目数少于一张卡片所需的格子数。
// Generate 本身会用空格子补齐，此错误供上层在生成前拒绝请求。
var ErrInsufficientItems = errors.New("deck: not enough items for the grid")

// Card 按行优先存放 G*G 个格子的显示文本（index = row*G + col）。
type Card []string

// Cell 返回 (row, col) 处的文本。
func (c Card) Cell(gridSize, row, col int) string { return c[row*gridSize+col] }

// Rows 将卡片切分成 gridSize 行，便于预览。
func (c Card) Rows(gridSize int) [][]string {
	if gridSize <= 0 {
		return nil
	}
	rows := make([][]string, 0, gridSize)
	for i := 0; i+gridSize <= len(c); i += gridSize {
		rows = append(rows, c[i:i+gridSize])
	}
	return rows
}

// CardSet 是一次生成得到的全部卡片。
type CardSet []Card

// NewRand 返回可复现的随机源；seed 为 0 时使用当前时间。
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Validate 检查条目数是否足够填满一张 gridSize×gridSize 的卡片。
func Validate(items ItemSet, gridSize int) error {
	need := gridSize * gridSize
	if len(items) < need {
		return fmt.Errorf("%w: need %d, have %d", ErrInsufficientItems, need, len(items))
	}
	return nil
}

// Generate builds numCards independent cards of gridSize×gridSize cells.
//
// 抽样池为每个条目的 CardText，不足 G*G 时以空字符串补齐；每张卡片从池中无放回地抽取
// 恰好 G*G 个元素。奇数尺寸时中心格无条件写为 Free。该函数不会失败。
func Generate(items ItemSet, numCards, gridSize int, rng *rand.Rand) CardSet {
	if numCards <= 0 {
		return CardSet{}
	}
	if rng == nil {
		rng = NewRand(0)
	}
	total := gridSize * gridSize
	if gridSize <= 0 {
		total = 0
	}

	pool := make([]string, 0, max(len(items), total))
	for _, it := range items {
		pool = append(pool, it.CardText())
	}
	for len(pool) < total {
		pool = append(pool, "")
	}

	cards := make(CardSet, 0, numCards)
	for range numCards {
		perm := rng.Perm(len(pool))
		card := make(Card, total)
		for i := 0; i < total; i++ {
			card[i] = pool[perm[i]]
		}
		if gridSize > 0 && gridSize%2 != 0 {
			card[total/2] = Free
		}
		cards = append(cards, card)
	}
	return cards
}
