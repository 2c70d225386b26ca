package extract

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ByLCY/bingo/deck"
)

const (
	DefaultMaxAttempts = 3
	DefaultBackoff     = time.Second
)

// GenerateFunc asks the external generator for count items on topic.
type GenerateFunc func(ctx context.Context, topic string, count int) (string, error)

// Request describes what to ask for and what is good enough.
type Request struct {
	Topic         string
	Count         int
	MinAcceptable int
	Mode          Mode // 零值为 ModeQA
}

// RetryOptions 控制重试次数与失败后的退避时长；零值使用默认值。
type RetryOptions struct {
	MaxAttempts int
	Backoff     time.Duration
	Logger      *zap.Logger
}

// Attempt 记录一次调用的结果，只用于日志。
type Attempt struct {
	Number    int
	Topic     string
	Requested int
	Raw       string
	Parsed    int
	Accepted  bool
	Err       error
}

// WithRetry calls gen until it yields at least req.MinAcceptable items or the
// attempt budget is spent. It never fails: the most recent parse is returned,
// which may be shorter than requested or empty.
//
// 注意：保留的是最后一次的解析结果，而不是数量最多的那次。
// 生成端报错也计入次数，并在非最后一次时等待 Backoff 后再试。
func WithRetry(ctx context.Context, gen GenerateFunc, req Request, opts RetryOptions) deck.ItemSet {
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	last := deck.ItemSet{}
	for n := 1; n <= maxAttempts; n++ {
		att := Attempt{Number: n, Topic: req.Topic, Requested: req.Count}
		raw, err := gen(ctx, req.Topic, req.Count)
		if err != nil {
			att.Err = err
			logAttempt(logger, att)
			if n == maxAttempts {
				break
			}
			if !sleep(ctx, backoff) {
				logger.Warn("generation cancelled during backoff", zap.Error(ctx.Err()))
				break
			}
			continue
		}

		last = Items(raw, req.Mode, req.Count)
		att.Raw = raw
		att.Parsed = len(last)
		att.Accepted = len(last) >= req.MinAcceptable
		logAttempt(logger, att)
		if att.Accepted {
			return last
		}
	}
	return last
}

func logAttempt(logger *zap.Logger, att Attempt) {
	fields := []zap.Field{
		zap.Int("attempt", att.Number),
		zap.String("topic", att.Topic),
		zap.Int("requested", att.Requested),
		zap.Int("parsed", att.Parsed),
		zap.Bool("accepted", att.Accepted),
	}
	if att.Err != nil {
		logger.Warn("generator call failed", append(fields, zap.Error(att.Err))...)
		return
	}
	logger.Debug("generator response parsed", append(fields, zap.Int("rawBytes", len(att.Raw)))...)
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
