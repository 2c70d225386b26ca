package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ByLCY/bingo/deck"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func pairs(prefix string, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("%s%d:answer%d", prefix, i, i)
	}
	return strings.Join(parts, "\n")
}

func TestWithRetryReturnsLastAttemptBelowThreshold(t *testing.T) {
	calls := 0
	gen := func(ctx context.Context, topic string, count int) (string, error) {
		calls++
		return pairs(fmt.Sprintf("call%d-q", calls), 10), nil
	}
	got := WithRetry(context.Background(), gen,
		Request{Topic: "animals", Count: 30, MinAcceptable: 25, Mode: ModeQA},
		RetryOptions{MaxAttempts: 3, Backoff: time.Millisecond, Logger: zaptest.NewLogger(t)})

	if calls != 3 {
		t.Fatalf("expected 3 generator calls, got %d", calls)
	}
	if len(got) != 10 {
		t.Fatalf("expected the 10 pairs of the last attempt, got %d", len(got))
	}
	for _, it := range got {
		if !strings.HasPrefix(it.Question(), "call3-") {
			t.Fatalf("expected items from the last attempt, got %q", it.Question())
		}
	}
}

func TestWithRetryAcceptsImmediately(t *testing.T) {
	calls := 0
	gen := func(ctx context.Context, topic string, count int) (string, error) {
		calls++
		return pairs("q", 30), nil
	}
	got := WithRetry(context.Background(), gen,
		Request{Topic: "t", Count: 25, MinAcceptable: 25, Mode: ModeQA},
		RetryOptions{Backoff: time.Millisecond})
	if calls != 1 {
		t.Fatalf("expected one call, got %d", calls)
	}
	if len(got) != 25 {
		t.Fatalf("expected truncation to 25, got %d", len(got))
	}
}

func TestWithRetryKeepsMostRecentNotBest(t *testing.T) {
	responses := []string{pairs("first", 20), pairs("second", 5), pairs("third", 2)}
	calls := 0
	gen := func(ctx context.Context, topic string, count int) (string, error) {
		r := responses[calls]
		calls++
		return r, nil
	}
	got := WithRetry(context.Background(), gen,
		Request{Count: 25, MinAcceptable: 25, Mode: ModeQA},
		RetryOptions{MaxAttempts: 3, Backoff: time.Millisecond})
	if len(got) != 2 {
		t.Fatalf("expected the 2 pairs of the last attempt, got %d", len(got))
	}
}

func TestWithRetryGeneratorErrors(t *testing.T) {
	calls := 0
	gen := func(ctx context.Context, topic string, count int) (string, error) {
		calls++
		if calls == 2 {
			return pairs("ok", 4), nil
		}
		return "", errors.New("service unavailable")
	}
	got := WithRetry(context.Background(), gen,
		Request{Count: 10, MinAcceptable: 10, Mode: ModeQA},
		RetryOptions{MaxAttempts: 3, Backoff: time.Millisecond, Logger: zaptest.NewLogger(t)})
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	// 第三次失败，不会覆盖第二次的解析结果
	if len(got) != 4 {
		t.Fatalf("expected 4 items from the last successful parse, got %d", len(got))
	}
}

func TestWithRetryAllFailuresReturnEmpty(t *testing.T) {
	gen := func(ctx context.Context, topic string, count int) (string, error) {
		return "", errors.New("timeout")
	}
	got := WithRetry(context.Background(), gen, Request{Count: 5, MinAcceptable: 5},
		RetryOptions{MaxAttempts: 2, Backoff: time.Millisecond})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected an empty, non-nil result, got %#v", got)
	}
}

func TestWithRetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	gen := func(ctx context.Context, topic string, count int) (string, error) {
		calls++
		cancel()
		return "", ctx.Err()
	}
	start := time.Now()
	WithRetry(ctx, gen, Request{Count: 5, MinAcceptable: 5},
		RetryOptions{MaxAttempts: 3, Backoff: time.Hour})
	if calls != 1 {
		t.Fatalf("expected a single call before cancellation, got %d", calls)
	}
	if time.Since(start) > time.Minute {
		t.Fatalf("backoff was not interrupted")
	}
}

func TestWithRetryWordMode(t *testing.T) {
	gen := func(ctx context.Context, topic string, count int) (string, error) {
		return "1. apple\n2. banana\n3. cherry", nil
	}
	got := WithRetry(context.Background(), gen, Request{Count: 3, MinAcceptable: 3, Mode: ModeWord}, RetryOptions{})
	if len(got) != 3 || got[2].CardText() != "cherry" {
		t.Fatalf("unexpected items: %v", got.Strings())
	}
}

func TestWithRetryZeroModeParsesPairs(t *testing.T) {
	gen := func(ctx context.Context, topic string, count int) (string, error) {
		return "Q1:A1, Q2:A2, broken", nil
	}
	got := WithRetry(context.Background(), gen, Request{Topic: "t", Count: 5, MinAcceptable: 2},
		RetryOptions{Backoff: time.Millisecond})
	if len(got) != 2 {
		t.Fatalf("expected 2 pairs, got %v", got.Strings())
	}
	for _, it := range got {
		if it.Kind() != deck.KindQA {
			t.Fatalf("expected QA items, got %q", it.String())
		}
	}
}

func TestWithRetryLogsEachAttempt(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	calls := 0
	gen := func(ctx context.Context, topic string, count int) (string, error) {
		calls++
		switch calls {
		case 1:
			return "", errors.New("quota exceeded")
		case 2:
			return pairs("short", 1), nil
		default:
			return pairs("full", 3), nil
		}
	}
	WithRetry(context.Background(), gen,
		Request{Topic: "maths", Count: 3, MinAcceptable: 3, Mode: ModeQA},
		RetryOptions{MaxAttempts: 3, Backoff: time.Millisecond, Logger: zap.New(core)})

	failed := logs.FilterMessage("generator call failed").All()
	if len(failed) != 1 || failed[0].Level != zapcore.WarnLevel {
		t.Fatalf("expected one warning for the failed call, got %d", len(failed))
	}
	if got := failed[0].ContextMap()["attempt"]; got != int64(1) {
		t.Fatalf("failed attempt number = %v, want 1", got)
	}

	parsed := logs.FilterMessage("generator response parsed").All()
	if len(parsed) != 2 {
		t.Fatalf("expected 2 parsed entries, got %d", len(parsed))
	}
	want := []struct {
		attempt  int64
		parsed   int64
		accepted bool
	}{{2, 1, false}, {3, 3, true}}
	for i, w := range want {
		fields := parsed[i].ContextMap()
		if fields["attempt"] != w.attempt || fields["parsed"] != w.parsed || fields["accepted"] != w.accepted {
			t.Fatalf("entry %d fields = %v, want %+v", i, fields, w)
		}
		if fields["topic"] != "maths" {
			t.Fatalf("entry %d missing topic: %v", i, fields)
		}
	}
}
