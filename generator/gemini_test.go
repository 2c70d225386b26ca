package generator

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/bingo/config"
	"github.com/ByLCY/bingo/extract"
)

type fakeGenerator struct {
	system, user string
	reply        string
	err          error
}

func (f *fakeGenerator) Generate(_ context.Context, system, user string) (string, error) {
	f.system, f.user = system, user
	return f.reply, f.err
}

func TestFuncPromptsForWords(t *testing.T) {
	fake := &fakeGenerator{reply: "แมว, หมา"}
	raw, err := Func(fake, extract.ModeWord)(context.Background(), "สัตว์", 25)
	require.NoError(t, err)
	assert.Equal(t, "แมว, หมา", raw)
	assert.Contains(t, fake.system, "EXACTLY 25 words")
	assert.Contains(t, fake.user, "'สัตว์'")
}

func TestFuncPromptsForPairs(t *testing.T) {
	fake := &fakeGenerator{err: errors.New("quota")}
	_, err := Func(fake, extract.ModeQA)(context.Background(), "maths", 10)
	require.Error(t, err)
	assert.Contains(t, fake.system, "question:answer")
	assert.True(t, strings.HasPrefix(fake.user, "Generate 10 question:answer pairs"))
}

func TestNewGeminiRequiresCredentials(t *testing.T) {
	_, err := NewGemini(context.Background(), config.Generator{})
	require.Error(t, err)
}

func TestGeminiIntegration(t *testing.T) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		t.Skip("GEMINI_API_KEY not set, skipping integration test")
	}
	ctx := context.Background()
	g, err := NewGemini(ctx, config.Generator{APIKey: key, Temperature: 0.7, Timeout: time.Minute})
	require.NoError(t, err)

	items := extract.WithRetry(ctx, g.Func(extract.ModeWord), extract.Request{
		Topic: "fruit", Count: 10, MinAcceptable: 5, Mode: extract.ModeWord,
	}, extract.RetryOptions{})
	assert.GreaterOrEqual(t, len(items), 5)
}
