package generator

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/ByLCY/bingo/config"
	"github.com/ByLCY/bingo/extract"
)

const (
	defaultRegion  = "europe-west1"
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 30 * time.Second
)

// TextGenerator 是一次 system + user 提示词到纯文本回复的调用。
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Gemini wraps the Google GenAI client.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

var _ TextGenerator = (*Gemini)(nil)

// NewGemini creates a client. APIKey 非空时使用 Gemini API，否则通过应用默认凭据访问 Vertex AI。
func NewGemini(ctx context.Context, cfg config.Generator) (*Gemini, error) {
	cc := &genai.ClientConfig{}
	switch {
	case cfg.APIKey != "":
		cc.APIKey = cfg.APIKey
		cc.Backend = genai.BackendGeminiAPI
	case cfg.Project != "":
		region := cfg.Location
		if region == "" {
			region = defaultRegion
		}
		cc.Project = cfg.Project
		cc.Location = region
		cc.Backend = genai.BackendVertexAI
	default:
		return nil, fmt.Errorf("generator: 未配置 API key 或 GCP 项目")
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	g := &Gemini{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
	if g.model == "" {
		g.model = defaultModel
	}
	if g.timeout <= 0 {
		g.timeout = defaultTimeout
	}
	return g, nil
}

// Generate sends one prompt pair and returns the response text.
func (g *Gemini) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(userPrompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			Temperature:       genai.Ptr(g.temperature),
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty gemini response")
	}
	return text, nil
}

// Func adapts the client to the extractor's retry loop.
func (g *Gemini) Func(mode extract.Mode) extract.GenerateFunc {
	return Func(g, mode)
}

// Func builds an extract.GenerateFunc that prompts gen for a list in the given mode.
func Func(gen TextGenerator, mode extract.Mode) extract.GenerateFunc {
	return func(ctx context.Context, topic string, count int) (string, error) {
		system, user := Prompts(mode, topic, count)
		return gen.Generate(ctx, system, user)
	}
}
