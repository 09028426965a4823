package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"piazza-herald/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// Summarizer produces the optional "today's takeaway" paragraph appended
// to the daily digest.
type Summarizer interface {
	// SummarizeDigest condenses the day's posts into 2-4 sentences in the
	// given language.
	SummarizeDigest(ctx context.Context, course string, posts []model.Post, language string) (string, error)
}

// OpenAIClient implements Summarizer using OpenAI Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewOpenAI(cfg Config) *OpenAIClient {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := cfg.Model
	if model == "" {
		panic("OpenAI model must be specified")
	}
	return &OpenAIClient{client: c, model: model}
}

func (o *OpenAIClient) SummarizeDigest(ctx context.Context, course string, posts []model.Post, language string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()
	if len(posts) == 0 {
		return "", nil
	}
	b := &strings.Builder{}
	for i, p := range posts {
		if i >= 15 {
			break
		}
		fmt.Fprintf(b, "- @%d %s (%s)\n", p.Number, p.Subject(), p.Type)
	}
	sys := fmt.Sprintf(`
		You summarize a day of course forum activity for students, writing in %s.
		Return 2-4 sentences (40-120 words) highlighting what the class talked about.
		Plain text only, no links, no lists.
		`, langOrDefault(language))
	user := fmt.Sprintf("Course: %s\nToday's posts (number, subject, type):\n%s\nTask: Write the takeaway paragraph.", course, b.String())
	out, err := o.create(ctx, sys, user)
	if err != nil {
		slog.Error("openai: summarize digest error", "err", err)
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (o *OpenAIClient) create(ctx context.Context, system, user string) (string, error) {
	// Default timeout guard, if caller didn't set one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 300*time.Second)
		defer cancel()
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func langOrDefault(lang string) string {
	l := strings.TrimSpace(lang)
	if l == "" {
		return "English"
	}
	return l
}
