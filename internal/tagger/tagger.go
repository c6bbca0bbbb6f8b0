// Package tagger generates product search tags with a text-generation model.
package tagger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"shopadmin/internal/prompts"
	"shopadmin/internal/retry"

	"go.uber.org/zap"
)

var (
	// ErrRemoteService means the generation call itself failed (network, quota, auth).
	ErrRemoteService = errors.New("tag generation service failed")
	// ErrResponseParse means the model answered but the answer carried no usable tags.
	ErrResponseParse = errors.New("failed to parse AI response")
)

const defaultCallTimeout = 30 * time.Second

// Generator is any provider that turns a system instruction and a user message into text.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type Options struct {
	Generator Generator
	Renderer  *prompts.Renderer
	Retry     retry.Policy
	// CallTimeout bounds a single attempt; zero means 30s.
	CallTimeout time.Duration
	// Transient reports whether a generator error is worth another attempt.
	// Defaults to IsTransient.
	Transient func(error) bool
	Logger    *zap.SugaredLogger
}

type Client struct {
	gen         Generator
	renderer    *prompts.Renderer
	policy      retry.Policy
	callTimeout time.Duration
	transient   func(error) bool
	logger      *zap.SugaredLogger
}

func New(opts Options) (*Client, error) {
	if opts.Generator == nil {
		return nil, errors.New("tagger: generator is required")
	}
	c := &Client{
		gen:         opts.Generator,
		renderer:    opts.Renderer,
		policy:      opts.Retry,
		callTimeout: opts.CallTimeout,
		transient:   opts.Transient,
		logger:      opts.Logger,
	}
	if c.renderer == nil {
		c.renderer = prompts.NewRenderer(nil)
	}
	if c.policy.MaxAttempts == 0 {
		c.policy = retry.DefaultPolicy()
	}
	if c.callTimeout <= 0 {
		c.callTimeout = defaultCallTimeout
	}
	if c.transient == nil {
		c.transient = IsTransient
	}
	if c.logger == nil {
		c.logger = zap.NewNop().Sugar()
	}
	return c, nil
}

// GenerateTags renders the prompts, calls the model and returns the parsed tag list.
// Every call reaches the model: output is non-deterministic so nothing is cached.
func (c *Client) GenerateTags(ctx context.Context, title, description, category string) ([]string, error) {
	rendered, err := c.renderer.Render(prompts.Values{
		Title:       title,
		Description: description,
		Category:    category,
	})
	if err != nil {
		return nil, err
	}
	if len(rendered.Unmatched) > 0 {
		c.logger.Warnw("user prompt has unmatched placeholders", "placeholders", rendered.Unmatched)
	}

	var text string
	attempt := 0
	err = retry.Do(ctx, c.policy, func(ctx context.Context) error {
		attempt++
		callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
		defer cancel()

		out, genErr := c.gen.Generate(callCtx, rendered.System, rendered.User)
		if genErr == nil {
			text = out
			return nil
		}
		// a per-attempt timeout is retryable, the caller's own deadline is not
		if ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			c.logger.Warnw("tag generation attempt timed out", "attempt", attempt)
			return genErr
		}
		if !c.transient(genErr) {
			return retry.Permanent(genErr)
		}
		c.logger.Warnw("tag generation attempt failed", "attempt", attempt, "error", genErr.Error())
		return genErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteService, err)
	}

	tags, err := ParseTags(text)
	if err != nil {
		return nil, err
	}

	c.logger.Infow("generated tags", "title", title, "count", len(tags), "attempts", attempt)
	return tags, nil
}

// StripCodeFences removes ```json and ``` fence markers and surrounding whitespace.
// Applying it twice gives the same result as applying it once.
func StripCodeFences(text string) string {
	return strings.TrimSpace(fenceReplacer.Replace(text))
}

var fenceReplacer = strings.NewReplacer("```json", "", "```", "")

type tagsPayload struct {
	Tags *string `json:"tags"`
}

// ParseTags extracts the comma separated "tags" field from a model answer.
func ParseTags(raw string) ([]string, error) {
	cleaned := StripCodeFences(raw)

	var payload tagsPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v (text: %s)", ErrResponseParse, err, preview(cleaned))
	}
	if payload.Tags == nil {
		return nil, fmt.Errorf("%w: no tags field (text: %s)", ErrResponseParse, preview(cleaned))
	}

	return SplitTags(*payload.Tags), nil
}

// SplitTags splits on commas, trims each element and drops empties, keeping order.
func SplitTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		tags = append(tags, p)
	}
	return tags
}

func preview(s string) string {
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
