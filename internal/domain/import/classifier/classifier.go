// Package classifier assigns a category, and for premium users a clean
// display name, to transaction descriptions that no local rule could resolve.
// Classification never fails an import: any model error degrades to the
// cleaned description and the Uncategorized bucket.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/overdruiven/finance-api/internal/domain/category"
	"github.com/overdruiven/finance-api/internal/domain/user"
	"github.com/overdruiven/finance-api/pkg/metrics"
)

// Result is the outcome of classifying a single description.
type Result struct {
	DisplayName string
	Category    category.Category
}

// Classifier resolves a raw description to a display name and category. It
// always returns a usable result; remote failures fall back locally.
type Classifier interface {
	Classify(ctx context.Context, description string) Result
}

// remote abstracts the model call so tests can stub it.
type remote interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client wraps a remote model with rate limiting and per-call timeouts and
// produces tier-appropriate classifiers.
type Client struct {
	remote  remote
	limiter *rate.Limiter
	timeout time.Duration
	logger  *slog.Logger
}

func NewClient(remote remote, rps float64, burst int, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		remote:  remote,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		timeout: timeout,
		logger:  logger,
	}
}

// ForTier returns the classifier matching the user's subscription. Free users
// get category assignment only; premium users also get a model-chosen display
// name.
func (c *Client) ForTier(tier user.Tier) Classifier {
	if tier.IsPremium() {
		return &richClassifier{client: c}
	}
	return &categoryOnlyClassifier{client: c}
}

// call runs one rate-limited, deadline-bounded model request.
func (c *Client) call(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.remote.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating classification: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}

// categoryOnlyClassifier assigns a category and keeps the locally cleaned
// description as the display name.
type categoryOnlyClassifier struct {
	client *Client
}

func (f *categoryOnlyClassifier) Classify(ctx context.Context, description string) Result {
	fallback := Result{
		DisplayName: CleanDescription(description),
		Category:    category.Uncategorized,
	}

	prompt := categoryPrompt(description)
	text, err := f.client.call(ctx, prompt)
	if err != nil {
		f.client.logger.WarnContext(ctx, "category classification failed, using fallback",
			slog.String("error", err.Error()))
		metrics.ClassifierCalls.WithLabelValues("category", "error").Inc()
		return fallback
	}

	fallback.Category = category.Coerce(strings.TrimSpace(cleanModelJSON(text)))
	metrics.ClassifierCalls.WithLabelValues("category", "ok").Inc()
	return fallback
}

// richClassifier asks the model for both a display name and a category.
type richClassifier struct {
	client *Client
}

type richResponse struct {
	DisplayName string `json:"display_name"`
	Category    string `json:"category"`
}

func (p *richClassifier) Classify(ctx context.Context, description string) Result {
	fallback := Result{
		DisplayName: CleanDescription(description),
		Category:    category.Uncategorized,
	}

	prompt := richPrompt(description)
	text, err := p.client.call(ctx, prompt)
	if err != nil {
		p.client.logger.WarnContext(ctx, "rich classification failed, using fallback",
			slog.String("error", err.Error()))
		metrics.ClassifierCalls.WithLabelValues("rich", "error").Inc()
		return fallback
	}

	var parsed richResponse
	if err := json.Unmarshal([]byte(cleanModelJSON(text)), &parsed); err != nil {
		p.client.logger.WarnContext(ctx, "unparseable classification response, using fallback",
			slog.String("error", err.Error()))
		metrics.ClassifierCalls.WithLabelValues("rich", "error").Inc()
		return fallback
	}

	metrics.ClassifierCalls.WithLabelValues("rich", "ok").Inc()

	result := fallback
	if name := strings.TrimSpace(parsed.DisplayName); name != "" {
		result.DisplayName = name
	}
	result.Category = category.Coerce(parsed.Category)
	return result
}

func categoryPrompt(description string) string {
	var b strings.Builder
	b.WriteString("Classify this bank transaction description into exactly one of the following categories:\n")
	for _, cat := range category.All() {
		b.WriteString("- ")
		b.WriteString(string(cat))
		b.WriteString("\n")
	}
	b.WriteString("\nDescription: ")
	b.WriteString(description)
	b.WriteString("\n\nRespond with the category name only, no explanation, no quotes.")
	return b.String()
}

func richPrompt(description string) string {
	var b strings.Builder
	b.WriteString("You normalize bank transaction descriptions.\n\n")
	b.WriteString("Given the raw description below, produce:\n")
	b.WriteString("- \"display_name\": a short human-readable merchant or counterparty name\n")
	b.WriteString("- \"category\": exactly one of the following:\n")
	for _, cat := range category.All() {
		b.WriteString("  - ")
		b.WriteString(string(cat))
		b.WriteString("\n")
	}
	b.WriteString("\nDescription: ")
	b.WriteString(description)
	b.WriteString("\n\nReturn ONLY valid raw JSON with those two fields.\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")
	b.WriteString("Do NOT use ```json or any Markdown.")
	return b.String()
}

// cleanModelJSON strips Markdown fences the model sometimes adds despite
// instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}
