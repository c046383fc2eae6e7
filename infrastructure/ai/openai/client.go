// Package openai implements the generation port against the OpenAI
// Chat Completions API. Each request kind carries its own timeout and
// returns typed errors; fallback strings are applied by callers so the
// degradation policy stays visible at the call site.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openaiapi "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"voicenotes-backend/domain/notes"
	apperrors "voicenotes-backend/pkg/errors"
)

const (
	titleInputLimit = 300
	titleLengthCap  = 100
)

const (
	titleSystemPrompt = "You are a helpful assistant that creates concise, descriptive titles for voice notes. " +
		"Create a short title (2-6 words) that captures the main topic or theme. Only return the title, nothing else."
	summarySystemPrompt = "You are a helpful assistant that creates concise summaries of voice notes. " +
		"Create a brief, clear summary that captures the key points and main themes."
)

// Config configures the generation client.
type Config struct {
	APIKey         string
	Model          string
	TitleTimeout   time.Duration
	SummaryTimeout time.Duration
}

// Client issues title, summary and chat requests. It implements
// ports.Generator.
type Client struct {
	api            openaiapi.Client
	configured     bool
	model          string
	titleTimeout   time.Duration
	summaryTimeout time.Duration
	logger         *zap.Logger
}

// NewClient creates a generation client. An empty API key yields a
// client whose calls fail with a configuration error, never a panic;
// callers degrade to their fallback values.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	model := cfg.Model
	if model == "" {
		model = string(openaiapi.ChatModelGPT3_5Turbo)
	}
	titleTimeout := cfg.TitleTimeout
	if titleTimeout == 0 {
		titleTimeout = 15 * time.Second
	}
	summaryTimeout := cfg.SummaryTimeout
	if summaryTimeout == 0 {
		summaryTimeout = 30 * time.Second
	}

	c := &Client{
		model:          model,
		titleTimeout:   titleTimeout,
		summaryTimeout: summaryTimeout,
		logger:         logger,
	}
	if cfg.APIKey != "" {
		c.api = openaiapi.NewClient(option.WithAPIKey(cfg.APIKey))
		c.configured = true
	}
	return c
}

// Configured reports whether a provider key is present.
func (c *Client) Configured() bool {
	return c.configured
}

// Title generates a 2-6 word descriptive title for the content. The
// input is truncated to its first 300 characters; the result is
// stripped of wrapping quotes and capped at 100 characters. An empty
// string with a nil error means the model produced nothing usable.
func (c *Client) Title(ctx context.Context, content string) (string, error) {
	if !c.configured {
		return "", apperrors.NewNotConfiguredError("OpenAI API key is not configured")
	}
	if strings.TrimSpace(content) == "" {
		return "", nil
	}

	input := truncateRunes(content, titleInputLimit)

	ctx, cancel := context.WithTimeout(ctx, c.titleTimeout)
	defer cancel()

	completion, err := c.api.Chat.Completions.New(ctx, openaiapi.ChatCompletionNewParams{
		Model: openaiapi.ChatModel(c.model),
		Messages: []openaiapi.ChatCompletionMessageParamUnion{
			openaiapi.SystemMessage(titleSystemPrompt),
			openaiapi.UserMessage(fmt.Sprintf("Please create a short, descriptive title for this note:\n\n%s", input)),
		},
		MaxTokens:   openaiapi.Int(20),
		Temperature: openaiapi.Float(0.3),
	})
	if err != nil {
		return "", c.classify(err, "title generation")
	}

	return cleanTitle(firstChoice(completion)), nil
}

// Summary generates a concise multi-sentence summary of the content.
func (c *Client) Summary(ctx context.Context, content string) (string, error) {
	if !c.configured {
		return "", apperrors.NewNotConfiguredError("OpenAI API key is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.summaryTimeout)
	defer cancel()

	completion, err := c.api.Chat.Completions.New(ctx, openaiapi.ChatCompletionNewParams{
		Model: openaiapi.ChatModel(c.model),
		Messages: []openaiapi.ChatCompletionMessageParamUnion{
			openaiapi.SystemMessage(summarySystemPrompt),
			openaiapi.UserMessage(fmt.Sprintf("Please create a brief summary of this note:\n\n%s", content)),
		},
		MaxTokens:   openaiapi.Int(150),
		Temperature: openaiapi.Float(0.3),
	})
	if err != nil {
		return "", c.classify(err, "summary generation")
	}

	return strings.TrimSpace(firstChoice(completion)), nil
}

// ChatReply answers the message history, grounded in every note's
// title, content and summary plus an optional extra context string.
// Context size grows linearly with the number of stored notes.
func (c *Client) ChatReply(ctx context.Context, messages []notes.ChatMessage, allNotes []notes.Note, extraContext string) (string, error) {
	if !c.configured {
		return "", apperrors.NewNotConfiguredError("OpenAI API key is not configured")
	}

	params := openaiapi.ChatCompletionNewParams{
		Model: openaiapi.ChatModel(c.model),
		Messages: []openaiapi.ChatCompletionMessageParamUnion{
			openaiapi.SystemMessage(buildChatSystemPrompt(allNotes, extraContext)),
		},
		MaxTokens:   openaiapi.Int(500),
		Temperature: openaiapi.Float(0.7),
	}
	for _, msg := range messages {
		switch msg.Role {
		case notes.RoleAssistant:
			params.Messages = append(params.Messages, openaiapi.AssistantMessage(msg.Content))
		default:
			params.Messages = append(params.Messages, openaiapi.UserMessage(msg.Content))
		}
	}

	completion, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", c.classify(err, "chat reply")
	}

	return strings.TrimSpace(firstChoice(completion)), nil
}

func firstChoice(completion *openaiapi.ChatCompletion) string {
	if completion == nil || len(completion.Choices) == 0 {
		return ""
	}
	return completion.Choices[0].Message.Content
}

// cleanTitle trims the model output, strips wrapping quotation marks
// and caps the result at titleLengthCap characters.
func cleanTitle(raw string) string {
	title := strings.TrimSpace(raw)
	title = strings.Trim(title, `"'`)
	return truncateRunes(title, titleLengthCap)
}

// truncateRunes caps s at limit characters without splitting a
// multibyte rune.
func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// buildChatSystemPrompt embeds every note as context, the way the
// assistant is expected to ground its answers.
func buildChatSystemPrompt(allNotes []notes.Note, extraContext string) string {
	sections := make([]string, 0, len(allNotes))
	for i := range allNotes {
		n := &allNotes[i]
		sections = append(sections, fmt.Sprintf("Title: %s\nContent: %s\nSummary: %s",
			n.DisplayTitle(), n.Metadata.Content, n.Metadata.Summary))
	}
	notesContext := strings.Join(sections, "\n\n---\n\n")

	if extraContext == "" {
		extraContext = "No additional context provided."
	}

	return fmt.Sprintf(`You are an AI assistant helping a user with their voice notes. You have access to their personal notes and can answer questions about them.

Available Notes:
%s

Additional Context: %s

Please provide helpful, concise responses based on the user's notes. If asked about something not in their notes, let them know you don't see that information in their current notes.`, notesContext, extraContext)
}

// classify maps provider and transport failures to typed errors.
func (c *Client) classify(err error, operation string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		c.logger.Warn("Generation request timed out", zap.String("operation", operation))
		return apperrors.NewTimeoutError(operation + " timed out").WithCause(err)
	}

	var apiErr *openaiapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 401, 403:
			return apperrors.NewNotConfiguredError("OpenAI API key was rejected").WithCause(err)
		case 429:
			return apperrors.NewRateLimitError("API rate limit exceeded. Please try again later.").WithCause(err)
		default:
			if apiErr.StatusCode >= 500 {
				return apperrors.NewUnavailableError("language model provider error").WithCause(err)
			}
		}
	}

	c.logger.Error("Generation request failed", zap.String("operation", operation), zap.Error(err))
	return apperrors.NewInternalError(operation + " failed").WithCause(err)
}
