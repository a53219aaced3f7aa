// Package genai wraps the OpenAI API as the pipeline's generation gateway.
//
// It exposes two shapes: structured generation against a JSON schema
// (single shot, caller handles fallback) and freeform JSON generation with
// a bounded retry loop that degrades to an empty mapping rather than
// returning an error. Plain text generation backs the coaching stages.
package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// Default models and generation parameters.
const (
	// DefaultJSONModel is used for schema-bound and JSON-mode calls.
	DefaultJSONModel = "gpt-4.1"
	// DefaultTextModel is used for freeform coaching text.
	DefaultTextModel = "gpt-4.1"
	// DefaultJSONRetries bounds the freeform-JSON retry loop.
	DefaultJSONRetries = 2
	// DefaultJSONMaxTokens caps freeform-JSON completions.
	DefaultJSONMaxTokens = 800
	// DefaultJSONTemperature is the starting temperature for freeform JSON.
	DefaultJSONTemperature = 0.5
	// TemperatureStep is added per retry attempt to escape repeated
	// malformed completions.
	TemperatureStep = 0.2
)

// strictJSONInstruction is appended to the prompt after each parse failure.
const strictJSONInstruction = "\nReturn STRICT JSON. No commentary. Do NOT repeat previous suggestions."

// Error variables for generation failures.
var (
	ErrAPIKeyNotSet      = errors.New("OpenAI API key not set")
	ErrNoChoicesReturned = errors.New("no choices returned")
	ErrMalformedJSON     = errors.New("response is not valid JSON")
)

// StructuredSchema describes the JSON schema a structured response must
// conform to. Schema is a plain JSON-schema object.
type StructuredSchema struct {
	Name   string
	Schema map[string]any
}

// JSONOptions tunes a freeform JSON generation call. Zero values select the
// package defaults.
type JSONOptions struct {
	MaxTokens   int64
	Temperature float64
	Retries     int
}

// ClientInterface defines the generation operations consumed by the flow
// package, so stages can be tested against a mock capability.
type ClientInterface interface {
	// GenerateText produces freeform text from a system and user prompt.
	GenerateText(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error)

	// GenerateStructured invokes the model once, requesting output that
	// conforms to schema, and returns the raw JSON payload. Any transport
	// error, empty completion, or non-JSON payload is returned as an
	// error; callers are responsible for fallback.
	GenerateStructured(ctx context.Context, prompt string, schema StructuredSchema, temperature float64) (json.RawMessage, error)

	// GenerateJSON invokes the model up to the retry budget, escalating
	// temperature and instructions on each parse failure, and returns an
	// empty mapping after exhausting the budget. It never returns an
	// error; callers must treat an empty map as "no information".
	GenerateJSON(ctx context.Context, prompt string, opts JSONOptions) map[string]any
}

// chatService defines the minimal interface for chat completions.
type chatService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// openaiChatService adapts the OpenAI SDK completion service to chatService.
type openaiChatService struct {
	completions *openai.ChatCompletionService
}

func (s openaiChatService) New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return s.completions.New(ctx, params)
}

// Client wraps the OpenAI chat completion service for the pipeline stages.
type Client struct {
	chat      chatService
	apiKey    string
	jsonModel shared.ChatModel
	textModel shared.ChatModel
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the OpenAI API key.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithJSONModel overrides the model used for schema-bound and JSON calls.
func WithJSONModel(model string) Option {
	return func(c *Client) { c.jsonModel = shared.ChatModel(model) }
}

// WithTextModel overrides the model used for freeform text.
func WithTextModel(model string) Option {
	return func(c *Client) { c.textModel = shared.ChatModel(model) }
}

// NewClient initializes a GenAI client. The API key must be supplied via
// WithAPIKey; the gateway never reads process-wide configuration itself.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		jsonModel: DefaultJSONModel,
		textModel: DefaultTextModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.apiKey == "" {
		return nil, ErrAPIKeyNotSet
	}
	cli := openai.NewClient(option.WithAPIKey(c.apiKey))
	c.chat = openaiChatService{completions: &cli.Chat.Completions}
	return c, nil
}

// firstChoice extracts the first choice's content from a completion.
func firstChoice(resp *openai.ChatCompletion) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrNoChoicesReturned
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateText produces freeform text from a system and user prompt.
func (c *Client) GenerateText(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	resp, err := c.chat.New(ctx, openai.ChatCompletionNewParams{
		Model: c.textModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("text generation: %w", err)
	}
	return firstChoice(resp)
}

// GenerateStructured invokes the model once against a JSON schema and
// returns the raw payload, or an error for the caller's fallback path.
func (c *Client) GenerateStructured(ctx context.Context, prompt string, schema StructuredSchema, temperature float64) (json.RawMessage, error) {
	resp, err := c.chat.New(ctx, openai.ChatCompletionNewParams{
		Model: c.jsonModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   schema.Name,
					Schema: schema.Schema,
					Strict: openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("structured generation: %w", err)
	}
	content, err := firstChoice(resp)
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(content)) {
		slog.Warn("Client.GenerateStructured: model returned non-JSON payload", "schema", schema.Name)
		return nil, ErrMalformedJSON
	}
	return json.RawMessage(content), nil
}

// GenerateJSON runs the bounded retry loop for freeform JSON generation.
// Each failed attempt strengthens the instructions and raises temperature;
// the terminal state is an empty mapping, never an error.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, opts JSONOptions) map[string]any {
	retries := opts.Retries
	if retries <= 0 {
		retries = DefaultJSONRetries
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultJSONMaxTokens
	}
	temperature := opts.Temperature
	if temperature <= 0 {
		temperature = DefaultJSONTemperature
	}

	for attempt := 0; attempt < retries; attempt++ {
		resp, err := c.chat.New(ctx, openai.ChatCompletionNewParams{
			Model: c.jsonModel,
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Temperature: openai.Float(temperature + TemperatureStep*float64(attempt)),
			MaxTokens:   openai.Int(maxTokens),
			ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
			},
		})
		if err != nil {
			slog.Warn("Client.GenerateJSON: completion failed", "attempt", attempt, "error", err)
			prompt += strictJSONInstruction
			continue
		}
		content, err := firstChoice(resp)
		if err != nil {
			slog.Warn("Client.GenerateJSON: empty completion", "attempt", attempt, "error", err)
			prompt += strictJSONInstruction
			continue
		}
		var out map[string]any
		if err := json.Unmarshal([]byte(content), &out); err != nil {
			slog.Warn("Client.GenerateJSON: failed to parse JSON", "attempt", attempt, "error", err)
			prompt += strictJSONInstruction
			continue
		}
		return out
	}

	slog.Warn("Client.GenerateJSON: retry budget exhausted, returning empty mapping")
	return map[string]any{}
}
