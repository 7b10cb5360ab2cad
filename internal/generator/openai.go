package generator

import (
	"context"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/models"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/schema"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const ProviderOpenAI = "openai"

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint
// (OpenAI, OpenRouter, DeepSeek) using a json_schema response format.
type OpenAIClient struct {
	client *openai.Client
	opts   ModelOptions
	format *openai.ChatCompletionResponseFormat
}

func NewOpenAIClient(apiKey, baseURL string, opts ModelOptions) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	def := toJSONSchema(schema.Report())
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		opts:   opts,
		format: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        "meta_ads_report",
				Description: def.Description,
				Schema:      &def,
			},
		},
	}
}

func (c *OpenAIClient) Close() error { return nil }

func (c *OpenAIClient) Generate(ctx context.Context, niche, location string) (*models.Report, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.opts.Name,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(niche, location)},
		},
		Temperature:    c.opts.Temperature,
		TopP:           c.opts.TopP,
		MaxTokens:      int(c.opts.MaxOutputTokens),
		ResponseFormat: c.format,
	})
	if err != nil {
		return nil, &GenerationError{Kind: KindTransport, Provider: ProviderOpenAI, Err: err}
	}

	var text string
	if len(resp.Choices) > 0 {
		text = resp.Choices[0].Message.Content
	}
	return decodeReport(ProviderOpenAI, text)
}

func toJSONSchema(s *schema.Schema) jsonschema.Definition {
	def := jsonschema.Definition{
		Description: s.Description,
		Required:    append([]string(nil), s.Required...),
	}

	switch s.Type {
	case schema.TypeObject:
		def.Type = jsonschema.Object
		def.Properties = make(map[string]jsonschema.Definition, len(s.Properties))
		for _, p := range s.Properties {
			def.Properties[p.Name] = toJSONSchema(p.Schema)
		}
	case schema.TypeArray:
		def.Type = jsonschema.Array
		if s.Items != nil {
			items := toJSONSchema(s.Items)
			def.Items = &items
		}
	case schema.TypeString:
		def.Type = jsonschema.String
	case schema.TypeNumber:
		def.Type = jsonschema.Number
	}
	return def
}
