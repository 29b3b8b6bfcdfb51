package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const anthropicVersion = "bedrock-2023-05-31"

// LLMClient defines the interface for invoking a hosted foundation model
// with a free-text prompt. The model is treated as an opaque text
// transform; no retry or rate-limit handling is applied.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// InvokeModelAPI is the subset of the Bedrock runtime API used here.
type InvokeModelAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Config holds configuration for the Bedrock client.
type Config struct {
	ModelID   string
	MaxTokens int
}

// claudeClient implements the LLMClient interface using the Anthropic
// Claude messages body format over Bedrock runtime.
type claudeClient struct {
	client InvokeModelAPI
	cfg    Config
}

// NewClient creates an LLM client for the configured Claude model.
func NewClient(client InvokeModelAPI, cfg Config) LLMClient {
	if cfg.ModelID == "" {
		cfg.ModelID = "anthropic.claude-3-sonnet-20240229-v1:0"
		log.Printf("INFO: Model not specified, defaulting to %s", cfg.ModelID)
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4096
	}
	return &claudeClient{client: client, cfg: cfg}
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type chatMessage struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type messagesRequest struct {
	AnthropicVersion string        `json:"anthropic_version"`
	MaxTokens        int           `json:"max_tokens"`
	Messages         []chatMessage `json:"messages"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

// Complete sends the prompt to the model and returns the completion text.
func (c *claudeClient) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(messagesRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        c.cfg.MaxTokens,
		Messages: []chatMessage{
			{
				Role:    "user",
				Content: []contentBlock{{Type: "text", Text: prompt}},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal model request: %w", err)
	}

	out, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.cfg.ModelID),
		ContentType: aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		log.Printf("ERROR: Couldn't invoke %s: %v", c.cfg.ModelID, err)
		return "", fmt.Errorf("invoke model %s: %w", c.cfg.ModelID, err)
	}

	var resp messagesResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode model response: %w", err)
	}

	var result string
	for _, block := range resp.Content {
		result = block.Text
	}
	return result, nil
}
