package pkg

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/MyALF-Z/AI-Agent/models"
)

type RequestMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content,omitempty"`
	Name       string     `json:"name,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

type ResponseMessage struct {
	Role      string     `json:"role"`
	Content   string     `json:"content,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// Tool describes a function the model may call.
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

type ToolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// ToolCall is a function invocation requested by the model. Arguments is
// the raw JSON string exactly as the endpoint returns it.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type ChatCompletionRequest struct {
	Model       string           `json:"model"`
	Messages    []RequestMessage `json:"messages"`
	MaxTokens   *uint32          `json:"max_tokens,omitempty"`
	Temperature *float32         `json:"temperature,omitempty"`
	Stream      *bool            `json:"stream,omitempty"`
	Tools       []Tool           `json:"tools,omitempty"`
	ToolChoice  string           `json:"tool_choice,omitempty"`
}

type ChatChoice struct {
	Index        uint32          `json:"index"`
	Message      ResponseMessage `json:"message"`
	FinishReason string          `json:"finish_reason"`
}

type ChatCompletionResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created uint64       `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
}

type StreamDelta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

type StreamChoice struct {
	Index        uint32      `json:"index"`
	Delta        StreamDelta `json:"delta"`
	FinishReason string      `json:"finish_reason,omitempty"`
}

type StreamChatCompletionResponse struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Created uint64         `json:"created"`
	Model   string         `json:"model"`
	Choices []StreamChoice `json:"choices"`
}

// ChatClient talks to an OpenAI-compatible chat completion endpoint.
type ChatClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	logger  *slog.Logger
}

func NewChatClient(baseURL, apiKey, model string, logger *slog.Logger) *ChatClient {
	return &ChatClient{
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		logger:  logger,
	}
}

// Model returns the fixed model identifier attached to every request.
func (c *ChatClient) Model() string {
	return c.model
}

func (c *ChatClient) post(ctx context.Context, endpoint string, body interface{}) (*http.Response, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, endpoint)

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, &models.UpstreamError{Status: resp.StatusCode, Body: string(bodyBytes)}
	}

	return resp, nil
}

// CreateChatCompletion issues a non-streaming completion request. The model
// identifier is always the client's configured model.
func (c *ChatClient) CreateChatCompletion(ctx context.Context, request ChatCompletionRequest) (*ChatCompletionResponse, error) {
	request.Model = c.model

	resp, err := c.post(ctx, "chat/completions", request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var response ChatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &response, nil
}

// CreateChatCompletionStream issues a streaming completion request and calls
// handler once per parsed chunk. The connection attempt itself can fail; once
// the stream has begun, transport errors end the stream early without raising.
// A handler error stops the upstream read and is returned to the caller.
func (c *ChatClient) CreateChatCompletionStream(ctx context.Context, request ChatCompletionRequest, handler func(*StreamChatCompletionResponse) error) error {
	streamTrue := true
	request.Model = c.model
	request.Stream = &streamTrue

	resp, err := c.post(ctx, "chat/completions", request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		// Skip empty lines, comments and keep-alives.
		if line == "" || !strings.HasPrefix(line, "data: ") {
			continue
		}

		if line == "data: [DONE]" {
			break
		}

		jsonData := line[6:]
		var response StreamChatCompletionResponse
		if err := json.Unmarshal([]byte(jsonData), &response); err != nil {
			c.logger.Warn("skipping malformed stream chunk", "error", err)
			continue
		}

		if err := handler(&response); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		// The stream was already delivering; treat the drop as end-of-stream.
		c.logger.Warn("chat stream ended early", "error", err)
	}

	return nil
}
