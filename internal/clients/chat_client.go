package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type ChatClient interface {
	Complete(ctx context.Context, systemPrompt, message string) (string, error)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type openAIHTTPClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

// NewOpenAIHTTPClient talks to any OpenAI compatible /chat/completions endpoint.
func NewOpenAIHTTPClient(apiKey, model, baseURL string, timeout time.Duration, logger *logrus.Logger) ChatClient {
	return &openAIHTTPClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

func (c *openAIHTTPClient) Complete(ctx context.Context, systemPrompt, message string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("OPENAI_API_KEY not set")
	}

	body, err := json.Marshal(chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	c.log.Debugf("ChatClient: Sending completion request to %s (model %s)", url, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warnf("ChatClient: Request failed: %v", err)
		return "", unreachable("chat provider", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		perr := &ProviderError{Provider: "chat provider", StatusCode: resp.StatusCode, Message: providerMessage(respBody)}
		c.log.Warnf("ChatClient: %v", perr)
		return "", perr
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat provider returned no choices")
	}
	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("chat provider returned empty content")
	}
	return text, nil
}
