package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ai-interview-coach-backend/internal/config"
)

// ErrDisabled is returned by every call when no API key is configured.
// Callers degrade to their fallback values instead of failing the request.
var ErrDisabled = errors.New("gemini api is not configured")

// Content is one chat-history entry in the generateContent request body.
// Role is "model" for previously asked questions, "user" for candidate
// answers and instructions.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part is a single text part of a Content entry.
type Part struct {
	Text string `json:"text"`
}

// Schema describes the expected response shape for schema-constrained JSON
// generation, mirroring the Gemini responseSchema format.
type Schema struct {
	Type       string             `json:"type"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

// GeminiClient calls the Gemini generateContent REST API. It implements the
// service layer's TextGenerator interface; tests substitute a fake.
type GeminiClient struct {
	config        *config.AIConfig
	client        *http.Client
	summaryClient *http.Client
	logger        *zap.Logger
}

// NewGeminiClient creates a Gemini client from AI config. The summary model
// gets its own client with a longer timeout since overall-feedback
// generation is the one long-running call in the system.
func NewGeminiClient(cfg *config.AIConfig, logger *zap.Logger) *GeminiClient {
	return &GeminiClient{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		summaryClient: &http.Client{
			Timeout: time.Duration(cfg.SummaryTimeoutMS) * time.Millisecond,
		},
		logger: logger,
	}
}

// GenerateText generates free text from a single prompt.
func (c *GeminiClient) GenerateText(ctx context.Context, modelName, prompt string) (string, error) {
	return c.call(ctx, modelName, []Content{userContent(prompt)}, nil)
}

// GenerateChat generates text from a multi-turn conversation history
// followed by a final instruction turn.
func (c *GeminiClient) GenerateChat(ctx context.Context, modelName string, history []Content, prompt string) (string, error) {
	contents := make([]Content, 0, len(history)+1)
	contents = append(contents, history...)
	contents = append(contents, userContent(prompt))
	return c.call(ctx, modelName, contents, nil)
}

// GenerateJSON generates schema-constrained JSON from a single prompt. The
// returned string is the raw candidate text; callers own parsing and
// fallback policy.
func (c *GeminiClient) GenerateJSON(ctx context.Context, modelName, prompt string, schema *Schema) (string, error) {
	genCfg := map[string]interface{}{
		"responseMimeType": "application/json",
	}
	if schema != nil {
		genCfg["responseSchema"] = schema
	}
	return c.call(ctx, modelName, []Content{userContent(prompt)}, genCfg)
}

// call makes a generateContent request and returns the first candidate
// part's text.
func (c *GeminiClient) call(ctx context.Context, modelName string, contents []Content, genCfg map[string]interface{}) (string, error) {
	if !c.config.IsEnabled() {
		return "", ErrDisabled
	}

	reqBody := map[string]interface{}{
		"contents": contents,
	}
	if genCfg != nil {
		reqBody["generationConfig"] = genCfg
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", c.config.ModelEndpoint(modelName), c.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.clientFor(modelName)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("gemini request failed",
			zap.String("model", modelName),
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)),
		)
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		c.logger.Debug("gemini request ok",
			zap.String("model", modelName),
			zap.Duration("elapsed", time.Since(start)),
		)
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from gemini")
}

// clientFor picks the long-timeout client for the summary model.
func (c *GeminiClient) clientFor(modelName string) *http.Client {
	if modelName == c.config.Models.Summary {
		return c.summaryClient
	}
	return c.client
}

func userContent(text string) Content {
	return Content{Role: "user", Parts: []Part{{Text: text}}}
}
