package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Options controls how the OpenAI client is configured.
type Options struct {
	APIKey       string
	BaseURL      string
	ChatModel    string
	VisionModel  string
	ImageModel   string
	EditModel    string
	ImageSize    string
	ImageQuality string
	HTTPClient   *http.Client
}

// Client is a thin facade over the three OpenAI surfaces the pipeline
// consumes: JSON-constrained chat completions, text-to-image generation, and
// image edits conditioned on an uploaded product photo. It returns raw
// payloads and errors; callers decide how to degrade.
type Client struct {
	apiKey       string
	baseURL      string
	chatModel    string
	visionModel  string
	imageModel   string
	editModel    string
	imageSize    string
	imageQuality string
	httpClient   *http.Client
}

const defaultTimeout = 90 * time.Second

// NewClient constructs an OpenAI client with sane defaults. A nil HTTP client
// gets replaced with one carrying a bounded timeout so upstream stalls never
// hang a request.
func NewClient(opts Options) *Client {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &Client{
		apiKey:       strings.TrimSpace(opts.APIKey),
		baseURL:      baseURL,
		chatModel:    withDefault(opts.ChatModel, "gpt-4"),
		visionModel:  withDefault(opts.VisionModel, "gpt-4o"),
		imageModel:   withDefault(opts.ImageModel, "dall-e-3"),
		editModel:    withDefault(opts.EditModel, "gpt-image-1"),
		imageSize:    withDefault(opts.ImageSize, "1024x1024"),
		imageQuality: withDefault(opts.ImageQuality, "high"),
		httpClient:   client,
	}
}

// Configured reports whether an API key is present. Unconfigured clients make
// no network calls; every method fails fast so callers hit their fallbacks.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

var ErrNotConfigured = errors.New("openai: api key not configured")

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature,omitempty"`
	MaxTokens      int           `json:"max_tokens,omitempty"`
	ResponseFormat *chatFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// ChatJSON sends a system+user prompt pair to the chat completions endpoint
// with the response format constrained to a JSON object, and returns the raw
// message content.
func (c *Client) ChatJSON(ctx context.Context, system, user string, temperature float64) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	payload := chatRequest{
		Model:       c.chatModel,
		Temperature: temperature,
		MaxTokens:   1500,
		ResponseFormat: &chatFormat{
			Type: "json_object",
		},
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	var out chatResponse
	if err := c.invoke(req, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("openai: no choices returned")
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("openai: empty completion")
	}
	return content, nil
}

type visionRequest struct {
	Model     string          `json:"model"`
	Messages  []visionMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens,omitempty"`
}

type visionMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string         `json:"type"`
	Text     string         `json:"text,omitempty"`
	ImageURL *imageURLValue `json:"image_url,omitempty"`
}

type imageURLValue struct {
	URL string `json:"url"`
}

// ChatVision sends a prompt together with an image to the chat completions
// endpoint using the vision model, and returns the raw message content. The
// image travels inline as a base64 data URL.
func (c *Client) ChatVision(ctx context.Context, prompt string, image []byte) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	if len(image) == 0 {
		return "", errors.New("openai: image is required for vision analysis")
	}
	payload := visionRequest{
		Model:     c.visionModel,
		MaxTokens: 500,
		Messages: []visionMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &imageURLValue{
						URL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image),
					}},
				},
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	var out chatResponse
	if err := c.invoke(req, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("openai: no choices returned")
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("openai: empty completion")
	}
	return content, nil
}

type imageGenerateRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// GenerateImage calls the text-to-image endpoint and returns the base64
// payload of the single requested image.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	payload := imageGenerateRequest{
		Model:          c.imageModel,
		Prompt:         prompt,
		N:              1,
		Size:           c.imageSize,
		ResponseFormat: "b64_json",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	var out imageResponse
	if err := c.invoke(req, &out); err != nil {
		return "", err
	}
	return firstImagePayload(out)
}

// EditImage calls the image-edit endpoint with the prompt and the source
// product photo as a multipart form, and returns the base64 payload of the
// single requested image. The prompt instructs the model to stage the product
// without altering its pixels.
func (c *Client) EditImage(ctx context.Context, prompt string, source []byte) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	if len(source) == 0 {
		return "", errors.New("openai: source image is required for edits")
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	fields := map[string]string{
		"model":   c.editModel,
		"prompt":  prompt,
		"n":       "1",
		"size":    c.imageSize,
		"quality": c.imageQuality,
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return "", fmt.Errorf("write form field: %w", err)
		}
	}
	part, err := form.CreateFormFile("image", "product.png")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(source); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/edits", &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	var out imageResponse
	if err := c.invoke(req, &out); err != nil {
		return "", err
	}
	return firstImagePayload(out)
}

func (c *Client) invoke(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("invoke openai: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("openai status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		data, _ := io.ReadAll(resp.Body)
		if len(data) > 0 {
			return fmt.Errorf("openai status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
		}
		return fmt.Errorf("openai status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode openai response: %w", err)
	}
	return nil
}

func firstImagePayload(out imageResponse) (string, error) {
	if len(out.Data) == 0 || strings.TrimSpace(out.Data[0].B64JSON) == "" {
		return "", errors.New("openai: no image data returned")
	}
	return out.Data[0].B64JSON, nil
}

func withDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
