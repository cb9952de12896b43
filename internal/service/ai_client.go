package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"instabudget/pkg/config"

	"github.com/Role1776/gigago"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrAIUnavailable means the provider could not be reached or kept
	// failing after a retry. Callers map it to 502.
	ErrAIUnavailable = errors.New("ai provider unavailable")
	// ErrAIUnusable means the provider answered but the content cannot be
	// used (empty choices, unparseable payload). Callers map it to 502.
	ErrAIUnusable = errors.New("ai response unusable")
)

// AIClient is the only door to the model provider. Services never talk to
// GigaChat directly, which keeps them testable with a stub.
type AIClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateWithMedia(ctx context.Context, prompt string, media []byte, filename string) (string, error)
}

type GigaChatClient struct {
	client      *gigago.Client
	model       *gigago.GenerativeModel
	config      *config.GigaChatConfig
	logger      *zap.Logger
	httpClient  *http.Client
	baseURL     string
	accessToken string
}

const systemInstruction = `You are a personal finance assistant. You extract structured transaction data from receipts, voice notes and spending summaries, and you give short practical budgeting advice. When asked for JSON you return ONLY valid JSON with no markdown fences and no commentary.`

func NewGigaChatClient(cfg *config.GigaChatConfig, logger *zap.Logger) (*GigaChatClient, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = systemInstruction
	model.Temperature = 0.3

	httpClient := &http.Client{}
	if cfg.InsecureSkipVerify {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	accessToken, err := getAccessToken(ctx, cfg, httpClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	return &GigaChatClient{
		client:      client,
		model:       model,
		config:      cfg,
		logger:      logger,
		httpClient:  httpClient,
		accessToken: accessToken,
		// https://developers.sber.ru/docs/ru/gigachat/api/main
		baseURL: "https://gigachat.devices.sberbank.ru/api/v1",
	}, nil
}

// getAccessToken obtains an access token from the GigaChat OAuth endpoint.
// The API key is expected to be Base64-encoded already.
func getAccessToken(ctx context.Context, cfg *config.GigaChatConfig, httpClient *http.Client, logger *zap.Logger) (string, error) {
	oauthURL := "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"

	rqUID := uuid.New().String()

	formData := url.Values{}
	formData.Set("scope", cfg.Scope)

	req, err := http.NewRequestWithContext(ctx, "POST", oauthURL, strings.NewReader(formData.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create OAuth request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("RqUID", rqUID)
	req.Header.Set("Authorization", "Basic "+cfg.APIKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		logger.Error("OAuth request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("rq_uid", rqUID),
		)
		return "", fmt.Errorf("OAuth failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var oauthResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&oauthResp); err != nil {
		return "", fmt.Errorf("failed to decode OAuth response: %w", err)
	}

	if oauthResp.AccessToken == "" {
		return "", fmt.Errorf("empty access token in OAuth response")
	}

	logger.Info("Access token obtained", zap.Int("expires_in", oauthResp.ExpiresIn))
	return oauthResp.AccessToken, nil
}

func (c *GigaChatClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.withRetry(ctx, func(callCtx context.Context) (string, error) {
		messages := []gigago.Message{
			{Role: gigago.RoleUser, Content: prompt},
		}

		resp, err := c.model.Generate(callCtx, messages)
		if err != nil {
			return "", err
		}

		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("%w: no choices in response", ErrAIUnusable)
		}

		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	})
}

func (c *GigaChatClient) GenerateWithMedia(ctx context.Context, prompt string, media []byte, filename string) (string, error) {
	return c.withRetry(ctx, func(callCtx context.Context) (string, error) {
		fileID, err := c.uploadFile(callCtx, media, filename)
		if err != nil {
			return "", err
		}
		return c.completeWithAttachment(callCtx, fileID, prompt)
	})
}

// withRetry runs fn under the configured request timeout and retries once
// on transient failures. Unusable responses are not retried, the model
// already answered.
func (c *GigaChatClient) withRetry(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
		out, err := fn(callCtx)
		cancel()
		if err == nil {
			return out, nil
		}
		if errors.Is(err, ErrAIUnusable) {
			return "", err
		}
		lastErr = err
		c.logger.Warn("AI request failed", zap.Int("attempt", attempt+1), zap.Error(err))
	}
	return "", fmt.Errorf("%w: %v", ErrAIUnavailable, lastErr)
}

// uploadFile sends media to the GigaChat Files API and returns the file ID.
// Endpoint: POST /files, purpose "general" makes the file usable as a
// completion attachment.
func (c *GigaChatClient) uploadFile(ctx context.Context, data []byte, filename string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("purpose", "general"); err != nil {
		return "", fmt.Errorf("failed to write purpose field: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		switch ext {
		case ".jpg", ".jpeg":
			mimeType = "image/jpeg"
		case ".png":
			mimeType = "image/png"
		case ".webm":
			mimeType = "audio/webm"
		case ".m4a":
			mimeType = "audio/mp4"
		default:
			mimeType = "application/octet-stream"
		}
	}

	part, err := writer.CreatePart(map[string][]string{
		"Content-Type":        {mimeType},
		"Content-Disposition": {fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write file data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/files", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Token expired, refresh it so the retry attempt can succeed.
		accessToken, tokenErr := getAccessToken(ctx, c.config, c.httpClient, c.logger)
		if tokenErr != nil {
			return "", fmt.Errorf("upload failed with 401, token refresh also failed: %w", tokenErr)
		}
		c.accessToken = accessToken
		return "", fmt.Errorf("token expired, upload must be retried")
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var uploadResp struct {
		ID string `json:"id"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}

	c.logger.Debug("File uploaded to GigaChat", zap.String("file_id", uploadResp.ID))
	return uploadResp.ID, nil
}

// completeWithAttachment runs a chat completion that references an
// uploaded file. Attachments format per the API docs: [["file_id"]].
func (c *GigaChatClient) completeWithAttachment(ctx context.Context, fileID, prompt string) (string, error) {
	requestBody := map[string]interface{}{
		"model": "GigaChat",
		"messages": []map[string]interface{}{
			{
				"role":        "user",
				"content":     prompt,
				"attachments": [][]string{{fileID}},
			},
		},
		"temperature": 0.3,
		"stream":      false,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("completion failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var completionResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&completionResp); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	if len(completionResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrAIUnusable)
	}

	return strings.TrimSpace(completionResp.Choices[0].Message.Content), nil
}

func (c *GigaChatClient) Close() error {
	if c.client != nil {
		c.client.Close()
	}
	return nil
}
