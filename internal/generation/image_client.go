package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"gameforge-server/internal/config"
)

// ImageGenerator produces one illustrative image for a prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
	Enabled() bool
}

type imageRequest struct {
	Prompt string `json:"prompt"`
	Ratio  string `json:"ratio"`
}

// httpImageClient posts prompts to an external diffusion server and reads the
// rendered image back from the response body.
type httpImageClient struct {
	httpClient  *http.Client
	serverURL   string
	styleSuffix string
	logger      *zap.Logger
}

var _ ImageGenerator = (*httpImageClient)(nil)

// NewImageGenerator creates the HTTP image client. When no server URL is
// configured the client reports itself disabled and callers fall back to
// placeholder rendering.
func NewImageGenerator(cfg *config.Config, logger *zap.Logger) ImageGenerator {
	return &httpImageClient{
		httpClient:  &http.Client{Timeout: cfg.ImageTimeout},
		serverURL:   cfg.ImageServerURL,
		styleSuffix: cfg.ImageStyleSuffix,
		logger:      logger.Named("ImageClient"),
	}
}

func (c *httpImageClient) Enabled() bool {
	return c.serverURL != ""
}

func (c *httpImageClient) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("image generation is disabled")
	}
	if c.styleSuffix != "" {
		prompt = prompt + ", " + c.styleSuffix
	}

	payload, err := json.Marshal(imageRequest{Prompt: prompt, Ratio: "3:2"})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/*")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	observeImageGeneration(time.Since(start), err)
	if err != nil {
		c.logger.Warn("Image server request failed", zap.Error(err))
		return nil, fmt.Errorf("image server request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("Image server returned non-OK status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, fmt.Errorf("image server returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image response: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image server returned an empty body")
	}

	c.logger.Debug("Image generated",
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)))
	return data, nil
}
