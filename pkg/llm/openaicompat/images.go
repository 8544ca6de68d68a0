package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n,omitempty"`
	ResponseFormat string `json:"response_format,omitempty"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
		URL     string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GeneratedImage is one image produced by the images endpoint.
type GeneratedImage struct {
	Base64 string
	URL    string
}

// GenerateImages calls the OpenAI-compatible images endpoint. The credential
// is carried on the Provider instance, never through process environment.
func (p *Provider) GenerateImages(ctx context.Context, prompt string, count int) ([]GeneratedImage, error) {
	if count < 1 {
		count = 1
	}

	payload, err := json.Marshal(imageRequest{
		Model:          p.ModelName,
		Prompt:         prompt,
		N:              count,
		ResponseFormat: "b64_json",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := p.BaseURL + "/images/generations"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var imgResp imageResponse
	if err := json.Unmarshal(bodyBytes, &imgResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if imgResp.Error != nil {
		return nil, fmt.Errorf("upstream error: %s", imgResp.Error.Message)
	}

	images := make([]GeneratedImage, len(imgResp.Data))
	for i, d := range imgResp.Data {
		images[i] = GeneratedImage{Base64: d.B64JSON, URL: d.URL}
	}
	return images, nil
}
