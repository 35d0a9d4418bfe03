package palette

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrDisabled is returned when no palette API is configured.
var ErrDisabled = errors.New("palette service is not configured")

// Client calls the external palette suggestion API. The API takes a free-form
// prompt and answers with a map of color tokens to hex values.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type suggestRequest struct {
	Prompt string `json:"prompt"`
}

type suggestResponse struct {
	Colors map[string]string `json:"colors"`
}

func (c *Client) Suggest(ctx context.Context, prompt string) (map[string]string, error) {
	if c == nil || c.BaseURL == "" {
		return nil, ErrDisabled
	}

	body, err := json.Marshal(suggestRequest{Prompt: prompt})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/palettes", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("palette request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("palette service returned %s", res.Status)
	}

	var out suggestResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("palette response: %w", err)
	}
	return out.Colors, nil
}
