package ratings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/omarshaarawi/gmsim/internal/config"
)

type Client struct {
	httpClient *http.Client
	Config     config.RatingsAPI
}

func NewClient(cfg config.RatingsAPI) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		Config:     cfg,
	}
}

func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string, result interface{}) error {
	url := fmt.Sprintf("%s%s", strings.TrimRight(c.Config.BaseURL, "/"), endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	q := req.URL.Query()
	for key, value := range params {
		q.Add(key, strings.TrimSpace(value))
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")
	if c.Config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.Config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}
