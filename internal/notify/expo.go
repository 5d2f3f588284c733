package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultExpoEndpoint = "https://exp.host/--/api/v2/push/send"

// Push is one notification addressed to a device token.
type Push struct {
	To    string `json:"to"`
	Sound string `json:"sound"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ExpoClient delivers push notifications through Expo's push service.
type ExpoClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewExpoClient(endpoint string) *ExpoClient {
	if endpoint == "" {
		endpoint = DefaultExpoEndpoint
	}
	return &ExpoClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send posts one push message. Pushes without a token are skipped silently:
// not every customer grants notification permission.
func (c *ExpoClient) Send(ctx context.Context, p Push) error {
	if p.To == "" {
		return nil
	}
	if p.Sound == "" {
		p.Sound = "default"
	}

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("notify: marshal push: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify: send push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notify: expo returned %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}
