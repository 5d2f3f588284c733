package tryon

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// GradioProvider runs try-on jobs against the remote app's JSON API
// (`/api/predict`) instead of scraping its UI. Some deployments of the
// model expose this endpoint; when it is available it makes the browser
// pipeline unnecessary for that deployment.
type GradioProvider struct {
	httpClient *http.Client
}

func NewGradioProvider() *GradioProvider {
	return &GradioProvider{
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

type gradioRequest struct {
	Data []any `json:"data"`
}

type gradioResponse struct {
	Data []json.RawMessage `json:"data"`
}

func (g *GradioProvider) Run(ctx context.Context, job Job) (*Result, error) {
	if job.RemoteURL == "" {
		return nil, fmt.Errorf("tryon: remote app URL is not configured")
	}

	target, err := encodeImage(job.TargetPath)
	if err != nil {
		return nil, err
	}
	source, err := encodeImage(job.SourcePath)
	if err != nil {
		return nil, err
	}

	params := job.Params.withDefaults()

	// Positional arguments, same order the remote interface declares.
	payload, err := json.Marshal(gradioRequest{Data: []any{
		target,
		source,
		params.Seed,
		params.SampleStep,
		params.T,
		params.ErodeKernelSize,
	}})
	if err != nil {
		return nil, fmt.Errorf("tryon: marshal predict payload: %w", err)
	}

	url := strings.TrimRight(job.RemoteURL, "/") + "/api/predict"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("tryon: create predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("ngrok-skip-browser-warning", "true")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tryon: predict call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tryon: predict returned %d: %s", resp.StatusCode, string(detail))
	}

	var out gradioResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("tryon: decode predict response: %w", err)
	}
	if len(out.Data) == 0 {
		return nil, fmt.Errorf("%w: empty predict response", ErrResultNotFound)
	}

	image, err := firstImage(out.Data[0])
	if err != nil {
		return nil, err
	}

	data, err := decodeImagePayload(image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}

	return writeResult(job.OutputDir, data)
}

// firstImage handles both response shapes: a gallery (array of base64
// images) or a single image string.
func firstImage(raw json.RawMessage) (string, error) {
	var gallery []string
	if err := json.Unmarshal(raw, &gallery); err == nil {
		if len(gallery) == 0 {
			return "", fmt.Errorf("%w: empty gallery", ErrResultNotFound)
		}
		return gallery[0], nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return single, nil
	}

	return "", fmt.Errorf("%w: unrecognized predict output", ErrResultNotFound)
}

// decodeImagePayload accepts a data URI or bare base64.
func decodeImagePayload(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		return decodeDataURI(s)
	}
	return base64.StdEncoding.DecodeString(s)
}

func encodeImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("tryon: read input %s: %w", path, err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

var _ Provider = (*GradioProvider)(nil)
