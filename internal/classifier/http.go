package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClassifier calls a toxicity model server over HTTP. The server wraps
// the trained pipeline and answers a binary verdict per message text.
type HTTPClassifier struct {
	endpoint string
	client   *http.Client
}

// NewHTTPClassifier creates a classifier backed by a model server endpoint
func NewHTTPClassifier(endpoint string, timeoutSeconds int) *HTTPClassifier {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 10
	}
	return &HTTPClassifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
	}
}

// Classify returns true if the model server labels the text as toxic.
func (c *HTTPClassifier) Classify(ctx context.Context, text string) (bool, error) {
	reqBody, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return false, &ClassificationError{Provider: "http", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return false, &ClassificationError{Provider: "http", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, &ClassificationError{Provider: "http", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBytes, _ := io.ReadAll(resp.Body)
		return false, &ClassificationError{
			Provider: "http",
			Err:      fmt.Errorf("model server returned status code %d: %s", resp.StatusCode, string(respBytes)),
		}
	}

	var result struct {
		Toxic bool `json:"toxic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, &ClassificationError{Provider: "http", Err: err}
	}

	return result.Toxic, nil
}
