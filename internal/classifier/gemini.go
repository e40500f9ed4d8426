package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const toxicityPrompt = "Является ли следующее сообщение токсичным (оскорбительным или враждебным)? Ответь только Да или Нет:\n%s"

// GeminiClassifier asks the Gemini API for a toxicity verdict.
type GeminiClassifier struct {
	apiKey string
	model  string
	client *http.Client
}

// NewGeminiClassifier creates a Gemini-backed classifier
func NewGeminiClassifier(apiKey, model string, timeoutSeconds int) *GeminiClassifier {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = 10
	}
	return &GeminiClassifier{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
	}
}

// Classify returns true if Gemini labels the text as toxic.
func (c *GeminiClassifier) Classify(ctx context.Context, text string) (bool, error) {
	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", c.model, c.apiKey)
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": fmt.Sprintf(toxicityPrompt, text)},
				},
			},
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return false, &ClassificationError{Provider: "gemini", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return false, &ClassificationError{Provider: "gemini", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, &ClassificationError{Provider: "gemini", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBytes, _ := io.ReadAll(resp.Body)
		return false, &ClassificationError{
			Provider: "gemini",
			Err:      fmt.Errorf("gemini API returned status code %d: %s", resp.StatusCode, string(respBytes)),
		}
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, &ClassificationError{Provider: "gemini", Err: err}
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return false, &ClassificationError{Provider: "gemini", Err: fmt.Errorf("no candidates returned from gemini API")}
	}

	verdict := strings.ToLower(strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text))
	if strings.HasPrefix(verdict, "да") || strings.HasPrefix(verdict, "yes") {
		return true, nil
	}
	return false, nil
}
