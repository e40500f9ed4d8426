package classifier

import (
	"context"
	"fmt"

	"tg-moderator/internal/config"
)

// Classifier labels a message text as toxic or clean.
// Implementations must return within their configured timeout; a timeout
// is reported as a ClassificationError, never as a clean verdict.
type Classifier interface {
	Classify(ctx context.Context, text string) (bool, error)
}

// ClassificationError reports a classifier pipeline failure. Callers decide
// the fallback policy; the classifier itself never defaults to a verdict.
type ClassificationError struct {
	Provider string
	Err      error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("%s classifier: %v", e.Provider, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// New creates a classifier from configuration.
func New(cfg *config.Config) (Classifier, error) {
	switch cfg.Classifier.Provider {
	case "http":
		if cfg.Classifier.Endpoint == "" {
			return nil, fmt.Errorf("classifier endpoint is required for the http provider")
		}
		return NewHTTPClassifier(cfg.Classifier.Endpoint, cfg.Classifier.TimeoutSeconds), nil
	case "gemini":
		if cfg.Classifier.APIKey == "" {
			return nil, fmt.Errorf("classifier api_key is required for the gemini provider")
		}
		return NewGeminiClassifier(cfg.Classifier.APIKey, cfg.Classifier.Model, cfg.Classifier.TimeoutSeconds), nil
	default:
		return nil, fmt.Errorf("unknown classifier provider: %s", cfg.Classifier.Provider)
	}
}
