package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codesnap/conversion-pipeline/pkg/models"
)

// HTTPGenerator implements the Generator interface against a hosted
// vision-to-code model API.
type HTTPGenerator struct {
	Client   *http.Client
	Endpoint string
	Model    string
	APIKey   string

	// Timeout bounds a single generation call, independent of the caller's
	// context.
	Timeout time.Duration
}

// NewHTTPGenerator creates a new HTTPGenerator.
func NewHTTPGenerator(endpoint, model, apiKey string, timeout time.Duration) *HTTPGenerator {
	return &HTTPGenerator{
		Client:   &http.Client{},
		Endpoint: endpoint,
		Model:    model,
		APIKey:   apiKey,
		Timeout:  timeout,
	}
}

// Make sure we conform to the interface
var _ Generator = (*HTTPGenerator)(nil)

type generateRequest struct {
	Model        string `json:"model"`
	ImageRef     string `json:"image_ref"`
	Framework    string `json:"framework"`
	CSSFramework string `json:"css_framework"`
}

type generateResponse struct {
	HTML       string `json:"html"`
	CSS        string `json:"css"`
	JS         string `json:"js"`
	TokensUsed int32  `json:"tokens_used"`
	Error      string `json:"error"`
}

// Generate posts the screenshot reference to the model API and classifies
// any failure by its cause: deadline expiry is a Timeout, rate limits and
// server errors are Transient, everything else the API rejects is Permanent.
func (g *HTTPGenerator) Generate(ctx context.Context, input GenerationInput) (*GenerationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Model:        g.Model,
		ImageRef:     input.ImageRef,
		Framework:    input.Framework,
		CSSFramework: input.CSSFramework,
	})
	if err != nil {
		return nil, &Error{Class: Permanent, Message: "failed to marshal generation request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Class: Permanent, Message: "failed to build generation request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	start := time.Now()
	resp, err := g.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return nil, &Error{Class: Timeout, Message: "generation exceeded deadline", Err: err}
		}
		return nil, &Error{Class: Transient, Message: "generation request failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, &Error{Class: Transient, Message: "failed to read generation response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		class := Permanent
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			class = Transient
		}
		return nil, &Error{
			Class:   class,
			Message: fmt.Sprintf("generation API returned status %d", resp.StatusCode),
		}
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &Error{Class: Transient, Message: "failed to parse generation response", Err: err}
	}
	if parsed.Error != "" {
		return nil, &Error{Class: Permanent, Message: parsed.Error}
	}
	if parsed.HTML == "" {
		return nil, &Error{Class: Permanent, Message: "generation produced no HTML"}
	}

	return &GenerationResult{
		Code: models.GeneratedCode{
			HTML: parsed.HTML,
			CSS:  parsed.CSS,
			JS:   parsed.JS,
		},
		TokensUsed:   parsed.TokensUsed,
		ProcessingMs: time.Since(start).Milliseconds(),
	}, nil
}
