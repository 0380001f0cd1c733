// Package gemini calls a Gemini style generateContent endpoint to produce
// entity descriptions.
package gemini

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/libgraph/libgraph/pkg/config"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
)

// FallbackText is returned when the answer carries no candidate text.
const FallbackText = "No description available."

type part struct {
	Text *string `json:"text,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type Client struct {
	apiURL string
	apiKey string
	http   *http.Client
}

// New builds a client from the gemini_api_url, gemini_api_key and
// description_timeout settings. Requests are never retried.
func New(cfg *config.Config) *Client {
	return &Client{
		apiURL: cfg.GeminiAPIURL,
		apiKey: cfg.GeminiAPIKey,
		http: &http.Client{
			Timeout: cfg.DescriptionTimeout,
		},
	}
}

// Configured reports whether both the endpoint and the key are set.
func (c *Client) Configured() bool {
	return c.apiURL != "" && c.apiKey != ""
}

// Prompt is the instruction sent for an entity name.
func Prompt(name string) string {
	return "Provide a detailed description of '" + name + "'" +
		"If it is a book include information about the setting, characters, themes, key concepts, and its influence. " +
		"Do not include any concluding remarks or questions." +
		"Do not mention any Note at the end about not including concluding remarks or questions."
}

// Generate sends prompt and returns the text of the first part of the first
// candidate. found is false when the answer had no such text, in which case
// FallbackText is returned.
func (c *Client) Generate(ctx context.Context, prompt string) (text string, found bool, err error) {
	log := logger.FromContext(ctx)

	endpoint, err := url.Parse(c.apiURL)
	if err != nil {
		return "", false, errors.Wrap(err, "invalid gemini api url")
	}
	q := endpoint.Query()
	q.Set("key", c.apiKey)
	endpoint.RawQuery = q.Encode()

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: &prompt}}}},
	})
	if err != nil {
		return "", false, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", false, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", false, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, &ConnectionError{Err: err}
	}

	log.Debug("gemini response", logger.Data{"status_code": resp.StatusCode})

	if resp.StatusCode != http.StatusOK {
		log.Error("gemini request failed", logger.Data{"status_code": resp.StatusCode, "body": string(raw)})
		return "", false, &UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", false, &DecodeError{Err: err}
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return FallbackText, false, nil
	}
	first := parsed.Candidates[0].Content.Parts[0].Text
	if first == nil {
		return FallbackText, false, nil
	}
	return *first, true, nil
}
