// Package assessment is the HTTP client for the remote assessment service,
// which owns the question trees, the language catalog and the treatment
// rules. Each conversation session gets its own client so the service's
// session cookie stays bound to that conversation.
package assessment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}, nil
}

// CurrentLanguage returns the language the remote session is set to.
func (c *Client) CurrentLanguage(ctx context.Context) (*LanguageInfo, error) {
	var result LanguageInfo
	if err := c.get(ctx, "/api/get_current_language", &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// SetLanguage switches the remote session's language. A service-side
// rejection (unknown code) is returned as an error.
func (c *Client) SetLanguage(ctx context.Context, code string) (string, error) {
	var result setLanguageResponse
	if err := c.post(ctx, "/api/set_language", setLanguageRequest{Language: code}, &result); err != nil {
		return "", err
	}

	if !result.Success {
		return "", fmt.Errorf("language change rejected: %s", result.Message)
	}

	return result.Message, nil
}

// StartAssessment begins a fresh assessment for the department and returns
// the welcome message together with the first question.
func (c *Client) StartAssessment(ctx context.Context, department, language string) (*StartResult, error) {
	req := startRequest{
		Department: department,
		Language:   language,
	}

	var result StartResult
	if err := c.post(ctx, "/api/start_chat", req, &result); err != nil {
		return nil, err
	}

	if !result.Success {
		return nil, fmt.Errorf("assessment start rejected: %s", result.Message)
	}

	if result.Question == nil {
		return nil, fmt.Errorf("assessment start returned no question")
	}

	return &result, nil
}

// AnswerQuestion submits an answer and returns the next question. The answer
// is a single value for single-answer kinds and a string slice for
// multiple-choice ones.
func (c *Client) AnswerQuestion(ctx context.Context, questionID string, answer any) (*Question, error) {
	req := answerRequest{
		QuestionID: questionID,
		Answer:     answer,
	}

	var result answerResponse
	if err := c.post(ctx, "/api/answer_question", req, &result); err != nil {
		return nil, err
	}

	if result.NextQuestion == nil {
		return nil, fmt.Errorf("service returned no next question for %q", questionID)
	}

	return result.NextQuestion, nil
}

// SelectTreatment submits the treatment preference and returns the final
// recommendation.
func (c *Client) SelectTreatment(ctx context.Context, treatmentType string) (*Recommendation, error) {
	var result Recommendation
	if err := c.post(ctx, "/api/select_treatment", selectTreatmentRequest{TreatmentType: treatmentType}, &result); err != nil {
		return nil, err
	}

	if result.Text() == "" {
		return nil, fmt.Errorf("service returned an empty recommendation")
	}

	return &result, nil
}

// RestartSession clears the remote session. The response body is ignored.
func (c *Client) RestartSession(ctx context.Context) error {
	return c.post(ctx, "/api/restart_chat", struct{}{}, nil)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", req.URL.Path, err)
	}

	if resp.StatusCode != http.StatusOK {
		var svcErr errorResponse
		if json.Unmarshal(data, &svcErr) == nil && svcErr.Error != "" {
			return fmt.Errorf("%s returned %d: %s", req.URL.Path, resp.StatusCode, svcErr.Error)
		}

		return fmt.Errorf("%s returned %d", req.URL.Path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err = json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", req.URL.Path, err)
	}

	return nil
}
