// Package trivia fetches multiple-choice questions from an Open Trivia
// DB-compatible endpoint.
package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"time"

	"github.com/okoshkin/trivtui/internal/model"
)

// DefaultEndpoint is the public Open Trivia DB API.
const DefaultEndpoint = "https://opentdb.com/api.php"

const incorrectPerQuestion = 3

// Client issues question-batch requests against one endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

type apiResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []apiQuestion `json:"results"`
}

type apiQuestion struct {
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// NewClient builds a client for the given endpoint. An empty endpoint selects
// the public Open Trivia DB API.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

// Fetch requests one batch of questions. The payload is validated on ingress:
// a non-zero API response code, an empty batch, or any malformed record fails
// the whole fetch.
func (c *Client) Fetch(ctx context.Context, amount int, qtype string) ([]model.Question, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be greater than 0")
	}
	if qtype == "" {
		return nil, fmt.Errorf("question type is required")
	}

	reqURL, err := c.buildURL(amount, qtype)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected question bank status: %s", resp.Status)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode question bank response: %w", err)
	}
	if payload.ResponseCode != 0 {
		return nil, fmt.Errorf("question bank returned code %d", payload.ResponseCode)
	}
	return decodeQuestions(payload.Results)
}

func (c *Client) buildURL(amount int, qtype string) (string, error) {
	parsed, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}
	query := parsed.Query()
	query.Set("amount", fmt.Sprintf("%d", amount))
	query.Set("type", qtype)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func decodeQuestions(records []apiQuestion) ([]model.Question, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("question batch is empty")
	}
	questions := make([]model.Question, 0, len(records))
	for i, record := range records {
		if record.Question == "" || record.CorrectAnswer == "" {
			return nil, fmt.Errorf("question %d is missing prompt or answer", i)
		}
		if len(record.IncorrectAnswers) != incorrectPerQuestion {
			return nil, fmt.Errorf("question %d has %d incorrect answers, want %d",
				i, len(record.IncorrectAnswers), incorrectPerQuestion)
		}
		incorrect := make([]string, 0, len(record.IncorrectAnswers))
		for j, answer := range record.IncorrectAnswers {
			if answer == "" {
				return nil, fmt.Errorf("question %d has an empty incorrect answer at %d", i, j)
			}
			incorrect = append(incorrect, html.UnescapeString(answer))
		}
		questions = append(questions, model.Question{
			Category:         html.UnescapeString(record.Category),
			Difficulty:       record.Difficulty,
			Prompt:           html.UnescapeString(record.Question),
			CorrectAnswer:    html.UnescapeString(record.CorrectAnswer),
			IncorrectAnswers: incorrect,
		})
	}
	return questions, nil
}
