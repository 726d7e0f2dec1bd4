package question

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"
)

// OpenTDBProvider fetches questions from an opentdb.com compatible API.
type OpenTDBProvider struct {
	apiURL string
	client *http.Client
}

func NewOpenTDBProvider(apiURL string, timeout time.Duration) *OpenTDBProvider {
	return &OpenTDBProvider{
		apiURL: apiURL,
		client: &http.Client{Timeout: timeout},
	}
}

// opentdbResult mirrors one entry of the opentdb.com response payload:
//
//	{"response_code": 0, "results": [{"question": "...",
//	  "correct_answer": "...", "incorrect_answers": ["...", ...]}]}
type opentdbResult struct {
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type opentdbPayload struct {
	ResponseCode int             `json:"response_code"`
	Results      []opentdbResult `json:"results"`
}

// Fetch retrieves one question. The correct answer is inserted at a random
// position among the incorrect ones before returning, so callers can send
// the choices to players as-is.
func (p *OpenTDBProvider) Fetch(ctx context.Context) (*Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build question request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("question API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received response %d from %s", resp.StatusCode, p.apiURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read question response: %w", err)
	}

	return parseOpenTDB(body)
}

func parseOpenTDB(data []byte) (*Question, error) {
	var payload opentdbPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse question response: %w", err)
	}

	if len(payload.Results) == 0 {
		return nil, fmt.Errorf("question response contained no results")
	}

	result := payload.Results[0]
	if len(result.IncorrectAnswers) == 0 {
		return nil, fmt.Errorf("question %q has no incorrect answers", result.Question)
	}

	// Insert the correct answer at a random position among the incorrect
	// ones. Index may be 0..len inclusive so every slot is possible.
	index := rand.Intn(len(result.IncorrectAnswers) + 1)
	choices := make([]string, 0, len(result.IncorrectAnswers)+1)
	choices = append(choices, result.IncorrectAnswers[:index]...)
	choices = append(choices, result.CorrectAnswer)
	choices = append(choices, result.IncorrectAnswers[index:]...)

	return &Question{
		Prompt:  result.Question,
		Choices: choices,
		Answer:  result.CorrectAnswer,
	}, nil
}
