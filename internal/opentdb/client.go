package opentdb

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/outsmart/catalogue/internal/config"
	apperrors "github.com/outsmart/catalogue/internal/errors"
	"github.com/outsmart/catalogue/internal/logging"
)

// Client is a rate-limited Open Trivia Database API client. All requests
// share one limiter so the tool as a whole never exceeds the API's one
// request per five seconds.
type Client struct {
	cfg        config.DownloaderConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates an API client from downloader configuration.
func NewClient(cfg config.DownloaderConfig) *Client {
	interval := time.Duration(cfg.RequestIntervalSeconds * float64(time.Second))
	if interval <= 0 {
		interval = 5100 * time.Millisecond
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// get performs a rate-limited GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, rawURL string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url %s: %w", rawURL, err)
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("api returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// Categories fetches the full category list.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var resp categoriesResponse
	if err := c.get(ctx, c.cfg.CategoryURL, nil, &resp); err != nil {
		return nil, err
	}

	if len(resp.TriviaCategories) == 0 {
		return nil, apperrors.ErrNoCategories
	}

	return resp.TriviaCategories, nil
}

// QuestionCount fetches the question counts for one category.
func (c *Client) QuestionCount(ctx context.Context, categoryID int) (*QuestionCount, error) {
	params := url.Values{"category": {strconv.Itoa(categoryID)}}

	var resp countResponse
	if err := c.get(ctx, c.cfg.CountURL, params, &resp); err != nil {
		return nil, err
	}

	return &QuestionCount{
		CategoryID: categoryID,
		Total:      resp.CategoryQuestionCount.Total,
		Easy:       resp.CategoryQuestionCount.Easy,
		Medium:     resp.CategoryQuestionCount.Medium,
		Hard:       resp.CategoryQuestionCount.Hard,
	}, nil
}

// FetchBatch requests one batch of questions for a category using the given
// session token. The response code is returned alongside the decoded
// questions; callers decide how to react to non-success codes.
func (c *Client) FetchBatch(ctx context.Context, categoryID int, token string) (int, []Question, error) {
	params := url.Values{
		"amount":   {strconv.Itoa(c.batchSize())},
		"category": {strconv.Itoa(categoryID)},
		"encode":   {"base64"},
		"token":    {token},
	}

	var resp batchResponse
	if err := c.get(ctx, c.cfg.BaseURL, params, &resp); err != nil {
		return -1, nil, err
	}

	questions := make([]Question, 0, len(resp.Results))
	for _, enc := range resp.Results {
		q, err := decodeQuestion(enc)
		if err != nil {
			logging.Warnf("skipping undecodable question in category %d: %v", categoryID, err)
			continue
		}
		questions = append(questions, q)
	}

	return resp.ResponseCode, questions, nil
}

// RequestToken asks the API for a fresh global session token.
func (c *Client) RequestToken(ctx context.Context) (string, error) {
	params := url.Values{"command": {"request"}}

	var resp tokenResponse
	if err := c.get(ctx, c.cfg.TokenURL, params, &resp); err != nil {
		return "", err
	}

	if resp.ResponseCode != CodeSuccess || resp.Token == "" {
		return "", apperrors.ErrNoToken
	}

	return resp.Token, nil
}

// ResetToken clears the served-question history behind a session token.
func (c *Client) ResetToken(ctx context.Context, token string) error {
	params := url.Values{"command": {"reset"}, "token": {token}}

	var resp tokenResponse
	if err := c.get(ctx, c.cfg.TokenURL, params, &resp); err != nil {
		return err
	}

	if resp.ResponseCode != CodeSuccess {
		return fmt.Errorf("token reset refused: %s", ResponseCodeName(resp.ResponseCode))
	}

	return nil
}

func (c *Client) batchSize() int {
	if c.cfg.BatchSize > 0 && c.cfg.BatchSize <= 50 {
		return c.cfg.BatchSize
	}
	return 50
}

func decodeQuestion(enc encodedQuestion) (Question, error) {
	var q Question
	var err error

	if q.Category, err = decodeField(enc.Category); err != nil {
		return q, err
	}
	if q.Type, err = decodeField(enc.Type); err != nil {
		return q, err
	}
	if q.Difficulty, err = decodeField(enc.Difficulty); err != nil {
		return q, err
	}
	if q.Question, err = decodeField(enc.Question); err != nil {
		return q, err
	}
	if q.CorrectAnswer, err = decodeField(enc.CorrectAnswer); err != nil {
		return q, err
	}

	q.IncorrectAnswers = make([]string, 0, len(enc.IncorrectAnswers))
	for _, ans := range enc.IncorrectAnswers {
		decoded, err := decodeField(ans)
		if err != nil {
			return q, err
		}
		q.IncorrectAnswers = append(q.IncorrectAnswers, decoded)
	}

	return q, nil
}

func decodeField(s string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("bad base64 field: %w", err)
	}
	return string(raw), nil
}
