package opentdb

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outsmart/catalogue/internal/config"
	apperrors "github.com/outsmart/catalogue/internal/errors"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// testConfig points every endpoint at the test server and removes the rate
// limit so tests run fast.
func testConfig(serverURL string) config.DownloaderConfig {
	cfg := config.Default().Downloader
	cfg.BaseURL = serverURL + "/api.php"
	cfg.CategoryURL = serverURL + "/api_category.php"
	cfg.CountURL = serverURL + "/api_count.php"
	cfg.TokenURL = serverURL + "/api_token.php"
	cfg.RequestIntervalSeconds = 0.001
	cfg.RetryBackoffSeconds = 1
	return cfg
}

func TestCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api_category.php", r.URL.Path)
		w.Write([]byte(`{"trivia_categories":[{"id":9,"name":"General Knowledge"},{"id":10,"name":"Entertainment: Books"}]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	categories, err := client.Categories(context.Background())
	require.NoError(t, err)

	require.Len(t, categories, 2)
	assert.Equal(t, 9, categories[0].ID)
	assert.Equal(t, "General Knowledge", categories[0].Name)
}

func TestCategories_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"trivia_categories":[]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Categories(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrNoCategories)
}

func TestQuestionCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "9", r.URL.Query().Get("category"))
		w.Write([]byte(`{"category_id":9,"category_question_count":{
			"total_question_count":300,"total_easy_question_count":100,
			"total_medium_question_count":120,"total_hard_question_count":80}}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	count, err := client.QuestionCount(context.Background(), 9)
	require.NoError(t, err)

	assert.Equal(t, 300, count.Total)
	assert.Equal(t, 100, count.Easy)
	assert.Equal(t, 120, count.Medium)
	assert.Equal(t, 80, count.Hard)
}

func TestFetchBatch_DecodesBase64(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "base64", q.Get("encode"))
		require.Equal(t, "tok-1", q.Get("token"))
		require.Equal(t, "50", q.Get("amount"))

		w.Write([]byte(`{"response_code":0,"results":[{
			"category":"` + b64("General Knowledge") + `",
			"type":"` + b64("multiple") + `",
			"difficulty":"` + b64("easy") + `",
			"question":"` + b64("What is 2+2?") + `",
			"correct_answer":"` + b64("4") + `",
			"incorrect_answers":["` + b64("3") + `","` + b64("5") + `","` + b64("22") + `"]}]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	code, questions, err := client.FetchBatch(context.Background(), 9, "tok-1")
	require.NoError(t, err)

	assert.Equal(t, CodeSuccess, code)
	require.Len(t, questions, 1)
	assert.Equal(t, "What is 2+2?", questions[0].Question)
	assert.Equal(t, "4", questions[0].CorrectAnswer)
	assert.Equal(t, []string{"3", "5", "22"}, questions[0].IncorrectAnswers)
	assert.Equal(t, "easy", questions[0].Difficulty)
}

func TestFetchBatch_SkipsUndecodableQuestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response_code":0,"results":[
			{"category":"not base64!!","type":"x","difficulty":"x","question":"x","correct_answer":"x","incorrect_answers":[]},
			{"category":"` + b64("Books") + `","type":"` + b64("boolean") + `","difficulty":"` + b64("hard") + `",
			 "question":"` + b64("True?") + `","correct_answer":"` + b64("True") + `","incorrect_answers":["` + b64("False") + `"]}]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	code, questions, err := client.FetchBatch(context.Background(), 9, "tok")
	require.NoError(t, err)

	assert.Equal(t, CodeSuccess, code)
	require.Len(t, questions, 1, "the undecodable question is dropped")
	assert.Equal(t, "True?", questions[0].Question)
}

func TestRequestToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "request", r.URL.Query().Get("command"))
		w.Write([]byte(`{"response_code":0,"token":"tok-abc"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	token, err := client.RequestToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
}

func TestRequestToken_Refused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response_code":5}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.RequestToken(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNoToken)
}

func TestResetToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "reset", r.URL.Query().Get("command"))
		require.Equal(t, "tok-abc", r.URL.Query().Get("token"))
		w.Write([]byte(`{"response_code":0,"token":"tok-abc"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	assert.NoError(t, client.ResetToken(context.Background(), "tok-abc"))
}

func TestGet_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, _, err := client.FetchBatch(context.Background(), 9, "tok")
	assert.Error(t, err)
}

func TestResponseCodeName(t *testing.T) {
	assert.Equal(t, "Success", ResponseCodeName(0))
	assert.Equal(t, "Token Empty", ResponseCodeName(4))
	assert.Equal(t, "Unknown", ResponseCodeName(42))
}
