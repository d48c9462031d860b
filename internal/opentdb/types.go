// Package opentdb downloads trivia questions from the Open Trivia Database
// API and organizes them by category. The API allows one request per five
// seconds and at most fifty questions per request; a global session token
// tracks served questions across all categories so batches never repeat.
package opentdb

import "time"

// Response codes returned by the API.
const (
	CodeSuccess          = 0
	CodeNoResults        = 1
	CodeInvalidParameter = 2
	CodeTokenNotFound    = 3
	CodeTokenEmpty       = 4
	CodeRateLimited      = 5
)

// responseCodeNames maps API response codes to their documented meanings.
var responseCodeNames = map[int]string{
	CodeSuccess:          "Success",
	CodeNoResults:        "No Results",
	CodeInvalidParameter: "Invalid Parameter",
	CodeTokenNotFound:    "Token Not Found",
	CodeTokenEmpty:       "Token Empty",
	CodeRateLimited:      "Rate Limited",
}

// ResponseCodeName returns the documented name for an API response code.
func ResponseCodeName(code int) string {
	if name, ok := responseCodeNames[code]; ok {
		return name
	}
	return "Unknown"
}

// Category is one trivia category as listed by the API.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// QuestionCount reports how many questions the API holds for a category.
type QuestionCount struct {
	CategoryID int `json:"category_id"`
	Total      int `json:"total_question_count"`
	Easy       int `json:"total_easy_question_count"`
	Medium     int `json:"total_medium_question_count"`
	Hard       int `json:"total_hard_question_count"`
}

// Question is one decoded trivia question.
type Question struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// encodedQuestion is a question as the API returns it with encode=base64:
// every string field, including each incorrect answer, is base64.
type encodedQuestion struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// batchResponse is the envelope of a question batch request.
type batchResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []encodedQuestion `json:"results"`
}

// categoriesResponse is the envelope of the category list endpoint.
type categoriesResponse struct {
	TriviaCategories []Category `json:"trivia_categories"`
}

// countResponse is the envelope of the question count endpoint.
type countResponse struct {
	CategoryQuestionCount struct {
		Total  int `json:"total_question_count"`
		Easy   int `json:"total_easy_question_count"`
		Medium int `json:"total_medium_question_count"`
		Hard   int `json:"total_hard_question_count"`
	} `json:"category_question_count"`
}

// tokenResponse is the envelope of the session token endpoint.
type tokenResponse struct {
	ResponseCode int    `json:"response_code"`
	Token        string `json:"token"`
}

// CategoryStatistics breaks a category's questions down by difficulty and type.
type CategoryStatistics struct {
	TotalQuestions int            `json:"total_questions"`
	ByDifficulty   map[string]int `json:"by_difficulty"`
	ByType         map[string]int `json:"by_type"`
}

// CategoryData is the questions.json document written per category.
type CategoryData struct {
	CategoryID        int                `json:"category_id"`
	CategoryName      string             `json:"category_name"`
	DownloadTimestamp time.Time          `json:"download_timestamp"`
	Questions         []Question         `json:"questions"`
	Statistics        CategoryStatistics `json:"statistics"`
}

// DownloadStats tracks progress across one downloader run.
type DownloadStats struct {
	RunID               string     `json:"run_id"`
	TotalCategories     int        `json:"total_categories"`
	CompletedCategories int        `json:"completed_categories"`
	DownloadedQuestions int        `json:"downloaded_questions"`
	FailedRequests      int        `json:"failed_requests"`
	StartTime           time.Time  `json:"start_time"`
	EndTime             *time.Time `json:"end_time,omitempty"`
}

// CategorySummary is one category's entry in the download summary.
type CategorySummary struct {
	Name          string             `json:"name"`
	ID            int                `json:"id"`
	QuestionCount int                `json:"question_count"`
	Statistics    CategoryStatistics `json:"statistics"`
}

// Summary is the download_summary.json document.
type Summary struct {
	DownloadStats     DownloadStats     `json:"download_stats"`
	CategoriesSummary []CategorySummary `json:"categories_summary"`
	TotalQuestions    int               `json:"total_questions"`
}
