package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outsmart/catalogue/internal/catalogue"
	"github.com/outsmart/catalogue/internal/config"
	apperrors "github.com/outsmart/catalogue/internal/errors"
)

func testClient(serverURL, model string) *Client {
	return NewClient(config.OllamaConfig{
		Host:        serverURL,
		Model:       model,
		Temperature: 0.7,
	})
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[{"name":"llama2:latest"},{"name":"mistral:7b"}]}`))
	}))
	defer server.Close()

	assert.NoError(t, testClient(server.URL, "llama2").Ping(context.Background()))
	assert.NoError(t, testClient(server.URL, "llama2:latest").Ping(context.Background()))

	err := testClient(server.URL, "phi3").Ping(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrModelNotFound)
}

func TestPing_ServerDown(t *testing.T) {
	err := testClient("http://127.0.0.1:1", "llama2").Ping(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrOllamaUnavailable)
}

func TestGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama2", req["model"])
		assert.Equal(t, false, req["stream"])
		assert.Contains(t, req["prompt"], "sunset")

		w.Write([]byte(`{"response":"  A photo of a sunset over water.  "}`))
	}))
	defer server.Close()

	text, err := testClient(server.URL, "llama2").Generate(context.Background(),
		DescribePrompt(catalogue.TypeImage, "sunset"))
	require.NoError(t, err)
	assert.Equal(t, "A photo of a sunset over water.", text, "response is trimmed")
}

func TestGenerate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testClient(server.URL, "llama2").Generate(context.Background(), "hello")
	assert.Error(t, err)
}

func TestDescribePrompt(t *testing.T) {
	assert.Contains(t, DescribePrompt(catalogue.TypeImage, "cat"), "image file named 'cat'")
	assert.Contains(t, DescribePrompt(catalogue.TypeAudio, "theme"), "audio file named 'theme'")
	assert.Contains(t, DescribePrompt(catalogue.TypeVideo, "intro"), "video file named 'intro'")
	assert.Contains(t, DescribePrompt(catalogue.TypeUnknown, "blob"), "file named 'blob'")
}
