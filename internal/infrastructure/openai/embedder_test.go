package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libraria-tech/go-backend/internal/cfg"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type embeddingsRequest struct {
	Input      []string `json:"input"`
	Model      string   `json:"model"`
	Dimensions int      `json:"dimensions"`
}

func newTestEmbedder(t *testing.T, handler http.HandlerFunc) *Embedder {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewEmbedder(&cfg.EmbedderCfg{
		APIKey:     "sk-test",
		BaseURL:    srv.URL,
		Model:      "text-embedding-3-small",
		Dimensions: 2,
		MaxRetries: 3,
	}, nopLogger{})
}

func TestEmbedText(t *testing.T) {
	var gotReq embeddingsRequest
	embedder := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data": []map[string]any{
				{"object": "embedding", "index": 0, "embedding": []float32{0.25, -0.75}},
			},
			"model": "text-embedding-3-small",
		})
	})

	res, err := embedder.EmbedText(context.Background(), "Мастер и Маргарита", "Роман о визите дьявола")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, -0.75}, res.Vector)
	assert.Equal(t, "text-embedding-3-small", res.ModelVersion)

	require.Len(t, gotReq.Input, 1)
	assert.Equal(t, "Мастер и Маргарита Роман о визите дьявола", gotReq.Input[0])
	assert.Equal(t, 2, gotReq.Dimensions)
}

func TestEmbedTextEmptyResult(t *testing.T) {
	embedder := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   []map[string]any{},
			"model":  "text-embedding-3-small",
		})
	})
	embedder.maxRetries = 1

	_, err := embedder.EmbedText(context.Background(), "Title", "Description")
	assert.Error(t, err)
}

func TestEmbedTextCancelledContext(t *testing.T) {
	embedder := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := embedder.EmbedText(ctx, "Title", "Description")
	assert.Error(t, err)
}

func TestDimensions(t *testing.T) {
	embedder := NewEmbedder(&cfg.EmbedderCfg{Dimensions: 384}, nopLogger{})
	assert.Equal(t, 384, embedder.Dimensions())
}
