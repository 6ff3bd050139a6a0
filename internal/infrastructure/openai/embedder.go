package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/libraria-tech/go-backend/internal/cfg"
	"github.com/libraria-tech/go-backend/internal/usecase"
	"github.com/libraria-tech/go-backend/pkg/e"
	"github.com/libraria-tech/go-backend/pkg/jitter"
	"github.com/libraria-tech/go-backend/pkg/logger"
	"github.com/sashabaranov/go-openai"
)

// Embedder клиент для получения embedding-векторов книг через
// OpenAI-совместимый API.
type Embedder struct {
	client     *openai.Client
	model      string
	dimensions int
	maxRetries int
	logger     logger.Logger
}

func NewEmbedder(cfg *cfg.EmbedderCfg, logger logger.Logger) *Embedder {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Embedder{
		client:     openai.NewClientWithConfig(clientConfig),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

// EmbedText векторизует книгу по названию и описанию с retry-логикой
// и экспоненциальной задержкой. Текст для векторизации — название
// и описание, соединённые одним пробелом.
func (m *Embedder) EmbedText(ctx context.Context, title, description string) (*usecase.EmbedTextRes, error) {
	const (
		op         = "Embedder.EmbedText"
		baseJitter = 1 * time.Second
		maxJitter  = 30 * time.Second
	)

	text := title + " " + description

	for attempt := 0; attempt < m.maxRetries; attempt++ {
		vector, err := m.embed(ctx, text)
		if err == nil {
			return usecase.NewEmbedTextRes(vector, m.model), nil
		}

		if attempt == m.maxRetries-1 {
			return nil, e.Wrap(op, fmt.Errorf("all %d attempts failed: %w", m.maxRetries, err))
		}

		sleepTime := jitter.ExponentialBackoff(
			baseJitter,
			maxJitter,
			attempt,
			jitter.DefaultJitter,
		)

		m.logger.Warnf("embedding failed, retrying in %v (attempt %d)", sleepTime, attempt+1)
		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return nil, e.Wrap(op, ctx.Err())
		}
	}

	return nil, e.Wrap(op, fmt.Errorf("unreachable"))
}

func (m *Embedder) embed(ctx context.Context, text string) ([]float32, error) {
	const op = "Embedder.embed"

	req := openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(m.model),
		Dimensions: m.dimensions,
	}

	resp, err := m.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(resp.Data) == 0 {
		return nil, e.Wrap(op, e.ErrEmptyEmbeddingResult)
	}

	return resp.Data[0].Embedding, nil
}

// Dimensions возвращает размерность векторов эмбеддера.
func (m *Embedder) Dimensions() int {
	return m.dimensions
}
