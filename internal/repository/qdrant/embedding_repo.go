package qdrant

import (
	"context"

	"github.com/jimlawless/whereami"
	"github.com/libraria-tech/go-backend/internal/cfg"
	"github.com/libraria-tech/go-backend/internal/domain"
	"github.com/libraria-tech/go-backend/pkg/e"
	"github.com/qdrant/go-client/qdrant"
)

// EmbeddingRepo репозиторий для работы с embedding-векторами книг в Qdrant.
// Идентификатор точки совпадает с идентификатором книги.
type EmbeddingRepo struct {
	client *qdrant.Client
	cfg    *cfg.QdrantCfg
}

func NewEmbeddingRepo(client *qdrant.Client, cfg *cfg.QdrantCfg) *EmbeddingRepo {
	return &EmbeddingRepo{
		client: client,
		cfg:    cfg,
	}
}

// Upsert сохраняет или обновляет embedding-вектор книги в коллекции Qdrant.
// Вектор обязан совпадать по размерности с коллекцией.
func (q *EmbeddingRepo) Upsert(ctx context.Context, embedding *domain.Embedding) error {
	if len(embedding.Vector) == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrEmptyVector)
	}
	if uint64(len(embedding.Vector)) != q.cfg.VectorSize {
		return e.Wrap(whereami.WhereAmI(), e.ErrVectorDimension)
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(embedding.BookID)),
		Vectors: qdrant.NewVectors(embedding.Vector...),
		Payload: qdrant.NewValueMap(embedding.Payload),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.cfg.QdrantCollectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetMany возвращает векторы запрошенных книг. Книги без сохранённого
// вектора в результат не попадают.
func (q *EmbeddingRepo) GetMany(ctx context.Context, bookIDs []int64) (map[int64][]float32, error) {
	if len(bookIDs) == 0 {
		return map[int64][]float32{}, nil
	}

	ids := make([]*qdrant.PointId, 0, len(bookIDs))
	for _, id := range bookIDs {
		ids = append(ids, qdrant.NewIDNum(uint64(id)))
	}

	points, err := q.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: q.cfg.QdrantCollectionName,
		Ids:            ids,
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result := make(map[int64][]float32, len(points))
	for _, point := range points {
		vector := point.GetVectors().GetVector().GetData()
		if len(vector) == 0 {
			continue
		}

		result[int64(point.GetId().GetNum())] = vector
	}

	return result, nil
}
