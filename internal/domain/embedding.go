package domain

import "time"

// Payload описывает дополнительную информацию вектора
type Payload map[string]any

// Embedding представляет эмбеддинг текста одной книги.
// Идентификатор точки в векторном хранилище совпадает с ID книги,
// поэтому на книгу существует не более одного вектора.
type Embedding struct {
	BookID  int64
	Vector  []float32
	Payload Payload
}

func NewEmbedding(bookID int64, vector []float32, payload Payload) *Embedding {
	return &Embedding{
		BookID:  bookID,
		Vector:  vector,
		Payload: payload,
	}
}

func NewPayload(bookID int64, modelVersion string) Payload {
	return Payload{
		"book_id":       bookID,
		"created_at":    time.Now().UTC().UnixNano(),
		"model_version": modelVersion,
	}
}
