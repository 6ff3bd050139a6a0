package usecase

import "context"

type EmbedderInfra interface {
	// EmbedText возвращает вектор фиксированной размерности для текста книги.
	// При сбое модели возвращается ошибка, а не нулевой вектор.
	EmbedText(ctx context.Context, title string, description string) (*EmbedTextRes, error)
	Dimensions() int
}

type ImagesInfra interface {
	UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error)
	CleanupImages(keys []string)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
