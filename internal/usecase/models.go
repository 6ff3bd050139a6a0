package usecase

import (
	"time"

	"github.com/libraria-tech/go-backend/internal/domain"
)

// BOOK USECASE

// UpsertBookReq — запрос на создание или обновление книги каталога.
type UpsertBookReq struct {
	Title         string
	Description   string
	ISBN          string
	Language      string
	Publisher     string
	NumPages      int32
	AverageRating int64 // в сотых долях (0..500)
	RatingsCount  int64
	RatingCounts  *[5]int64 // распределение оценок 1..5, опционально
	AuthorIDs     []int64
	Covers        []CoverImage
}

// CoverImage представляет обложку, загруженную через multipart/form-data.
type CoverImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// GetBooksReq запрос информации о книгах по их идентификаторам.
type GetBooksReq struct {
	IDs []int64
}

// GetBooksRes — ответ с данными запрошенных книг.
type GetBooksRes struct {
	Books         []BookInfo
	NotFoundBooks []int64
}

// BookInfo — DTO с информацией о книге для внешнего использования.
type BookInfo struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Authors       string `json:"authors"` // имена авторов через запятую
	AverageRating int64  `json:"average_rating"` // в сотых долях
}

// UpsertBookRes — результат идемпотентного сохранения книги.
type UpsertBookRes struct {
	Book      *domain.Book
	NoChanges bool
}

// AUTHOR USECASE

// UpsertAuthorReq — запрос на создание или обновление автора.
type UpsertAuthorReq struct {
	Name          string
	Gender        string
	About         string
	ImageURL      string
	AverageRating int64
	RatingsCount  int64
	FansCount     int64
	WorksCount    int64
}

// FAVORITE USECASE

// AddFavoriteStatus — исход операции добавления в избранное.
type AddFavoriteStatus string

const (
	StatusCreated         AddFavoriteStatus = "created"
	StatusAlreadyExists   AddFavoriteStatus = "already_exists"
	StatusRejectedCeiling AddFavoriteStatus = "rejected_ceiling"
)

// RecommendationLimit — число возвращаемых рекомендаций (top-K).
const RecommendationLimit = 5

// Recommendation — одна рекомендованная книга с расстоянием до центроида.
type Recommendation struct {
	BookID   int64   `json:"book_id"`
	Title    string  `json:"title"`
	Distance float64 `json:"distance"`
}

// AddFavoriteRes — результат добавления книги в избранное.
// Recommendations заполняется только при первичном создании связи;
// пустой список при сбое ранжирования — валидный деградированный результат.
type AddFavoriteRes struct {
	Status          AddFavoriteStatus
	Favorite        *domain.Favorite
	Recommendations []Recommendation
}

// FavoriteInfo — DTO избранной книги для выдачи списка.
type FavoriteInfo struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	BookID    int64     `json:"book_id"`
	BookTitle string    `json:"book_title"`
	AddedOn   time.Time `json:"added_on"`
}

// AUTH USECASE

type RegisterReq struct {
	Username string
	Email    string
	Password string
}

type LoginReq struct {
	Username string
	Password string
}

type LoginRes struct {
	Access  string
	Refresh string
}

// INFRASTRUCTURE

// EmbedTextRes — результат векторизации текста книги.
type EmbedTextRes struct {
	Vector       []float32
	ModelVersion string
}

// UploadImagesReq — запрос на загрузку обложек книги.
type UploadImagesReq struct {
	Title  string
	Images []CoverImage
}

// UploadImagesRes — результат загрузки обложек (ключи в MinIO).
type UploadImagesRes struct {
	ImagesKeys []string
}

type WriteRawMessageReq struct {
	BookID  int64
	Payload []byte
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	BookUpserted  OutboxEventType = "book_upserted"
	FavoriteAdded OutboxEventType = "favorite_added"
)

// OutboxEvent — запись транзакционного outbox для публикации в Kafka.
type OutboxEvent struct {
	ID                  int64
	EventID             string
	EventType           OutboxEventType
	BookID              int64
	Payload             []byte
	Status              OutboxStatus
	CreatedAt           time.Time
	ProcessingStartedAt *time.Time
	ProcessedAt         *time.Time
}

// MAPPERS

func NewUpsertBookRes(book *domain.Book, noChanges bool) *UpsertBookRes {
	return &UpsertBookRes{
		Book:      book,
		NoChanges: noChanges,
	}
}

func NewBookInfo(id int64, title string, authors string, averageRating int64) BookInfo {
	return BookInfo{
		ID:            id,
		Title:         title,
		Authors:       authors,
		AverageRating: averageRating,
	}
}

func NewGetBooksReq(ids []int64) *GetBooksReq {
	return &GetBooksReq{ids}
}

func NewGetBooksRes(books []BookInfo, notFoundBooks []int64) *GetBooksRes {
	return &GetBooksRes{
		Books:         books,
		NotFoundBooks: notFoundBooks,
	}
}

func NewCoverImage(data []byte, mimeType string, size int64, name string) *CoverImage {
	return &CoverImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewUploadImagesReq(title string, images []CoverImage) *UploadImagesReq {
	return &UploadImagesReq{
		Title:  title,
		Images: images,
	}
}

func NewUploadImagesRes(imagesKeys []string) *UploadImagesRes {
	return &UploadImagesRes{
		ImagesKeys: imagesKeys,
	}
}

func NewEmbedTextRes(vector []float32, modelVersion string) *EmbedTextRes {
	return &EmbedTextRes{
		Vector:       vector,
		ModelVersion: modelVersion,
	}
}

func NewWriteRawMessageReq(bookID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		BookID:  bookID,
		Payload: payload,
	}
}

func NewRecommendation(bookID int64, title string, distance float64) Recommendation {
	return Recommendation{
		BookID:   bookID,
		Title:    title,
		Distance: distance,
	}
}
