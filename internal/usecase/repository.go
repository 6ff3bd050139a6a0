package usecase

import (
	"context"

	"github.com/libraria-tech/go-backend/internal/domain"
)

type BookRepository interface {
	Upsert(ctx context.Context, book *domain.Book) (*UpsertBookRes, error)
	SetAuthors(ctx context.Context, bookID int64, authorIDs []int64) error
	SetImageURL(ctx context.Context, bookID int64, imageURL string) error
	UpsertRatingDistribution(ctx context.Context, dist *domain.RatingDistribution) error
	Exists(ctx context.Context, id int64) (bool, error)
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	GetBooksInfo(ctx context.Context, ids []int64) ([]BookInfo, error)
	ListBooks(ctx context.Context) ([]BookInfo, error)
	GetAllBookIDs(ctx context.Context, excluding []int64) ([]int64, error)
}

type AuthorRepository interface {
	Upsert(ctx context.Context, author *domain.Author) (*domain.Author, error)
	GetByID(ctx context.Context, id int64) (*domain.Author, error)
	List(ctx context.Context) ([]*domain.Author, error)
	ExistAll(ctx context.Context, ids []int64) ([]int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type FavoriteRepository interface {
	// Insert идемпотентно создаёт связь; created=false означает, что пара уже существовала.
	Insert(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, bool, error)
	// CountForUser выполняется в той же транзакции, что и Insert (check-then-act).
	CountForUser(ctx context.Context, userID int64) (int64, error)
	GetUserFavoriteBookIDs(ctx context.Context, userID int64) ([]int64, error)
	ListForUser(ctx context.Context, userID int64) ([]FavoriteInfo, error)
	Delete(ctx context.Context, userID int64, bookID int64) (bool, error)
}

type EmbeddingRepository interface {
	Upsert(ctx context.Context, embedding *domain.Embedding) error
	// GetMany возвращает только найденные векторы; отсутствующие ID молча пропускаются.
	GetMany(ctx context.Context, bookIDs []int64) (map[int64][]float32, error)
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetBooks(ctx context.Context, ids []int64) (map[int64]BookInfo, error)
	SetBooks(ctx context.Context, books []BookInfo) error
	DeleteBooks(ctx context.Context, ids []int64) error
}
