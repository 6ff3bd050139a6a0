package usecase

import (
	"context"

	"github.com/libraria-tech/go-backend/internal/domain"
)

type BookUC interface {
	UpsertBook(ctx context.Context, req *UpsertBookReq) (*UpsertBookRes, error)
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	GetBooksInfo(ctx context.Context, req *GetBooksReq) (*GetBooksRes, error)
	ListBooks(ctx context.Context) ([]BookInfo, error)
}

type AuthorUC interface {
	UpsertAuthor(ctx context.Context, req *UpsertAuthorReq) (*domain.Author, error)
	GetAuthor(ctx context.Context, id int64) (*domain.Author, error)
	ListAuthors(ctx context.Context) ([]*domain.Author, error)
}

type FavoriteUC interface {
	AddFavorite(ctx context.Context, userID int64, bookID int64) (*AddFavoriteRes, error)
	RemoveFavorite(ctx context.Context, userID int64, bookID int64) error
	ListFavorites(ctx context.Context, userID int64) ([]FavoriteInfo, error)
}

type AuthUC interface {
	Register(ctx context.Context, req *RegisterReq) (*domain.User, error)
	Login(ctx context.Context, req *LoginReq) (*LoginRes, error)
}

// BooksReader — read-путь книжной информации с участием кэша.
// Используется оркестратором рекомендаций для подстановки названий.
type BooksReader interface {
	GetBooksInfo(ctx context.Context, req *GetBooksReq) (*GetBooksRes, error)
}
