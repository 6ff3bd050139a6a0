package converter

import (
	"github.com/libraria-tech/go-backend/internal/domain"
	"github.com/libraria-tech/go-backend/internal/usecase"
)

// BookConverter преобразует сущности Book между domain и моделью PostgreSQL.
type BookConverter interface {
	ToModel(entity *domain.Book) *BookModel
	ToEntity(model *BookModel) *domain.Book
}

// AuthorConverter преобразует сущности Author между domain и моделью PostgreSQL.
type AuthorConverter interface {
	ToModel(entity *domain.Author) *AuthorModel
	ToEntity(model *AuthorModel) *domain.Author
}

// UserConverter преобразует сущности User между domain и моделью PostgreSQL.
type UserConverter interface {
	ToEntity(model *UserModel) *domain.User
}

// FavoriteConverter преобразует сущности Favorite между domain и моделью PostgreSQL.
type FavoriteConverter interface {
	ToEntity(model *FavoriteModel) *domain.Favorite
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}
