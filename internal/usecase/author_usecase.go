package usecase

import (
	"context"
	"strings"

	"github.com/libraria-tech/go-backend/internal/domain"
	"github.com/libraria-tech/go-backend/pkg/e"
	"github.com/libraria-tech/go-backend/pkg/logger"
)

// AuthorUseCase реализует бизнес-логику управления авторами.
type AuthorUseCase struct {
	authorRepo AuthorRepository
	logger     logger.Logger
}

func NewAuthorUC(authorRepo AuthorRepository, logger logger.Logger) *AuthorUseCase {
	return &AuthorUseCase{
		authorRepo: authorRepo,
		logger:     logger,
	}
}

// UpsertAuthor идемпотентно создаёт или обновляет автора по уникальному имени.
func (a *AuthorUseCase) UpsertAuthor(ctx context.Context, req *UpsertAuthorReq) (*domain.Author, error) {
	const op = "AuthorUseCase.UpsertAuthor"

	if strings.TrimSpace(req.Name) == "" {
		return nil, e.Wrap(op, e.ErrNameRequired)
	}

	if req.AverageRating < 0 || req.AverageRating > 500 {
		return nil, e.Wrap(op, e.ErrInvalidRating)
	}

	author := domain.NewAuthor(req.Name, req.About)
	author.Gender = req.Gender
	author.ImageURL = req.ImageURL
	author.AverageRating = req.AverageRating
	author.RatingsCount = req.RatingsCount
	author.FansCount = req.FansCount
	author.WorksCount = req.WorksCount

	result, err := a.authorRepo.Upsert(ctx, author)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return result, nil
}

// GetAuthor возвращает автора по идентификатору.
func (a *AuthorUseCase) GetAuthor(ctx context.Context, id int64) (*domain.Author, error) {
	const op = "AuthorUseCase.GetAuthor"

	author, err := a.authorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return author, nil
}

// ListAuthors возвращает всех авторов каталога.
func (a *AuthorUseCase) ListAuthors(ctx context.Context) ([]*domain.Author, error) {
	const op = "AuthorUseCase.ListAuthors"

	authors, err := a.authorRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return authors, nil
}
