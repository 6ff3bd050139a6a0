package converter

import (
	"github.com/libraria-tech/go-backend/internal/domain"
	"github.com/libraria-tech/go-backend/internal/usecase"
)

type BookConverterImpl struct{}

func NewBookConverterImpl() *BookConverterImpl { return &BookConverterImpl{} }

func (c *BookConverterImpl) ToModel(entity *domain.Book) *BookModel {
	if entity == nil {
		return nil
	}
	return &BookModel{
		ID:               entity.ID,
		Title:            entity.Title,
		Description:      entity.Description,
		ISBN:             entity.ISBN,
		ISBN13:           entity.ISBN13,
		Language:         entity.Language,
		Publisher:        entity.Publisher,
		NumPages:         entity.NumPages,
		ImageURL:         entity.ImageURL,
		AverageRating:    entity.AverageRating,
		RatingsCount:     entity.RatingsCount,
		TextReviewsCount: entity.TextReviewsCount,
		PublicationDate:  entity.PublicationDate,
		CreatedAt:        entity.CreatedAt,
		UpdatedAt:        entity.UpdatedAt,
	}
}

func (c *BookConverterImpl) ToEntity(model *BookModel) *domain.Book {
	if model == nil {
		return nil
	}
	return &domain.Book{
		ID:               model.ID,
		Title:            model.Title,
		Description:      model.Description,
		ISBN:             model.ISBN,
		ISBN13:           model.ISBN13,
		Language:         model.Language,
		Publisher:        model.Publisher,
		NumPages:         model.NumPages,
		ImageURL:         model.ImageURL,
		AverageRating:    model.AverageRating,
		RatingsCount:     model.RatingsCount,
		TextReviewsCount: model.TextReviewsCount,
		PublicationDate:  model.PublicationDate,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

type AuthorConverterImpl struct{}

func NewAuthorConverterImpl() *AuthorConverterImpl { return &AuthorConverterImpl{} }

func (c *AuthorConverterImpl) ToModel(entity *domain.Author) *AuthorModel {
	if entity == nil {
		return nil
	}
	return &AuthorModel{
		ID:               entity.ID,
		Name:             entity.Name,
		Gender:           entity.Gender,
		About:            entity.About,
		ImageURL:         entity.ImageURL,
		RatingsCount:     entity.RatingsCount,
		AverageRating:    entity.AverageRating,
		TextReviewsCount: entity.TextReviewsCount,
		FansCount:        entity.FansCount,
		WorksCount:       entity.WorksCount,
		CreatedAt:        entity.CreatedAt,
		UpdatedAt:        entity.UpdatedAt,
	}
}

func (c *AuthorConverterImpl) ToEntity(model *AuthorModel) *domain.Author {
	if model == nil {
		return nil
	}
	return &domain.Author{
		ID:               model.ID,
		Name:             model.Name,
		Gender:           model.Gender,
		About:            model.About,
		ImageURL:         model.ImageURL,
		RatingsCount:     model.RatingsCount,
		AverageRating:    model.AverageRating,
		TextReviewsCount: model.TextReviewsCount,
		FansCount:        model.FansCount,
		WorksCount:       model.WorksCount,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

type UserConverterImpl struct{}

func NewUserConverterImpl() *UserConverterImpl { return &UserConverterImpl{} }

func (c *UserConverterImpl) ToEntity(model *UserModel) *domain.User {
	if model == nil {
		return nil
	}
	return &domain.User{
		ID:           model.ID,
		Username:     model.Username,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
	}
}

type FavoriteConverterImpl struct{}

func NewFavoriteConverterImpl() *FavoriteConverterImpl { return &FavoriteConverterImpl{} }

func (c *FavoriteConverterImpl) ToEntity(model *FavoriteModel) *domain.Favorite {
	if model == nil {
		return nil
	}
	return &domain.Favorite{
		ID:      model.ID,
		UserID:  model.UserID,
		BookID:  model.BookID,
		AddedOn: model.AddedOn,
	}
}

type OutboxEventConverterImpl struct{}

func NewOutboxEventConverterImpl() *OutboxEventConverterImpl { return &OutboxEventConverterImpl{} }

func (c *OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	if entity == nil {
		return nil
	}
	return &OutboxEventModel{
		ID:                  entity.ID,
		EventID:             entity.EventID,
		EventType:           string(entity.EventType),
		BookID:              entity.BookID,
		Payload:             entity.Payload,
		Status:              string(entity.Status),
		CreatedAt:           entity.CreatedAt,
		ProcessingStartedAt: entity.ProcessingStartedAt,
		ProcessedAt:         entity.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	if model == nil {
		return nil
	}
	return &usecase.OutboxEvent{
		ID:                  model.ID,
		EventID:             model.EventID,
		EventType:           usecase.OutboxEventType(model.EventType),
		BookID:              model.BookID,
		Payload:             model.Payload,
		Status:              usecase.OutboxStatus(model.Status),
		CreatedAt:           model.CreatedAt,
		ProcessingStartedAt: model.ProcessingStartedAt,
		ProcessedAt:         model.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	if models == nil {
		return nil
	}
	entities := make([]*usecase.OutboxEvent, len(models))
	for i, model := range models {
		entities[i] = c.ToEntity(model)
	}
	return entities
}
