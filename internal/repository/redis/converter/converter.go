package converter

import (
	"github.com/libraria-tech/go-backend/internal/usecase"
)

type BookInfoConverter interface {
	ToRedisModel(entity *usecase.BookInfo) *BookInfoRedisModel
	ToUseCase(model *BookInfoRedisModel) *usecase.BookInfo
	ToArrRedisModel(entities []usecase.BookInfo) []BookInfoRedisModel
	ToArrUseCase(models []BookInfoRedisModel) []usecase.BookInfo
}

type BookInfoConverterImpl struct{}

func NewBookInfoConverterImpl() *BookInfoConverterImpl { return &BookInfoConverterImpl{} }

func (c *BookInfoConverterImpl) ToRedisModel(entity *usecase.BookInfo) *BookInfoRedisModel {
	if entity == nil {
		return nil
	}
	return &BookInfoRedisModel{
		ID:            entity.ID,
		Title:         entity.Title,
		Authors:       entity.Authors,
		AverageRating: entity.AverageRating,
	}
}

func (c *BookInfoConverterImpl) ToUseCase(model *BookInfoRedisModel) *usecase.BookInfo {
	if model == nil {
		return nil
	}
	return &usecase.BookInfo{
		ID:            model.ID,
		Title:         model.Title,
		Authors:       model.Authors,
		AverageRating: model.AverageRating,
	}
}

func (c *BookInfoConverterImpl) ToArrRedisModel(entities []usecase.BookInfo) []BookInfoRedisModel {
	if entities == nil {
		return nil
	}
	models := make([]BookInfoRedisModel, len(entities))
	for i := range entities {
		models[i] = *c.ToRedisModel(&entities[i])
	}
	return models
}

func (c *BookInfoConverterImpl) ToArrUseCase(models []BookInfoRedisModel) []usecase.BookInfo {
	if models == nil {
		return nil
	}
	entities := make([]usecase.BookInfo, len(models))
	for i := range models {
		entities[i] = *c.ToUseCase(&models[i])
	}
	return entities
}
