package http

import (
	"encoding/json"
	"net/http"

	"github.com/libraria-tech/go-backend/internal/usecase"
	"github.com/libraria-tech/go-backend/pkg/e"
	"github.com/libraria-tech/go-backend/pkg/logger"
)

type AuthorHandler struct {
	authorUsecase usecase.AuthorUC
	logger        logger.Logger
}

func NewAuthorHandler(authorUsecase usecase.AuthorUC, logger logger.Logger) *AuthorHandler {
	return &AuthorHandler{authorUsecase: authorUsecase, logger: logger}
}

type upsertAuthorRequest struct {
	Name          string `json:"name"`
	Gender        string `json:"gender"`
	About         string `json:"about"`
	ImageURL      string `json:"image_url"`
	AverageRating string `json:"average_rating"`
	RatingsCount  int64  `json:"ratings_count"`
	FansCount     int64  `json:"fans_count"`
	WorksCount    int64  `json:"works_count"`
}

// upsertAuthor
//
//	@Summary	Создание или обновление автора
//	@Tags		authors
//	@Accept		json
//	@Produce	json
//	@Param		author	body		upsertAuthorRequest	true	"Данные автора"
//	@Success	201		{object}	map[string]interface{}
//	@Failure	400		{object}	ErrorResponse	"Ошибка валидации"
//	@Security	BearerAuth
//	@Router		/authors [post]
func (a *AuthorHandler) upsertAuthor(w http.ResponseWriter, r *http.Request) {
	var body upsertAuthorRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	rating, err := parseRatingToHundredths(body.AverageRating)
	if err != nil {
		a.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	author, err := a.authorUsecase.UpsertAuthor(r.Context(), &usecase.UpsertAuthorReq{
		Name:          body.Name,
		Gender:        body.Gender,
		About:         body.About,
		ImageURL:      body.ImageURL,
		AverageRating: rating,
		RatingsCount:  body.RatingsCount,
		FansCount:     body.FansCount,
		WorksCount:    body.WorksCount,
	})
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"id": author.ID,
	})
}

// getAuthor
//
//	@Summary	Карточка автора
//	@Tags		authors
//	@Produce	json
//	@Param		id	path		integer	true	"ID автора"
//	@Success	200	{object}	map[string]interface{}
//	@Failure	404	{object}	ErrorResponse	"Автор не найден"
//	@Router		/authors/{id} [get]
func (a *AuthorHandler) getAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		a.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	author, err := a.authorUsecase.GetAuthor(r.Context(), id)
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, author)
}

// listAuthors
//
//	@Summary	Список авторов
//	@Tags		authors
//	@Produce	json
//	@Success	200	{array}	domain.Author
//	@Router		/authors [get]
func (a *AuthorHandler) listAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := a.authorUsecase.ListAuthors(r.Context())
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, authors)
}
