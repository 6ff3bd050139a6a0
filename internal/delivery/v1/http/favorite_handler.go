package http

import (
	"net/http"

	"github.com/libraria-tech/go-backend/internal/usecase"
	"github.com/libraria-tech/go-backend/pkg/e"
	"github.com/libraria-tech/go-backend/pkg/logger"
)

type FavoriteHandler struct {
	favoriteUsecase usecase.FavoriteUC
	logger          logger.Logger
}

func NewFavoriteHandler(favoriteUsecase usecase.FavoriteUC, logger logger.Logger) *FavoriteHandler {
	return &FavoriteHandler{favoriteUsecase: favoriteUsecase, logger: logger}
}

type addFavoriteResponse struct {
	Status          string                   `json:"status"`
	Recommendations []usecase.Recommendation `json:"recommendations"`
}

// addFavorite
//
//	@Summary		Добавление книги в избранное
//	@Description	Добавляет книгу в избранное и возвращает рекомендации похожих книг
//	@Tags			favorites
//	@Produce		json
//	@Param			id	path		integer	true	"ID книги"
//	@Success		201	{object}	addFavoriteResponse	"Книга добавлена"
//	@Success		200	{object}	addFavoriteResponse	"Книга уже в избранном"
//	@Failure		400	{object}	ErrorResponse		"Достигнут лимит избранного"
//	@Failure		404	{object}	ErrorResponse		"Книга не найдена"
//	@Security		BearerAuth
//	@Router			/favorites/{id} [post]
func (f *FavoriteHandler) addFavorite(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	bookID, err := parseIDParam(r, "id")
	if err != nil {
		f.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	res, err := f.favoriteUsecase.AddFavorite(r.Context(), userID, bookID)
	if err != nil {
		f.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	switch res.Status {
	case usecase.StatusCreated:
		WriteSuccess(w, http.StatusCreated, addFavoriteResponse{
			Status:          string(res.Status),
			Recommendations: res.Recommendations,
		})
	case usecase.StatusAlreadyExists:
		WriteSuccess(w, http.StatusOK, addFavoriteResponse{
			Status:          string(res.Status),
			Recommendations: res.Recommendations,
		})
	case usecase.StatusRejectedCeiling:
		f.logger.Warnf("%d %s: user_id=%d", http.StatusBadRequest, e.ErrFavoriteCeiling.Error(), userID)
		WriteError(w, e.ErrFavoriteCeiling)
	default:
		WriteError(w, e.ErrInternalServerError)
	}
}

// removeFavorite
//
//	@Summary	Удаление книги из избранного
//	@Tags		favorites
//	@Produce	json
//	@Param		id	path	integer	true	"ID книги"
//	@Success	204	"Удалено"
//	@Failure	404	{object}	ErrorResponse	"Книга не в избранном"
//	@Security	BearerAuth
//	@Router		/favorites/{id} [delete]
func (f *FavoriteHandler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	bookID, err := parseIDParam(r, "id")
	if err != nil {
		f.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	if err := f.favoriteUsecase.RemoveFavorite(r.Context(), userID, bookID); err != nil {
		f.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listFavorites
//
//	@Summary	Список избранного пользователя
//	@Tags		favorites
//	@Produce	json
//	@Success	200	{array}	usecase.FavoriteInfo
//	@Security	BearerAuth
//	@Router		/favorites [get]
func (f *FavoriteHandler) listFavorites(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	favorites, err := f.favoriteUsecase.ListFavorites(r.Context(), userID)
	if err != nil {
		f.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, favorites)
}
