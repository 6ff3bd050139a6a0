package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/libraria-tech/go-backend/internal/usecase"
	"github.com/libraria-tech/go-backend/pkg/e"
	"github.com/libraria-tech/go-backend/pkg/logger"
)

type BookHandler struct {
	bookUsecase usecase.BookUC
	logger      logger.Logger
}

func NewBookHandler(bookUsecase usecase.BookUC, logger logger.Logger) *BookHandler {
	return &BookHandler{bookUsecase: bookUsecase, logger: logger}
}

// upsertBook
//
//	@Summary		Создание или обновление книги
//	@Description	Идемпотентно сохраняет книгу каталога с авторами и обложками
//	@Tags			books
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			title			formData	string					true	"Название книги"
//	@Param			description		formData	string					false	"Описание"
//	@Param			isbn			formData	string					false	"ISBN"
//	@Param			language		formData	string					false	"Язык издания"
//	@Param			publisher		formData	string					false	"Издатель"
//	@Param			num_pages		formData	integer					false	"Число страниц"
//	@Param			average_rating	formData	number					false	"Средний рейтинг (0..5)"
//	@Param			ratings_count	formData	integer					false	"Число оценок"
//	@Param			author_ids		formData	string					true	"Идентификаторы авторов через запятую"
//	@Param			covers			formData	file					false	"Обложки книги"
//	@Success		201				{object}	map[string]interface{}	"Успешное создание"
//	@Failure		400				{object}	ErrorResponse			"Ошибка валидации"
//	@Security		BearerAuth
//	@Router			/books [post]
func (b *BookHandler) upsertBook(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 150 << 20
		maxMemory           = 32 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		b.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	req, err := parseBookForm(r)
	if err != nil {
		b.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	covers, err := parseCovers(r.MultipartForm.File["covers"])
	if err != nil {
		b.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}
	req.Covers = covers

	res, err := b.bookUsecase.UpsertBook(r.Context(), req)
	if err != nil {
		b.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	if res.NoChanges {
		WriteSuccess(w, http.StatusOK, map[string]interface{}{
			"id":      res.Book.ID,
			"changed": false,
		})
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"id":      res.Book.ID,
		"changed": true,
	})
}

// getBook
//
//	@Summary	Карточка книги
//	@Tags		books
//	@Produce	json
//	@Param		id	path		integer	true	"ID книги"
//	@Success	200	{object}	map[string]interface{}
//	@Failure	404	{object}	ErrorResponse	"Книга не найдена"
//	@Router		/books/{id} [get]
func (b *BookHandler) getBook(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		b.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	book, err := b.bookUsecase.GetBook(r.Context(), id)
	if err != nil {
		b.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, book)
}

// listBooks
//
//	@Summary	Список книг каталога
//	@Tags		books
//	@Produce	json
//	@Success	200	{array}	usecase.BookInfo
//	@Router		/books [get]
func (b *BookHandler) listBooks(w http.ResponseWriter, r *http.Request) {
	books, err := b.bookUsecase.ListBooks(r.Context())
	if err != nil {
		b.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, books)
}

func parseBookForm(r *http.Request) (*usecase.UpsertBookReq, error) {
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		return nil, e.Wrap("title", e.ErrMissingFields)
	}

	authorIDs, err := parseAuthorIDs(r.FormValue("author_ids"))
	if err != nil {
		return nil, err
	}

	rating, err := parseRatingToHundredths(r.FormValue("average_rating"))
	if err != nil {
		return nil, err
	}

	var ratingsCount int64
	if raw := r.FormValue("ratings_count"); raw != "" {
		ratingsCount, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || ratingsCount < 0 {
			return nil, e.Wrap("ratings_count", e.ErrStatusBadRequest)
		}
	}

	var numPages int64
	if raw := r.FormValue("num_pages"); raw != "" {
		numPages, err = strconv.ParseInt(raw, 10, 32)
		if err != nil || numPages < 0 {
			return nil, e.Wrap("num_pages", e.ErrStatusBadRequest)
		}
	}

	ratingCounts, err := parseRatingCounts(r)
	if err != nil {
		return nil, err
	}

	return &usecase.UpsertBookReq{
		Title:         title,
		Description:   r.FormValue("description"),
		ISBN:          r.FormValue("isbn"),
		Language:      r.FormValue("language"),
		Publisher:     r.FormValue("publisher"),
		NumPages:      int32(numPages),
		AverageRating: rating,
		RatingsCount:  ratingsCount,
		RatingCounts:  ratingCounts,
		AuthorIDs:     authorIDs,
	}, nil
}
