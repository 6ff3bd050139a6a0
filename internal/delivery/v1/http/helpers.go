package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	"github.com/libraria-tech/go-backend/internal/usecase"
	"github.com/libraria-tech/go-backend/pkg/e"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrExpectedMultipart):
		return http.StatusBadRequest, e.ErrExpectedMultipart.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrTitleRequired):
		return http.StatusBadRequest, e.ErrTitleRequired.Error()
	case errors.Is(err, e.ErrAuthorRequired):
		return http.StatusBadRequest, e.ErrAuthorRequired.Error()
	case errors.Is(err, e.ErrNameRequired):
		return http.StatusBadRequest, e.ErrNameRequired.Error()
	case errors.Is(err, e.ErrInvalidRating):
		return http.StatusBadRequest, e.ErrInvalidRating.Error()
	case errors.Is(err, e.ErrRatingPrecision):
		return http.StatusBadRequest, e.ErrRatingPrecision.Error()
	case errors.Is(err, e.ErrTooManyImages):
		return http.StatusBadRequest, e.ErrTooManyImages.Error()
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusBadRequest, e.ErrFileTooLarge.Error()
	case errors.Is(err, e.ErrFavoriteCeiling):
		return http.StatusBadRequest, e.ErrFavoriteCeiling.Error()
	case errors.Is(err, e.ErrPasswordTooShort):
		return http.StatusBadRequest, e.ErrPasswordTooShort.Error()
	case errors.Is(err, e.ErrInvalidCredentials):
		return http.StatusUnauthorized, e.ErrInvalidCredentials.Error()
	case errors.Is(err, e.ErrUnauthorized):
		return http.StatusUnauthorized, e.ErrUnauthorized.Error()
	case errors.Is(err, e.ErrBookNotFound):
		return http.StatusNotFound, e.ErrBookNotFound.Error()
	case errors.Is(err, e.ErrAuthorNotFound):
		return http.StatusNotFound, e.ErrAuthorNotFound.Error()
	case errors.Is(err, e.ErrFavoriteNotFound):
		return http.StatusNotFound, e.ErrFavoriteNotFound.Error()
	case errors.Is(err, e.ErrUsernameTaken):
		return http.StatusConflict, e.ErrUsernameTaken.Error()
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, e.ErrUnsupportedMediaType.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseRatingToHundredths converts a string like "4.27" or "4" to int64 hundredths.
// Returns error if:
// - invalid format
// - more than 2 decimal places
// - negative value
// - exceeds 5.00
func parseRatingToHundredths(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidRating
	}

	// Reject negative
	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidRating
	}

	// Рейтинг по пятибалльной шкале
	maxRating := decimal.NewFromInt(5)
	if d.GreaterThan(maxRating) {
		return 0, e.ErrInvalidRating
	}

	// Check decimal places
	if d.Exponent() < -2 {
		return 0, e.ErrRatingPrecision
	}

	hundredths := d.Mul(decimal.NewFromInt(100)).Round(0)

	return hundredths.IntPart(), nil
}

// parseIDParam извлекает числовой URL-параметр chi.
func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, e.Wrap(raw, e.ErrStatusBadRequest)
	}

	return id, nil
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

// parseAuthorIDs разбирает список идентификаторов авторов из строки вида "1,2,3".
func parseAuthorIDs(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			return nil, e.Wrap(part, e.ErrStatusBadRequest)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// parseRatingCounts разбирает разбивку оценок "rating_1..rating_5" из формы.
// Возвращает nil, если ни одно из полей не заполнено.
func parseRatingCounts(r *http.Request) (*[5]int64, error) {
	fields := [5]string{"rating_1", "rating_2", "rating_3", "rating_4", "rating_5"}

	var counts [5]int64
	present := false
	for i, field := range fields {
		raw := r.FormValue(field)
		if raw == "" {
			continue
		}

		count, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || count < 0 {
			return nil, e.Wrap(field, e.ErrStatusBadRequest)
		}
		counts[i] = count
		present = true
	}

	if !present {
		return nil, nil
	}

	return &counts, nil
}

func parseCovers(files []*multipart.FileHeader) ([]usecase.CoverImage, error) {
	const (
		maxImageCount = 10
		maxFileSize   = 15 << 20
	)

	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > maxImageCount {
		return nil, e.ErrTooManyImages
	}

	covers := make([]usecase.CoverImage, 0, len(files))
	for _, fh := range files {
		data, mimeType, err := readFile(fh, maxFileSize)
		if err != nil {
			return nil, err
		}
		covers = append(covers, *usecase.NewCoverImage(data, mimeType, int64(len(data)), fh.Filename))
	}
	return covers, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}
