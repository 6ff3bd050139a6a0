package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки с векторами
	ErrEmptyVector          = fmt.Errorf("empty vector")
	ErrVectorDimension      = fmt.Errorf("vector has wrong dimension")
	ErrEmptyCentroidInput   = fmt.Errorf("centroid input is empty")
	ErrEmptyEmbeddingResult = fmt.Errorf("empty embedding result")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")

	// 400 Bad Request
	ErrStatusBadRequest  = fmt.Errorf("bad request")
	ErrExpectedMultipart = fmt.Errorf("expected multipart/form-data")
	ErrMissingFields     = fmt.Errorf("missing required fields")
	ErrTitleRequired     = fmt.Errorf("book title is required")
	ErrAuthorRequired    = fmt.Errorf("at least one author is required")
	ErrNameRequired      = fmt.Errorf("name is required")
	ErrInvalidRating     = fmt.Errorf("invalid rating value")
	ErrRatingPrecision   = fmt.Errorf("rating must have at most 2 decimal places")
	ErrTooManyImages     = fmt.Errorf("too many images")
	ErrFileTooLarge      = fmt.Errorf("file too large")
	ErrFavoriteCeiling   = fmt.Errorf("favorite books limit reached")
	ErrPasswordTooShort  = fmt.Errorf("password is too short")

	// 401 Unauthorized
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUnauthorized       = fmt.Errorf("unauthorized")

	// 404 Not Found
	ErrBookNotFound     = fmt.Errorf("book not found")
	ErrAuthorNotFound   = fmt.Errorf("author not found")
	ErrUserNotFound     = fmt.Errorf("user not found")
	ErrFavoriteNotFound = fmt.Errorf("favorite not found")

	// 409 Conflict
	ErrUsernameTaken = fmt.Errorf("username is already taken")

	// 415 Unsupported Media Type
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
