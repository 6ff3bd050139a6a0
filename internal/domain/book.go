package domain

import "time"

// Book описывает книгу каталога
type Book struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	ISBN             string     `json:"isbn"`
	ISBN13           string     `json:"isbn13"`
	Language         string     `json:"language"`
	Publisher        string     `json:"publisher"`
	NumPages         int32      `json:"num_pages"`
	ImageURL         string     `json:"image_url"`
	AverageRating    int64      `json:"average_rating"` // Рейтинг хранится в сотых долях (0..500)
	RatingsCount     int64      `json:"ratings_count"`
	TextReviewsCount int64      `json:"text_reviews_count"`
	PublicationDate  *time.Time `json:"publication_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

func NewBook(title string, description string, language string) *Book {
	return &Book{
		Title:       title,
		Description: description,
		Language:    language,
	}
}
