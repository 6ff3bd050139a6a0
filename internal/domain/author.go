package domain

import "time"

// Author описывает автора книг
type Author struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Gender           string     `json:"gender"`
	About            string     `json:"about"`
	ImageURL         string     `json:"image_url"`
	RatingsCount     int64      `json:"ratings_count"`
	AverageRating    int64      `json:"average_rating"` // Рейтинг хранится в сотых долях (0..500)
	TextReviewsCount int64      `json:"text_reviews_count"`
	FansCount        int64      `json:"fans_count"`
	WorksCount       int64      `json:"works_count"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

func NewAuthor(name string, about string) *Author {
	return &Author{
		Name:  name,
		About: about,
	}
}
