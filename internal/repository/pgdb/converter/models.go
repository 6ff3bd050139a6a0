package converter

import "time"

// BookModel представляет запись таблицы books в PostgreSQL.
type BookModel struct {
	ID               int64      `db:"id"`
	Title            string     `db:"title"`
	Description      string     `db:"description"`
	ISBN             string     `db:"isbn"`
	ISBN13           string     `db:"isbn13"`
	Language         string     `db:"language"`
	Publisher        string     `db:"publisher"`
	NumPages         int32      `db:"num_pages"`
	ImageURL         string     `db:"image_url"`
	AverageRating    int64      `db:"average_rating"`
	RatingsCount     int64      `db:"ratings_count"`
	TextReviewsCount int64      `db:"text_reviews_count"`
	PublicationDate  *time.Time `db:"publication_date"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        *time.Time `db:"updated_at"`
}

// AuthorModel представляет запись таблицы authors в PostgreSQL.
type AuthorModel struct {
	ID               int64      `db:"id"`
	Name             string     `db:"name"`
	Gender           string     `db:"gender"`
	About            string     `db:"about"`
	ImageURL         string     `db:"image_url"`
	RatingsCount     int64      `db:"ratings_count"`
	AverageRating    int64      `db:"average_rating"`
	TextReviewsCount int64      `db:"text_reviews_count"`
	FansCount        int64      `db:"fans_count"`
	WorksCount       int64      `db:"works_count"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        *time.Time `db:"updated_at"`
}

// UserModel представляет запись таблицы users в PostgreSQL.
type UserModel struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// FavoriteModel представляет запись таблицы user_favorites в PostgreSQL.
type FavoriteModel struct {
	ID      int64     `db:"id"`
	UserID  int64     `db:"user_id"`
	BookID  int64     `db:"book_id"`
	AddedOn time.Time `db:"added_on"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID                  int64      `db:"id"`
	EventID             string     `db:"event_id"`
	EventType           string     `db:"event_type"`
	BookID              int64      `db:"book_id"`
	Payload             []byte     `db:"payload"`
	Status              string     `db:"status"`
	CreatedAt           time.Time  `db:"created_at"`
	ProcessingStartedAt *time.Time `db:"processing_started_at"`
	ProcessedAt         *time.Time `db:"processed_at"`
}
