package domain

import "time"

// MaxFavoritesPerUser — потолок избранных книг одного пользователя.
const MaxFavoritesPerUser = 20

// Favorite описывает связь «пользователь — избранная книга»,
// уникальную по паре (user_id, book_id).
type Favorite struct {
	ID      int64
	UserID  int64
	BookID  int64
	AddedOn time.Time
}

func NewFavorite(userID int64, bookID int64) *Favorite {
	return &Favorite{
		UserID: userID,
		BookID: bookID,
	}
}
