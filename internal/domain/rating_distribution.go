package domain

// RatingDistribution описывает распределение оценок книги по звёздам
type RatingDistribution struct {
	ID      int64
	BookID  int64
	Rating1 int64
	Rating2 int64
	Rating3 int64
	Rating4 int64
	Rating5 int64
	Total   int64
}

func NewRatingDistribution(bookID int64, r1, r2, r3, r4, r5 int64) *RatingDistribution {
	return &RatingDistribution{
		BookID:  bookID,
		Rating1: r1,
		Rating2: r2,
		Rating3: r3,
		Rating4: r4,
		Rating5: r5,
		Total:   r1 + r2 + r3 + r4 + r5,
	}
}
