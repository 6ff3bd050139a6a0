package converter

type BookInfoRedisModel struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Authors       string `json:"authors"`
	AverageRating int64  `json:"average_rating"`
}
