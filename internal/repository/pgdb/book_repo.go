package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/libraria-tech/go-backend/internal/domain"
	"github.com/libraria-tech/go-backend/internal/repository/pgdb/converter"
	"github.com/libraria-tech/go-backend/internal/usecase"
	"github.com/libraria-tech/go-backend/pkg/e"
	"github.com/libraria-tech/go-backend/pkg/tr"
)

// BookRepo реализует репозиторий книг поверх PostgreSQL.
type BookRepo struct {
	pool *pgxpool.Pool
	conv converter.BookConverter
}

func NewBookRepo(pool *pgxpool.Pool, conv converter.BookConverter) *BookRepo {
	return &BookRepo{
		pool: pool,
		conv: conv,
	}
}

// Upsert идемпотентно создаёт или обновляет книгу по уникальному названию.
// Запись обновляется только при изменении содержательных полей.
func (b *BookRepo) Upsert(ctx context.Context, book *domain.Book) (*usecase.UpsertBookRes, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		WITH upsert AS (
		INSERT INTO books (
			title, description, isbn, isbn13, language, publisher,
			num_pages, average_rating, ratings_count, text_reviews_count, publication_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (title)
		DO UPDATE SET
			description = EXCLUDED.description,
			isbn = EXCLUDED.isbn,
			isbn13 = EXCLUDED.isbn13,
			language = EXCLUDED.language,
			publisher = EXCLUDED.publisher,
			num_pages = EXCLUDED.num_pages,
			average_rating = EXCLUDED.average_rating,
			ratings_count = EXCLUDED.ratings_count,
			text_reviews_count = EXCLUDED.text_reviews_count,
			publication_date = EXCLUDED.publication_date,
			updated_at = NOW()
		WHERE
			books.description IS DISTINCT FROM EXCLUDED.description OR
			books.isbn IS DISTINCT FROM EXCLUDED.isbn OR
			books.isbn13 IS DISTINCT FROM EXCLUDED.isbn13 OR
			books.language IS DISTINCT FROM EXCLUDED.language OR
			books.publisher IS DISTINCT FROM EXCLUDED.publisher OR
			books.num_pages IS DISTINCT FROM EXCLUDED.num_pages OR
			books.average_rating IS DISTINCT FROM EXCLUDED.average_rating OR
			books.ratings_count IS DISTINCT FROM EXCLUDED.ratings_count OR
			books.text_reviews_count IS DISTINCT FROM EXCLUDED.text_reviews_count OR
			books.publication_date IS DISTINCT FROM EXCLUDED.publication_date
		RETURNING
			id, title, description, isbn, isbn13, language, publisher,
			num_pages, image_url, average_rating, ratings_count, text_reviews_count,
			publication_date, created_at, updated_at
		)
		SELECT
			id, title, description, isbn, isbn13, language, publisher,
			num_pages, image_url, average_rating, ratings_count, text_reviews_count,
			publication_date, created_at, updated_at,
			false AS no_changes
		FROM upsert

		UNION ALL

		SELECT
			id, title, description, isbn, isbn13, language, publisher,
			num_pages, image_url, average_rating, ratings_count, text_reviews_count,
			publication_date, created_at, updated_at,
			true AS no_changes
		FROM books
		WHERE title = $1
		  AND NOT EXISTS (SELECT 1 FROM upsert);
	`

	var model converter.BookModel
	var noChanges bool
	err = tx.QueryRow(ctx, query,
		book.Title, book.Description, book.ISBN, book.ISBN13, book.Language,
		book.Publisher, book.NumPages, book.AverageRating, book.RatingsCount,
		book.TextReviewsCount, book.PublicationDate,
	).Scan(
		&model.ID, &model.Title, &model.Description, &model.ISBN, &model.ISBN13,
		&model.Language, &model.Publisher, &model.NumPages, &model.ImageURL,
		&model.AverageRating, &model.RatingsCount, &model.TextReviewsCount,
		&model.PublicationDate, &model.CreatedAt, &model.UpdatedAt, &noChanges,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return usecase.NewUpsertBookRes(b.conv.ToEntity(&model), noChanges), nil
}

// SetAuthors перезаписывает список авторов книги.
func (b *BookRepo) SetAuthors(ctx context.Context, bookID int64, authorIDs []int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM book_authors WHERE book_id = $1`, bookID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO book_authors (book_id, author_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT (book_id, author_id) DO NOTHING;
	`

	if _, err := tx.Exec(ctx, query, bookID, authorIDs); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (b *BookRepo) SetImageURL(ctx context.Context, bookID int64, imageURL string) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `UPDATE books SET image_url = $1, updated_at = NOW() WHERE id = $2`

	if _, err := tx.Exec(ctx, query, imageURL, bookID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// UpsertRatingDistribution перезаписывает разбивку оценок книги по звёздам.
func (b *BookRepo) UpsertRatingDistribution(ctx context.Context, dist *domain.RatingDistribution) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO rating_distributions (
			book_id, rating_1, rating_2, rating_3, rating_4, rating_5, total
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (book_id)
		DO UPDATE SET
			rating_1 = EXCLUDED.rating_1,
			rating_2 = EXCLUDED.rating_2,
			rating_3 = EXCLUDED.rating_3,
			rating_4 = EXCLUDED.rating_4,
			rating_5 = EXCLUDED.rating_5,
			total = EXCLUDED.total,
			updated_at = NOW();
	`

	if _, err := tx.Exec(ctx, query,
		dist.BookID, dist.Rating1, dist.Rating2, dist.Rating3,
		dist.Rating4, dist.Rating5, dist.Total,
	); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (b *BookRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := b.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}

func (b *BookRepo) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	query := `
		SELECT
			id, title, description, isbn, isbn13, language, publisher,
			num_pages, image_url, average_rating, ratings_count, text_reviews_count,
			publication_date, created_at, updated_at
		FROM books
		WHERE id = $1
	`

	var model converter.BookModel
	err := b.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Title, &model.Description, &model.ISBN, &model.ISBN13,
		&model.Language, &model.Publisher, &model.NumPages, &model.ImageURL,
		&model.AverageRating, &model.RatingsCount, &model.TextReviewsCount,
		&model.PublicationDate, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrBookNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return b.conv.ToEntity(&model), nil
}

// GetBooksInfo возвращает сводную информацию о книгах по их идентификаторам,
// включая склеенный список имён авторов.
func (b *BookRepo) GetBooksInfo(ctx context.Context, ids []int64) ([]usecase.BookInfo, error) {
	query := `
		SELECT bk.id, bk.title, COALESCE(string_agg(au.name, ', ' ORDER BY au.name), ''), bk.average_rating
		FROM books bk
		LEFT JOIN book_authors ba ON ba.book_id = bk.id
		LEFT JOIN authors au ON au.id = ba.author_id
		WHERE bk.id = ANY($1)
		GROUP BY bk.id, bk.title, bk.average_rating
	`

	rows, err := b.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.BookInfo, 0)
	for rows.Next() {
		var book usecase.BookInfo
		if err := rows.Scan(&book.ID, &book.Title, &book.Authors, &book.AverageRating); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, book)
	}

	return result, nil
}

// ListBooks возвращает сводную информацию обо всех книгах каталога.
func (b *BookRepo) ListBooks(ctx context.Context) ([]usecase.BookInfo, error) {
	query := `
		SELECT bk.id, bk.title, COALESCE(string_agg(au.name, ', ' ORDER BY au.name), ''), bk.average_rating
		FROM books bk
		LEFT JOIN book_authors ba ON ba.book_id = bk.id
		LEFT JOIN authors au ON au.id = ba.author_id
		GROUP BY bk.id, bk.title, bk.average_rating
		ORDER BY bk.id
	`

	rows, err := b.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	books := make([]usecase.BookInfo, 0)
	for rows.Next() {
		var book usecase.BookInfo
		if err := rows.Scan(&book.ID, &book.Title, &book.Authors, &book.AverageRating); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		books = append(books, book)
	}

	return books, nil
}

// GetAllBookIDs возвращает идентификаторы всех книг каталога,
// кроме перечисленных в excluding.
func (b *BookRepo) GetAllBookIDs(ctx context.Context, excluding []int64) ([]int64, error) {
	query := `
		SELECT id FROM books
		WHERE NOT (id = ANY($1))
		ORDER BY id
	`

	rows, err := b.pool.Query(ctx, query, excluding)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		ids = append(ids, id)
	}

	return ids, nil
}
