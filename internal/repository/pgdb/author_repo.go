package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/libraria-tech/go-backend/internal/domain"
	"github.com/libraria-tech/go-backend/internal/repository/pgdb/converter"
	"github.com/libraria-tech/go-backend/pkg/e"
	"github.com/libraria-tech/go-backend/pkg/tr"
)

// AuthorRepo реализует репозиторий авторов поверх PostgreSQL.
type AuthorRepo struct {
	pool *pgxpool.Pool
	conv converter.AuthorConverter
}

func NewAuthorRepo(pool *pgxpool.Pool, conv converter.AuthorConverter) *AuthorRepo {
	return &AuthorRepo{pool: pool, conv: conv}
}

// Upsert идемпотентно создаёт или обновляет автора по уникальному имени.
func (a *AuthorRepo) Upsert(ctx context.Context, author *domain.Author) (*domain.Author, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO authors (
			name, gender, about, ratings_count, average_rating,
			text_reviews_count, fans_count, works_count
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name)
		DO UPDATE SET
			gender = EXCLUDED.gender,
			about = EXCLUDED.about,
			ratings_count = EXCLUDED.ratings_count,
			average_rating = EXCLUDED.average_rating,
			text_reviews_count = EXCLUDED.text_reviews_count,
			fans_count = EXCLUDED.fans_count,
			works_count = EXCLUDED.works_count,
			updated_at = NOW()
		RETURNING
			id, name, gender, about, image_url, ratings_count, average_rating,
			text_reviews_count, fans_count, works_count, created_at, updated_at;
	`

	var model converter.AuthorModel
	err = tx.QueryRow(ctx, query,
		author.Name, author.Gender, author.About, author.RatingsCount,
		author.AverageRating, author.TextReviewsCount, author.FansCount, author.WorksCount,
	).Scan(
		&model.ID, &model.Name, &model.Gender, &model.About, &model.ImageURL,
		&model.RatingsCount, &model.AverageRating, &model.TextReviewsCount,
		&model.FansCount, &model.WorksCount, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a.conv.ToEntity(&model), nil
}

func (a *AuthorRepo) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	query := `
		SELECT
			id, name, gender, about, image_url, ratings_count, average_rating,
			text_reviews_count, fans_count, works_count, created_at, updated_at
		FROM authors
		WHERE id = $1
	`

	var model converter.AuthorModel
	err := a.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.Gender, &model.About, &model.ImageURL,
		&model.RatingsCount, &model.AverageRating, &model.TextReviewsCount,
		&model.FansCount, &model.WorksCount, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrAuthorNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a.conv.ToEntity(&model), nil
}

func (a *AuthorRepo) List(ctx context.Context) ([]*domain.Author, error) {
	query := `
		SELECT
			id, name, gender, about, image_url, ratings_count, average_rating,
			text_reviews_count, fans_count, works_count, created_at, updated_at
		FROM authors
		ORDER BY id
	`

	rows, err := a.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	authors := make([]*domain.Author, 0)
	for rows.Next() {
		var model converter.AuthorModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Gender, &model.About, &model.ImageURL,
			&model.RatingsCount, &model.AverageRating, &model.TextReviewsCount,
			&model.FansCount, &model.WorksCount, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		authors = append(authors, a.conv.ToEntity(&model))
	}

	return authors, nil
}

// ExistAll возвращает идентификаторы из ids, которых нет в таблице авторов.
func (a *AuthorRepo) ExistAll(ctx context.Context, ids []int64) ([]int64, error) {
	query := `
		SELECT req.id
		FROM unnest($1::bigint[]) AS req(id)
		LEFT JOIN authors au ON au.id = req.id
		WHERE au.id IS NULL
	`

	rows, err := a.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	missing := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		missing = append(missing, id)
	}

	return missing, nil
}
