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

// FavoriteRepo реализует репозиторий избранного поверх PostgreSQL.
type FavoriteRepo struct {
	pool *pgxpool.Pool
	conv converter.FavoriteConverter
}

func NewFavoriteRepo(pool *pgxpool.Pool, conv converter.FavoriteConverter) *FavoriteRepo {
	return &FavoriteRepo{pool: pool, conv: conv}
}

// Insert добавляет книгу в избранное пользователя. Пара (user_id, book_id)
// уникальна: повторная вставка возвращает существующую запись и created=false.
func (f *FavoriteRepo) Insert(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, bool, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO user_favorites (user_id, book_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, book_id) DO NOTHING
		RETURNING id, user_id, book_id, added_on;
	`

	var model converter.FavoriteModel
	err = tx.QueryRow(ctx, query, favorite.UserID, favorite.BookID).
		Scan(&model.ID, &model.UserID, &model.BookID, &model.AddedOn)
	if err == nil {
		return f.conv.ToEntity(&model), true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	// Конфликт по уникальной паре: запись уже существует, читаем её.
	existing := `
		SELECT id, user_id, book_id, added_on
		FROM user_favorites
		WHERE user_id = $1 AND book_id = $2
	`

	err = tx.QueryRow(ctx, existing, favorite.UserID, favorite.BookID).
		Scan(&model.ID, &model.UserID, &model.BookID, &model.AddedOn)
	if err != nil {
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	return f.conv.ToEntity(&model), false, nil
}

// CountForUser считает записи избранного пользователя в текущей транзакции,
// поэтому учитывает и только что вставленную строку.
func (f *FavoriteRepo) CountForUser(ctx context.Context, userID int64) (int64, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	var count int64
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM user_favorites WHERE user_id = $1`, userID).
		Scan(&count)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return count, nil
}

func (f *FavoriteRepo) GetUserFavoriteBookIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := `
		SELECT book_id FROM user_favorites
		WHERE user_id = $1
		ORDER BY book_id
	`

	rows, err := f.pool.Query(ctx, query, userID)
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

// ListForUser возвращает избранные книги пользователя вместе с названиями.
func (f *FavoriteRepo) ListForUser(ctx context.Context, userID int64) ([]usecase.FavoriteInfo, error) {
	query := `
		SELECT uf.id, uf.user_id, uf.book_id, bk.title, uf.added_on
		FROM user_favorites uf
		JOIN books bk ON bk.id = uf.book_id
		WHERE uf.user_id = $1
		ORDER BY uf.added_on DESC, uf.id DESC
	`

	rows, err := f.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	favorites := make([]usecase.FavoriteInfo, 0)
	for rows.Next() {
		var info usecase.FavoriteInfo
		if err := rows.Scan(&info.ID, &info.UserID, &info.BookID, &info.BookTitle, &info.AddedOn); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		favorites = append(favorites, info)
	}

	return favorites, nil
}

func (f *FavoriteRepo) Delete(ctx context.Context, userID, bookID int64) (bool, error) {
	result, err := f.pool.Exec(ctx,
		`DELETE FROM user_favorites WHERE user_id = $1 AND book_id = $2`,
		userID, bookID,
	)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return result.RowsAffected() > 0, nil
}
