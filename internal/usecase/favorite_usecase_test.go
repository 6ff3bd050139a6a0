package usecase

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libraria-tech/go-backend/internal/domain"
	"github.com/libraria-tech/go-backend/pkg/e"
)

// nopLogger глушит логи в тестах.
type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

// stubTx — минимальный pgx.Tx для транзакционного шва usecase-слоя.
type stubTx struct {
	commits   int
	rollbacks int
}

func (t *stubTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *stubTx) Commit(ctx context.Context) error {
	t.commits++
	return nil
}
func (t *stubTx) Rollback(ctx context.Context) error {
	t.rollbacks++
	return nil
}
func (t *stubTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *stubTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *stubTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *stubTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *stubTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *stubTx) Conn() *pgx.Conn                                               { return nil }

// stubPool выдаёт один stubTx на все запросы транзакций.
type stubPool struct {
	tx *stubTx
}

func (p *stubPool) Begin(ctx context.Context) (pgx.Tx, error) { return p.tx, nil }
func (p *stubPool) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return p.tx, nil
}

type fakeFavoriteRepo struct {
	insertFn  func(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, bool, error)
	countFn   func(ctx context.Context, userID int64) (int64, error)
	bookIDsFn func(ctx context.Context, userID int64) ([]int64, error)
	listFn    func(ctx context.Context, userID int64) ([]FavoriteInfo, error)
	deleteFn  func(ctx context.Context, userID int64, bookID int64) (bool, error)
}

func (f *fakeFavoriteRepo) Insert(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, bool, error) {
	return f.insertFn(ctx, favorite)
}
func (f *fakeFavoriteRepo) CountForUser(ctx context.Context, userID int64) (int64, error) {
	return f.countFn(ctx, userID)
}
func (f *fakeFavoriteRepo) GetUserFavoriteBookIDs(ctx context.Context, userID int64) ([]int64, error) {
	return f.bookIDsFn(ctx, userID)
}
func (f *fakeFavoriteRepo) ListForUser(ctx context.Context, userID int64) ([]FavoriteInfo, error) {
	return f.listFn(ctx, userID)
}
func (f *fakeFavoriteRepo) Delete(ctx context.Context, userID int64, bookID int64) (bool, error) {
	return f.deleteFn(ctx, userID, bookID)
}

type fakeBookRepo struct {
	BookRepository

	existsFn     func(ctx context.Context, id int64) (bool, error)
	allBookIDsFn func(ctx context.Context, excluding []int64) ([]int64, error)
}

func (f *fakeBookRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return f.existsFn(ctx, id)
}
func (f *fakeBookRepo) GetAllBookIDs(ctx context.Context, excluding []int64) ([]int64, error) {
	return f.allBookIDsFn(ctx, excluding)
}

type fakeEmbeddingRepo struct {
	getManyFn func(ctx context.Context, bookIDs []int64) (map[int64][]float32, error)
}

func (f *fakeEmbeddingRepo) Upsert(ctx context.Context, embedding *domain.Embedding) error {
	return nil
}
func (f *fakeEmbeddingRepo) GetMany(ctx context.Context, bookIDs []int64) (map[int64][]float32, error) {
	return f.getManyFn(ctx, bookIDs)
}

type fakeOutboxRepo struct {
	created []*OutboxEvent
}

func (f *fakeOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	f.created = append(f.created, event)
	return event, nil
}
func (f *fakeOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error { return nil }

type fakeBooksReader struct {
	infoFn func(ctx context.Context, req *GetBooksReq) (*GetBooksRes, error)
}

func (f *fakeBooksReader) GetBooksInfo(ctx context.Context, req *GetBooksReq) (*GetBooksRes, error) {
	return f.infoFn(ctx, req)
}

type favoriteFixture struct {
	uc        *FavoriteUseCase
	tx        *stubTx
	favorites *fakeFavoriteRepo
	books     *fakeBookRepo
	vectors   *fakeEmbeddingRepo
	outbox    *fakeOutboxRepo
	reader    *fakeBooksReader
}

func newFavoriteFixture() *favoriteFixture {
	fx := &favoriteFixture{
		tx: &stubTx{},
		favorites: &fakeFavoriteRepo{
			insertFn: func(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, bool, error) {
				favorite.ID = 1
				return favorite, true, nil
			},
			countFn: func(ctx context.Context, userID int64) (int64, error) { return 1, nil },
			bookIDsFn: func(ctx context.Context, userID int64) ([]int64, error) {
				return []int64{}, nil
			},
		},
		books: &fakeBookRepo{
			existsFn: func(ctx context.Context, id int64) (bool, error) { return true, nil },
			allBookIDsFn: func(ctx context.Context, excluding []int64) ([]int64, error) {
				return []int64{}, nil
			},
		},
		vectors: &fakeEmbeddingRepo{
			getManyFn: func(ctx context.Context, bookIDs []int64) (map[int64][]float32, error) {
				return map[int64][]float32{}, nil
			},
		},
		outbox: &fakeOutboxRepo{},
		reader: &fakeBooksReader{
			infoFn: func(ctx context.Context, req *GetBooksReq) (*GetBooksRes, error) {
				return NewGetBooksRes(nil, nil), nil
			},
		},
	}

	fx.uc = NewFavoriteUC(
		fx.favorites,
		fx.books,
		fx.vectors,
		fx.outbox,
		fx.reader,
		&stubPool{tx: fx.tx},
		nopLogger{},
	)

	return fx
}

func TestAddFavoriteBookNotFound(t *testing.T) {
	fx := newFavoriteFixture()
	fx.books.existsFn = func(ctx context.Context, id int64) (bool, error) { return false, nil }

	_, err := fx.uc.AddFavorite(context.Background(), 1, 404)

	assert.ErrorIs(t, err, e.ErrBookNotFound)
}

func TestAddFavoriteAlreadyExists(t *testing.T) {
	fx := newFavoriteFixture()
	fx.favorites.insertFn = func(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, bool, error) {
		return &domain.Favorite{ID: 5, UserID: favorite.UserID, BookID: favorite.BookID}, false, nil
	}
	fx.favorites.countFn = func(ctx context.Context, userID int64) (int64, error) {
		t.Fatal("ceiling must not be checked on repeated add")
		return 0, nil
	}

	res, err := fx.uc.AddFavorite(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyExists, res.Status)
	assert.Empty(t, res.Recommendations)
	assert.NotNil(t, res.Recommendations)
	assert.Equal(t, 1, fx.tx.commits)
	assert.Empty(t, fx.outbox.created, "repeated add must not emit outbox events")
}

func TestAddFavoriteCeilingRejected(t *testing.T) {
	fx := newFavoriteFixture()
	fx.favorites.countFn = func(ctx context.Context, userID int64) (int64, error) {
		return domain.MaxFavoritesPerUser + 1, nil
	}

	res, err := fx.uc.AddFavorite(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, StatusRejectedCeiling, res.Status)
	assert.Empty(t, res.Recommendations)
	assert.Equal(t, 1, fx.tx.rollbacks)
	assert.Zero(t, fx.tx.commits)
}

func TestAddFavoriteExactlyAtCeiling(t *testing.T) {
	fx := newFavoriteFixture()
	fx.favorites.countFn = func(ctx context.Context, userID int64) (int64, error) {
		return domain.MaxFavoritesPerUser, nil
	}

	res, err := fx.uc.AddFavorite(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, StatusCreated, res.Status)
	assert.Equal(t, 1, fx.tx.commits)
}

func TestAddFavoriteComputesRecommendations(t *testing.T) {
	fx := newFavoriteFixture()

	// Избранное: книги 1 и 2 с векторами, центроид = (0.5, 0.5).
	favoriteIDs := []int64{1, 2}
	fx.favorites.bookIDsFn = func(ctx context.Context, userID int64) ([]int64, error) {
		return favoriteIDs, nil
	}

	candidateVectors := map[int64][]float32{
		3: {0.5, 0.5}, // расстояние 0
		4: {1.5, 0.5}, // расстояние 1
		5: {0.5, 2.5}, // расстояние 2
	}
	var excludedArg []int64
	fx.books.allBookIDsFn = func(ctx context.Context, excluding []int64) ([]int64, error) {
		excludedArg = excluding
		return []int64{3, 4, 5}, nil
	}

	fx.vectors.getManyFn = func(ctx context.Context, bookIDs []int64) (map[int64][]float32, error) {
		if len(bookIDs) == 2 {
			return map[int64][]float32{
				1: {1, 0},
				2: {0, 1},
			}, nil
		}
		return candidateVectors, nil
	}

	fx.reader.infoFn = func(ctx context.Context, req *GetBooksReq) (*GetBooksRes, error) {
		books := make([]BookInfo, 0, len(req.IDs))
		for _, id := range req.IDs {
			books = append(books, BookInfo{ID: id, Title: map[int64]string{
				3: "Третья",
				4: "Четвёртая",
				5: "Пятая",
			}[id]})
		}
		return NewGetBooksRes(books, nil), nil
	}

	res, err := fx.uc.AddFavorite(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Equal(t, StatusCreated, res.Status)
	assert.Equal(t, favoriteIDs, excludedArg, "candidates exclude all favorites")
	require.Len(t, res.Recommendations, 3)
	assert.Equal(t, int64(3), res.Recommendations[0].BookID)
	assert.Equal(t, "Третья", res.Recommendations[0].Title)
	assert.InDelta(t, 0, res.Recommendations[0].Distance, 1e-6)
	assert.Equal(t, int64(4), res.Recommendations[1].BookID)
	assert.Equal(t, int64(5), res.Recommendations[2].BookID)
	require.Len(t, fx.outbox.created, 1)
	assert.Equal(t, FavoriteAdded, fx.outbox.created[0].EventType)
}

func TestAddFavoriteRecommendationsDegradeToEmpty(t *testing.T) {
	fx := newFavoriteFixture()
	fx.favorites.bookIDsFn = func(ctx context.Context, userID int64) ([]int64, error) {
		return []int64{1}, nil
	}
	fx.vectors.getManyFn = func(ctx context.Context, bookIDs []int64) (map[int64][]float32, error) {
		return nil, assert.AnError
	}

	res, err := fx.uc.AddFavorite(context.Background(), 1, 10)

	require.NoError(t, err, "recommendation failure must not fail the add")
	assert.Equal(t, StatusCreated, res.Status)
	assert.Empty(t, res.Recommendations)
	assert.Equal(t, 1, fx.tx.commits, "favorite stays committed")
}

func TestAddFavoriteNoVectorsMeansNoRecommendations(t *testing.T) {
	fx := newFavoriteFixture()
	fx.favorites.bookIDsFn = func(ctx context.Context, userID int64) ([]int64, error) {
		return []int64{1, 2}, nil
	}
	fx.vectors.getManyFn = func(ctx context.Context, bookIDs []int64) (map[int64][]float32, error) {
		return map[int64][]float32{}, nil
	}

	res, err := fx.uc.AddFavorite(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, StatusCreated, res.Status)
	assert.Empty(t, res.Recommendations)
}

func TestAddFavoriteSkipsRecommendationsWithoutTitle(t *testing.T) {
	fx := newFavoriteFixture()
	fx.favorites.bookIDsFn = func(ctx context.Context, userID int64) ([]int64, error) {
		return []int64{1}, nil
	}
	fx.books.allBookIDsFn = func(ctx context.Context, excluding []int64) ([]int64, error) {
		return []int64{2, 3}, nil
	}
	fx.vectors.getManyFn = func(ctx context.Context, bookIDs []int64) (map[int64][]float32, error) {
		if len(bookIDs) == 1 {
			return map[int64][]float32{1: {0, 0}}, nil
		}
		return map[int64][]float32{
			2: {1, 0},
			3: {0, 2},
		}, nil
	}
	fx.reader.infoFn = func(ctx context.Context, req *GetBooksReq) (*GetBooksRes, error) {
		return NewGetBooksRes([]BookInfo{{ID: 3, Title: "Третья"}}, []int64{2}), nil
	}

	res, err := fx.uc.AddFavorite(context.Background(), 1, 10)

	require.NoError(t, err)
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, int64(3), res.Recommendations[0].BookID)
}

func TestRemoveFavorite(t *testing.T) {
	fx := newFavoriteFixture()

	t.Run("deleted", func(t *testing.T) {
		fx.favorites.deleteFn = func(ctx context.Context, userID int64, bookID int64) (bool, error) {
			return true, nil
		}
		assert.NoError(t, fx.uc.RemoveFavorite(context.Background(), 1, 10))
	})

	t.Run("not found", func(t *testing.T) {
		fx.favorites.deleteFn = func(ctx context.Context, userID int64, bookID int64) (bool, error) {
			return false, nil
		}
		err := fx.uc.RemoveFavorite(context.Background(), 1, 10)
		assert.ErrorIs(t, err, e.ErrFavoriteNotFound)
	})
}
