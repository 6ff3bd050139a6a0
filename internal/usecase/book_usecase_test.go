package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libraria-tech/go-backend/internal/domain"
	"github.com/libraria-tech/go-backend/pkg/e"
)

type memoryBookRepo struct {
	BookRepository

	upserted  *domain.Book
	noChanges bool
	authors   []int64
	dist      *domain.RatingDistribution
	imageURL  string
	infoFn    func(ctx context.Context, ids []int64) ([]BookInfo, error)
}

func (m *memoryBookRepo) Upsert(ctx context.Context, book *domain.Book) (*UpsertBookRes, error) {
	book.ID = 10
	m.upserted = book
	return NewUpsertBookRes(book, m.noChanges), nil
}

func (m *memoryBookRepo) SetAuthors(ctx context.Context, bookID int64, authorIDs []int64) error {
	m.authors = authorIDs
	return nil
}

func (m *memoryBookRepo) SetImageURL(ctx context.Context, bookID int64, imageURL string) error {
	m.imageURL = imageURL
	return nil
}

func (m *memoryBookRepo) UpsertRatingDistribution(ctx context.Context, dist *domain.RatingDistribution) error {
	m.dist = dist
	return nil
}

func (m *memoryBookRepo) GetBooksInfo(ctx context.Context, ids []int64) ([]BookInfo, error) {
	return m.infoFn(ctx, ids)
}

type fakeAuthorRepo struct {
	AuthorRepository

	missing []int64
}

func (f *fakeAuthorRepo) ExistAll(ctx context.Context, ids []int64) ([]int64, error) {
	return f.missing, nil
}

type fakeEmbedder struct {
	embedFn func(ctx context.Context, title string, description string) (*EmbedTextRes, error)
}

func (f *fakeEmbedder) EmbedText(ctx context.Context, title string, description string) (*EmbedTextRes, error) {
	return f.embedFn(ctx, title, description)
}
func (f *fakeEmbedder) Dimensions() int { return 2 }

type fakeImagesInfra struct {
	uploaded []string
	cleaned  []string
}

func (f *fakeImagesInfra) UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error) {
	keys := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		keys = append(keys, req.Title+"/"+img.Name)
	}
	f.uploaded = keys
	return NewUploadImagesRes(keys), nil
}

func (f *fakeImagesInfra) CleanupImages(keys []string) {
	f.cleaned = append(f.cleaned, keys...)
}

type fakeCacheRepo struct {
	books   map[int64]BookInfo
	deleted []int64
}

func (f *fakeCacheRepo) GetBooks(ctx context.Context, ids []int64) (map[int64]BookInfo, error) {
	hits := make(map[int64]BookInfo)
	for _, id := range ids {
		if info, ok := f.books[id]; ok {
			hits[id] = info
		}
	}
	return hits, nil
}
func (f *fakeCacheRepo) SetBooks(ctx context.Context, books []BookInfo) error { return nil }
func (f *fakeCacheRepo) DeleteBooks(ctx context.Context, ids []int64) error {
	f.deleted = append(f.deleted, ids...)
	return nil
}

type storedEmbedding struct {
	bookID int64
	vector []float32
}

type recordingEmbeddingRepo struct {
	stored []storedEmbedding
}

func (r *recordingEmbeddingRepo) Upsert(ctx context.Context, embedding *domain.Embedding) error {
	r.stored = append(r.stored, storedEmbedding{bookID: embedding.BookID, vector: embedding.Vector})
	return nil
}
func (r *recordingEmbeddingRepo) GetMany(ctx context.Context, bookIDs []int64) (map[int64][]float32, error) {
	return map[int64][]float32{}, nil
}

type bookFixture struct {
	uc      *BookUseCase
	tx      *stubTx
	books   *memoryBookRepo
	authors *fakeAuthorRepo
	embed   *fakeEmbedder
	images  *fakeImagesInfra
	vectors *recordingEmbeddingRepo
	outbox  *fakeOutboxRepo
	cache   *fakeCacheRepo
}

func newBookFixture() *bookFixture {
	fx := &bookFixture{
		tx: &stubTx{},
		books: &memoryBookRepo{
			infoFn: func(ctx context.Context, ids []int64) ([]BookInfo, error) {
				return nil, nil
			},
		},
		authors: &fakeAuthorRepo{},
		embed: &fakeEmbedder{
			embedFn: func(ctx context.Context, title string, description string) (*EmbedTextRes, error) {
				return NewEmbedTextRes([]float32{0.1, 0.2}, "test-model"), nil
			},
		},
		images:  &fakeImagesInfra{},
		vectors: &recordingEmbeddingRepo{},
		outbox:  &fakeOutboxRepo{},
		cache:   &fakeCacheRepo{books: map[int64]BookInfo{}},
	}

	fx.uc = NewBookUC(
		fx.books,
		fx.authors,
		&stubPool{tx: fx.tx},
		fx.embed,
		fx.images,
		fx.vectors,
		fx.outbox,
		fx.cache,
		nopLogger{},
	)

	return fx
}

func validUpsertBookReq() *UpsertBookReq {
	return &UpsertBookReq{
		Title:         "Мастер и Маргарита",
		Description:   "Роман о визите дьявола в Москву",
		AverageRating: 467,
		AuthorIDs:     []int64{1},
	}
}

func TestUpsertBookValidation(t *testing.T) {
	fx := newBookFixture()

	t.Run("title required", func(t *testing.T) {
		req := validUpsertBookReq()
		req.Title = "  "

		_, err := fx.uc.UpsertBook(context.Background(), req)
		assert.ErrorIs(t, err, e.ErrTitleRequired)
	})

	t.Run("author required", func(t *testing.T) {
		req := validUpsertBookReq()
		req.AuthorIDs = nil

		_, err := fx.uc.UpsertBook(context.Background(), req)
		assert.ErrorIs(t, err, e.ErrAuthorRequired)
	})

	t.Run("rating out of range", func(t *testing.T) {
		req := validUpsertBookReq()
		req.AverageRating = 501

		_, err := fx.uc.UpsertBook(context.Background(), req)
		assert.ErrorIs(t, err, e.ErrInvalidRating)
	})

	t.Run("unknown author", func(t *testing.T) {
		fx.authors.missing = []int64{99}
		defer func() { fx.authors.missing = nil }()

		_, err := fx.uc.UpsertBook(context.Background(), validUpsertBookReq())
		assert.ErrorIs(t, err, e.ErrAuthorNotFound)
	})
}

func TestUpsertBookHappyPath(t *testing.T) {
	fx := newBookFixture()
	req := validUpsertBookReq()
	req.RatingCounts = &[5]int64{1, 2, 3, 4, 5}
	req.Covers = []CoverImage{*usecaseCover("front.jpg")}

	res, err := fx.uc.UpsertBook(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, res.NoChanges)
	assert.Equal(t, int64(10), res.Book.ID)
	assert.Equal(t, []int64{1}, fx.books.authors)
	require.NotNil(t, fx.books.dist)
	assert.Equal(t, int64(5), fx.books.dist.Rating5)
	assert.Equal(t, "Мастер и Маргарита/front.jpg", fx.books.imageURL)
	assert.Equal(t, 1, fx.tx.commits)
	assert.Empty(t, fx.images.cleaned)

	require.Len(t, fx.outbox.created, 1)
	assert.Equal(t, BookUpserted, fx.outbox.created[0].EventType)

	require.Len(t, fx.vectors.stored, 1)
	assert.Equal(t, int64(10), fx.vectors.stored[0].bookID)
	assert.Equal(t, []float32{0.1, 0.2}, fx.vectors.stored[0].vector)

	assert.Equal(t, []int64{10}, fx.cache.deleted)
}

func TestUpsertBookEmbedderFailureDoesNotFail(t *testing.T) {
	fx := newBookFixture()
	fx.embed.embedFn = func(ctx context.Context, title string, description string) (*EmbedTextRes, error) {
		return nil, assert.AnError
	}

	res, err := fx.uc.UpsertBook(context.Background(), validUpsertBookReq())

	require.NoError(t, err, "embedding failure must not roll back the book")
	assert.Equal(t, int64(10), res.Book.ID)
	assert.Equal(t, 1, fx.tx.commits)
	assert.Empty(t, fx.vectors.stored, "vector stays absent until the next upsert")
}

func TestGetBooksInfo(t *testing.T) {
	t.Run("empty ids", func(t *testing.T) {
		fx := newBookFixture()

		_, err := fx.uc.GetBooksInfo(context.Background(), NewGetBooksReq(nil))
		assert.ErrorIs(t, err, e.ErrMissingFields)
	})

	t.Run("cache first with db fallback", func(t *testing.T) {
		fx := newBookFixture()
		fx.cache.books = map[int64]BookInfo{
			1: {ID: 1, Title: "Из кэша"},
		}
		fx.books.infoFn = func(ctx context.Context, ids []int64) ([]BookInfo, error) {
			assert.Equal(t, []int64{2, 3}, ids, "cache hits must not reach the database")
			return []BookInfo{{ID: 2, Title: "Из БД"}}, nil
		}

		res, err := fx.uc.GetBooksInfo(context.Background(), NewGetBooksReq([]int64{1, 2, 3}))

		require.NoError(t, err)
		require.Len(t, res.Books, 2)
		assert.Equal(t, "Из кэша", res.Books[0].Title)
		assert.Equal(t, "Из БД", res.Books[1].Title)
		assert.Equal(t, []int64{3}, res.NotFoundBooks)
	})
}

func usecaseCover(name string) *CoverImage {
	return NewCoverImage([]byte{0xFF, 0xD8}, "image/jpeg", 2, name)
}
