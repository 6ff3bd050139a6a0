package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/libraria-tech/go-backend/internal/domain"
	"github.com/libraria-tech/go-backend/pkg/e"
	"github.com/libraria-tech/go-backend/pkg/logger"
)

// BookUseCase реализует бизнес-логику управления книгами каталога.
type BookUseCase struct {
	bookRepo      BookRepository
	authorRepo    AuthorRepository
	dbPool        transaction.Transactional
	embedder      EmbedderInfra
	imagesInfra   ImagesInfra
	embeddingRepo EmbeddingRepository
	outboxRepo    OutboxRepository
	cacheRepo     CacheRepository
	logger        logger.Logger
}

func NewBookUC(
	bookRepo BookRepository,
	authorRepo AuthorRepository,
	dbPool transaction.Transactional,
	embedder EmbedderInfra,
	imagesInfra ImagesInfra,
	embeddingRepo EmbeddingRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *BookUseCase {
	return &BookUseCase{
		bookRepo:      bookRepo,
		authorRepo:    authorRepo,
		dbPool:        dbPool,
		embedder:      embedder,
		imagesInfra:   imagesInfra,
		embeddingRepo: embeddingRepo,
		outboxRepo:    outboxRepo,
		cacheRepo:     cacheRepo,
		logger:        logger,
	}
}

// UpsertBook обрабатывает создание или обновление книги: реляционная запись,
// авторы, распределение оценок и outbox-событие пишутся в одной транзакции,
// обложки загружаются в MinIO с компенсацией, эмбеддинг пересчитывается после
// коммита. Сбой эмбеддера не откатывает запись книги: вектор остаётся
// «ещё не вычисленным» и книга живёт без него.
func (b *BookUseCase) UpsertBook(ctx context.Context, req *UpsertBookReq) (*UpsertBookRes, error) {
	const op = "BookUseCase.UpsertBook"

	// Валидация данных
	var err error
	err = b.validateBook(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var (
		imagesRes *UploadImagesRes
		uploaded  bool
	)

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, b.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	// Если произошла ошибка, происходит Rollback транзакции и очистка загруженных обложек
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}

			if uploaded && imagesRes != nil {
				b.logger.Warnf(
					"Cleaning up orphaned covers after transaction failure. book_title: %s, error: %v",
					req.Title,
					e.Wrap(op, err),
				)

				b.imagesInfra.CleanupImages(imagesRes.ImagesKeys)
			}
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	// идемпотентное создание книги
	res, err := b.upsertBook(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	book := res.Book

	// привязка авторов
	err = b.bookRepo.SetAuthors(ctx, book.ID, req.AuthorIDs)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// распределение оценок, если передано
	err = b.upsertRatingDistribution(ctx, book.ID, req.RatingCounts)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// outbox-событие для публикации в Kafka
	err = b.createOutboxEvent(ctx, book)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Сохранение обложек в MinIO
	if len(req.Covers) > 0 {
		imagesRes, err = b.uploadCovers(ctx, req.Title, req.Covers)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		uploaded = true

		err = b.bookRepo.SetImageURL(ctx, book.ID, imagesRes.ImagesKeys[0])
		if err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	// Коммит изменений в бд
	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Пересчёт эмбеддинга по актуальному тексту. Сбой деградирует до
	// отсутствующего вектора и не влияет на результат операции.
	b.refreshEmbedding(ctx, book)

	// Удаление из кэша старых данных книги
	if err := b.cacheRepo.DeleteBooks(ctx, []int64{book.ID}); err != nil {
		b.logger.Warnf("Failed to delete books from cache: %v", e.Wrap(op, err))
	}

	return res, nil
}

// GetBook возвращает полные данные книги по идентификатору.
func (b *BookUseCase) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	const op = "BookUseCase.GetBook"

	book, err := b.bookRepo.GetBook(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return book, nil
}

// ListBooks возвращает краткую информацию обо всех книгах каталога.
func (b *BookUseCase) ListBooks(ctx context.Context) ([]BookInfo, error) {
	const op = "BookUseCase.ListBooks"

	books, err := b.bookRepo.ListBooks(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return books, nil
}

// GetBooksInfo возвращает информацию о книгах по их идентификаторам,
// сначала читая кэш и добирая промахи из БД.
func (b *BookUseCase) GetBooksInfo(ctx context.Context, req *GetBooksReq) (*GetBooksRes, error) {
	const op = "BookUseCase.GetBooksInfo"

	// Валидация
	if len(req.IDs) == 0 {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	// Поиск книг в кэше
	cacheBooksMap, err := b.cacheRepo.GetBooks(ctx, req.IDs)
	var nonCacheable []int64
	if err != nil {
		nonCacheable = append(nonCacheable, req.IDs...)
	} else {
		for _, bookID := range req.IDs {
			if _, ok := cacheBooksMap[bookID]; !ok {
				nonCacheable = append(nonCacheable, bookID)
			}
		}
	}

	// Получение книг из БД
	var booksInfoFromDB []BookInfo
	if len(nonCacheable) > 0 {
		booksInfoFromDB, err = b.bookRepo.GetBooksInfo(ctx, nonCacheable)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		// Фоновое добавление книг в кэш
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := b.cacheRepo.SetBooks(bgCtx, booksInfoFromDB); err != nil {
				b.logger.Warnf("Failed to cache books in background: %v", e.Wrap(op, err))
			}
		}()
	}

	dbBooksMap := make(map[int64]BookInfo, len(booksInfoFromDB))
	for _, bookInfo := range booksInfoFromDB {
		dbBooksMap[bookInfo.ID] = bookInfo
	}

	// Формирование результата
	result := make([]BookInfo, 0, len(req.IDs))
	notFoundBooks := make([]int64, 0)
	for _, id := range req.IDs {
		if info, ok := cacheBooksMap[id]; ok {
			result = append(result, info)
		} else if info, ok := dbBooksMap[id]; ok {
			result = append(result, info)
		} else {
			notFoundBooks = append(notFoundBooks, id)
		}
	}

	return NewGetBooksRes(result, notFoundBooks), nil
}

// upsertBook идемпотентно создаёт или обновляет книгу.
func (b *BookUseCase) upsertBook(ctx context.Context, req *UpsertBookReq) (*UpsertBookRes, error) {
	book := domain.NewBook(req.Title, req.Description, req.Language)
	book.ISBN = req.ISBN
	book.Publisher = req.Publisher
	book.NumPages = req.NumPages
	book.AverageRating = req.AverageRating
	book.RatingsCount = req.RatingsCount

	return b.bookRepo.Upsert(ctx, book)
}

// upsertRatingDistribution сохраняет распределение оценок книги.
func (b *BookUseCase) upsertRatingDistribution(ctx context.Context, bookID int64, counts *[5]int64) error {
	if counts == nil {
		return nil
	}

	dist := domain.NewRatingDistribution(bookID, counts[0], counts[1], counts[2], counts[3], counts[4])
	return b.bookRepo.UpsertRatingDistribution(ctx, dist)
}

// createOutboxEvent регистрирует событие book_upserted в транзакционном outbox.
func (b *BookUseCase) createOutboxEvent(ctx context.Context, book *domain.Book) error {
	payload, err := json.Marshal(map[string]any{
		"book_id": book.ID,
		"title":   book.Title,
	})
	if err != nil {
		return err
	}

	_, err = b.outboxRepo.Create(ctx, &OutboxEvent{
		EventID:   uuid.NewString(),
		EventType: BookUpserted,
		BookID:    book.ID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	})

	return err
}

// uploadCovers сохраняет обложки книги в MinIO.
func (b *BookUseCase) uploadCovers(ctx context.Context, title string, covers []CoverImage) (*UploadImagesRes, error) {
	return b.imagesInfra.UploadImages(ctx, NewUploadImagesReq(title, covers))
}

// refreshEmbedding пересчитывает вектор книги и сохраняет его в векторное хранилище.
// Любой сбой здесь только логируется: отсутствие вектора — валидное состояние.
func (b *BookUseCase) refreshEmbedding(ctx context.Context, book *domain.Book) {
	const op = "BookUseCase.refreshEmbedding"

	res, err := b.embedder.EmbedText(ctx, book.Title, book.Description)
	if err != nil {
		b.logger.Warnf("Embedding skipped for book %d: %v", book.ID, e.Wrap(op, err))
		return
	}

	payload := domain.NewPayload(book.ID, res.ModelVersion)
	if err := b.embeddingRepo.Upsert(ctx, domain.NewEmbedding(book.ID, res.Vector, payload)); err != nil {
		b.logger.Warnf("Embedding upsert failed for book %d: %v", book.ID, e.Wrap(op, err))
	}
}

// validateBook проверяет корректность входных данных запроса на сохранение книги.
func (b *BookUseCase) validateBook(ctx context.Context, req *UpsertBookReq) error {
	if strings.TrimSpace(req.Title) == "" {
		return e.ErrTitleRequired
	}

	if len(req.AuthorIDs) == 0 {
		return e.ErrAuthorRequired
	}

	if req.AverageRating < 0 || req.AverageRating > 500 {
		return e.ErrInvalidRating
	}

	missing, err := b.authorRepo.ExistAll(ctx, req.AuthorIDs)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return e.ErrAuthorNotFound
	}

	return nil
}
