package usecase

import (
	"context"
	"encoding/json"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/libraria-tech/go-backend/internal/domain"
	"github.com/libraria-tech/go-backend/internal/recommend"
	"github.com/libraria-tech/go-backend/pkg/e"
	"github.com/libraria-tech/go-backend/pkg/logger"
)

// FavoriteUseCase реализует управление избранным и оркестрацию рекомендаций.
type FavoriteUseCase struct {
	favoriteRepo  FavoriteRepository
	bookRepo      BookRepository
	embeddingRepo EmbeddingRepository
	outboxRepo    OutboxRepository
	books         BooksReader
	dbPool        transaction.Transactional
	logger        logger.Logger
}

func NewFavoriteUC(
	favoriteRepo FavoriteRepository,
	bookRepo BookRepository,
	embeddingRepo EmbeddingRepository,
	outboxRepo OutboxRepository,
	books BooksReader,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo:  favoriteRepo,
		bookRepo:      bookRepo,
		embeddingRepo: embeddingRepo,
		outboxRepo:    outboxRepo,
		books:         books,
		dbPool:        dbPool,
		logger:        logger,
	}
}

// AddFavorite добавляет книгу в избранное пользователя и на первичном
// добавлении возвращает top-K похожих книг.
//
// Вставка и проверка потолка выполняются в одной транзакции: уникальный
// индекс (user_id, book_id) плюс пост-вставочный подсчёт с откатом не дают
// конкурентным запросам превысить потолок. Рекомендации считаются уже после
// коммита: их сбой деградирует до пустого списка и не откатывает избранное.
func (f *FavoriteUseCase) AddFavorite(ctx context.Context, userID int64, bookID int64) (*AddFavoriteRes, error) {
	const op = "FavoriteUseCase.AddFavorite"

	var err error
	exists, err := f.bookRepo.Exists(ctx, bookID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if !exists {
		return nil, e.Wrap(op, e.ErrBookNotFound)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, f.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	favorite, created, err := f.favoriteRepo.Insert(ctx, domain.NewFavorite(userID, bookID))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Повторное добавление — no-op: рекомендации не пересчитываются.
	if !created {
		if err = tx.Commit(ctx); err != nil {
			return nil, e.Wrap(op, err)
		}

		return &AddFavoriteRes{
			Status:          StatusAlreadyExists,
			Favorite:        favorite,
			Recommendations: []Recommendation{},
		}, nil
	}

	count, err := f.favoriteRepo.CountForUser(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if count > domain.MaxFavoritesPerUser {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			f.logger.Warnf("Rollback after ceiling check failed: %v", e.Wrap(op, rbErr))
		}

		return &AddFavoriteRes{
			Status:          StatusRejectedCeiling,
			Recommendations: []Recommendation{},
		}, nil
	}

	err = f.createOutboxEvent(ctx, userID, bookID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &AddFavoriteRes{
		Status:          StatusCreated,
		Favorite:        favorite,
		Recommendations: f.computeRecommendations(ctx, userID),
	}, nil
}

// RemoveFavorite удаляет книгу из избранного пользователя.
func (f *FavoriteUseCase) RemoveFavorite(ctx context.Context, userID int64, bookID int64) error {
	const op = "FavoriteUseCase.RemoveFavorite"

	deleted, err := f.favoriteRepo.Delete(ctx, userID, bookID)
	if err != nil {
		return e.Wrap(op, err)
	}
	if !deleted {
		return e.Wrap(op, e.ErrFavoriteNotFound)
	}

	return nil
}

// ListFavorites возвращает избранные книги пользователя.
func (f *FavoriteUseCase) ListFavorites(ctx context.Context, userID int64) ([]FavoriteInfo, error) {
	const op = "FavoriteUseCase.ListFavorites"

	favorites, err := f.favoriteRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return favorites, nil
}

// computeRecommendations строит центроид по векторам избранного и ранжирует
// остальной каталог по L2-расстоянию. Любой сбой на этом пути деградирует до
// пустого списка: избранное к этому моменту уже зафиксировано.
func (f *FavoriteUseCase) computeRecommendations(ctx context.Context, userID int64) []Recommendation {
	const op = "FavoriteUseCase.computeRecommendations"
	empty := []Recommendation{}

	favoriteIDs, err := f.favoriteRepo.GetUserFavoriteBookIDs(ctx, userID)
	if err != nil {
		f.logger.Warnf("Recommendations degraded: %v", e.Wrap(op, err))
		return empty
	}

	favoriteVectors, err := f.embeddingRepo.GetMany(ctx, favoriteIDs)
	if err != nil {
		f.logger.Warnf("Recommendations degraded: %v", e.Wrap(op, err))
		return empty
	}

	// Избранное без единого вычисленного вектора — валидный пустой результат.
	if len(favoriteVectors) == 0 {
		return empty
	}

	vectors := make([][]float32, 0, len(favoriteVectors))
	for _, vector := range favoriteVectors {
		vectors = append(vectors, vector)
	}

	centroid, err := recommend.Centroid(vectors)
	if err != nil {
		f.logger.Warnf("Recommendations degraded: %v", e.Wrap(op, err))
		return empty
	}

	// Пул кандидатов: весь каталог минус всё избранное пользователя.
	candidateIDs, err := f.bookRepo.GetAllBookIDs(ctx, favoriteIDs)
	if err != nil {
		f.logger.Warnf("Recommendations degraded: %v", e.Wrap(op, err))
		return empty
	}

	candidateVectors, err := f.embeddingRepo.GetMany(ctx, candidateIDs)
	if err != nil {
		f.logger.Warnf("Recommendations degraded: %v", e.Wrap(op, err))
		return empty
	}

	ranked := recommend.RankNearest(centroid, candidateVectors, RecommendationLimit)
	if len(ranked) == 0 {
		return empty
	}

	rankedIDs := make([]int64, len(ranked))
	for i, r := range ranked {
		rankedIDs[i] = r.BookID
	}

	infoRes, err := f.books.GetBooksInfo(ctx, NewGetBooksReq(rankedIDs))
	if err != nil {
		f.logger.Warnf("Recommendations degraded: %v", e.Wrap(op, err))
		return empty
	}

	titles := make(map[int64]string, len(infoRes.Books))
	for _, info := range infoRes.Books {
		titles[info.ID] = info.Title
	}

	result := make([]Recommendation, 0, len(ranked))
	for _, r := range ranked {
		title, ok := titles[r.BookID]
		if !ok {
			continue
		}
		result = append(result, NewRecommendation(r.BookID, title, r.Distance))
	}

	return result
}

// createOutboxEvent регистрирует событие favorite_added в транзакционном outbox.
func (f *FavoriteUseCase) createOutboxEvent(ctx context.Context, userID int64, bookID int64) error {
	payload, err := json.Marshal(map[string]any{
		"user_id": userID,
		"book_id": bookID,
	})
	if err != nil {
		return err
	}

	_, err = f.outboxRepo.Create(ctx, &OutboxEvent{
		EventID:   uuid.NewString(),
		EventType: FavoriteAdded,
		BookID:    bookID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	})

	return err
}
