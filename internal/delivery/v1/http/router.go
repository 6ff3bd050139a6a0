package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	_ "github.com/libraria-tech/go-backend/docs" // Импорт сгенерированных файлов
	"github.com/libraria-tech/go-backend/internal/usecase"
	"github.com/libraria-tech/go-backend/pkg/logger"
	"github.com/libraria-tech/go-backend/pkg/tokens"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	tokens *tokens.Manager
	logger logger.Logger
}

func NewRouter(router *chi.Mux, tokens *tokens.Manager, logger logger.Logger) *Router {
	return &Router{router: router, tokens: tokens, logger: logger}
}

func (r *Router) Init(authUC usecase.AuthUC, bookUC usecase.BookUC, authorUC usecase.AuthorUC, favoriteUC usecase.FavoriteUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	authMW := AuthMiddleware(r.tokens, r.logger)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		authHandler := NewAuthHandler(authUC, r.logger)
		registerAuthRoutes(v1, authHandler)

		bookHandler := NewBookHandler(bookUC, r.logger)
		registerBookRoutes(v1, bookHandler, authMW)

		authorHandler := NewAuthorHandler(authorUC, r.logger)
		registerAuthorRoutes(v1, authorHandler, authMW)

		favoriteHandler := NewFavoriteHandler(favoriteUC, r.logger)
		registerFavoriteRoutes(v1, favoriteHandler, authMW)
	})
}

func registerAuthRoutes(router chi.Router, authHandler *AuthHandler) {
	router.Route("/auth", func(auth chi.Router) {
		auth.Post("/register", authHandler.register)
		auth.Post("/login", authHandler.login)
	})
}

func registerBookRoutes(router chi.Router, bookHandler *BookHandler, authMW func(next http.Handler) http.Handler) {
	router.Route("/books", func(bk chi.Router) {
		bk.Get("/", bookHandler.listBooks)
		bk.Get("/{id}", bookHandler.getBook)

		bk.Group(func(protected chi.Router) {
			protected.Use(authMW)
			protected.Post("/", bookHandler.upsertBook)
		})
	})
}

func registerAuthorRoutes(router chi.Router, authorHandler *AuthorHandler, authMW func(next http.Handler) http.Handler) {
	router.Route("/authors", func(au chi.Router) {
		au.Get("/", authorHandler.listAuthors)
		au.Get("/{id}", authorHandler.getAuthor)

		au.Group(func(protected chi.Router) {
			protected.Use(authMW)
			protected.Post("/", authorHandler.upsertAuthor)
		})
	})
}

func registerFavoriteRoutes(router chi.Router, favoriteHandler *FavoriteHandler, authMW func(next http.Handler) http.Handler) {
	router.Route("/favorites", func(fav chi.Router) {
		fav.Use(authMW)
		fav.Get("/", favoriteHandler.listFavorites)
		fav.Post("/{id}", favoriteHandler.addFavorite)
		fav.Delete("/{id}", favoriteHandler.removeFavorite)
	})
}
