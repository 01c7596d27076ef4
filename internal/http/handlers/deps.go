package handlers

import (
	"github.com/jmoiron/sqlx"

	"bookhaven/internal/config"
	"bookhaven/internal/repos"
	"bookhaven/internal/services"
)

type Deps struct {
	Auth *services.AuthService

	BookHandler  *BookHandler
	OrderHandler *OrderHandler
	UserHandler  *UserHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	bookRepo := repos.NewBookRepo(db)
	userRepo := repos.NewUserRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(bookRepo)
	orderSvc := services.NewOrderService(bookRepo, orderRepo)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)

	return &Deps{
		Auth:         authSvc,
		BookHandler:  &BookHandler{Catalog: catalogSvc},
		OrderHandler: &OrderHandler{Orders: orderSvc},
		UserHandler:  &UserHandler{Auth: authSvc},
	}
}
