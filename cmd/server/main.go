package main

import (
	"database/sql"
	"net/http"

	"littlelemon/internal/access"
	"littlelemon/internal/api"
	"littlelemon/internal/auth"
	"littlelemon/internal/cart"
	"littlelemon/internal/category"
	"littlelemon/internal/config"
	"littlelemon/internal/db"
	"littlelemon/internal/logger"
	"littlelemon/internal/menu"
	"littlelemon/internal/middleware"
	"littlelemon/internal/order"
	"littlelemon/internal/user"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	limiter := middleware.NewLimiter(cfg)
	scheduler := cron.New()
	if _, err := limiter.ScheduleCleanup(scheduler); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	handler := newServer(cfg, database, limiter)

	logger.L().Info("Little Lemon API listening",
		zap.String("port", cfg.AppPort),
		zap.String("env", cfg.AppEnv),
	)
	return startServerFunc(":"+cfg.AppPort, handler)
}

// newServer wires repositories and services behind the HTTP router.
func newServer(cfg *config.Config, database *sql.DB, limiter *middleware.Limiter) http.Handler {
	auth.SetSecret(cfg.JWTSecret)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	categorySvc := category.NewService(category.NewRepository(database))
	menuSvc := menu.NewService(menu.NewRepository(database), categorySvc)
	cartSvc := cart.NewService(cart.NewRepository(database), menuSvc)
	orderSvc := order.NewService(
		order.NewRepository(database),
		order.NewTransactor(database),
		userSvc,
		menuSvc,
	)

	return api.NewRouter(api.Deps{
		CORSOrigin: cfg.CORSOrigin,
		Resolver:   access.NewResolver(userRepo),
		Limiter:    limiter,
		Users:      userSvc,
		Categories: categorySvc,
		Menu:       menuSvc,
		Carts:      cartSvc,
		Orders:     orderSvc,
	})
}
