package main

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/transfeo/config"
	infracache "github.com/amirasaad/transfeo/infra/cache"
	"github.com/amirasaad/transfeo/infra/database"
	"github.com/amirasaad/transfeo/infra/logging"
	"github.com/amirasaad/transfeo/infra/provider/fixer"
	infrarepo "github.com/amirasaad/transfeo/infra/repository"
	"github.com/amirasaad/transfeo/pkg/cache"
	adminsvc "github.com/amirasaad/transfeo/pkg/service/admin"
	authsvc "github.com/amirasaad/transfeo/pkg/service/auth"
	dashboardsvc "github.com/amirasaad/transfeo/pkg/service/dashboard"
	ratessvc "github.com/amirasaad/transfeo/pkg/service/rates"
	transfersvc "github.com/amirasaad/transfeo/pkg/service/transfer"
	usersvc "github.com/amirasaad/transfeo/pkg/service/user"
	"github.com/amirasaad/transfeo/webapi"
	"github.com/charmbracelet/log"
)

// @title Transfeo API
// @version 1.0.0
// @description Peer-to-peer money transfer API with live currency conversion
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	bootLogger := slog.Default()
	cfg, err := config.Load(bootLogger)
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	logger := logging.New(&cfg.Log)
	slog.SetDefault(logger)

	db, err := database.New(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var ratesCache cache.RatesCache
	if cfg.Redis.URL != "" {
		ratesCache, err = infracache.NewRedis(cfg.Redis.URL, cfg.Exchange.CachePrefix, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("using redis rate cache")
	} else {
		ratesCache = infracache.NewMemory()
		logger.Info("using in-memory rate cache")
	}

	uow := infrarepo.NewUoW(db)
	rates := ratessvc.New(fixer.New(cfg.Exchange, logger), ratesCache, logger, &cfg.Exchange)

	app := webapi.New(webapi.Deps{
		Cfg:       cfg,
		Logger:    logger,
		UoW:       uow,
		Auth:      authsvc.New(uow, &cfg.Jwt, logger),
		Transfer:  transfersvc.New(uow, rates, logger, cfg.Exchange.EnableFallback),
		Rates:     rates,
		Users:     usersvc.New(uow, logger),
		Admin:     adminsvc.New(uow, logger),
		Dashboard: dashboardsvc.New(uow, logger),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)
	return app.Listen(addr)
}
