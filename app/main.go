package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"certificate-system/internal/catalog"
	"certificate-system/internal/integrations"
	"certificate-system/internal/integrations/mock"
	"certificate-system/internal/integrations/ocr"
	"certificate-system/internal/listeners"
	"certificate-system/internal/routes"
	"certificate-system/pkg/config"
	"certificate-system/pkg/database/migrations"
	"certificate-system/pkg/database/postgresql"
	apperrors "certificate-system/pkg/errors"
	"certificate-system/pkg/eventbus"
	"certificate-system/pkg/filestorage"
	applogger "certificate-system/pkg/logger"
	"certificate-system/pkg/metrics"
	appmiddleware "certificate-system/pkg/middleware"
	"certificate-system/pkg/service"
	"certificate-system/pkg/utils"
	"certificate-system/pkg/validation"
	"certificate-system/pkg/websocket"
)

func main() {
	e := echo.New()
	e.HideBanner = true
	logger := applogger.NewLogger()
	defer logger.Sync()

	cfg := config.New()
	metrics.Init()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Internal server error", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition", echo.HeaderXRequestID},
	}))
	e.Use(appmiddleware.RequestLogger(logger))

	v, err := validation.New(routes.ValidationEnums())
	if err != nil {
		logger.Fatal("failed to register validation rules", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	if err := migrations.Up(cfg.Postgres.DSN); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}
	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}
	defer redisClient.Close()

	catalogs, err := catalog.Load()
	if err != nil {
		logger.Fatal("failed to load equipment catalogs", zap.Error(err))
	}
	logger.Info("equipment catalogs loaded",
		zap.Int("fire_panels", catalogs.FirePanels.Len()),
		zap.Int("solar_panels", catalogs.SolarPanels.Len()),
		zap.Int("inverters", catalogs.Inverters.Len()),
	)

	archive, err := filestorage.NewLocalFileStorage(cfg.Storage.Path)
	if err != nil {
		logger.Fatal("failed to prepare certificate archive", zap.Error(err))
	}

	hub := websocket.NewHub(logger.Named("ws"))
	bus := eventbus.New(logger)
	listeners.NewAuditListener(logger).Register(bus)
	listeners.NewLiveUpdateListener(hub).Register(bus)

	ocrRegistry := integrations.NewRegistry()
	for _, p := range []integrations.TextRecognizer{
		ocr.New(cfg.OCR.BaseURL, cfg.OCR.APIKey, cfg.OCR.Timeout, logger.Named("ocr")),
		mock.NewMockProvider(""),
	} {
		if err := ocrRegistry.Register(p); err != nil {
			logger.Fatal("failed to register text recognizer", zap.Error(err))
		}
	}
	if err := ocrRegistry.SetActive(cfg.OCR.Provider); err != nil {
		logger.Fatal("invalid OCR provider", zap.String("provider", cfg.OCR.Provider), zap.Error(err))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL, logger.Named("jwt"))

	routes.InitRouter(e, routes.Dependencies{
		DB:       dbConn,
		Redis:    redisClient,
		JWT:      jwtSvc,
		Catalogs: catalogs,
		OCR:      ocrRegistry,
		Bus:      bus,
		Hub:      hub,
		Archive:  archive,
		Config:   cfg,
	}, &routes.Loggers{
		Main:        logger,
		Auth:        logger.Named("auth"),
		Certificate: logger.Named("certificate"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server started", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	bus.Wait()
	logger.Info("server stopped")
}
