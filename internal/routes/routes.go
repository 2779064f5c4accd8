package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"certificate-system/internal/catalog"
	"certificate-system/internal/certificates"
	"certificate-system/internal/integrations"
	"certificate-system/internal/repositories"
	"certificate-system/internal/services"
	"certificate-system/pkg/config"
	"certificate-system/pkg/eventbus"
	"certificate-system/pkg/filestorage"
	"certificate-system/pkg/middleware"
	"certificate-system/pkg/service"
	"certificate-system/pkg/websocket"
)

type Loggers struct {
	Main        *zap.Logger
	Auth        *zap.Logger
	Certificate *zap.Logger
}

// Dependencies are the long-lived clients created in main.
type Dependencies struct {
	DB       *pgxpool.Pool
	Redis    *redis.Client
	JWT      service.JWTService
	Catalogs *catalog.Catalogs
	OCR      integrations.RegistryInterface
	Bus      *eventbus.Bus
	Hub      *websocket.Hub
	Archive  filestorage.FileStorageInterface
	Config   *config.Config
}

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth          services.AuthServiceInterface
	Catalog       services.CatalogServiceInterface
	Calculator    services.CalculatorServiceInterface
	Certificate   services.CertificateServiceInterface
	ClientHistory services.ClientHistoryServiceInterface
	OCR           services.OCRServiceInterface
}

func InitRouter(e *echo.Echo, deps Dependencies, loggers *Loggers) {
	loggers.Main.Info("InitRouter: building routes")

	txManager := repositories.NewTxManager(deps.DB)
	certificateRepo := repositories.NewCertificateRepository(deps.DB, loggers.Certificate)
	clientRepo := repositories.NewClientHistoryRepository(deps.DB, loggers.Main)
	cacheRepo := repositories.NewRedisCacheRepository(deps.Redis)

	catalogService := services.NewCatalogService(deps.Catalogs, loggers.Main)
	clientHistory := services.NewClientHistoryService(
		clientRepo, cacheRepo,
		deps.Config.ClientHistory.Limit, deps.Config.ClientHistory.CacheTTL,
		loggers.Main,
	)
	svcs := Services{
		Auth:          services.NewAuthService(deps.JWT, deps.Config.Auth.APIKeyHash, loggers.Auth),
		Catalog:       catalogService,
		Calculator:    services.NewCalculatorService(deps.Catalogs, loggers.Main),
		Certificate:   services.NewCertificateService(certificateRepo, txManager, deps.Catalogs, clientHistory, deps.Bus, deps.Archive, loggers.Certificate),
		ClientHistory: clientHistory,
		OCR:           services.NewOCRService(deps.OCR, catalogService, loggers.Main),
	}

	RegisterRoutes(e, svcs, deps.JWT, deps.Hub, deps.Config.Server.AllowedOrigins, loggers)
	loggers.Main.Info("InitRouter: routes ready")
}

// RegisterRoutes mounts the API under /api. Everything except token issue, the
// websocket handshake and metrics requires a bearer token. A nil hub leaves out /api/ws.
func RegisterRoutes(e *echo.Echo, svcs Services, jwtSvc service.JWTService, hub *websocket.Hub, allowedOrigins []string, loggers *Loggers) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	runAuthRouter(api, svcs.Auth, loggers.Auth)
	if hub != nil {
		runWebSocketRouter(api, hub, jwtSvc, allowedOrigins, loggers.Main)
	}

	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)
	secureGroup := api.Group("", authMW.Auth)
	runCatalogRouter(secureGroup, svcs.Catalog, loggers.Main)
	runCalculatorRouter(secureGroup, svcs.Calculator, loggers.Main)
	runCertificateRouter(secureGroup, svcs.Certificate, loggers.Certificate)
	runClientRouter(secureGroup, svcs.ClientHistory, loggers.Main)
	runOCRRouter(secureGroup, svcs.OCR, loggers.Main)
}

// ValidationEnums lists the membership rules used by request DTOs.
func ValidationEnums() map[string][]string {
	certificateKinds := make([]string, 0, len(certificates.Kinds))
	for _, k := range certificates.Kinds {
		certificateKinds = append(certificateKinds, string(k))
	}
	catalogKinds := make([]string, 0, len(catalog.Kinds))
	for _, k := range catalog.Kinds {
		catalogKinds = append(catalogKinds, string(k))
	}
	return map[string][]string{
		"certificate_kind": certificateKinds,
		"catalog_kind":     catalogKinds,
	}
}
