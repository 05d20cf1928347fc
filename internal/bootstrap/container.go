package bootstrap

import (
	"context"
	"log"

	"tg-miniapp-be/internal/config"
	"tg-miniapp-be/internal/controller"
	"tg-miniapp-be/internal/handler"
	"tg-miniapp-be/internal/pkg/logger"
	"tg-miniapp-be/internal/pkg/serverutils"
	"tg-miniapp-be/internal/repository/unitofwork"
	"tg-miniapp-be/internal/service"
	"tg-miniapp-be/internal/websocket"
	pktNats "tg-miniapp-be/pkg/nats"
	"tg-miniapp-be/pkg/provider"
	"tg-miniapp-be/pkg/provider/kie"
	"tg-miniapp-be/pkg/provider/poyo"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// GenerationTopic is the in-process queue between the generation endpoint
// and the worker that drives providers.
const GenerationTopic = "generation-tasks"

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	UserController       controller.IUserController
	ModelController      controller.IModelController
	GenerationController controller.IGenerationController
	GalleryController    controller.IGalleryController
	UploadController     controller.IUploadController
	PaymentController    controller.IPaymentController
	AdminController      controller.IAdminController

	// Background Services (Exposed for main.go to run)
	GenerationWorker service.IGenerationWorker

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Generation Providers
	providerRegistry := provider.NewRegistry(
		kie.NewClient(cfg.Providers.KieBaseURL, cfg.Providers.KieAPIKey),
		poyo.NewClient(cfg.Providers.PoyoBaseURL, cfg.Providers.PoyoAPIKey),
	)

	// 3. Services
	publisherService := service.NewPublisherService(pubSub, GenerationTopic)

	userService := service.NewUserService(uowFactory, cfg.Telegram, cfg.Bonus, natsPub, sysLogger)
	authService := service.NewAuthService(userService, cfg.Telegram, cfg.App.JWTSecret)

	modelService := service.NewAIModelService(uowFactory, sysLogger)
	ledgerService := service.NewLedgerService(uowFactory, sysLogger)

	generationService := service.NewGenerationService(uowFactory, modelService, publisherService, sysLogger)
	generationWorker := service.NewGenerationWorker(
		pubSub,
		GenerationTopic,
		uowFactory,
		modelService,
		providerRegistry,
		natsPub,
		cfg.Worker,
		cfg.Upload.Dir,
		cfg.App.BaseURL,
		sysLogger,
	)

	galleryService := service.NewGalleryService(uowFactory, cfg.Upload.Dir, cfg.App.BaseURL, sysLogger)
	uploadService := service.NewUploadService(uowFactory, cfg.Upload, cfg.App.BaseURL, sysLogger)
	paymentService := service.NewPaymentService(uowFactory, cfg.Midtrans, natsPub, sysLogger)
	adminService := service.NewAdminService(uowFactory, ledgerService, sysLogger)

	// 3.5 Notification System Infrastructure
	notifService := service.NewNotificationService(natsSub, wsHub, sysLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	// Handler
	notifHandler := handler.NewNotificationHandler(authService, wsHub, wsLogger)

	// 4. Controllers
	authRequired := serverutils.NewAuthMiddleware(authService, userService)

	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		AuthController:       controller.NewAuthController(authService),
		UserController:       controller.NewUserController(userService, ledgerService, authRequired),
		ModelController:      controller.NewModelController(modelService, authRequired),
		GenerationController: controller.NewGenerationController(generationService, authRequired),
		GalleryController:    controller.NewGalleryController(galleryService, authRequired),
		UploadController:     controller.NewUploadController(uploadService, authRequired),
		PaymentController:    controller.NewPaymentController(paymentService, authRequired),
		AdminController:      controller.NewAdminController(adminService, modelService, authRequired),

		GenerationWorker: generationWorker,
	}
}
