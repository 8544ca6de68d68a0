package bootstrap

import (
	"context"
	"log"

	"ai-chathub-be/internal/config"
	"ai-chathub-be/internal/controller"
	"ai-chathub-be/internal/handler"
	"ai-chathub-be/internal/pkg/logger"
	"ai-chathub-be/internal/repository/unitofwork"
	"ai-chathub-be/internal/service"
	"ai-chathub-be/internal/websocket"
	"ai-chathub-be/pkg/catalog"
	"ai-chathub-be/pkg/secrets"
	"ai-chathub-be/pkg/storage"
	"ai-chathub-be/pkg/stream"

	pktNats "ai-chathub-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	ChatController       controller.IChatController
	ShareController      controller.IShareController
	CredentialController controller.ICredentialController
	ProviderController   controller.IProviderController
	FileController       controller.IFileController

	// Background services (exposed for main.go to run)
	ConsumerService   service.IConsumerService
	CheckpointJanitor *service.CheckpointJanitor

	// WebSockets & notifications
	NoticeHandler *handler.NoticeHandler
	WebSocketHub  *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
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

	// Credential sealing
	box, err := secrets.NewBox(cfg.Auth.CredentialKey)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize credential sealing: %v", err)
	}

	// Model catalogs, loaded and flattened once at startup
	chatCatalog := catalog.MustLoadChat()
	imageCatalog := catalog.MustLoadImage()

	// Object storage
	store, err := storage.NewS3Store(context.Background(), storage.Config{
		Region:          cfg.Storage.Region,
		Endpoint:        cfg.Storage.Endpoint,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		Bucket:          cfg.Storage.Bucket,
		PublicURL:       cfg.Storage.PublicURL,
		UploadDir:       cfg.Storage.UploadDir,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize object storage: %v", err)
	}

	// Stream broker
	broker := stream.NewBroker(rdb, cfg.Stream.BufferTTL)

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.EventTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EventTopic,
		uowFactory,
		natsPub,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, cfg.Auth, sysLogger)
	credentialService := service.NewCredentialService(uowFactory, box, publisherService)
	chatService := service.NewChatService(uowFactory, chatCatalog, publisherService)
	streamService := service.NewStreamService(
		uowFactory,
		chatService,
		credentialService,
		chatCatalog,
		broker,
		publisherService,
		sysLogger,
	)
	providerService := service.NewProviderService(uowFactory, credentialService, chatCatalog, sysLogger)
	attachmentService := service.NewAttachmentService(uowFactory, store)
	imageService := service.NewImageService(
		uowFactory,
		credentialService,
		imageCatalog,
		store,
		publisherService,
		sysLogger,
	)

	janitor := service.NewCheckpointJanitor(uowFactory, cfg.Stream.CheckpointTTL, sysLogger)

	// 3.5 Notification worker
	notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}

	noticeHandler := handler.NewNoticeHandler(wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		AuthController:       controller.NewAuthController(authService, cfg.App.ClientURL),
		ChatController:       controller.NewChatController(chatService, streamService),
		ShareController:      controller.NewShareController(chatService),
		CredentialController: controller.NewCredentialController(credentialService),
		ProviderController:   controller.NewProviderController(providerService),
		FileController:       controller.NewFileController(attachmentService, imageService),

		ConsumerService:   consumerService,
		CheckpointJanitor: janitor,

		NoticeHandler: noticeHandler,
		WebSocketHub:  wsHub,
	}
}
