package bootstrap

import (
	"context"
	"log"
	"time"

	"cramwell-be/internal/config"
	"cramwell-be/internal/controller"
	"cramwell-be/internal/pkg/inflight"
	"cramwell-be/internal/pkg/logger"
	"cramwell-be/internal/repository/memory"
	"cramwell-be/internal/repository/unitofwork"
	"cramwell-be/internal/service"
	pkgNats "cramwell-be/pkg/nats"
	"cramwell-be/pkg/ragapi"
	"cramwell-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const auditTopicName = "AUDIT_LOG"

type Container struct {
	// Controllers
	NotebookController controller.INotebookController
	DocumentController controller.IDocumentController
	ChatbotController  controller.IChatbotController
	StudyController    controller.IStudyController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// For graceful shutdown
	EventBus pkgNats.Bus
	Logger   logger.ILogger
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

	// NATS (optional; domain events degrade to no-op without it)
	var eventBus pkgNats.Bus = pkgNats.NoopBus{}
	if cfg.App.NatsURL != "" {
		natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventBus = natsPub
		}
	}

	// Redis upload lock (optional; falls back to always-granted)
	var uploadLocker inflight.Locker = inflight.NoopLocker{}
	if cfg.App.RedisURL != "" {
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
		} else {
			uploadLocker = inflight.NewRedisLocker(rdb, 5*time.Minute)
		}
	}

	// Object storage
	objectStore, err := storage.NewMinioStore(
		cfg.Storage.Endpoint,
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
		cfg.Storage.Bucket,
		cfg.Storage.UseSSL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize object storage: %v", err)
	}

	// External retrieval service
	ragClient := ragapi.NewClient(cfg.Services.RagBaseURL)

	// In-memory study feature cache
	featureCache := memory.NewStudyFeatureCache()

	// 3. Services
	publisherService := service.NewPublisherService(auditTopicName, pubSub)
	consumerService := service.NewConsumerService(pubSub, auditTopicName, uowFactory)

	notebookService := service.NewNotebookService(uowFactory)
	documentService := service.NewDocumentService(
		uowFactory,
		objectStore,
		ragClient,
		uploadLocker,
		publisherService,
		eventBus,
		sysLogger,
	)
	chatService := service.NewChatService(uowFactory, ragClient, eventBus, sysLogger)
	studyService := service.NewStudyService(uowFactory, ragClient, featureCache, eventBus, sysLogger)

	// 4. Controllers
	return &Container{
		NotebookController: controller.NewNotebookController(notebookService),
		DocumentController: controller.NewDocumentController(documentService),
		ChatbotController:  controller.NewChatbotController(chatService),
		StudyController:    controller.NewStudyController(studyService),

		ConsumerService: consumerService,

		EventBus: eventBus,
		Logger:   sysLogger,
	}
}
