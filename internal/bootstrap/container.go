package bootstrap

import (
	"context"
	"log"

	"deposit-defender-be/internal/config"
	"deposit-defender-be/internal/controller"
	"deposit-defender-be/internal/mapper"
	"deposit-defender-be/internal/pkg/logger"
	"deposit-defender-be/internal/pkg/mailer"
	"deposit-defender-be/internal/repository/memory"
	"deposit-defender-be/internal/service"
	"deposit-defender-be/internal/websocket"
	"deposit-defender-be/pkg/backend"

	pktNats "deposit-defender-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ReportController   controller.IReportController
	DocumentController controller.IDocumentController
	IntakeController   controller.IIntakeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

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

	// WebSocket hub for download progress
	wsLogger := logger.NewIsolatedLogger("logs/progress.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. In-memory presentation state
	viewStateRepo := memory.NewViewStateRepository()
	downloadRepo := memory.NewDownloadStateRepository()

	// 4. Services
	backendClient := backend.NewClient(cfg.Backend.APIBaseURL, cfg.Backend.RetentionHours)
	reportMapper := mapper.NewReportMapper()

	publisherService := service.NewPublisherService(cfg.App.AuditTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.AuditTopic,
		natsPub,
		sysLogger,
	)

	reportService := service.NewReportService(
		backendClient,
		rdb,
		cfg.Backend.ReportCacheTTLSec,
		viewStateRepo,
		reportMapper,
		publisherService,
		sysLogger,
	)
	presentationService := service.NewPresentationService(viewStateRepo)
	documentService := service.NewDocumentService(
		backendClient,
		downloadRepo,
		wsHub,
		emailService,
		reportService,
		publisherService,
		sysLogger,
	)
	extractionService := service.NewExtractionService(backendClient, sysLogger)

	// 5. Controllers
	return &Container{
		ReportController:   controller.NewReportController(reportService, presentationService, cfg.Backend.ReviewFlowPath),
		DocumentController: controller.NewDocumentController(documentService, cfg.Backend.ReviewFlowPath),
		IntakeController:   controller.NewIntakeController(extractionService, cfg.Backend.ReviewFlowPath),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
	}
}
