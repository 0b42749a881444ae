package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/auth"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/config"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/controller"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/db"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/logger"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/mailer"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/repository"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/service"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/storage"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.LoadFromEnv()
	zlog := logger.New(cfg.Environment, cfg.LogLevel)
	defer zlog.Sync()

	conn, err := db.Connect(cfg.DatabaseDSN())
	if err != nil {
		zlog.Fatalw("database connection failed", "error", err)
	}
	zlog.Info("✅ Connected to database")

	store, err := storage.NewS3Store(storage.S3Config{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		zlog.Fatalw("object storage setup failed", "error", err)
	}

	sender := mailer.NewResendSender(cfg.ResendAPIKey, cfg.ResendFromEmail)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL)

	campaignRepo := &repository.CampaignRepository{DB: conn}
	subscriberRepo := &repository.SubscriberRepository{DB: conn}
	adminRepo := &repository.AdminRepository{DB: conn}
	editionRepo := &repository.EditionRepository{DB: conn}

	authService := &service.AuthService{
		AdminRepo:    adminRepo,
		Sender:       sender,
		Tokens:       tokens,
		Log:          zlog,
		AdminURL:     cfg.AdminURL,
		MagicLinkTTL: cfg.MagicLinkTTL,
	}
	subscriberService := &service.SubscriberService{
		SubscriberRepo: subscriberRepo,
		Sender:         sender,
		Log:            zlog,
		FrontendURL:    cfg.FrontendURL,
	}
	editionService := &service.EditionService{
		EditionRepo: editionRepo,
		Store:       store,
		Log:         zlog,
	}
	campaignService := service.NewCampaignService(campaignRepo, subscriberRepo, adminRepo, sender, zlog)

	router := controller.NewRouter(
		cfg.Production(),
		cfg.AdminURL,
		tokens,
		&controller.AuthController{AuthService: authService, Log: zlog, Environment: cfg.Environment},
		&controller.SubscriberController{SubscriberService: subscriberService, Log: zlog},
		&controller.EditionController{EditionService: editionService, Store: store, Log: zlog},
		&controller.CampaignController{CampaignService: campaignService, Log: zlog},
	)

	zlog.Infof("🚀 Server running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		zlog.Fatalw("server stopped", "error", err)
	}
}
