package main

import (
	"context"
	"log"

	api "jobsense-backend/cmd/api"
	usagedomain "jobsense-backend/internal/aiusage/domain"
	usageRepo "jobsense-backend/internal/aiusage/repository"
	usageUsecase "jobsense-backend/internal/aiusage/usecase"
	assistantUsecase "jobsense-backend/internal/assistant/usecase"
	authdomain "jobsense-backend/internal/auth/domain"
	authRepo "jobsense-backend/internal/auth/repository"
	authUsecase "jobsense-backend/internal/auth/usecase"
	emaildomain "jobsense-backend/internal/email/domain"
	emailRepo "jobsense-backend/internal/email/repository"
	emailUsecase "jobsense-backend/internal/email/usecase"
	mailboxdomain "jobsense-backend/internal/mailbox/domain"
	mailboxRepo "jobsense-backend/internal/mailbox/repository"
	mailboxUsecase "jobsense-backend/internal/mailbox/usecase"
	profiledomain "jobsense-backend/internal/profile/domain"
	profileRepo "jobsense-backend/internal/profile/repository"
	profileUsecase "jobsense-backend/internal/profile/usecase"
	"jobsense-backend/pkg/config"
	"jobsense-backend/pkg/database"
	"jobsense-backend/pkg/gemini"
	"jobsense-backend/pkg/gmail"
	"jobsense-backend/pkg/imapclient"
	"jobsense-backend/pkg/sampleinbox"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&profiledomain.Profile{},
		&emaildomain.Email{},
		&mailboxdomain.MailboxSettings{},
		&usagedomain.AIUsageRecord{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	profileRepository := profileRepo.NewProfileRepository(db)
	emailRepository := emailRepo.NewEmailRepository(db)
	cursorRepository := emailRepo.NewSyncCursorRepository(db)
	mailboxRepository := mailboxRepo.NewMailboxRepository(db)
	usageRepository := usageRepo.NewUsageRepository(db)

	// Initialize Gemini client. AI features degrade gracefully without a key:
	// the assistant returns errors, the sync pipeline stores emails with
	// default classification.
	var aiClient *gemini.Client
	if cfg.GeminiAPIKey != "" {
		aiClient, err = gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("[WARN] Failed to initialize Gemini client (AI features disabled): %v", err)
		}
	} else {
		log.Printf("[WARN] GEMINI_API_KEY not configured, AI features disabled")
	}
	if aiClient != nil {
		defer aiClient.Close()
	}

	// Select the mailbox gateway
	var gateway emaildomain.MailboxGateway
	provider := cfg.MailProvider
	if provider == "" {
		if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
			provider = "gmail"
		} else {
			provider = "sample"
		}
	}
	switch provider {
	case "gmail":
		gateway = gmail.NewGateway(cfg.GoogleClientID, cfg.GoogleClientSecret)
	case "imap":
		gateway = imapclient.NewGateway(cfg.IMAPServer, cfg.IMAPUsername, cfg.IMAPPassword)
	case "sample":
		gateway = sampleinbox.NewGateway()
	default:
		log.Fatalf("Unknown MAIL_PROVIDER %q (expected gmail, imap or sample)", provider)
	}
	log.Printf("Using %s mailbox gateway", provider)

	// Initialize use cases (dependency injection)
	authUc := authUsecase.NewAuthUsecase(userRepository, cfg)
	usageUc := usageUsecase.NewUsageUsecase(usageRepository)
	var generator assistantUsecase.Generator
	if aiClient != nil {
		generator = aiClient
	}
	assistantUc := assistantUsecase.NewAssistantUsecase(generator, profileRepository, emailRepository, usageUc)
	profileUc := profileUsecase.NewProfileUsecase(profileRepository, assistantUc)
	mailboxUc := mailboxUsecase.NewMailboxUsecase(mailboxRepository, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)

	var classifier *emailUsecase.Classifier
	if aiClient != nil {
		classifier = emailUsecase.NewClassifier(assistantUc)
	} else {
		classifier = emailUsecase.NewClassifier(nil)
	}
	emailUc := emailUsecase.NewEmailUsecase(emailRepository, cursorRepository, mailboxUc, gateway, classifier, cfg.SyncBatchSize)

	// Background retention sweep for the usage ledger
	usageUc.StartRetentionSweep(cfg.UsageRetentionDays)

	// Start server
	router := api.NewRouter(cfg, authUc, profileUc, emailUc, mailboxUc, assistantUc, usageUc)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
