package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	usageDelivery "jobsense-backend/internal/aiusage/delivery"
	usageUsecase "jobsense-backend/internal/aiusage/usecase"
	assistantDelivery "jobsense-backend/internal/assistant/delivery"
	assistantUsecase "jobsense-backend/internal/assistant/usecase"
	"jobsense-backend/internal/auth/delivery"
	authUsecase "jobsense-backend/internal/auth/usecase"
	emailDelivery "jobsense-backend/internal/email/delivery"
	emailUsecase "jobsense-backend/internal/email/usecase"
	mailboxDelivery "jobsense-backend/internal/mailbox/delivery"
	mailboxUsecase "jobsense-backend/internal/mailbox/usecase"
	profileDelivery "jobsense-backend/internal/profile/delivery"
	profileUsecase "jobsense-backend/internal/profile/usecase"
	"jobsense-backend/pkg/config"
)

func NewRouter(cfg *config.Config, authUc authUsecase.AuthUsecase, profileUc profileUsecase.ProfileUsecase, emailUc emailUsecase.EmailUsecase, mailboxUc mailboxUsecase.MailboxUsecase, assistantUc assistantUsecase.AssistantUsecase, usageUc usageUsecase.UsageUsecase) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if cfg.FrontendURL != "" {
		corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	authHandler := delivery.NewAuthHandler(authUc)
	profileHandler := profileDelivery.NewProfileHandler(profileUc)
	emailHandler := emailDelivery.NewEmailHandler(emailUc)
	mailboxHandler := mailboxDelivery.NewMailboxHandler(mailboxUc)
	assistantHandler := assistantDelivery.NewAssistantHandler(assistantUc)
	usageHandler := usageDelivery.NewUsageHandler(usageUc)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/google", authHandler.GoogleSignIn)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", delivery.AuthMiddleware(authUc), authHandler.Me)
		}

		profile := api.Group("/profile")
		profile.Use(delivery.AuthMiddleware(authUc))
		{
			profile.GET("", profileHandler.Get)
			profile.PUT("", profileHandler.Save)
			profile.DELETE("", profileHandler.Delete)
			profile.POST("/resume", profileHandler.UploadResume)
		}

		emails := api.Group("/emails")
		emails.Use(delivery.AuthMiddleware(authUc))
		{
			emails.GET("", emailHandler.List)
			emails.GET("/category/:category", emailHandler.ListByCategory)
			emails.POST("/sync", emailHandler.Sync)
			emails.POST("", emailHandler.Save)
			emails.PUT("/:id/read", emailHandler.MarkRead)
			emails.DELETE("/:id", emailHandler.Delete)
			emails.DELETE("", emailHandler.DeleteAll)
			emails.GET("/last-sync", emailHandler.LastSync)
		}

		mailbox := api.Group("/mailbox")
		mailbox.Use(delivery.AuthMiddleware(authUc))
		{
			mailbox.GET("/settings", mailboxHandler.Get)
			mailbox.POST("/connect", mailboxHandler.Connect)
			mailbox.POST("/disconnect", mailboxHandler.Disconnect)
		}

		ai := api.Group("/ai")
		ai.Use(delivery.AuthMiddleware(authUc))
		{
			ai.POST("/search-jobs", assistantHandler.SearchJobs)
			ai.POST("/generate-email", assistantHandler.GenerateEmail)
			ai.POST("/smart-reply", assistantHandler.SmartReply)
			ai.POST("/auto-reply", assistantHandler.AutoReply)
		}

		usage := api.Group("/usage")
		usage.Use(delivery.AuthMiddleware(authUc))
		{
			usage.GET("", usageHandler.Stats)
		}
	}

	return r
}
