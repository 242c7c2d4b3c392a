package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"career-service/internal/cache"
	"career-service/internal/calendar"
	"career-service/internal/config"
	"career-service/internal/db"
	"career-service/internal/handlers"
	"career-service/internal/middleware"
	"career-service/internal/observability"
	"career-service/internal/rabbitmq"
	"career-service/internal/repositories"
	"career-service/internal/storage"
	"career-service/internal/telemetry"
	"career-service/internal/ws"
)

func main() {
	cfg := config.Load()

	database, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer publisher.Close()
	log.Printf("event publisher mode=%s", rabbitmq.PublisherMode(publisher))

	audit := telemetry.NewAuditEmitter(publisher, "career.audit", "career-service", cfg.Environment)

	uploader, err := storage.NewS3Uploader(context.Background(), cfg.S3Bucket, cfg.S3Region)
	if err != nil {
		log.Fatalf("failed to configure s3: %v", err)
	}

	google := calendar.NewGoogleClient(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)

	store := cache.New(cfg.CacheTTL)
	hub := ws.NewHub()

	userRepo := repositories.NewUserRepo(database)
	jobRepo := repositories.NewJobRepo(database)
	outcomeRepo := repositories.NewOutcomeRepo(database)
	interviewRepo := repositories.NewInterviewRepo(database)
	educationRepo := repositories.NewEducationRepo(database)
	documentRepo := repositories.NewDocumentRepo(database)
	availabilityRepo := repositories.NewAvailabilityRepo(database)
	eventTypeRepo := repositories.NewEventTypeRepo(database)
	eventRepo := repositories.NewEventRepo(database)
	connectionRepo := repositories.NewConnectionRepo(database)
	messageRepo := repositories.NewMessageRepo(database)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, cfg.SessionMaxAge)
	jobHandler := handlers.NewJobHandler(jobRepo, store, cfg.CacheTTL, audit)
	outcomeHandler := handlers.NewOutcomeHandler(outcomeRepo, jobRepo, store)
	interviewHandler := handlers.NewInterviewHandler(interviewRepo, jobRepo, store, cfg.CacheTTL)
	educationHandler := handlers.NewEducationHandler(educationRepo)
	documentHandler := handlers.NewDocumentHandler(documentRepo, uploaderOrNil(uploader))
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityRepo)
	eventTypeHandler := handlers.NewEventTypeHandler(eventTypeRepo, eventRepo)
	eventHandler := handlers.NewEventHandler(eventRepo, eventTypeRepo, userRepo, store, cfg.CacheTTL, audit, hub, google)
	connectionHandler := handlers.NewConnectionHandler(connectionRepo, userRepo, store, cfg.CacheTTL, hub)
	messageHandler := handlers.NewMessageHandler(messageRepo, userRepo, audit, hub)
	notificationHandler := ws.NewNotificationHandler(hub)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(observability.HTTPMetricsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	auth := middleware.AuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")
	{
		api.POST("/users/register", authHandler.Register)
		api.POST("/users/login", authHandler.Login)
		api.GET("/users/me", auth, authHandler.Me)

		api.POST("/jobs", auth, jobHandler.CreateJob)
		api.GET("/jobs", auth, jobHandler.ListJobs)
		api.GET("/jobs/:id", auth, jobHandler.GetJob)
		api.PUT("/jobs/:id", auth, jobHandler.UpdateJob)
		api.PUT("/jobs/:id/status", auth, jobHandler.UpdateJobStatus)
		api.DELETE("/jobs/:id", auth, jobHandler.DeleteJob)

		api.POST("/offers", auth, outcomeHandler.CreateOffer)
		api.GET("/offers", auth, outcomeHandler.ListOffers)
		api.DELETE("/offers/:id", auth, outcomeHandler.DeleteOffer)
		api.POST("/rejections", auth, outcomeHandler.CreateRejection)
		api.GET("/rejections", auth, outcomeHandler.ListRejections)
		api.DELETE("/rejections/:id", auth, outcomeHandler.DeleteRejection)

		api.POST("/interviews", auth, interviewHandler.CreateInterview)
		api.GET("/interviews", auth, interviewHandler.ListInterviews)
		api.GET("/interviews/ical", auth, interviewHandler.ExportICal)
		api.PUT("/interviews/:id", auth, interviewHandler.UpdateInterview)
		api.DELETE("/interviews/:id", auth, interviewHandler.DeleteInterview)

		api.POST("/education", auth, educationHandler.CreateEducation)
		api.GET("/education", auth, educationHandler.ListEducation)
		api.PUT("/education/:id", auth, educationHandler.UpdateEducation)
		api.DELETE("/education/:id", auth, educationHandler.DeleteEducation)

		api.POST("/availability", auth, availabilityHandler.CreateWindow)
		api.GET("/availability", auth, availabilityHandler.ListWindows)
		api.DELETE("/availability/reset", auth, availabilityHandler.ResetDate)

		api.POST("/event-types", auth, eventTypeHandler.CreateEventType)
		api.GET("/event-types", auth, eventTypeHandler.ListEventTypes)
		api.GET("/event-types/:id", eventTypeHandler.GetEventType)
		api.GET("/event-types/:id/slots", eventTypeHandler.ListSlots)
		api.DELETE("/event-types/:id", auth, eventTypeHandler.DeleteEventType)

		api.POST("/booked-slots", auth, eventHandler.Book)
		api.GET("/booked-slots", auth, eventHandler.List)
		api.PUT("/booked-slots/:id", auth, eventHandler.Reschedule)
		api.DELETE("/booked-slots/:id", auth, eventHandler.Cancel)
		api.GET("/events/ical", auth, eventHandler.ExportICal)

		api.GET("/calendar/google/auth", auth, eventHandler.GoogleAuthURL)
		api.GET("/calendar/google/callback", eventHandler.GoogleCallback)
		api.GET("/calendar/google/events", auth, eventHandler.GoogleEvents)

		api.POST("/connections/:userId/request", auth, connectionHandler.Request)
		api.PUT("/connections/:id/accept", auth, connectionHandler.Accept)
		api.PUT("/connections/:id/reject", auth, connectionHandler.Reject)
		api.GET("/connections", auth, connectionHandler.List)
		api.GET("/connections/pending", auth, connectionHandler.ListPending)

		api.POST("/message/send", auth, messageHandler.Send)
		api.GET("/message/inbox", auth, messageHandler.Inbox)
		api.GET("/message/sent", auth, messageHandler.Sent)
		api.GET("/message/trash", auth, messageHandler.Trash)
		api.PUT("/message/:id/read", auth, messageHandler.MarkRead)
		api.PUT("/message/:id/restore", auth, messageHandler.Restore)
		api.DELETE("/message/:id", auth, messageHandler.SoftDelete)
		api.DELETE("/message/:id/trash", auth, messageHandler.HardDelete)

		api.POST("/documents/upload-url", auth, documentHandler.PresignUpload)
		api.POST("/documents", auth, documentHandler.CreateDocument)
		api.GET("/documents", auth, documentHandler.ListDocuments)
		api.DELETE("/documents/:id", auth, documentHandler.DeleteDocument)
	}

	router.GET("/ws/notifications", auth, notificationHandler.Handle)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// uploaderOrNil avoids storing a typed nil in the Uploader interface when
// S3 is not configured.
func uploaderOrNil(u *storage.S3Uploader) storage.Uploader {
	if u == nil {
		return nil
	}
	return u
}
