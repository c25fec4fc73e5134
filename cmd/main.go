package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	apictx "github.com/dtroode/listenloud-server/internal/api/http/context"
	"github.com/dtroode/listenloud-server/internal/api/http/router"
	httpServer "github.com/dtroode/listenloud-server/internal/api/http/server"
	"github.com/dtroode/listenloud-server/internal/config"
	"github.com/dtroode/listenloud-server/internal/events"
	"github.com/dtroode/listenloud-server/internal/events/kafka"
	"github.com/dtroode/listenloud-server/internal/logger"
	"github.com/dtroode/listenloud-server/internal/model"
	"github.com/dtroode/listenloud-server/internal/password"
	"github.com/dtroode/listenloud-server/internal/repository/postgres"
	"github.com/dtroode/listenloud-server/internal/server"
	"github.com/dtroode/listenloud-server/internal/service"
	storage "github.com/dtroode/listenloud-server/internal/storage/minio"
	"github.com/dtroode/listenloud-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	blobs, err := storage.Connect(ctx, storage.Options{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	publisher := newPublisher(cfg.Kafka, logger)
	defer func() {
		if c, ok := publisher.(io.Closer); ok {
			if err := c.Close(); err != nil {
				logger.Error("failed to close event publisher", "error", err)
			}
		}
	}()

	userRepo := postgres.NewUserRepository(db)
	tokenRepo := postgres.NewTokenRepository(db)
	trackRepo := postgres.NewTrackRepository(db)
	likeRepo := postgres.NewLikeRepository(db)
	saveRepo := postgres.NewSaveRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	hasher := password.NewBcrypt(cfg.Bcrypt.Cost)

	mediaService := service.NewMedia(blobs, cfg.Upload.MaxSize, cfg.Storage.PublicURL, logger)
	if err := mediaService.EnsureDefaultImage(ctx); err != nil {
		logger.Fatal("failed to prepare default image", "error", err)
	}
	authService := service.NewAuth(userRepo, tokenRepo, tokenManager, hasher, mediaService, publisher, logger)
	musicService := service.NewMusic(trackRepo, likeRepo, saveRepo, tagRepo, userRepo, subscriptionRepo, mediaService, publisher, logger)
	userService := service.NewUser(userRepo, subscriptionRepo, tagRepo, mediaService, logger)
	tagService := service.NewTag(tagRepo, trackRepo, logger)
	messageService := service.NewMessage(messageRepo, userRepo, mediaService, publisher, logger)

	r := router.New(router.Services{
		Auth:     authService,
		Music:    musicService,
		Users:    userService,
		Tags:     tagService,
		Messages: messageService,
		Media:    mediaService,
	}, authService, db, apictx.NewManager(), router.Options{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		MaxUploadSize:  cfg.Upload.MaxSize,
	}, logger)

	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))
	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// newPublisher returns a Kafka publisher, or a no-op one when no brokers are configured.
func newPublisher(cfg config.Kafka, logger *logger.Logger) model.EventPublisher {
	if len(cfg.Brokers) == 0 {
		logger.Info("event publishing disabled")
		return events.Noop{}
	}
	logger.Info("publishing events to kafka", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return kafka.NewPublisher(cfg.Brokers, cfg.Topic, logger)
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
