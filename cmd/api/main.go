package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/db"
	"portfolio-backend/internal/email"
	apihttp "portfolio-backend/internal/http"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if cfg.MigrateOnStart {
		applied, err := db.Migrate(ctx, pool)
		if err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
		logger.Info("migrations applied", zap.Strings("files", applied))
	}

	submissionRepo := repository.NewPgSubmissionRepository(pool)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	} else {
		logger.Warn("smtp not configured, contact submissions will fail after insert")
	}

	contactOpts := []service.ContactOption{service.WithTimeouts(cfg.DBTimeout(), cfg.MailTimeout())}
	if cfg.RateLimitMax > 0 {
		var redisClient *redis.Client
		if cfg.RedisAddr != "" {
			client := redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			})
			defer client.Close()
			ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
			if err := client.Ping(ctxPing).Err(); err != nil {
				logger.Warn("redis ping failed, using in-memory rate limiter", zap.Error(err))
			} else {
				redisClient = client
			}
			cancel()
		}
		if len(cfg.TrustedProxies) == 0 {
			logger.Warn("contact rate limit enabled without TRUSTED_PROXIES; behind a proxy every visitor shares one bucket")
		}
		limiter := service.NewContactRateLimiter(logger, redisClient, cfg.RateLimitWindow(), cfg.RateLimitMax)
		contactOpts = append(contactOpts, service.WithRateLimiter(limiter))
	}

	jwtSvc := service.NewJWTService(cfg.JWTSecret, cfg.JWTTTL())
	contactSvc := service.NewContactService(logger, submissionRepo, emailSender, contactOpts...)
	adminSvc := service.NewAdminService(logger, service.AdminCredentials{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
	}, jwtSvc, submissionRepo, cfg.DBTimeout())

	router := apihttp.NewRouter(
		logger,
		apihttp.RouterOptions{AllowedOrigins: cfg.AllowedOrigins, TrustedProxies: cfg.TrustedProxies},
		apihttp.NewContactHandler(logger, contactSvc),
		apihttp.NewAdminHandler(logger, adminSvc),
		jwtSvc,
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
