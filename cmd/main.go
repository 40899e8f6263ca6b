package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/withbaby/auth-server/internal/api/http/router"
	httpServer "github.com/withbaby/auth-server/internal/api/http/server"
	"github.com/withbaby/auth-server/internal/config"
	"github.com/withbaby/auth-server/internal/hasher"
	"github.com/withbaby/auth-server/internal/logger"
	"github.com/withbaby/auth-server/internal/model"
	"github.com/withbaby/auth-server/internal/repository/postgres"
	redisRepo "github.com/withbaby/auth-server/internal/repository/redis"
	"github.com/withbaby/auth-server/internal/server"
	"github.com/withbaby/auth-server/internal/service"
	"github.com/withbaby/auth-server/internal/token"
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

	store, closeStore, err := newCredentialStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize credential store", "backend", cfg.Store.Backend, "error", err)
	}
	defer closeStore()

	issuer, err := token.NewJWT(cfg.JWT.Secret)
	if err != nil {
		logger.Fatal("failed to create token issuer", "error", err)
	}

	authService := service.NewAuth(store, hasher.NewSHA384(), issuer, logger)

	r := router.New(authService, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "backend", cfg.Store.Backend)
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
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

func newCredentialStore(ctx context.Context, cfg *config.Config) (model.CredentialStore, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisRepo.NewAccountRepository(client), func() { _ = client.Close() }, nil
	default:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewAccountRepository(db), func() { _ = db.Close() }, nil
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
