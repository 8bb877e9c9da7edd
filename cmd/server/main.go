package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"sabores/internal/auth"
	"sabores/internal/commons"
	"sabores/internal/config"
	"sabores/internal/infrastructure/database"
	"sabores/internal/infrastructure/logger"
	"sabores/internal/infrastructure/sqlite"
	"sabores/internal/order"
	"sabores/internal/product"
	"sabores/internal/server"
	"sabores/internal/upload"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("loading .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	credentials, err := commons.LoadCredentials(cfg.Auth.CredentialsFile)
	if err != nil {
		zapLogger.Fatal("loading credentials", zap.Error(err))
	}

	remoteDB := openRemote(cfg, zapLogger)
	if remoteDB != nil {
		defer remoteDB.Close()
	}

	localDB, err := sqlite.NewConnection(cfg.Catalog.LocalPath)
	if err != nil {
		zapLogger.Fatal("opening local catalog", zap.Error(err))
	}
	defer localDB.Close()
	if err := product.PrepareLocalCatalog(context.Background(), localDB); err != nil {
		zapLogger.Fatal("preparing local catalog", zap.Error(err))
	}

	router := server.NewRouter(server.Handlers{
		Orders:    order.NewModule(remoteDB, cfg, zapLogger),
		Products:  product.NewModule(remoteDB, cfg.Database.Driver, localDB, zapLogger),
		Auth:      auth.NewModule(credentials, zapLogger),
		Upload:    upload.NewModule(cfg.Storage, zapLogger),
		UploadDir: cfg.Storage.UploadDir,
	}, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

// openRemote returns nil when the remote store is not configured. An
// unreachable remote stays open so the driver can reconnect later.
func openRemote(cfg *config.Config, zapLogger *zap.Logger) *sql.DB {
	if !cfg.Database.Configured() {
		zapLogger.Warn("remote database not configured, orders and catalog stay local")
		return nil
	}

	db, err := database.OpenRemote(cfg.Database)
	if err != nil {
		zapLogger.Error("opening remote database, continuing without it", zap.Error(err))
		return nil
	}

	if err := database.Ping(context.Background(), db, 5*time.Second); err != nil {
		zapLogger.Warn("remote database unreachable at startup", zap.Error(err))
	} else {
		zapLogger.Info("remote database connected", zap.String("driver", cfg.Database.Driver))
	}
	return db
}
