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

	"github.com/vaultgate/vaultgate/internal/api/http/router"
	"github.com/vaultgate/vaultgate/internal/biometric"
	"github.com/vaultgate/vaultgate/internal/config"
	"github.com/vaultgate/vaultgate/internal/credential"
	"github.com/vaultgate/vaultgate/internal/logger"
	"github.com/vaultgate/vaultgate/internal/model"
	"github.com/vaultgate/vaultgate/internal/repository/postgres"
	"github.com/vaultgate/vaultgate/internal/server"
	"github.com/vaultgate/vaultgate/internal/service"
	"github.com/vaultgate/vaultgate/internal/unlock"
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

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	clock := model.SystemClock{}

	credentialRepo := postgres.NewCredentialRepository(db)
	credentialStore := credential.NewStore(credentialRepo, logger)
	unlockState := unlock.NewState(clock)
	probe := biometric.New()

	gateService := service.NewGate(credentialStore, unlockState, probe, clock, logger)

	httpServer := registerHTTPServer(gateService, db, logger, cfg.HTTP.Address)

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
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerHTTPServer(
	gateService *service.Gate,
	db *postgres.Connection,
	logger *logger.Logger,
	addr string,
) *server.HTTPServer {
	r := router.New(gateService, db, logger)

	return server.NewHTTPServer(r.Register(), addr)
}
