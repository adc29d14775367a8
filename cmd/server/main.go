package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/server"
)

func main() {
	cfg := config.LoadOrDefault()

	// Flags override environment
	port := flag.String("port", cfg.Server.Port, "Server port")
	dev := flag.Bool("dev", cfg.Logging.Development, "Development logging")
	cRoot := flag.String("c-root", cfg.Drives.CRoot, "Host directory backing C: (empty keeps it in memory)")
	autoConfirm := flag.Bool("auto-confirm", cfg.Explorer.AutoConfirm, "Answer confirmation prompts with yes")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Logging.Development = *dev
	cfg.Drives.CRoot = *cRoot
	cfg.Explorer.AutoConfirm = *autoConfirm

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create server: %v\n", err)
		os.Exit(1)
	}
	log := logging.FromLevel(cfg.Logging.Level, cfg.Logging.Development).Named("main")

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully")
	case err := <-errChan:
		if err != nil {
			log.Error("Server error", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Close(shutdownCtx); err != nil {
		log.Error("Error during shutdown", zap.Error(err))
		os.Exit(1)
	}
}
