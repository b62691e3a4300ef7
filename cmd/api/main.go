package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"novapanel/internal/client"
	"novapanel/internal/config"
	"novapanel/internal/handler"
	"novapanel/internal/logger"
	"novapanel/internal/repository"
	"novapanel/internal/server"
	"novapanel/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const provisionQueueSize = 64

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)

	db, err := client.InitSqliteClient(cfg.StorePath)
	if err != nil {
		log.Fatal().Err(err).Msg("init order store")
	}

	pakasirClient := client.NewPakasirClient(&cfg.Pakasir)
	pterodactylClient := client.NewPterodactylClient(&cfg.Pterodactyl)
	telegramClient := client.NewTelegramClient(&cfg.Telegram)

	orderRepo := repository.NewOrderRepository(db)

	provisioner := service.NewProvisioner(cfg.ProvisionDelay, provisionQueueSize, log)

	orderService := service.NewOrderService(
		orderRepo,
		pakasirClient,
		pterodactylClient,
		telegramClient,
		provisioner,
		cfg.Pricing.Map(),
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go provisioner.Run(ctx, orderService)

	orderHandler := handler.NewOrderHandler(orderService)
	webhookHandler := handler.NewWebhookHandler(orderService, log)

	srv := server.NewServer(orderHandler, webhookHandler)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info().Str("addr", serverAddr).Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("signal received, starting graceful shutdown")
	cancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("HTTP server shutdown error")
	}
}
