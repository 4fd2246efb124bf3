package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"adminauth/internal/config"
	"adminauth/internal/logger"
	"adminauth/internal/routing"
	"adminauth/pkg/handlers"
	"adminauth/pkg/token"
	"adminauth/pkg/user"
)

func main() {
	cfg, err := config.Load() // env, .env and optional YAML file
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logger.Load(cfg.LogLevel)

	codec, err := token.NewCodec([]byte(cfg.JWTSecret))
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}

	userService := user.NewService(user.NewStaticRepo(cfg.Admin), cfg.TokenTTL)
	userHandler := handlers.NewUserHandler(userService, codec, logger)

	r := routing.NewRouter(userHandler, codec, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := routing.StartServer(ctx, cfg.ListenAddr, r, cfg.ShutdownTimeout, logger); err != nil {
		logger.Error("server", "error", err)
		stop()
		os.Exit(1)
	}
}
