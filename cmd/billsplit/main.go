package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"go.uber.org/zap"

	"github.com/GlebRadaev/billsplit/internal/cli"
)

//	@title			Billsplit API
//	@version		1.0
//	@description	Local client API for TON crowdfunding bills

// @host		localhost:8080
// @BasePath	/
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := cli.New(os.Stdin, os.Stdout).ExecuteContext(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Command failed")
		zap.L().Fatal("Command failed: ", zap.Error(err))
	}
}
