package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/config"
	"github.com/atinyakov/shortlink-registry/internal/logger"

	_ "net/http/pprof"
)

var buildVersion string
var buildDate string
var buildCommit string

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func main() {
	fmt.Printf("Build version: %s\n", orNA(buildVersion))
	fmt.Printf("Build date: %s\n", orNA(buildDate))
	fmt.Printf("Build commit: %s\n", orNA(buildCommit))

	options, err := config.Parse()
	if err != nil {
		panic(err)
	}

	zapLogger, err := logger.New(options.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	if options.JWTSecret == "" {
		zapLogger.Warn("JWT secret is empty, tokens are trivially forgeable")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if options.EnablePprof {
		go func() {
			zapLogger.Info("Starting pprof server", zap.String("addr", "localhost:6060"))
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				zapLogger.Error("pprof server error", zap.Error(err))
			}
		}()
	}

	store, err := openStorage(ctx, options, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot open storage", zap.Error(err))
	}

	app, err := NewApp(options, store, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot assemble app", zap.Error(err))
	}

	if err := app.Run(ctx); err != nil {
		zapLogger.Error("server stopped", zap.Error(err))
	}
}
