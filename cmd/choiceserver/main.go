package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"autolight/internal/choiceserver"
	"autolight/internal/config"
)

func main() {
	if err := config.Initialize(config.InitOptions(os.Args[1:])...); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}

	addrFlag := flag.String("addr", config.GetString(config.KeyServerAddr), "Listen address")
	dbFlag := flag.String("db", config.GetString(config.KeyServerDatabase), "SQLite database path (empty keeps choices in memory)")
	jsonFlag := flag.Bool("json", false, "Log as JSON")
	flag.String(config.ConfigFlag, "", "Config file used instead of the nearest .autolight/config.yaml")
	flag.Parse()

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, nil)
	if *jsonFlag {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := choiceserver.Run(ctx, choiceserver.Options{
		Addr:     *addrFlag,
		Database: *dbFlag,
		Logger:   logger,
	}); err != nil {
		logger.Error("choice server failed", "error", err)
		os.Exit(1)
	}
}
