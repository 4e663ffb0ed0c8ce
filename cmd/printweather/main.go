package main

//go:generate go run github.com/swaggo/swag/cmd/swag@latest init -g main.go -o ../../docs --parseDependency

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	_ "time/tzdata" // embedded zone database

	_ "printweather/docs" // Import generated docs
	"printweather/internal/config"

	"github.com/joho/godotenv"
)

const (
	downloadIconsArg = "--download-icons"
	serveArg         = "--serve"
)

// @title printweather ticket API
// @version 1.0
// @description Serves today's weather ticket as an ESC-POS byte stream.
// @BasePath /
func main() {
	// Optional .env next to the working directory; existing variables win
	_ = godotenv.Load()

	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code. stdout only
// ever receives printer data; diagnostics go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	mode := ""
	if len(args) > 0 && (args[0] == downloadIconsArg || args[0] == serveArg) {
		mode = args[0]
		args = nil
	}

	// Load configuration
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// Initialize logger
	logger := cfg.NewLogger(stderr)
	slog.SetDefault(logger)

	app := NewApp(cfg, logger)

	switch mode {
	case downloadIconsArg:
		err = app.DownloadIcons(ctx)
	case serveArg:
		logger.Info("starting server", "addr", cfg.GetServerAddr())
		err = app.Run(cfg.GetServerAddr())
	default:
		err = app.PrintTicket(ctx, stdout)
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
