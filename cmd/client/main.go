package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cbodonnell/textquest/client/app"
	"github.com/cbodonnell/textquest/client/game"
	"github.com/cbodonnell/textquest/pkg/config"
	"github.com/cbodonnell/textquest/pkg/log"
	"github.com/cbodonnell/textquest/pkg/telemetry"
	"github.com/cbodonnell/textquest/pkg/version"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic(fmt.Sprintf("Failed to load .env: %v", err))
	}
	cfg, err := config.LoadClientConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	serverURL := flag.String("server-url", cfg.ServerURL, "Game server base URL")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level")
	logFile := flag.String("log-file", cfg.LogFile, "File to write logs to")
	messageLimit := flag.Int("message-limit", cfg.MessageLimit, "Maximum number of messages to keep (0 keeps all)")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	// the terminal belongs to the UI, so logs go to a file
	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		panic(fmt.Sprintf("Failed to open log file: %v", err))
	}
	defer f.Close()

	logger := log.New(f, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)
	log.Info("Starting client version %s", version.Get())

	ctx := context.Background()
	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx, "textquest-client", version.Get())
		if err != nil {
			log.Warn("Telemetry setup failed: %v", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Error("Failed to shut down telemetry: %v", err)
				}
			}()
		}
	}

	a := app.New(app.NewAppOptions{
		ServerURL:      *serverURL,
		RequestTimeout: cfg.RequestTimeout,
		MessageLimit:   *messageLimit,
	})
	if err := a.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start app: %v", err))
	}
	defer func() {
		if err := a.Stop(); err != nil {
			log.Error("Failed to stop app: %v", err)
		}
	}()

	log.Info("Connecting to %s", a.ServerURL())
	if _, err := tea.NewProgram(game.NewGame(a), tea.WithAltScreen()).Run(); err != nil {
		log.Error("Failed to run game: %v", err)
	}
}
