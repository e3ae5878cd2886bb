package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/config"
	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/gemini"
	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/server"
	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/store"
	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/wizard"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// .env is optional; plain environment variables work too.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	dataDir, err := store.DataDir(cfg.DataDir)
	if err != nil {
		return err
	}
	st, err := store.Open(filepath.Join(dataDir, "promptgen.db"), logger)
	if err != nil {
		return err
	}
	defer st.Close()

	// A missing API key is surfaced as a configuration error in the UI,
	// not a startup failure.
	client, err := gemini.New(ctx, cfg.Key(), cfg.Model, logger)
	if err != nil {
		return err
	}

	ctrl := wizard.New(client, st, logger)

	srv, err := server.New(ctrl, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	if err := srv.Listen(cfg.Addr()); err != nil {
		return err
	}

	if cfg.OpenBrowser {
		openBrowser("http://" + srv.Addr())
	}

	return srv.Serve(ctx)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return
	}
	cmd.Start()
}
