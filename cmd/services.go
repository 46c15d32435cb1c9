package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/xvierd/pomodoro-timer/internal/adapters/audio"
	"github.com/xvierd/pomodoro-timer/internal/adapters/git"
	"github.com/xvierd/pomodoro-timer/internal/adapters/notification"
	"github.com/xvierd/pomodoro-timer/internal/adapters/storage"
	"github.com/xvierd/pomodoro-timer/internal/config"
	"github.com/xvierd/pomodoro-timer/internal/ports"
	"github.com/xvierd/pomodoro-timer/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config   *config.Config
	logger   *slog.Logger
	logFile  *os.File
	store    *storage.SettingsStore
	notifier *notification.Notifier
	audio    *audio.Player
	timer    *services.TimerService
	git      ports.GitDetector
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	var err error
	app.config, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		app.config = config.DefaultConfig()
	}

	if err := os.MkdirAll(app.config.Storage.DataDir, 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := initializeLogger(); err != nil {
		return err
	}

	if dbPath == "" {
		dbPath = config.GetDBPath(app.config)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	app.store, err = storage.New(dbPath, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.notifier = notification.New(&app.config.Notifications, app.logger)
	app.audio = audio.New(app.config.Audio, app.logger)
	app.git = git.NewDetector()
	app.timer = services.NewTimerService(app.store, app.notifier, app.audio, services.TimerOptions{
		TickInterval: time.Duration(app.config.Timer.TickInterval),
		Logger:       app.logger,
	})

	return nil
}

// initializeLogger writes structured logs to the log file, or to stderr when
// the terminal is not taken over by the TUI.
func initializeLogger() error {
	name := app.config.Log.Level
	if logLevel != "" {
		name = logLevel
	}
	level, err := config.ParseLevel(name)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	if !headless {
		f, err := os.OpenFile(config.GetLogPath(app.config), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		app.logFile = f
		w = f
	}

	app.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(app.logger)
	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.timer != nil {
		app.timer.Close()
	}
	if app.audio != nil {
		_ = app.audio.Close()
	}
	if app.notifier != nil {
		app.notifier.Wait()
	}
	var err error
	if app.store != nil {
		err = app.store.Close()
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
	}
	return err
}

// setupSignalHandler returns a context that is cancelled on interrupt signals.
func setupSignalHandler(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// startTimer loads the persisted settings and runs the tick loop in the
// background. The returned function stops the loop and waits for it.
func startTimer(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	app.timer.Init(ctx)

	done := make(chan error, 1)
	go func() {
		done <- app.timer.Run(ctx)
	}()

	return ctx, func() {
		cancel()
		if err := <-done; err != nil {
			app.logger.Error("tick loop stopped", "error", err)
		}
	}
}

// currentBranch returns the git branch of the working directory, or "" if
// it is not inside a repository.
func currentBranch(ctx context.Context) string {
	if app.git == nil || !app.git.IsAvailable() {
		return ""
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	branch, err := app.git.Branch(ctx, wd)
	if err != nil {
		app.logger.Debug("no git branch", "dir", wd, "error", err)
		return ""
	}
	return branch
}
