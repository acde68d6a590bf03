// Package app wires the collaborators around the pure task engine: config,
// logger, vault, preset database, conversion client and undo history.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/a-marczewski/todotxt/internal/ai"
	"github.com/a-marczewski/todotxt/internal/config"
	"github.com/a-marczewski/todotxt/internal/history"
	"github.com/a-marczewski/todotxt/internal/logging"
	"github.com/a-marczewski/todotxt/internal/storage"
	"github.com/a-marczewski/todotxt/internal/vault"
)

// App holds the application components. The task engine itself is pure and
// stateless; everything stateful lives here.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Vault   *vault.Vault
	DB      *storage.DB
	Presets *storage.PresetStore
	AI      *ai.Client

	// History snapshots whole todo.txt documents, newest on top.
	History *history.History[string]

	Ctx    context.Context
	Cancel context.CancelFunc
}

// NewApp initializes and returns a new App instance.
func NewApp() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.EnsureDirs(cfg.TodotxtDir); err != nil {
		return nil, fmt.Errorf("failed to prepare %s: %w", cfg.TodotxtDir, err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to open preset database", zap.Error(err))
		return nil, fmt.Errorf("failed to open preset database: %w", err)
	}

	aiClient := ai.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, ai.RetryPolicy{
		MaxRetries:   cfg.AIMaxRetries,
		InitialDelay: time.Duration(cfg.AIRetryDelayMs) * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Vault:   vault.New(cfg.VaultRoot),
		DB:      db,
		Presets: storage.NewPresetStore(db),
		AI:      aiClient,
		History: history.New[string](cfg.HistorySize),
		Ctx:     ctx,
		Cancel:  cancel,
	}
	a.loadHistory()
	return a, nil
}

// TodoPath returns the configured todo file path, vault-relative unless the
// config names an absolute path.
func (a *App) TodoPath() string {
	if filepath.IsAbs(a.Config.TodoFile) {
		return a.Config.TodoFile
	}
	return a.Vault.Resolve(a.Config.TodoFile)
}

func (a *App) historyPath() string {
	return filepath.Join(a.Config.TodotxtDir, "history.json")
}

// loadHistory restores document snapshots recorded by earlier runs. A
// missing or unreadable history file starts fresh.
func (a *App) loadHistory() {
	data, err := a.Vault.Read(a.historyPath())
	if err != nil || data == "" {
		return
	}
	var snap history.Snapshot[string]
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		a.Logger.Warn("Discarding unreadable history file", zap.Error(err))
		return
	}
	a.History.Restore(snap)
}

func (a *App) saveHistory() error {
	data, err := json.Marshal(a.History.Export())
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return a.Vault.Write(a.historyPath(), string(data))
}

// LoadDocument reads the todo document and seeds the undo history with the
// current state when the history is empty.
func (a *App) LoadDocument() (string, error) {
	content, err := a.Vault.Read(a.TodoPath())
	if err != nil {
		return "", err
	}
	if a.History.Len() == 0 {
		a.History.Push(content)
	}
	return content, nil
}

// SaveDocument writes the todo document and records the new state as the
// current undo snapshot.
func (a *App) SaveDocument(content string) error {
	if err := a.Vault.Write(a.TodoPath(), content); err != nil {
		return err
	}
	a.History.Push(content)
	return a.saveHistory()
}

// Undo restores the previous document state. The second return is false
// when no earlier state is recorded.
func (a *App) Undo() (string, bool, error) {
	content, ok := a.History.Undo()
	if !ok {
		return "", false, nil
	}
	if err := a.Vault.Write(a.TodoPath(), content); err != nil {
		return "", false, err
	}
	return content, true, a.saveHistory()
}

// Redo reapplies the most recently undone document state.
func (a *App) Redo() (string, bool, error) {
	content, ok := a.History.Redo()
	if !ok {
		return "", false, nil
	}
	if err := a.Vault.Write(a.TodoPath(), content); err != nil {
		return "", false, err
	}
	return content, true, a.saveHistory()
}

// Close gracefully shuts down the application resources.
func (a *App) Close() {
	if a.Cancel != nil {
		a.Cancel()
	}

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Error("Failed to close preset database", zap.Error(err))
		}
	}
	if a.Logger != nil {
		if err := a.Logger.Sync(); err != nil {
			// Sync on stderr-backed writers fails on some platforms.
			if !strings.Contains(err.Error(), "invalid argument") &&
				!strings.Contains(err.Error(), "bad file descriptor") &&
				!strings.Contains(err.Error(), "inappropriate ioctl for device") {
				fmt.Fprintf(os.Stderr, "Error syncing logger: %v\n", err)
			}
		}
	}
}

// ContextWithLogger returns a new context carrying the application's logger.
func (a *App) ContextWithLogger(ctx context.Context) context.Context {
	return logging.ContextWithLogger(ctx, a.Logger)
}

// LoggerFromContext retrieves the logger from the given context, or returns
// the default app logger.
func (a *App) LoggerFromContext(ctx context.Context) *zap.Logger {
	if logger, ok := logging.LoggerFromContext(ctx); ok {
		return logger
	}
	return a.Logger
}
