// ABOUTME: Entry point for the dash-gateway admin dashboard server
// ABOUTME: Serves nine record collections over a validated CRUD API

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/cleverdash/dash-gateway/internal/api"
	"github.com/cleverdash/dash-gateway/internal/client"
	"github.com/cleverdash/dash-gateway/internal/config"
	"github.com/cleverdash/dash-gateway/internal/seed"
	"github.com/cleverdash/dash-gateway/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
     _           _
  __| | __ _ ___| |__         __ _  __ _| |_ _____      ____ _ _   _
 / _' |/ _' / __| '_ \ _____ / _' |/ _' | __/ _ \ \ /\ / / _' | | | |
| (_| | (_| \__ \ | | |_____| (_| | (_| | ||  __/\ V  V / (_| | |_| |
 \__,_|\__,_|___/_| |_|      \__, |\__,_|\__\___| \_/\_/ \__,_|\__, |
                             |___/                             |___/
`

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: dash-gateway <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve    Start the dashboard API server")
		fmt.Println("  seed     Load the demo dataset into an empty store")
		fmt.Println("  health   Check server health")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "seed":
		err = runSeed(ctx)
	case "health":
		err = runHealth(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when none
// exists so a bare "dash-gateway serve" works out of the box.
func loadConfig() (*config.Config, string, error) {
	path := config.DefaultPath()
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), path + " (not found, using defaults)", nil
	}
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func runServe(ctx context.Context) error {
	// Print banner
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, configPath, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:  %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:    %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Store:   %s\n", describeStore(cfg.Store))
	fmt.Println()

	s, err := openStore(cfg.Store)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	logger.Info("starting dash-gateway",
		"http_addr", cfg.Server.HTTPAddr,
		"backend", cfg.Store.Backend,
	)

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           api.NewRouter(s, cfg.CORS.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runSeed(ctx context.Context) error {
	cfg, configPath, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(setupLogger(cfg.Logging))

	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)
	cyan.Printf("  Using config: %s\n", configPath)

	fixtures, err := seed.Load()
	if err != nil {
		return fmt.Errorf("loading fixtures: %w", err)
	}

	s, err := openStore(cfg.Store)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	n, err := seed.Apply(ctx, s, fixtures)
	if err != nil {
		return err
	}

	green.Printf("  ✓ Seeded %d records into %s\n", n, describeStore(cfg.Store))
	return nil
}

func runHealth(ctx context.Context) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	addr := cfg.Server.HTTPAddr
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}

	c := client.New("http://" + addr)
	if err := c.Health(ctx); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	fmt.Println("healthy")
	return nil
}

// openStore builds the configured store backend.
func openStore(cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return store.NewSQLiteStore(cfg.Path)
	case config.BackendMemory:
		return store.NewMemoryStore(), nil
	case config.BackendSurreal:
		return store.NewSurrealStore(store.SurrealConfig{
			URL:       cfg.URL,
			Namespace: cfg.Namespace,
			Database:  cfg.Database,
			User:      cfg.User,
			Pass:      cfg.Pass,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func describeStore(cfg config.StoreConfig) string {
	switch cfg.Backend {
	case config.BackendSQLite:
		return fmt.Sprintf("sqlite (%s)", filepath.Clean(cfg.Path))
	case config.BackendSurreal:
		return fmt.Sprintf("surreal (%s %s/%s)", cfg.URL, cfg.Namespace, cfg.Database)
	default:
		return cfg.Backend
	}
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = &colorHandler{
			level: level,
		}
	}

	return slog.New(handler)
}

// colorHandler provides colorized log output with thread-safe writes.
type colorHandler struct {
	mu     sync.Mutex
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf strings.Builder

	buf.WriteString(color.HiBlackString(r.Time.Format("15:04:05") + " "))

	switch r.Level {
	case slog.LevelDebug:
		buf.WriteString(color.MagentaString("DBG "))
	case slog.LevelInfo:
		buf.WriteString(color.CyanString("INF "))
	case slog.LevelWarn:
		buf.WriteString(color.YellowString("WRN "))
	case slog.LevelError:
		buf.WriteString(color.New(color.FgRed, color.Bold).Sprint("ERR "))
	default:
		buf.WriteString("??? ")
	}

	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
	}

	r.Attrs(func(a slog.Attr) bool {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
		return true
	})

	buf.WriteString("\n")
	fmt.Print(buf.String())
	return nil
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	newAttrs = append(newAttrs, attrs...)
	return &colorHandler{
		level:  h.level,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	newGroups := make([]string, len(h.groups), len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups = append(newGroups, name)
	return &colorHandler{
		level:  h.level,
		attrs:  h.attrs,
		groups: newGroups,
	}
}
