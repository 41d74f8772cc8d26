package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/CrestNiraj12/rivalsnexus/community"
	"github.com/CrestNiraj12/rivalsnexus/infra/accounts"
	"github.com/CrestNiraj12/rivalsnexus/infra/auth"
	"github.com/CrestNiraj12/rivalsnexus/infra/clipboard"
	"github.com/CrestNiraj12/rivalsnexus/infra/config"
	"github.com/CrestNiraj12/rivalsnexus/infra/editor"
	"github.com/CrestNiraj12/rivalsnexus/infra/mongodb"
	"github.com/CrestNiraj12/rivalsnexus/infra/storage"
	"github.com/CrestNiraj12/rivalsnexus/server"
	"github.com/CrestNiraj12/rivalsnexus/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const shutdownTimeout = 10 * time.Second

type cliMode int

const (
	cliRun cliMode = iota
	cliServe
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "serve":
		return cliServe, ""
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: rivalsnexus [serve] [--version|-version|-v] [--help|-h]\n\n" +
		"  (no args)  open the community feed\n" +
		"  serve      run the account API"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		if mv := strings.TrimSpace(moduleVersion); mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		if rev := strings.TrimSpace(settings["vcs.revision"]); rev != "" {
			c = rev[:min(len(rev), 12)]
		}
	}
	if d == "unknown" {
		if t := strings.TrimSpace(settings["vcs.time"]); t != "" {
			d = t
		}
	}
	return v, c, d
}

func runtimeVersionInfo() (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return version, commit, date
	}
	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	return resolveVersionInfo(version, commit, date, info.Main.Version, settings)
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := runtimeVersionInfo()
		fmt.Printf("Rivals Nexus %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	}

	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	var err error
	if mode == cliServe {
		err = runServer()
	} else {
		err = runClient()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "rivalsnexus: %v\n", err)
		os.Exit(1)
	}
}

// openDurable opens the configured durable backend. The returned close
// function is never nil.
func openDurable(cfg config.Config) (storage.Store, func() error, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.StorePath()), 0o700); err != nil {
			return nil, nil, fmt.Errorf("creating data dir: %w", err)
		}
		db, err := storage.OpenSQLite(cfg.StorePath(), cfg.StorageQuota)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		f, err := storage.OpenFile(cfg.StorePath(), cfg.StorageQuota)
		if err != nil {
			return nil, nil, err
		}
		return f, func() error { return nil }, nil
	}
}

func openLog(path string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo})), f, nil
}

func runClient() error {
	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger, logFile, err := openLog(cfg.LogPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	// 2. Build storage. The session scope lives as long as the process.
	durable, closeDurable, err := openDurable(cfg)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer closeDurable()
	session := storage.NewMemory(cfg.StorageQuota)

	// 3. Build services (concrete types satisfy app.* interfaces).
	store := community.NewStore(durable, community.WithLogger(logger))
	if n, err := store.SeedIfMissing(); err != nil {
		logger.Warn("seeding posts", "err", err)
	} else if n > 0 {
		logger.Info("seeded posts", "count", n)
	}
	sides := community.NewSideTables(durable, logger)
	resolver := community.NewResolver(durable, session, logger)
	tokens := auth.NewStoreTokenProvider(durable, community.KeyAuthToken)
	accountSvc := accounts.NewService(accounts.NewClient(cfg.APIURL, tokens))

	uiState, err := config.LoadUIState(cfg.UIStatePath)
	if err != nil {
		logger.Warn("loading ui state", "err", err)
	}

	// 4. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Feed:        store,
		Sides:       sides,
		Maintenance: store,
		Identity:    resolver,
		Accounts:    accountSvc,
		Editor:      editor.NewEnvEditor(),
		Clipboard:   clipboard.NewSystem(),
		ShareBase:   cfg.ShareBase,
		BackupDir:   filepath.Join(cfg.DataDir, "backups"),
		StatePath:   cfg.UIStatePath,
		UIState:     uiState,
		Logger:      logger,
	})

	// 5. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runServer() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			logger.Error("disconnecting mongo", "err", err)
		}
	}()
	users, err := mongodb.NewUsers(ctx, client.Database(cfg.Database))
	if err != nil {
		return err
	}
	logger.Info("connected to mongo", "database", cfg.Database)

	if os.Getenv("GIN_MODE") != gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.New(users, server.NewLogMailer(logger), server.Config{
		AdminEmail:  cfg.AdminEmail,
		JWTSecret:   []byte(cfg.JWTSecret),
		CORSOrigins: cfg.CORSOrigins,
	}, logger)

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("account API listening", "addr", cfg.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(sctx)
}
