package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrezende/gymtotem/internal/envstruct"
	"github.com/mrezende/gymtotem/internal/logging"
	"github.com/mrezende/gymtotem/internal/plan"
	"github.com/mrezende/gymtotem/internal/sqlite"
	"github.com/mrezende/gymtotem/internal/store"
	"github.com/mrezende/gymtotem/internal/workout"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	templateFS     fs.FS
	workoutService *workout.Service
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"GYMTOTEM_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"GYMTOTEM_SQLITE_URL" envDefault:"./gymtotem.sqlite3"`
	// OpenAIAPIKey enables remote plan generation. Empty means every plan
	// comes from the local synthesizer.
	OpenAIAPIKey string `env:"OPENAI_API_KEY" envDefault:""`
	// TemplatePath is the path to the directory containing the HTML templates.
	TemplatePath string `env:"GYMTOTEM_TEMPLATE_PATH" envDefault:""`
	// SessionLifetimeHours is how long a kiosk login stays valid.
	SessionLifetimeHours int `env:"GYMTOTEM_SESSION_LIFETIME_HOURS" envDefault:"12"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return fmt.Errorf("populate config: %w", err)
	}

	var htmlTemplatePath string
	if htmlTemplatePath, err = resolveAndVerifyTemplatePath(cfg.TemplatePath); err != nil {
		return fmt.Errorf("resolve template path: %w", err)
	}

	sessionManager := initializeSessionManager(cfg.SessionLifetimeHours)
	generator := plan.NewGenerator(cfg.OpenAIAPIKey, logger)

	// A kiosk without a writable disk still has to serve workouts, so a
	// database failure degrades to the in-memory store instead of aborting.
	var workoutStore workout.Store
	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelWarn, "database unavailable, using in-memory store",
			slog.String("url", cfg.SqliteURL), slog.Any("error", err))
		workoutStore = store.NewMemoryStore()
	} else {
		logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")
		workoutStore = store.NewSQLiteStore(db, logger)
		sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite, 24*time.Hour) //nolint:mnd // day
	}

	app := application{
		logger:         logger,
		sessionManager: sessionManager,
		templateFS:     os.DirFS(htmlTemplatePath),
		workoutService: workout.NewService(workoutStore, generator, logger),
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

func initializeSessionManager(lifetimeHours int) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Lifetime = time.Duration(lifetimeHours) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", slog.Any("error", err))
		os.Exit(1)
	}
}
