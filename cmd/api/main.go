package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/azmy/lootledger/docs"
	"github.com/azmy/lootledger/internal/auth"
	"github.com/azmy/lootledger/internal/config"
	"github.com/azmy/lootledger/internal/database"
	"github.com/azmy/lootledger/internal/drop"
	"github.com/azmy/lootledger/internal/player"
	"github.com/azmy/lootledger/internal/recalc"
	"github.com/azmy/lootledger/internal/run"
	"github.com/azmy/lootledger/internal/sale"
	"github.com/azmy/lootledger/internal/stats"
	"github.com/azmy/lootledger/internal/summary"
	"github.com/azmy/lootledger/internal/user"
	"github.com/azmy/lootledger/pkg/logging"
	mw "github.com/azmy/lootledger/pkg/middleware"
)

// @title           LootLedger API
// @version         1.0
// @description     Loot-run proceeds splitting and entry-fee recovery service.
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	logging.Setup()
	logger := slog.Default()

	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	logger.Info("connected to database")

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Repositories
	userRepo := user.NewRepository(db)
	playerRepo := player.NewRepository(db)
	runRepo := run.NewRepository(db)
	dropRepo := drop.NewRepository(db)
	saleRepo := sale.NewRepository(db)
	statsRepo := stats.NewRepository(db)

	// The recalculator sits under every feature that moves money.
	recalcService := recalc.NewService(runRepo, saleRepo, logger)

	// Feature services
	userService := user.NewService(userRepo, jwtManager)
	playerService := player.NewService(playerRepo)
	runService := run.NewService(runRepo, playerRepo, recalcService)
	dropService := drop.NewService(dropRepo, runRepo, recalcService)
	saleService := sale.NewService(saleRepo, runRepo, dropRepo, recalcService)
	summaryService := summary.NewService(runRepo, dropRepo, saleRepo)
	statsService := stats.NewService(statsRepo, playerRepo)

	// Feature handlers
	userHandler := user.NewHandler(userService, mw.Auth(jwtManager))
	playerHandler := player.NewHandler(playerService)
	runHandler := run.NewHandler(runService)
	dropHandler := drop.NewHandler(dropService)
	saleHandler := sale.NewHandler(saleService)
	summaryHandler := summary.NewHandler(summaryService)
	statsHandler := stats.NewHandler(statsService)

	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes: reads are public, writes need a signed-in host.
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", userHandler.Routes())

		r.Group(func(r chi.Router) {
			r.Use(mw.WriteGuard(jwtManager, string(user.RoleHost)))

			r.Mount("/players", playerHandler.Routes())
			r.Mount("/runs", runHandler.Routes())
			r.Mount("/sales", saleHandler.Routes())
			r.Mount("/summaries", summaryHandler.Routes())
			r.Mount("/stats", statsHandler.Routes())
		})

		// Runners can record and correct drops; everything else is host-only.
		r.Group(func(r chi.Router) {
			r.Use(mw.WriteGuard(jwtManager, string(user.RoleHost), string(user.RoleRunner)))

			r.Mount("/drops", dropHandler.Routes())
		})
	})

	logger.Info("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
