package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Simplici0/partquote/internal/config"
	"github.com/Simplici0/partquote/internal/db"
	"github.com/Simplici0/partquote/internal/ids"
	"github.com/Simplici0/partquote/internal/logging"
	"github.com/Simplici0/partquote/internal/metrics"
	"github.com/Simplici0/partquote/internal/migrations"
	"github.com/Simplici0/partquote/internal/seed"
	"github.com/Simplici0/partquote/internal/session"
	"github.com/Simplici0/partquote/internal/store"
)

type server struct {
	log      *zap.Logger
	sessions *session.Manager
	store    *store.Store
	clock    *ids.Clock
	now      func() time.Time
}

func main() {
	cfg, warnings := config.Load()

	logger, err := logging.New(logging.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.IsDev(),
		Service:     "partquote",
	})
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	for _, w := range warnings {
		logger.Warn("configuration", zap.String("warning", w))
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := migrations.Up(ctx, database); err != nil {
		return err
	}

	if cfg.Seed {
		stats, err := seed.Run(ctx, database, time.Now())
		if err != nil {
			return err
		}
		logger.Info("seed complete", zap.Int("inserts", stats.Inserts))
	}

	clock := ids.NewClock(nil)
	srv := &server{
		log:      logger,
		sessions: session.NewManager(logger),
		store:    store.New(database, clock),
		clock:    clock,
		now:      time.Now,
	}
	go srv.sweepSessions(ctx, cfg.SessionIdle)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.Env))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)

		r.Post("/sessions", s.handleSessionCreate)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleSessionGet)
			r.Post("/quote", s.handleQuoteSubmit)

			r.Post("/parts", s.handlePartAdd)
			r.Post("/parts/files", s.handlePartsFromFiles)
			r.Route("/parts/{partID}", func(r chi.Router) {
				r.Patch("/", s.handlePartUpdate)
				r.Delete("/", s.handlePartRemove)
				r.Post("/duplicate", s.handlePartDuplicate)
				r.Post("/variations", s.handlePartVariation)
				r.Post("/select", s.handlePartSelect)
				r.Post("/step", s.handlePartStep)
				r.Post("/focus", s.handlePartFocus)
				r.Get("/options", s.handlePartOptions)
				r.Post("/drawing", s.handleDrawingAttach)
				r.Delete("/drawing", s.handleDrawingRemove)
			})
		})

		r.Get("/quotes", s.handleQuotesList)
		r.Get("/quotes/{quoteID}", s.handleQuoteGet)
		r.Post("/checkout/{quoteID}/confirm", s.handleCheckoutConfirm)
		r.Get("/orders/{orderID}", s.handleOrderGet)

		r.Get("/user/addresses", s.handleAddressesList)
		r.Post("/user/addresses", s.handleAddressCreate)
		r.Put("/user/addresses/{id}", s.handleAddressUpdate)
		r.Delete("/user/addresses/{id}", s.handleAddressDelete)
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sweepInterval is how often idle sessions are swept; never below a second.
func sweepInterval(maxIdle time.Duration) time.Duration {
	return max(maxIdle/4, time.Second)
}

func (s *server) sweepSessions(ctx context.Context, maxIdle time.Duration) {
	ticker := time.NewTicker(sweepInterval(maxIdle))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sessions.Sweep(maxIdle)
			metrics.SessionsActive.Set(float64(s.sessions.Len()))
		}
	}
}
