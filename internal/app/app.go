package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	chimw "github.com/go-chi/chi/middleware"
	"go.uber.org/zap"

	"github.com/drstein77/shopcart/internal/config"
	"github.com/drstein77/shopcart/internal/controllers"
	"github.com/drstein77/shopcart/internal/dbkeeper"
	"github.com/drstein77/shopcart/internal/logger"
	"github.com/drstein77/shopcart/internal/middleware"
	"github.com/drstein77/shopcart/internal/storage"
)

type Server struct {
	srv     *http.Server
	ctx     context.Context
	storage *storage.MemoryStorage
	Log     *logger.Logger

	shutdownOnce sync.Once
}

// NewServer reads the configuration and builds the storage and HTTP server.
func NewServer(ctx context.Context) (*Server, error) {
	option := config.NewOptions()
	option.ParseFlags()

	nLogger, err := logger.NewLogger(option.LogLevel())
	if err != nil {
		return nil, err
	}

	return newServer(ctx, option, nLogger)
}

func newServer(ctx context.Context, option *config.Options, nLogger *logger.Logger) (*Server, error) {
	// storage.Keeper must stay a nil interface when no database is configured
	var keeper storage.Keeper
	if option.DataBaseDSN() != "" {
		kp, err := dbkeeper.NewDBKeeper(ctx, option.DataBaseDSN, option.MigrationsPath, nLogger)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		keeper = kp
	} else {
		nLogger.Info("no database configured, using in-memory catalog")
	}

	st, err := storage.NewMemoryStorage(ctx, keeper, nLogger)
	if err != nil {
		if keeper != nil {
			keeper.Close()
		}
		return nil, err
	}

	basecontr := controllers.NewBaseController(st, nLogger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(nLogger))
	r.Mount("/", basecontr.Route())

	return &Server{
		srv: &http.Server{
			Addr:    option.RunAddr(),
			Handler: r,
		},
		ctx:     ctx,
		storage: st,
		Log:     nLogger,
	}, nil
}

// Serve blocks until the server is shut down.
func (server *Server) Serve() error {
	server.Log.Info("starting server", zap.String("addr", server.srv.Addr))

	if err := server.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		server.Log.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for active ones and releases
// storage. Only the first call has any effect.
func (server *Server) Shutdown(timeout time.Duration) {
	server.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(server.ctx, timeout)
		defer cancel()

		if err := server.srv.Shutdown(ctx); err != nil {
			server.Log.Error("graceful shutdown failed", zap.Error(err))
		}
		server.storage.Close()
		server.Log.Info("server stopped")
		_ = server.Log.Sync()
	})
}
