package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"

	"notes-api/internal/api/gateway"
	httpapi "notes-api/internal/api/http"
	"notes-api/internal/api/swagger"
	"notes-api/internal/config"
	"notes-api/internal/logging"
	"notes-api/internal/repository"
	"notes-api/internal/repository/memory"
	"notes-api/internal/repository/postgres"
	authorService "notes-api/internal/service/authors"
	noteService "notes-api/internal/service/notes"
)

// Server представляет HTTP сервер приложения вместе с хранилищем
type Server struct {
	Config   *config.Config
	Log      logging.Logger
	HTTPAddr string

	// Store можно задать до Initialize, иначе он создается по конфигу
	Store   repository.Store
	Handler http.Handler

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
}

// NewServer создает новый экземпляр сервера
func NewServer(cfg *config.Config, log logging.Logger) *Server {
	cfg.ApplyDefaults()

	return &Server{
		Config:   cfg,
		Log:      log,
		HTTPAddr: "0.0.0.0:" + strconv.Itoa(cfg.Server.PortHTTP),
	}
}

// Initialize инициализирует компоненты сервера (Store → Service → Handler → Router → Gateway)
func (s *Server) Initialize(ctx context.Context) error {
	if s.Store == nil {
		store, err := openStore(ctx, s.Config.Database)
		if err != nil {
			return err
		}
		s.Store = store
	}
	s.Log.Info(ctx, "storage initialized", "driver", s.Config.Database.Driver)

	authors := authorService.NewAuthorService(s.Store.Authors())
	notes := noteService.NewNoteService(s.Store.Notes(), s.Store.Authors())
	handler := httpapi.NewHandler(authors, notes, s.Log)

	opts := httpapi.RouterOptions{
		Prefix: s.Config.Server.APIPrefix,
		Health: s.Store,
	}
	if s.Config.Swagger.Enabled {
		opts.Swagger = swagger.Handler(s.Config.Server.APIPrefix)
		s.Log.Info(ctx, "openapi document available", "path", "/swagger.json")
	}

	router := httpapi.NewRouter(handler, opts)
	s.Handler = gateway.New(router, s.Config.Gateway, s.Log)

	return nil
}

// openStore создает хранилище выбранного в конфиге типа
func openStore(ctx context.Context, cfg *config.ConfigDatabase) (repository.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverPostgres:
		store, err := postgres.Open(ctx, postgres.Options{
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: config.Seconds(cfg.ConnMaxLifetime),
			AutoMigrate:     cfg.AutoMigrate,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Start запускает HTTP сервер в горутине.
// Возвращает канал ошибок для отслеживания ошибок сервера.
func (s *Server) Start() <-chan error {
	errChan := make(chan error, 1)

	listener, err := net.Listen("tcp", s.HTTPAddr)
	if err != nil {
		errChan <- fmt.Errorf("failed to listen on %s: %w", s.HTTPAddr, err)
		return errChan
	}

	srv := &http.Server{
		Handler:           s.Handler,
		ReadTimeout:       config.Seconds(s.Config.Server.HTTPReadTimeout),
		WriteTimeout:      config.Seconds(s.Config.Server.HTTPWriteTimeout),
		IdleTimeout:       config.Seconds(s.Config.Server.HTTPIdleTimeout),
		ReadHeaderTimeout: config.Seconds(s.Config.Server.HTTPReadHeaderTimeout),
	}

	s.mu.Lock()
	s.httpServer = srv
	s.listener = listener
	s.mu.Unlock()

	go func() {
		s.Log.Info(context.Background(), "http server listening", "addr", listener.Addr().String())
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	return errChan
}

// Addr возвращает фактический адрес сервера после Start
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown выполняет graceful shutdown: дожидается активных запросов, затем закрывает хранилище
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), config.Seconds(s.Config.Server.GracefulShutdownTimeout))
	defer cancel()

	s.Log.Info(ctx, "starting graceful shutdown")

	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	var errs []error
	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.Log.Warn(ctx, "graceful shutdown timeout, forcing stop", "error", err)
			errs = append(errs, err, srv.Close())
		} else {
			s.Log.Info(ctx, "http server stopped gracefully")
		}
	}

	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close store: %w", err))
		}
	}

	return errors.Join(errs...)
}
