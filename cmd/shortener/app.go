package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"
	"golang.org/x/sync/errgroup"

	"github.com/atinyakov/shortlink-registry/internal/app/server"
	grpcserver "github.com/atinyakov/shortlink-registry/internal/app/server/grpc"
	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/config"
	"github.com/atinyakov/shortlink-registry/internal/repository"
	"github.com/atinyakov/shortlink-registry/internal/storage"
	"github.com/atinyakov/shortlink-registry/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// openStorage picks the backend: PostgreSQL, then SQLite or libsql, then
// the journaled memory store, then plain memory.
func openStorage(ctx context.Context, opts *config.Options, logger *zap.Logger) (service.Storage, error) {
	switch {
	case opts.DatabaseDSN != "":
		logger.Info("using postgres")
		return openSQL(ctx, repository.Postgres, opts.DatabaseDSN, logger)
	case opts.SQLitePath != "":
		d := repository.DialectFor(opts.SQLitePath)
		logger.Info("using sqlite", zap.String("dialect", d.Name))
		return openSQL(ctx, d, opts.SQLitePath, logger)
	case opts.FilePath != "":
		logger.Info("using file", zap.String("filePath", opts.FilePath))
		return storage.NewFileStorage(opts.FilePath, logger)
	}

	logger.Info("using in memory storage")
	return storage.CreateMemoryStorage()
}

func openSQL(ctx context.Context, d repository.Dialect, dsn string, logger *zap.Logger) (service.Storage, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := repository.InitDB(ctx, d, dsn, logger)
	if err != nil {
		return nil, err
	}
	return repository.CreateLinkRepository(db, d, logger), nil
}

// App is the assembled process: services over one store, the click
// pipeline and both transports.
type App struct {
	Store   service.Storage
	Clicks  *worker.ClickWorker
	Reaper  *worker.Reaper
	Router  http.Handler
	GRPC    *grpcserver.Server
	Auth    *service.Auth
	options *config.Options
	logger  *zap.Logger
}

func NewApp(opts *config.Options, store service.Storage, logger *zap.Logger, svcOpts ...service.Option) (*App, error) {
	clicks := worker.NewClickWorker(logger, store, worker.ClickConfig{})

	namespaces := service.NewNamespaceService(store, logger, svcOpts...)
	alloc := service.NewAllocator(store, logger, svcOpts...)
	links := service.NewLinkService(store, alloc, namespaces, logger, opts.ResultHostname, opts.RootDomain, svcOpts...)
	resolver := service.NewResolver(store, namespaces, clicks, logger, svcOpts...)
	analytics := service.NewAnalytics(store)
	users := service.NewUserService(store, logger)
	auth := service.NewAuth(opts.JWTSecret, store, logger, svcOpts...)

	router, err := server.Init(server.Services{
		Links:      links,
		Namespaces: namespaces,
		Resolver:   resolver,
		Analytics:  analytics,
		Admin:      users,
		Users:      users,
		Auth:       auth,
	}, server.Options{
		RootDomain:    opts.RootDomain,
		TrustedSubnet: opts.TrustedSubnet,
		AnonymousRate: opts.AnonymousRate,
	}, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		Store:   store,
		Clicks:  clicks,
		Reaper:  worker.NewReaper(logger, store, opts.ReapInterval),
		Router:  router,
		GRPC:    grpcserver.New(logger, opts.GRPCPort, resolver, analytics, auth),
		Auth:    auth,
		options: opts,
		logger:  logger,
	}, nil
}

// Run serves until ctx is done, then shuts the transports down before
// draining the click queue.
func (a *App) Run(ctx context.Context) error {
	srv := a.httpServer()

	// workers outlive the transports so in-flight redirects can still
	// dispatch their clicks
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	var workers errgroup.Group
	workers.Go(func() error {
		a.Clicks.Run(workerCtx)
		return nil
	})
	workers.Go(func() error {
		a.Reaper.Run(workerCtx)
		return nil
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("Server is running", zap.String("hostname", srv.Addr), zap.Bool("tls", a.options.EnableHTTPS))
		var err error
		if a.options.EnableHTTPS {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		return a.GRPC.Start()
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		a.GRPC.GracefulStop()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()

	stopWorkers()
	_ = workers.Wait()

	if cerr := a.Store.Close(); cerr != nil {
		a.logger.Error("cannot close storage", zap.Error(cerr))
	}

	return err
}

func (a *App) httpServer() *http.Server {
	srv := &http.Server{
		Addr:              a.options.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if a.options.EnableHTTPS {
		manager := &autocert.Manager{
			Cache:      autocert.DirCache(a.options.CertCacheDir),
			Prompt:     autocert.AcceptTOS,
			HostPolicy: hostPolicy(a.options.RootDomain, a.options.ResultHostname),
		}
		srv.Addr = ":443"
		srv.TLSConfig = manager.TLSConfig()
	}

	return srv
}

// hostPolicy admits the base URL host, the root domain and every single
// label subdomain of it.
func hostPolicy(rootDomain, baseURL string) autocert.HostPolicy {
	allowed := map[string]bool{}
	if rootDomain != "" {
		allowed[rootDomain] = true
	}
	if host := hostOf(baseURL); host != "" {
		allowed[host] = true
	}

	return func(_ context.Context, host string) error {
		host = strings.ToLower(host)
		if allowed[host] {
			return nil
		}
		if rootDomain != "" {
			if label, ok := strings.CutSuffix(host, "."+rootDomain); ok && label != "" && !strings.Contains(label, ".") {
				return nil
			}
		}
		return errors.New("host not configured")
	}
}

func hostOf(baseURL string) string {
	s := strings.TrimPrefix(strings.TrimPrefix(baseURL, "https://"), "http://")
	s, _, _ = strings.Cut(s, "/")
	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}
	return s
}
