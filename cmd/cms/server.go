package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"tearoomcms/docs"
	"tearoomcms/internal/auth"
	"tearoomcms/internal/config"
	"tearoomcms/internal/content"
	"tearoomcms/internal/docstore"
	handlers "tearoomcms/internal/http/handler"
	"tearoomcms/internal/http/middleware"
	"tearoomcms/internal/notify"
	"tearoomcms/internal/otel"
	"tearoomcms/internal/service"
	"tearoomcms/internal/web"
)

const (
	// bodyLimit leaves room for a 10MB menu plus the multipart envelope.
	bodyLimit       = 12 << 20
	shutdownTimeout = 10 * time.Second

	storeRecheckTimeout = 10 * time.Second
)

// server is the running CMS web service.
type server struct {
	app           *fiber.App
	store         docstore.Store
	stopRefresh   context.CancelFunc
	stopTracing   func(context.Context) error
	refreshPeriod time.Duration
	content       *content.Manager
}

// newServer wires configuration, stores, services and routes. Neither a configuration error nor
// an unreachable document store fails: the public site is served from static data and /admin
// shows the error page.
func newServer(ctx context.Context, appCfg *config.AppConfig, reg *prometheus.Registry) (*server, error) {
	stopTracing, err := otel.Init(ctx, appCfg.AppName)
	if err != nil {
		return nil, errors.Wrap(err, "init tracing")
	}

	client := otel.NewHTTPClient(otel.DefaultClientTimeout)
	opts := []content.Option{
		content.WithFeed(content.NewGraphFeed("", client)),
		content.WithContactEmail(appCfg.Site.ContactEmail),
	}
	static := os.DirFS(appCfg.Site.DataDir)

	s := &server{stopTracing: stopTracing, refreshPeriod: appCfg.Site.RefreshInterval}
	deps := handlers.Deps{}

	loader := config.NewLoader(appCfg.ConfigFile)
	cfg, cfgErr := loader.Load()
	if cfgErr != nil {
		log.Error().Err(cfgErr).Msg("admin panel disabled by configuration error")

		deps.ConfigErr = cfgErr
		deps.Recheck = func() error {
			_, err := loader.Load()
			return err
		}
		s.content = content.NewManager(content.Sources{}, static, opts...)
	} else if store, err := connect(ctx, cfg.Store, reg); err != nil {
		log.Error().Err(err).Msg("admin panel disabled: document store unavailable, serving static data")

		deps.ConfigErr = errors.Wrap(err, "document store unavailable")
		deps.Recheck = recheckStore(cfg.Store)
		s.content = content.NewManager(content.Sources{}, static, opts...)
	} else {
		s.store = store
		deps.Store = store

		admin, repos, err := newAdmin(ctx, appCfg, cfg, store, client, reg)
		if err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
		deps.Admin = admin
		s.content = content.NewManager(repos.sources(), static, opts...)
	}
	deps.Content = s.content

	app, err := newApp(appCfg, reg)
	if err != nil {
		return nil, err
	}
	handlers.RegisterRoutes(app, deps)
	s.app = app

	return s, nil
}

// recheckStore connects once more for the retry link of the error page and closes the connection.
func recheckStore(cfg *config.StoreConfig) func() error {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), storeRecheckTimeout)
		defer cancel()

		store, err := connect(ctx, cfg, nil)
		if err != nil {
			return errors.Wrap(err, "document store unavailable")
		}
		return store.Close(ctx)
	}
}

func newAdmin(
	ctx context.Context,
	appCfg *config.AppConfig,
	cfg *config.Config,
	store docstore.Store,
	client *http.Client,
	reg prometheus.Registerer,
) (*handlers.Admin, repositories, error) {
	repos := newRepositories(store)

	files, err := openFiles(ctx, cfg, client)
	if err != nil {
		return nil, repos, errors.Wrap(err, "open file store")
	}

	notifier, err := notify.NewDispatch(cfg.Repo, client, reg)
	if err != nil {
		return nil, repos, errors.Wrap(err, "create build trigger")
	}

	secret := appCfg.Session.Secret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn().Msg("SESSION_SECRET is not set: using a random secret, sessions end on restart")
	}
	sessions, err := auth.NewSessions(secret, appCfg.Session.TTL)
	if err != nil {
		return nil, repos, err
	}

	provider := auth.NewIdentityToolkit(cfg.Store.AuthDomain, cfg.Store.APIKey, client)
	authSvc := auth.NewService(provider, sessions, cfg.Store.AdminEmail)

	svc := handlers.AdminServices{
		Carousel:  service.NewCarouselService(files, repos.carousel, notifier, time.Now),
		Menus:     service.NewMenuService(files, repos.menus, notifier, time.Now),
		Instagram: service.NewInstagramService(repos.settings, notifier, time.Now),
		Jobs:      service.NewJobService(repos.jobs, notifier, time.Now),
	}

	log.Info().
		Str("store", cfg.Store.Driver).
		Str("files", cfg.FileBackend()).
		Str("admin", cfg.Store.AdminEmail).
		Msg("admin panel enabled")

	return handlers.NewAdmin(authSvc, svc, appCfg.DevMode), repos, nil
}

func newApp(appCfg *config.AppConfig, reg *prometheus.Registry) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:      appCfg.AppName,
		BodyLimit:    bodyLimit,
		Views:        web.NewEngine(appCfg.DevMode),
		ErrorHandler: handlers.ErrorHandler(),
	})

	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, errors.Wrap(err, "register http metrics")
	}

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(metrics.Handler())
	app.Use(otelfiber.Middleware())

	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(web.StaticFS()),
		MaxAge: 3600,
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	return app, nil
}

// Start runs the public refresh loop and serves HTTP until the server is shut down.
func (s *server) Start(addr string) error {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopRefresh = cancel
	go s.content.Run(ctx, s.refreshPeriod)

	log.Info().Str("addr", addr).Msg("starting http server")
	if err := s.app.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "listen")
	}
	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM and then stops the HTTP server.
func (s *server) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	if s.stopRefresh != nil {
		s.stopRefresh()
	}

	log.Info().Msg("stopping http server ...")
	if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("")
	}
}

// Close releases the document store and flushes traces.
func (s *server) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.store != nil {
		if err := s.store.Close(ctx); err != nil {
			log.Error().Err(err).Msg("failed to close document store")
		}
	}
	if err := s.stopTracing(ctx); err != nil {
		log.Error().Err(err).Msg("failed to flush traces")
	}
	log.Info().Msg("http server was stopped ... good bye...")
}
