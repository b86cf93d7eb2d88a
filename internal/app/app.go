package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"learnhub_client/internal/api"
	"learnhub_client/internal/config"
	"learnhub_client/internal/controller"
	"learnhub_client/internal/repository"
	"learnhub_client/internal/service"
	"learnhub_client/internal/syncqueue"
	"learnhub_client/internal/util"
	"learnhub_client/pkg/database"
	"learnhub_client/pkg/kvstore"
	"learnhub_client/pkg/logger"
	"learnhub_client/pkg/monitoring"
	"learnhub_client/pkg/tracing"

	"go.uber.org/zap"
)

type App struct {
	Config *config.Config
	Store  *kvstore.Store
	Client *api.Client
	Queue  *syncqueue.Queue

	services        *services
	routes          map[string]route
	configCallbacks []func(*config.Config)
	closers         []func(context.Context) error
}

type services struct {
	session     *service.SessionService
	policy      *service.AccessPolicy
	auth        *service.AuthService
	user        *service.UserService
	course      *service.CourseService
	enrollment  *service.EnrollmentService
	review      *service.ReviewService
	certificate *service.CertificateService
	dashboard   *service.DashboardService
	upload      *service.UploadService
}

type controllers struct {
	auth      *controller.AuthController
	course    *controller.CourseController
	learning  *controller.LearningController
	review    *controller.ReviewController
	dashboard *controller.DashboardController
	user      *controller.UserController
	upload    *controller.UploadController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

// openBackend picks the durable store named by storage.type.
func (a *App) openBackend(cfg *config.Config) (kvstore.Backend, error) {
	switch cfg.Storage.Type {
	case util.StorageMemory:
		return kvstore.NewMemoryBackend(), nil
	case util.StorageSQLite, util.StorageMySQL:
		db, err := database.InitDB(&cfg.Storage)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, func(context.Context) error { return sqlDB.Close() })
		}
		return kvstore.NewSQLBackend(db)
	case util.StorageRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rdb, err := database.InitRedis(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
		return kvstore.NewRedisBackend(rdb, cfg.Storage.KeyPrefix), nil
	default:
		return kvstore.NewFileBackend(cfg.Storage.Path)
	}
}

func (a *App) initServices(repos *repository.Repositories) *services {
	session := service.NewSessionService(a.Store)
	aliases := syncqueue.NewAliases()
	policy := service.NewAccessPolicy(session, repos.Courses, aliases)
	users := service.NewUserService(repos.Users, session, policy)
	courses := service.NewCourseService(repos, session, policy, a.Client, a.Queue, aliases)

	return &services{
		session: session,
		policy:  policy,
		auth: service.NewAuthService(session, repos.Users,
			service.NewRemoteAuthProvider(a.Client, repos.Users),
			service.NewLocalAuthProvider(repos.Users),
		),
		user:        users,
		course:      courses,
		enrollment:  service.NewEnrollmentService(repos, session, users),
		review:      service.NewReviewService(repos, session, courses),
		certificate: service.NewCertificateService(repos, session),
		dashboard:   service.NewDashboardService(repos, session, policy),
		upload:      service.NewUploadService(a.Client, session),
	}
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth, s.user, s.session),
		course:    controller.NewCourseController(s.course, s.session, s.policy),
		learning:  controller.NewLearningController(s.enrollment, s.course, s.certificate, s.session, s.policy),
		review:    controller.NewReviewController(s.review, s.course, s.policy),
		dashboard: controller.NewDashboardController(s.dashboard, s.session),
		user:      controller.NewUserController(s.user),
		upload:    controller.NewUploadController(s.upload),
	}
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	monitoring.Init()

	app := &App{Config: cfg}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("learnhub-client", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.closers = append(app.closers, tp.Shutdown)
		}
	}

	backend, err := app.openBackend(cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Type, err)
	}
	app.Store = kvstore.New(backend)

	app.Client, err = api.New(cfg.API, api.NewPersistentTokenStore(app.Store))
	if err != nil {
		return nil, err
	}

	repos := repository.NewRepositories(app.Store)
	if cfg.SeedDemo {
		if err := service.SeedDemoUsers(repos.Users); err != nil {
			logger.Log.Warn("demo accounts not seeded", zap.Error(err))
		}
	}

	app.Queue = syncqueue.New(cfg.Sync)
	app.services = app.initServices(repos)
	app.registerRoutes(app.initControllers(app.services))

	app.RegisterConfigCallback(func(c *config.Config) {
		logger.SetLevel(c.Log.Mode)
	})
	app.RegisterConfigCallback(func(c *config.Config) {
		if err := app.Client.SetBaseURL(c.API); err != nil {
			logger.Log.Warn("api base url not changed", zap.Error(err))
		}
	})

	logger.Log.Info("app initialized",
		zap.String("storage", cfg.Storage.Type),
		zap.String("api", app.Client.BaseURL()),
	)
	return app, nil
}

// Start pulls the course catalog from the backend; an unreachable backend leaves the local catalog.
func (a *App) Start(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, a.Config.API.Timeout)
	defer cancel()
	a.services.course.Bootstrap(ctx)
}

// Execute runs one command and writes its result to out.
func (a *App) Execute(ctx context.Context, name string, args []string, out io.Writer) {
	c := controller.NewContext(ctx, name, args, out)
	r, ok := a.routes[name]
	if !ok {
		c.BadRequest(fmt.Sprintf("unknown command %q, try help", name))
		return
	}
	r.handler(c)
}

// Close waits for pending sync jobs within sync.flush_timeout, then releases storage and tracing.
func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Sync.FlushTimeout)
	defer cancel()

	if err := a.Queue.Close(ctx); err != nil {
		logger.Log.Warn("sync queue not drained before exit", zap.Error(err))
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](context.Background()); err != nil {
			logger.Log.Warn("shutdown step failed", zap.Error(err))
		}
	}
	_ = logger.Log.Sync()
}

func (a *App) configFile() string {
	return filepath.Join(a.Config.Dir, "config.yaml")
}
