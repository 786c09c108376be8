package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/RostianaElla/caihealth/internal/config"
	"github.com/RostianaElla/caihealth/internal/infra/gemini"
	"github.com/RostianaElla/caihealth/internal/infra/notify"
	redrepo "github.com/RostianaElla/caihealth/internal/repo/redis"
	identitysvc "github.com/RostianaElla/caihealth/internal/services/identity"
	sessionsvc "github.com/RostianaElla/caihealth/internal/services/session"
	taskssvc "github.com/RostianaElla/caihealth/internal/services/tasks"
	tipssvc "github.com/RostianaElla/caihealth/internal/services/tips"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	redis      *goredis.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	profileRepo := redrepo.NewProfileRepo(redisClient, log)
	progressRepo := redrepo.NewProgressRepo(redisClient, log)

	accounts := make([]identitysvc.Account, 0, len(cfg.Identity.Accounts))
	for _, a := range cfg.Identity.Accounts {
		accounts = append(accounts, identitysvc.Account{
			ID:      a.ID,
			Name:    a.Name,
			Email:   a.Email,
			Picture: a.Picture,
		})
	}
	tokenCodec := identitysvc.NewTokenCodec(cfg.Identity.TokenSecret, cfg.Identity.TokenTTL)
	identityProvider := identitysvc.NewSimulator(accounts, cfg.Identity.ResolveLatency, tokenCodec)

	notifier := notify.NewLogNotifier(log, cfg.Notify.Enabled)

	var tipGenerator tipssvc.Generator
	if cfg.Tips.APIKey != "" {
		gen, err := gemini.NewGenerator(ctx, cfg.Tips.APIKey, cfg.Tips.Model)
		if err != nil {
			log.Warn("gemini init failed, tips fall back to static", zap.Error(err))
		} else {
			tipGenerator = gen
		}
	}
	tipsCache := redrepo.NewTipsCacheRepo(redisClient, cfg.Tips.CacheTTL, log)
	tipsService := tipssvc.NewService(tipGenerator, tipsCache, cfg.Tips.Timeout, log)
	tasksService := taskssvc.NewService(notifier, log)

	controller := sessionsvc.NewController(profileRepo, identityProvider, tokenCodec, notifier, log)
	if err := controller.Init(ctx); err != nil {
		log.Warn("session init failed, starting from the login screen", zap.Error(err))
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		Controller:   controller,
		TasksService: tasksService,
		TipsService:  tipsService,
		ProgressRepo: progressRepo,
		Logger:       log,
		Config:       cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		redis:      redisClient,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
