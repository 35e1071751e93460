package app

import (
	"context"
	"fmt"

	"github.com/diillson/ponto-eletronico-go/internal/adapter/database"
	"github.com/diillson/ponto-eletronico-go/internal/adapter/http"
	"github.com/diillson/ponto-eletronico-go/internal/adapter/http/docs"
	"github.com/diillson/ponto-eletronico-go/internal/app/punch"
	"github.com/diillson/ponto-eletronico-go/internal/domain/repository"
	"github.com/diillson/ponto-eletronico-go/internal/infra/metrics"
	"github.com/diillson/ponto-eletronico-go/internal/infra/middleware"
	"github.com/diillson/ponto-eletronico-go/pkg/cache"
	"github.com/diillson/ponto-eletronico-go/pkg/config"
	"github.com/diillson/ponto-eletronico-go/pkg/ratelimit"
	"github.com/diillson/ponto-eletronico-go/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

type App struct {
	Logger         *zap.Logger
	Config         *config.Config
	DB             *database.Database
	Repository     repository.PunchRepository
	Cache          cache.Cache
	Service        *punch.Service
	Handler        *http.Handler
	Middleware     *middleware.Middleware
	MetricsHandler *middleware.MetricsHandler
	APIMetrics     *metrics.APIMetrics

	redisClient *redis.Client
	tracer      *telemetry.TracerProvider
}

// NewApp cria uma nova instância da aplicação com todas as dependências injetadas
func NewApp(ctx context.Context, logger *zap.Logger, cfg *config.Config) (*App, error) {
	a := &App{Logger: logger, Config: cfg}

	if cfg.Tracing.Enabled {
		tp, err := telemetry.NewTracerProvider(ctx, telemetry.Options{
			ServiceName:   cfg.Tracing.ServiceName,
			Endpoint:      cfg.Tracing.Endpoint,
			SamplingRatio: cfg.Tracing.SamplingRatio,
		}, logger)
		if err != nil {
			// Tracing não é essencial para servir requisições
			logger.Error("Falha ao inicializar tracer", zap.Error(err))
		} else {
			a.tracer = tp
		}
	}

	db, err := database.NewDatabase(ctx, database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        database.ParseLogLevel(cfg.Database.LogLevel),
		SlowThreshold:   cfg.Database.SlowThreshold,
	}, logger)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	a.DB = db

	// Registro próprio para que cada instância tenha suas métricas
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.APIMetrics = metrics.NewAPIMetrics(registry)
	a.MetricsHandler = middleware.NewMetricsHandler(registry, logger)

	a.Cache = a.newCache(cfg.Cache)
	a.Repository = database.NewPunchRepository(db.DB(), logger)
	a.Service = punch.NewService(a.Repository, a.Cache, cfg.Cache.TTL, logger)

	if cfg.Database.SeedFile != "" {
		if err := a.seed(ctx, cfg.Database.SeedFile); err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("falha ao importar pontos iniciais: %w", err)
		}
	}

	a.Middleware = middleware.NewMiddleware(logger, cfg.Tracing.ServiceName)
	if cfg.Metrics.Enabled {
		a.Middleware.SetMetricsMiddleware(middleware.NewMetricsMiddleware(a.APIMetrics, logger))
	}
	if cfg.Features.RateLimiter {
		if a.redisClient != nil {
			limiter := ratelimit.NewRedisLimiter(a.redisClient, logger)
			a.Middleware.SetRateLimitMiddleware(middleware.NewRateLimitMiddleware(
				limiter, cfg.Features.RateLimit, cfg.Features.RateLimitPeriod, a.APIMetrics, logger))
			logger.Info("Rate limiting habilitado nos endpoints de escrita",
				zap.Int("limit", cfg.Features.RateLimit),
				zap.Duration("period", cfg.Features.RateLimitPeriod))
		} else {
			logger.Warn("Rate limiting requer cache redis; seguindo sem limitador")
		}
	}

	a.Handler = http.NewHandler(a.Service, a.Repository, db, a.Cache, logger)
	a.Handler.SetMetrics(a.APIMetrics)

	return a, nil
}

// seed importa o arquivo inicial apenas quando a tabela pontos está vazia,
// assim reinícios sobre um banco persistente não duplicam registros
func (a *App) seed(ctx context.Context, path string) error {
	total, err := a.Repository.Count(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		a.Logger.Info("Tabela pontos já possui registros, importação inicial ignorada",
			zap.Int64("count", total),
			zap.String("path", path))
		return nil
	}

	_, err = database.NewJSONPunchLoader(a.Repository, a.Logger).LoadFromFile(ctx, path)
	return err
}

// newCache escolhe o backend de cache. Se o Redis estiver indisponível, usa o cache em memória.
func (a *App) newCache(cfg config.CacheConfig) cache.Cache {
	if !cfg.Enabled {
		a.Logger.Info("Cache de consultas desabilitado")
		return &cache.NoOpCache{}
	}

	if cfg.Type == "redis" {
		client, err := cache.NewRedisClientWithConfig(&redis.Options{
			Addr:         cfg.Redis.Address,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			DialTimeout:  cfg.Redis.DialTimeout,
		}, a.Logger)
		if err == nil {
			a.redisClient = client
			return cache.NewRedisCache(client, a.Logger)
		}
		a.Logger.Warn("Redis indisponível, usando cache em memória", zap.Error(err))
	}

	return cache.NewMemoryCache(cfg.TTL, cfg.CleanupInterval, a.APIMetrics, a.Logger)
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	router.Use(a.Middleware.Recovery())
	router.Use(a.Middleware.Tracing())
	router.Use(a.Middleware.Logger())
	router.Use(a.Middleware.Metrics())
	router.Use(a.Middleware.SecurityHeaders())
	router.Use(a.Middleware.CORS())
	router.Use(a.Middleware.IgnoreFavicon())

	if a.Config.Metrics.Enabled {
		a.MetricsHandler.RegisterEndpoint(router, a.Config.Metrics.PrometheusPath)
	}

	a.Handler.RegisterRoutes(router, a.Middleware.WriteRateLimit()...)

	if a.Config.Features.APIDocs {
		if err := docs.Register(router, a.Logger); err != nil {
			a.Logger.Error("Falha ao publicar documentação da API", zap.Error(err))
		}
	}
}

// Close libera conexões e envia spans pendentes
func (a *App) Close(ctx context.Context) {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.Logger.Warn("Erro ao fechar conexão com Redis", zap.Error(err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Warn("Erro ao fechar banco de dados", zap.Error(err))
		}
	}
	if a.tracer != nil {
		a.tracer.Shutdown(ctx)
	}
}
