package http

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger é implementado pelo banco de dados e pelos backends de cache
type Pinger interface {
	Ping(ctx context.Context) error
}

// PunchCounter conta os pontos gravados
type PunchCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Dependency representa um componente do qual o sistema depende
type Dependency struct {
	Name     string
	Check    func(context.Context) error
	Critical bool // Se true, falha deste componente faz o health check falhar
}

// HealthChecker implementa endpoints de health check
type HealthChecker struct {
	punches      PunchCounter
	logger       *zap.Logger
	dependencies []Dependency
}

// NewHealthChecker cria um novo health checker
func NewHealthChecker(punches PunchCounter, db Pinger, cache Pinger, logger *zap.Logger) *HealthChecker {
	return &HealthChecker{
		punches: punches,
		logger:  logger,
		dependencies: []Dependency{
			{Name: "database", Check: db.Ping, Critical: true},
			{Name: "cache", Check: cache.Ping, Critical: false},
		},
	}
}

// LivenessCheck verifica se o processo está de pé
func (h *HealthChecker) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "UP",
		"time":   time.Now(),
	})
}

// ReadinessCheck verifica se o serviço está pronto para receber tráfego
func (h *HealthChecker) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks, healthy := h.runChecks(ctx, false)

	start := time.Now()
	total, err := h.punches.Count(ctx)
	punchDetails := gin.H{
		"status":   "UP",
		"time":     time.Since(start).String(),
		"critical": true,
	}
	if err != nil {
		punchDetails["status"] = "DOWN"
		healthy = false
		h.logger.Error("health check da tabela pontos falhou", zap.Error(err))
	} else {
		punchDetails["count"] = total
	}
	checks["pontos"] = punchDetails

	h.respond(c, healthy, gin.H{"checks": checks})
}

// DetailedHealth inclui versão, ambiente e dados do runtime
func (h *HealthChecker) DetailedHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	checks, healthy := h.runChecks(ctx, true)

	h.respond(c, healthy, gin.H{
		"version":     getVersion(),
		"environment": getEnvironment(),
		"checks":      checks,
		"system":      getSystemInfo(),
	})
}

// runChecks verifica cada dependência em paralelo
func (h *HealthChecker) runChecks(ctx context.Context, withErrors bool) (map[string]interface{}, bool) {
	checks := make(map[string]interface{}, len(h.dependencies)+1)
	healthy := true

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, dep := range h.dependencies {
		wg.Add(1)
		go func(d Dependency) {
			defer wg.Done()

			start := time.Now()
			err := d.Check(ctx)
			duration := time.Since(start)

			details := gin.H{
				"status":   "UP",
				"time":     duration.String(),
				"critical": d.Critical,
			}
			if err != nil {
				details["status"] = "DOWN"
				if withErrors {
					details["error"] = err.Error()
				}
				h.logger.Error("health check falhou",
					zap.String("dependency", d.Name),
					zap.Error(err))
			}

			mu.Lock()
			defer mu.Unlock()
			checks[d.Name] = details
			if err != nil && d.Critical {
				healthy = false
			}
		}(dep)
	}

	wg.Wait()
	return checks, healthy
}

func (h *HealthChecker) respond(c *gin.Context, healthy bool, body gin.H) {
	status := http.StatusOK
	body["status"] = "UP"
	body["time"] = time.Now()
	if !healthy {
		status = http.StatusServiceUnavailable
		body["status"] = "DOWN"
	}
	c.JSON(status, body)
}

// getVersion retorna a versão do aplicativo
func getVersion() string {
	return os.Getenv("APP_VERSION")
}

// getEnvironment retorna o ambiente atual
func getEnvironment() string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		return "development"
	}
	return env
}

func getSystemInfo() gin.H {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return gin.H{
		"go_version":    runtime.Version(),
		"num_cpu":       runtime.NumCPU(),
		"num_goroutine": runtime.NumGoroutine(),
		"memory_alloc": gin.H{
			"alloc_mb": float64(m.Alloc) / 1024 / 1024,
			"sys_mb":   float64(m.Sys) / 1024 / 1024,
			"num_gc":   m.NumGC,
		},
	}
}
