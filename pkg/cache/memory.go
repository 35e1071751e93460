package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/diillson/ponto-eletronico-go/internal/infra/metrics"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// MemoryCache implementa a interface Cache usando armazenamento em memória
type MemoryCache struct {
	cache   *cache.Cache
	logger  *zap.Logger
	hits    int64
	misses  int64
	metrics *metrics.APIMetrics
}

// NewMemoryCache cria uma nova instância de MemoryCache. metrics pode ser nil.
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration, metrics *metrics.APIMetrics, logger *zap.Logger) *MemoryCache {
	return &MemoryCache{
		cache:   cache.New(defaultExpiration, cleanupInterval),
		logger:  logger,
		metrics: metrics,
	}
}

// Set armazena um valor no cache. O valor é guardado serializado em JSON,
// assim leituras posteriores não enxergam mutações feitas pelo chamador.
func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("falha ao serializar para o cache", zap.String("key", key), zap.Error(err))
		return err
	}

	c.cache.Set(key, data, expiration)
	return nil
}

// Get recupera um valor do cache
func (c *MemoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	value, found := c.cache.Get(key)
	if !found {
		c.record(false)
		return false, nil
	}

	c.record(true)

	data, ok := value.([]byte)
	if !ok {
		// Valor gravado fora de Set; serializar como intermediário
		var err error
		if data, err = json.Marshal(value); err != nil {
			c.logger.Error("falha ao serializar do cache", zap.Error(err))
			return true, err
		}
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Error("falha ao deserializar para o destino", zap.String("key", key), zap.Error(err))
		return true, err
	}

	return true, nil
}

// Ping verifica se o cache está funcionando
func (c *MemoryCache) Ping(ctx context.Context) error {
	return nil // O cache em memória está sempre disponível
}

func (c *MemoryCache) record(hit bool) {
	if hit {
		atomic.AddInt64(&c.hits, 1)
	} else {
		atomic.AddInt64(&c.misses, 1)
	}
	updateCacheMetrics(atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses), "memory", c.metrics)
}

// Função auxiliar para atualizar métricas de cache
func updateCacheMetrics(hits, misses int64, cacheType string, metrics *metrics.APIMetrics) {
	if metrics == nil {
		return
	}

	total := hits + misses
	if total > 0 {
		metrics.UpdateCacheHitRatio(cacheType, float64(hits)/float64(total))
	}
}
