package cache

import (
	"context"
	"time"
)

// Cache guarda o resultado das consultas de pontos.
// Não há remoção explícita: as entradas só saem ao expirar, então
// escritas no banco ficam invisíveis às consultas até o fim do TTL.
type Cache interface {
	// Set grava value sob key por ttl
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Get preenche dest e informa se key estava presente
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Ping é usado pelo health check
	Ping(ctx context.Context) error
}

var (
	_ Cache = (*MemoryCache)(nil)
	_ Cache = (*RedisCache)(nil)
	_ Cache = (*NoOpCache)(nil)
)
