package cache

import (
	"context"
	"time"
)

// NoOpCache é usado com cache.enabled=false: toda consulta vai ao banco
// e reflete as escritas imediatamente.
type NoOpCache struct{}

func (*NoOpCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}

// Get sempre informa ausência
func (*NoOpCache) Get(context.Context, string, interface{}) (bool, error) {
	return false, nil
}

func (*NoOpCache) Ping(context.Context) error {
	return nil
}
