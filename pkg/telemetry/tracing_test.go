package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewTracerProvider_LazyConnection(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// A conexão gRPC é estabelecida sob demanda, então um coletor ausente não impede a inicialização
	tp, err := NewTracerProvider(ctx, Options{
		ServiceName:   "ponto-eletronico-test",
		Endpoint:      "127.0.0.1:1",
		SamplingRatio: 1,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(ctx, "span")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	tp.Shutdown(context.Background())
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	assert.Equal(t, "development", getEnvironment())

	t.Setenv("ENVIRONMENT", "production")
	assert.Equal(t, "production", getEnvironment())
}
