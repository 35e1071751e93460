package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// KeyPrefix separa as chaves do limitador das chaves de consulta em cache
const KeyPrefix = "pontoeletronico-ratelimit:"

// fixedWindowScript incrementa o contador da janela atual e devolve {contagem, restante, ttl}
var fixedWindowScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local expireAt = tonumber(ARGV[2])
local ttl = expireAt - tonumber(ARGV[3])

local count = redis.call('INCR', key)
if count == 1 then
    redis.call('EXPIREAT', key, expireAt)
end

return {count, limit - count, ttl}
`)

// LimitConfig configura o comportamento do limitador
type LimitConfig struct {
	Key         string        // Chave única para identificar o limite
	Limit       int           // Número máximo de requisições
	Period      time.Duration // Período de tempo para o limite
	BurstFactor float64       // Fator para permitir rajadas (1.0 = sem rajada)
}

// RedisLimiter implementa rate limiting de janela fixa usando Redis
type RedisLimiter struct {
	client redis.Scripter
	logger *zap.Logger
	tracer trace.Tracer
}

// NewRedisLimiter cria um novo limitador baseado em Redis
func NewRedisLimiter(client redis.Scripter, logger *zap.Logger) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		logger: logger,
		tracer: otel.GetTracerProvider().Tracer("ponto-eletronico.ratelimit"),
	}
}

// Allow verifica se a requisição é permitida dentro do limite de taxa
// Retorna: permitido, limite, restante, tempo de reset, erro
func (r *RedisLimiter) Allow(ctx context.Context, config LimitConfig) (bool, int, int, time.Duration, error) {
	// Criar span para a operação de rate limiting
	ctx, span := r.tracer.Start(
		ctx,
		"RedisLimiter.Allow",
		trace.WithAttributes(
			attribute.String("ratelimit.key", config.Key),
			attribute.Int("ratelimit.limit", config.Limit),
			attribute.Int64("ratelimit.period_ms", config.Period.Milliseconds()),
			attribute.Float64("ratelimit.burst_factor", config.BurstFactor),
		),
	)
	defer span.End()

	if config.Limit <= 0 {
		span.SetStatus(codes.Error, "invalid limit")
		span.SetAttributes(attribute.Bool("error", true))
		return true, 0, 0, 0, errors.New("limite deve ser maior que zero")
	}

	if config.Period <= 0 {
		span.SetStatus(codes.Error, "invalid period")
		span.SetAttributes(attribute.Bool("error", true))
		return true, 0, 0, 0, errors.New("período deve ser maior que zero")
	}

	if config.BurstFactor <= 0 {
		config.BurstFactor = 1.0 // Default sem rajada
	}

	key := KeyPrefix + config.Key
	now := time.Now().Unix()
	periodSeconds := int64(config.Period.Seconds())
	if periodSeconds < 1 {
		periodSeconds = 1
	}
	expireAt := now - (now % periodSeconds) + periodSeconds
	resetAfter := time.Duration(expireAt-now) * time.Second

	result, err := fixedWindowScript.Run(ctx, r.client, []string{key}, config.Limit, expireAt, now).Result()
	if err != nil {
		r.logger.Error("erro ao executar script de rate limit", zap.Error(err))
		span.SetStatus(codes.Error, "redis script error")
		span.SetAttributes(
			attribute.Bool("error", true),
			attribute.String("error.message", err.Error()),
		)

		return true, config.Limit, config.Limit, resetAfter, err
	}

	count, remaining, ttl, err := parseWindow(result)
	if err != nil {
		r.logger.Error("resultado inesperado do script de rate limit", zap.Any("result", result))
		span.SetStatus(codes.Error, "unexpected result")
		span.SetAttributes(attribute.Bool("error", true))
		return true, config.Limit, config.Limit, resetAfter, err
	}

	burstLimit := int(float64(config.Limit) * config.BurstFactor)
	allowed := count <= burstLimit

	span.SetAttributes(
		attribute.Int("ratelimit.count", count),
		attribute.Int("ratelimit.remaining", remaining),
		attribute.Int("ratelimit.burst_limit", burstLimit),
		attribute.Bool("ratelimit.allowed", allowed),
	)

	if !allowed {
		span.SetStatus(codes.Error, "rate limit exceeded")
	} else {
		span.SetStatus(codes.Ok, "")
	}

	return allowed, config.Limit, remaining, time.Duration(ttl) * time.Second, nil
}

// parseWindow lê a resposta {contagem, restante, ttl} do script
func parseWindow(result interface{}) (count, remaining int, ttl int64, err error) {
	values, ok := result.([]interface{})
	if !ok || len(values) != 3 {
		return 0, 0, 0, errors.New("resultado inválido do Redis")
	}

	nums := make([]int64, len(values))
	for i, v := range values {
		n, err := strconv.ParseInt(fmt.Sprintf("%v", v), 10, 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("resultado inválido do Redis: %w", err)
		}
		nums[i] = n
	}

	return int(nums[0]), int(nums[1]), nums[2], nil
}
