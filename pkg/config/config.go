package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config representa a configuração completa da aplicação
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Metrics  MetricsConfig
	Logging  LoggingConfig
	Tracing  TracingConfig
	Features FeaturesConfig
}

// ServerConfig contém configurações do servidor HTTP
type ServerConfig struct {
	Port           int
	Host           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	TLS            bool
	CertFile       string
	KeyFile        string
	Domains        []string
}

// DatabaseConfig contém configurações do banco de dados
type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
	SlowThreshold   time.Duration
	SeedFile        string
}

// RedisOptions contém configurações específicas para Redis
type RedisOptions struct {
	Address      string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DialTimeout  time.Duration
}

// CacheConfig contém configurações do cache de leitura
type CacheConfig struct {
	Enabled         bool
	Type            string // redis, memory
	TTL             time.Duration
	CleanupInterval time.Duration // apenas para cache em memória
	Redis           RedisOptions
}

// MetricsConfig contém configurações de métricas
type MetricsConfig struct {
	Enabled        bool
	PrometheusPath string
}

// LoggingConfig contém configurações de logging
type LoggingConfig struct {
	Level string
}

// TracingConfig contém configurações de rastreamento
type TracingConfig struct {
	Enabled       bool
	Endpoint      string
	ServiceName   string
	SamplingRatio float64
}

// FeaturesConfig contém flags de recursos
type FeaturesConfig struct {
	RateLimiter     bool
	RateLimit       int
	RateLimitPeriod time.Duration
	APIDocs         bool
}

// LoadConfig carrega a configuração de diversas fontes (arquivos, env, defaults)
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pontoeletronico")

	if err := v.ReadInConfig(); err != nil {
		// Ignorar se o arquivo não for encontrado
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("erro ao ler arquivo de configuração: %w", err)
		}
	}

	// Variáveis de ambiente com prefixo PE_, ex: PE_DATABASE_DSN
	v.SetEnvPrefix("PE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("erro ao mapear configuração: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults define valores padrão para a configuração
func setDefaults(v *viper.Viper) {
	// Servidor
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.readTimeout", "5s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "30s")
	v.SetDefault("server.maxHeaderBytes", 1<<20) // 1 MB
	v.SetDefault("server.tls", false)

	// Banco de dados
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "pontos.db")
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.connMaxLifetime", "1h")
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("database.slowThreshold", "200ms")
	v.SetDefault("database.seedFile", "")

	// Cache
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "300s")
	v.SetDefault("cache.cleanupInterval", "10m")
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.poolSize", 10)
	v.SetDefault("cache.redis.minIdleConns", 2)
	v.SetDefault("cache.redis.maxRetries", 3)
	v.SetDefault("cache.redis.readTimeout", "3s")
	v.SetDefault("cache.redis.writeTimeout", "3s")
	v.SetDefault("cache.redis.dialTimeout", "5s")

	// Métricas
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.prometheusPath", "/metrics")

	// Logging
	v.SetDefault("logging.level", "info")

	// Tracing
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.samplingRatio", 0.1)
	v.SetDefault("tracing.serviceName", "ponto-eletronico")

	// Features
	v.SetDefault("features.rateLimiter", false)
	v.SetDefault("features.rateLimit", 60)
	v.SetDefault("features.rateLimitPeriod", "1m")
	v.SetDefault("features.apiDocs", true)
}

// validateConfig valida a configuração
func validateConfig(config *Config) error {
	if config.Server.TLS {
		if config.Server.CertFile == "" || config.Server.KeyFile == "" {
			if len(config.Server.Domains) == 0 {
				return fmt.Errorf("TLS habilitado, mas CertFile/KeyFile ou Domains não estão definidos")
			}
		}
	}

	validDrivers := map[string]bool{"sqlite": true, "mysql": true, "postgres": true}
	if !validDrivers[config.Database.Driver] {
		return fmt.Errorf("driver de banco de dados inválido: %s", config.Database.Driver)
	}

	if config.Database.DSN == "" {
		return fmt.Errorf("DSN do banco de dados não definido")
	}

	if config.Cache.Enabled {
		validTypes := map[string]bool{"memory": true, "redis": true}
		if !validTypes[config.Cache.Type] {
			return fmt.Errorf("tipo de cache inválido: %s", config.Cache.Type)
		}

		if config.Cache.Type == "redis" && config.Cache.Redis.Address == "" {
			return fmt.Errorf("tipo de cache redis requer um endereço")
		}

		if config.Cache.TTL <= 0 {
			return fmt.Errorf("TTL do cache deve ser maior que zero")
		}
	}

	if config.Features.RateLimiter && config.Features.RateLimit <= 0 {
		return fmt.Errorf("limite de requisições deve ser maior que zero")
	}

	return nil
}

// Defaults retorna todas as chaves com os valores padrão, na mesma estrutura do config.yaml
func Defaults() map[string]interface{} {
	v := viper.New()
	setDefaults(v)
	return v.AllSettings()
}
