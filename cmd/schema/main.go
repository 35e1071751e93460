package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/diillson/ponto-eletronico-go/internal/adapter/database"
	"github.com/diillson/ponto-eletronico-go/pkg/config"
	"github.com/diillson/ponto-eletronico-go/pkg/logging"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	var (
		configPath string
		driver     string
		dsn        string
		seedFile   string
	)

	flag.StringVar(&configPath, "config", "./config", "Diretório do config.yaml")
	flag.StringVar(&driver, "driver", "", "Driver de banco de dados (sqlite, mysql, postgres); sobrescreve a configuração")
	flag.StringVar(&dsn, "dsn", "", "DSN do banco de dados; sobrescreve a configuração")
	flag.StringVar(&seedFile, "seed", "", "Arquivo JSON com pontos a importar")
	flag.Parse()

	// Variáveis PE_* podem vir de um arquivo .env local
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}
	if driver != "" {
		cfg.Database.Driver = driver
	}
	if dsn != "" {
		cfg.Database.DSN = dsn
	}

	logger, err := logging.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// NewDatabase já garante a tabela pontos
	db, err := database.NewDatabase(ctx, database.Config{
		Driver:        cfg.Database.Driver,
		DSN:           cfg.Database.DSN,
		LogLevel:      database.ParseLogLevel(cfg.Database.LogLevel),
		SlowThreshold: cfg.Database.SlowThreshold,
	}, logger)
	if err != nil {
		logger.Fatal("Falha ao preparar banco de dados", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Tabela pontos verificada", zap.String("driver", cfg.Database.Driver))

	if seedFile == "" {
		return
	}

	loader := database.NewJSONPunchLoader(database.NewPunchRepository(db.DB(), logger), logger)
	loaded, err := loader.LoadFromFile(ctx, seedFile)
	if err != nil {
		logger.Fatal("Falha ao importar pontos", zap.Error(err))
	}
	logger.Info("Importação concluída", zap.Int("pontos", loaded))
}
