package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/diillson/ponto-eletronico-go/pkg/config"
	"gopkg.in/yaml.v3"
)

func main() {
	var (
		outputPath string
		force      bool
		driver     string
		dsn        string
		cacheType  string
	)

	flag.StringVar(&outputPath, "output", "config.yaml", "Caminho para o arquivo de configuração de saída")
	flag.BoolVar(&force, "force", false, "Sobrescrever arquivo se existir")
	flag.StringVar(&driver, "driver", "", "Driver de banco de dados (sqlite, mysql, postgres)")
	flag.StringVar(&dsn, "dsn", "", "DSN do banco de dados")
	flag.StringVar(&cacheType, "cache", "", "Tipo de cache (memory, redis)")
	flag.Parse()

	if _, err := os.Stat(outputPath); err == nil && !force {
		fmt.Printf("Erro: arquivo %s já existe. Use --force para sobrescrever.\n", outputPath)
		os.Exit(1)
	}

	settings := config.Defaults()
	database := settings["database"].(map[string]interface{})
	if driver != "" {
		database["driver"] = driver
	}
	if dsn != "" {
		database["dsn"] = dsn
	}
	if cacheType != "" {
		settings["cache"].(map[string]interface{})["type"] = cacheType
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		fmt.Printf("Erro ao serializar configuração: %v\n", err)
		os.Exit(1)
	}

	header := "# Configuração do ponto eletrônico. Variáveis PE_* sobrescrevem estas chaves (ex: PE_DATABASE_DSN).\n" +
		"# Com MySQL, inclua clientFoundRows=true no DSN para que atualizações sem mudança não retornem 404.\n"

	if err := os.WriteFile(outputPath, append([]byte(header), data...), 0o644); err != nil {
		fmt.Printf("Erro ao escrever arquivo: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Arquivo de configuração gerado em %s\n", outputPath)
}
