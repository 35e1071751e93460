package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/diillson/ponto-eletronico-go/internal/domain/model"
	"github.com/diillson/ponto-eletronico-go/internal/domain/repository"
	"go.uber.org/zap"
)

// JSONPunchLoader importa pontos de um arquivo JSON com o mesmo formato
// do corpo de registrar_ponto
type JSONPunchLoader struct {
	repo   repository.PunchRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewJSONPunchLoader cria um novo carregador de pontos JSON
func NewJSONPunchLoader(repo repository.PunchRepository, logger *zap.Logger) *JSONPunchLoader {
	return &JSONPunchLoader{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// LoadFromFile importa os pontos do arquivo e retorna quantos foram gravados.
// Arquivo inexistente não é erro. Entradas com tipo inválido são ignoradas.
func (l *JSONPunchLoader) LoadFromFile(ctx context.Context, filePath string) (int, error) {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		l.logger.Warn("Arquivo de pontos não encontrado", zap.String("path", filePath))
		return 0, nil
	}
	if err != nil {
		l.logger.Error("Erro ao ler arquivo de pontos", zap.String("path", filePath), zap.Error(err))
		return 0, err
	}

	var inputs []model.PunchInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		l.logger.Error("Erro ao deserializar arquivo de pontos", zap.String("path", filePath), zap.Error(err))
		return 0, fmt.Errorf("arquivo de pontos inválido: %w", err)
	}

	if len(inputs) == 0 {
		l.logger.Info("Nenhum ponto encontrado no arquivo", zap.String("path", filePath))
		return 0, nil
	}

	loaded := 0
	for i, in := range inputs {
		punch, err := model.NewPunch(in, l.now())
		if err != nil {
			l.logger.Warn("Ignorando ponto com tipo inválido",
				zap.Int("index", i),
				zap.String("tipo", in.Tipo))
			continue
		}

		if err := l.repo.Create(ctx, punch); err != nil {
			return loaded, err
		}
		loaded++
	}

	l.logger.Info("Pontos carregados com sucesso",
		zap.Int("count", loaded),
		zap.Int("skipped", len(inputs)-loaded),
		zap.String("file", filepath.Base(filePath)))
	return loaded, nil
}
