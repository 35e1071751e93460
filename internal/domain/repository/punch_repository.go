package repository

import (
	"context"
	"errors"

	"github.com/diillson/ponto-eletronico-go/internal/domain/model"
)

// ErrPunchNotFound é retornado quando nenhum ponto corresponde à operação
var ErrPunchNotFound = errors.New("ponto não encontrado")

// PunchRepository define a interface para armazenamento de pontos
type PunchRepository interface {
	// Create insere um novo ponto e preenche o ID atribuído
	Create(ctx context.Context, punch *model.Punch) error

	// List retorna todos os pontos em ordem de ID
	List(ctx context.Context) ([]*model.Punch, error)

	// ListByUser retorna os pontos de um id_usuario (igualdade exata)
	ListByUser(ctx context.Context, userID string) ([]*model.Punch, error)

	// Update sobrescreve os campos mutáveis do ponto com o ID informado.
	// Retorna ErrPunchNotFound se nenhuma linha for afetada.
	Update(ctx context.Context, punch *model.Punch) error

	// Delete remove o ponto. Retorna ErrPunchNotFound se nenhuma linha for afetada.
	Delete(ctx context.Context, id uint) error

	// Count retorna o total de pontos gravados
	Count(ctx context.Context) (int64, error)
}
