package punch

import (
	"context"
	"time"

	"github.com/diillson/ponto-eletronico-go/internal/domain/model"
	"github.com/diillson/ponto-eletronico-go/internal/domain/repository"
	"github.com/diillson/ponto-eletronico-go/pkg/cache"
	"go.uber.org/zap"
)

// Chaves de cache das consultas
const (
	CacheKeyAll        = "consultar_pontos"
	cacheKeyUserPrefix = "consultar_pontos:"
)

// DefaultCacheTTL é a validade padrão das consultas em cache
const DefaultCacheTTL = 300 * time.Second

// UserCacheKey retorna a chave de cache da consulta de um usuário
func UserCacheKey(userID string) string {
	return cacheKeyUserPrefix + userID
}

// Service registra e consulta pontos.
// As escritas não invalidam o cache: consultas podem ficar defasadas até o TTL expirar.
type Service struct {
	repo   repository.PunchRepository
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo repository.PunchRepository, c cache.Cache, ttl time.Duration, logger *zap.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if c == nil {
		c = &cache.NoOpCache{}
	}
	return &Service{
		repo:   repo,
		cache:  c,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock substitui o relógio usado para carimbar os pontos
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Register valida o tipo, carimba a hora atual e grava o ponto
func (s *Service) Register(ctx context.Context, in model.PunchInput) (*model.Punch, error) {
	punch, err := model.NewPunch(in, s.now())
	if err != nil {
		s.logger.Debug("Tipo de ponto inválido", zap.String("tipo", in.Tipo))
		return nil, err
	}

	if err := s.repo.Create(ctx, punch); err != nil {
		return nil, err
	}

	s.logger.Info("Ponto registrado",
		zap.Uint("ponto_id", punch.ID),
		zap.String("id_usuario", punch.UserID),
		zap.String("tipo", string(punch.Type)))
	return punch, nil
}

// ListAll retorna todos os pontos, usando o cache quando disponível
func (s *Service) ListAll(ctx context.Context) ([]model.PunchView, error) {
	var views []model.PunchView

	found, err := s.cache.Get(ctx, CacheKeyAll, &views)
	if err != nil {
		// Continua para o repositório em caso de erro no cache
		s.logger.Warn("Erro ao buscar pontos do cache", zap.Error(err))
	} else if found {
		return views, nil
	}

	punches, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	views = toViews(punches)
	if err := s.cache.Set(ctx, CacheKeyAll, views, s.ttl); err != nil {
		s.logger.Warn("Erro ao armazenar pontos no cache", zap.Error(err))
	}

	return views, nil
}

// ListByUser retorna os pontos de um usuário.
// Retorna repository.ErrPunchNotFound quando não há nenhum; esse resultado não vai para o cache.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]model.PunchView, error) {
	var views []model.PunchView
	cacheKey := UserCacheKey(userID)

	found, err := s.cache.Get(ctx, cacheKey, &views)
	if err != nil {
		s.logger.Warn("Erro ao buscar pontos do usuário no cache",
			zap.String("id_usuario", userID),
			zap.Error(err))
	} else if found {
		return views, nil
	}

	punches, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(punches) == 0 {
		return nil, repository.ErrPunchNotFound
	}

	views = toViews(punches)
	if err := s.cache.Set(ctx, cacheKey, views, s.ttl); err != nil {
		s.logger.Warn("Erro ao armazenar pontos do usuário no cache",
			zap.String("id_usuario", userID),
			zap.Error(err))
	}

	return views, nil
}

// Update sobrescreve o ponto com os dados recebidos e carimba uma nova hora
func (s *Service) Update(ctx context.Context, id uint, in model.PunchInput) error {
	punch, err := model.NewPunch(in, s.now())
	if err != nil {
		return err
	}
	punch.ID = id

	if err := s.repo.Update(ctx, punch); err != nil {
		return err
	}

	s.logger.Info("Ponto atualizado", zap.Uint("ponto_id", id), zap.String("tipo", string(punch.Type)))
	return nil
}

// Delete remove o ponto com o ID informado
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Ponto excluído", zap.Uint("ponto_id", id))
	return nil
}

func toViews(punches []*model.Punch) []model.PunchView {
	views := make([]model.PunchView, 0, len(punches))
	for _, p := range punches {
		views = append(views, p.View())
	}
	return views
}
