package database

import (
	"context"
	"fmt"

	"github.com/diillson/ponto-eletronico-go/internal/domain/model"
	"github.com/diillson/ponto-eletronico-go/internal/domain/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const pontosTable = "pontos"

// PunchRepository implementa repository.PunchRepository sobre GORM
type PunchRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	tracer trace.Tracer
}

// NewPunchRepository cria um novo repositório de pontos
func NewPunchRepository(db *gorm.DB, logger *zap.Logger) repository.PunchRepository {
	return &PunchRepository{
		db:     db,
		logger: logger,
		tracer: otel.GetTracerProvider().Tracer("ponto-eletronico.repository.punch"),
	}
}

func (r *PunchRepository) startSpan(ctx context.Context, name, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("db.operation", operation),
		attribute.String("db.table", pontosTable),
	)
	return r.tracer.Start(ctx, "PunchRepository."+name, trace.WithAttributes(attrs...))
}

func spanError(span trace.Span, err error) {
	span.SetStatus(codes.Error, "database error")
	span.SetAttributes(
		attribute.Bool("error", true),
		attribute.String("error.message", err.Error()),
	)
}

// Create insere um novo ponto
func (r *PunchRepository) Create(ctx context.Context, punch *model.Punch) error {
	ctx, span := r.startSpan(ctx, "Create", "insert",
		attribute.String("punch.user_id", punch.UserID),
		attribute.String("punch.tipo", string(punch.Type)),
	)
	defer span.End()

	entity := model.PunchToEntity(punch)
	entity.ID = 0

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		r.logger.Error("falha ao inserir ponto",
			zap.String("id_usuario", punch.UserID),
			zap.Error(err))
		spanError(span, err)
		return fmt.Errorf("falha ao inserir ponto: %w", err)
	}

	punch.ID = entity.ID
	span.SetAttributes(attribute.Int64("punch.id", int64(entity.ID)))
	span.SetStatus(codes.Ok, "")
	return nil
}

// List retorna todos os pontos
func (r *PunchRepository) List(ctx context.Context) ([]*model.Punch, error) {
	ctx, span := r.startSpan(ctx, "List", "select")
	defer span.End()

	var entities []model.PunchEntity
	if err := r.db.WithContext(ctx).Order("id").Find(&entities).Error; err != nil {
		r.logger.Error("falha ao buscar pontos", zap.Error(err))
		spanError(span, err)
		return nil, fmt.Errorf("falha ao buscar pontos: %w", err)
	}

	span.SetAttributes(attribute.Int("punches.count", len(entities)))
	span.SetStatus(codes.Ok, "")
	return toModels(entities), nil
}

// ListByUser retorna os pontos de um usuário
func (r *PunchRepository) ListByUser(ctx context.Context, userID string) ([]*model.Punch, error) {
	ctx, span := r.startSpan(ctx, "ListByUser", "select",
		attribute.String("punch.user_id", userID),
	)
	defer span.End()

	var entities []model.PunchEntity
	if err := r.db.WithContext(ctx).Where("id_usuario = ?", userID).Order("id").Find(&entities).Error; err != nil {
		r.logger.Error("falha ao buscar pontos do usuário",
			zap.String("id_usuario", userID),
			zap.Error(err))
		spanError(span, err)
		return nil, fmt.Errorf("falha ao buscar pontos do usuário: %w", err)
	}

	span.SetAttributes(attribute.Int("punches.count", len(entities)))
	span.SetStatus(codes.Ok, "")
	return toModels(entities), nil
}

// Update sobrescreve todos os campos mutáveis, inclusive com strings vazias
func (r *PunchRepository) Update(ctx context.Context, punch *model.Punch) error {
	ctx, span := r.startSpan(ctx, "Update", "update",
		attribute.Int64("punch.id", int64(punch.ID)),
		attribute.String("punch.tipo", string(punch.Type)),
	)
	defer span.End()

	// Um map garante que valores vazios também sejam gravados
	result := r.db.WithContext(ctx).Model(&model.PunchEntity{}).
		Where("id = ?", punch.ID).
		Updates(map[string]interface{}{
			"nome":         punch.Name,
			"email":        punch.Email,
			"departamento": punch.Department,
			"cargo":        punch.Role,
			"id_usuario":   punch.UserID,
			"tipo":         string(punch.Type),
			"hora":         punch.Timestamp,
		})

	if result.Error != nil {
		r.logger.Error("falha ao atualizar ponto",
			zap.Uint("id", punch.ID),
			zap.Error(result.Error))
		spanError(span, result.Error)
		return fmt.Errorf("falha ao atualizar ponto: %w", result.Error)
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", result.RowsAffected))

	if result.RowsAffected == 0 {
		span.SetStatus(codes.Error, "no rows affected")
		return repository.ErrPunchNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Delete remove um ponto pelo ID
func (r *PunchRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := r.startSpan(ctx, "Delete", "delete",
		attribute.Int64("punch.id", int64(id)),
	)
	defer span.End()

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PunchEntity{})
	if result.Error != nil {
		r.logger.Error("falha ao excluir ponto",
			zap.Uint("id", id),
			zap.Error(result.Error))
		spanError(span, result.Error)
		return fmt.Errorf("falha ao excluir ponto: %w", result.Error)
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", result.RowsAffected))

	if result.RowsAffected == 0 {
		span.SetStatus(codes.Error, "no rows affected")
		return repository.ErrPunchNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Count retorna o total de pontos
func (r *PunchRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := r.startSpan(ctx, "Count", "select")
	defer span.End()

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.PunchEntity{}).Count(&total).Error; err != nil {
		spanError(span, err)
		return 0, fmt.Errorf("falha ao contar pontos: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return total, nil
}

func toModels(entities []model.PunchEntity) []*model.Punch {
	punches := make([]*model.Punch, 0, len(entities))
	for i := range entities {
		punches = append(punches, entities[i].ToModel())
	}
	return punches
}
