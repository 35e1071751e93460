package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/diillson/ponto-eletronico-go/internal/app/punch"
	"github.com/diillson/ponto-eletronico-go/internal/domain/model"
	"github.com/diillson/ponto-eletronico-go/internal/domain/repository"
	"github.com/diillson/ponto-eletronico-go/internal/infra/metrics"
	apperrors "github.com/diillson/ponto-eletronico-go/pkg/errors"
	"github.com/diillson/ponto-eletronico-go/pkg/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Mensagens devolvidas pelos endpoints de ponto
const (
	MsgInvalidType    = "Tipo inválido. Use 'entrada', 'saida', 'checkin' ou 'checkout'."
	MsgInvalidBody    = "Corpo da requisição inválido. Envie um objeto JSON."
	MsgUpdated        = "Ponto atualizado com sucesso!"
	MsgDeleted        = "Ponto deletado com sucesso!"
	MsgUserNotFound   = "Nenhum ponto encontrado para esse usuário."
	MsgUpdateNotFound = "Nenhum ponto encontrado para atualizar."
	MsgDeleteNotFound = "Nenhum ponto encontrado para excluir."
)

// PunchHandler implementa os endpoints de registro e consulta de pontos
type PunchHandler struct {
	service *punch.Service
	logger  *logging.ContextLogger
	metrics *metrics.APIMetrics
}

// NewPunchHandler cria um novo handler de pontos
func NewPunchHandler(service *punch.Service, logger *zap.Logger) *PunchHandler {
	return &PunchHandler{
		service: service,
		logger:  logging.NewContextLogger(logger),
	}
}

// SetMetrics configura o objeto de métricas
func (h *PunchHandler) SetMetrics(metrics *metrics.APIMetrics) {
	h.metrics = metrics
}

// Register trata POST /registrar_ponto
func (h *PunchHandler) Register(c *gin.Context) {
	in, ok := h.bindInput(c)
	if !ok {
		return
	}

	p, err := h.service.Register(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err, "")
		return
	}

	if h.metrics != nil {
		h.metrics.PunchRegistered(string(p.Type))
	}

	c.JSON(http.StatusCreated, gin.H{
		apperrors.KeyMessage: RegisteredMessage(p.Type),
		"ponto_id":           p.ID,
	})
}

// ListAll trata GET /consultar_pontos
func (h *PunchHandler) ListAll(c *gin.Context) {
	views, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"pontos": views})
}

// ListByUser trata GET /consultar_pontos/:id_usuario
func (h *PunchHandler) ListByUser(c *gin.Context) {
	views, err := h.service.ListByUser(c.Request.Context(), c.Param("id_usuario"))
	if err != nil {
		h.respondError(c, err, MsgUserNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pontos": views})
}

// Update trata PUT /atualizar_ponto/:ponto_id
func (h *PunchHandler) Update(c *gin.Context) {
	id, ok := h.parsePontoID(c, MsgUpdateNotFound)
	if !ok {
		return
	}

	in, ok := h.bindInput(c)
	if !ok {
		return
	}

	if err := h.service.Update(c.Request.Context(), id, in); err != nil {
		h.respondError(c, err, MsgUpdateNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{apperrors.KeyMessage: MsgUpdated})
}

// Delete trata DELETE /deletar_ponto/:ponto_id
func (h *PunchHandler) Delete(c *gin.Context) {
	id, ok := h.parsePontoID(c, MsgDeleteNotFound)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, MsgDeleteNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{apperrors.KeyMessage: MsgDeleted})
}

func (h *PunchHandler) bindInput(c *gin.Context) (model.PunchInput, bool) {
	var in model.PunchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.WarnCtx(c.Request.Context(), "Corpo inválido", zap.Error(err))
		h.abort(c, apperrors.InvalidInput(MsgInvalidBody, err))
		return in, false
	}
	return in, true
}

// parsePontoID aceita apenas inteiros positivos; qualquer outro valor é tratado
// como um ponto inexistente
func (h *PunchHandler) parsePontoID(c *gin.Context, notFoundMsg string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("ponto_id"), 10, 0)
	if err != nil || id == 0 {
		h.abort(c, apperrors.NotFound(notFoundMsg, err))
		return 0, false
	}
	return uint(id), true
}

func (h *PunchHandler) respondError(c *gin.Context, err error, notFoundMsg string) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, model.ErrInvalidPunchType):
		h.abort(c, apperrors.InvalidInput(MsgInvalidType, err))
	case errors.Is(err, repository.ErrPunchNotFound):
		h.abort(c, apperrors.NotFound(notFoundMsg, err))
	default:
		h.logger.ErrorCtx(ctx, "Falha no armazenamento de pontos",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		if h.metrics != nil {
			h.metrics.RequestError(c.FullPath(), c.Request.Method, "storage_failure")
		}
		h.abort(c, apperrors.StorageFailure(err))
	}
}

func (h *PunchHandler) abort(c *gin.Context, apiErr *apperrors.APIError) {
	_ = c.Error(apiErr)
	c.AbortWithStatusJSON(apiErr.Code, apiErr.Payload())
}

// RegisteredMessage monta a confirmação de registro
func RegisteredMessage(tipo model.PunchType) string {
	return "Ponto de " + string(tipo) + " registrado com sucesso!"
}
