package http

import (
	"github.com/diillson/ponto-eletronico-go/internal/app/punch"
	"github.com/diillson/ponto-eletronico-go/internal/infra/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler representa o manipulador HTTP principal
type Handler struct {
	punchHandler  *PunchHandler
	healthChecker *HealthChecker
	logger        *zap.Logger
}

func NewHandler(service *punch.Service, punches PunchCounter, db Pinger, cache Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		punchHandler:  NewPunchHandler(service, logger),
		healthChecker: NewHealthChecker(punches, db, cache, logger),
		logger:        logger,
	}
}

// SetMetrics configura as métricas para o handler e seus componentes
func (h *Handler) SetMetrics(metrics *metrics.APIMetrics) {
	h.punchHandler.SetMetrics(metrics)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	h.healthChecker.LivenessCheck(c)
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	h.healthChecker.ReadinessCheck(c)
}

func (h *Handler) DetailedHealth(c *gin.Context) {
	h.healthChecker.DetailedHealth(c)
}

func (h *Handler) RegisterPunch(c *gin.Context) {
	h.punchHandler.Register(c)
}

func (h *Handler) ListPunches(c *gin.Context) {
	h.punchHandler.ListAll(c)
}

func (h *Handler) ListUserPunches(c *gin.Context) {
	h.punchHandler.ListByUser(c)
}

func (h *Handler) UpdatePunch(c *gin.Context) {
	h.punchHandler.Update(c)
}

func (h *Handler) DeletePunch(c *gin.Context) {
	h.punchHandler.Delete(c)
}

// RegisterRoutes registra os endpoints de ponto e de health check no router
func (h *Handler) RegisterRoutes(r gin.IRouter, writeLimiter ...gin.HandlerFunc) {
	writes := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writeLimiter...), handler)
	}

	r.POST("/registrar_ponto", writes(h.RegisterPunch)...)
	r.GET("/consultar_pontos", h.ListPunches)
	r.GET("/consultar_pontos/:id_usuario", h.ListUserPunches)
	r.PUT("/atualizar_ponto/:ponto_id", writes(h.UpdatePunch)...)
	r.DELETE("/deletar_ponto/:ponto_id", writes(h.DeletePunch)...)

	r.GET("/health", h.HealthCheck)
	r.GET("/health/liveness", h.HealthCheck)
	r.GET("/health/readiness", h.ReadinessCheck)
	r.GET("/health/details", h.DetailedHealth)
}
