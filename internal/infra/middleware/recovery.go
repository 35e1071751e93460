package middleware

import (
	"net/http"
	"runtime/debug"

	apperrors "github.com/diillson/ponto-eletronico-go/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryMiddleware implementa recuperação de pânicos
type RecoveryMiddleware struct {
	logger *zap.Logger
}

// NewRecoveryMiddleware cria um novo middleware de recuperação
func NewRecoveryMiddleware(logger *zap.Logger) *RecoveryMiddleware {
	return &RecoveryMiddleware{
		logger: logger,
	}
}

// Recovery converte um pânico em 500 com o corpo de erro padrão
func (m *RecoveryMiddleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				m.logger.Error("recuperado de pânico",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.ByteString("stack", debug.Stack()),
				)

				apiErr := apperrors.StorageFailure(nil)
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, apiErr.Payload())
					return
				}
				c.Abort()
			}
		}()

		c.Next()
	}
}
