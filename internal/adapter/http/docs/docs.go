// Package docs publica a documentação interativa da API em /swagger
package docs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	// InstanceName identifica o documento no registro do swag
	InstanceName = "pontoeletronico"
	BasePath     = "/swagger"
)

// A interface Swagger precisa de scripts e estilos inline
const uiContentSecurityPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline'; " +
	"style-src 'self' 'unsafe-inline'; img-src 'self' data:; frame-ancestors 'none'"

//go:embed openapi.yaml
var openAPIYAML []byte

type document string

func (d document) ReadDoc() string {
	return string(d)
}

var (
	registerOnce sync.Once
	registerErr  error
)

// JSON retorna o documento OpenAPI embutido convertido para JSON
func JSON() ([]byte, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(openAPIYAML, &doc); err != nil {
		return nil, fmt.Errorf("documento openapi inválido: %w", err)
	}
	return json.Marshal(doc)
}

// Register expõe a interface Swagger e redireciona a raiz para ela
func Register(r gin.IRouter, logger *zap.Logger) error {
	registerOnce.Do(func() {
		var data []byte
		if data, registerErr = JSON(); registerErr == nil {
			swag.Register(InstanceName, document(data))
		}
	})
	if registerErr != nil {
		return registerErr
	}

	r.GET(BasePath+"/*any", relaxContentSecurityPolicy,
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.InstanceName(InstanceName)))
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, BasePath+"/index.html")
	})

	logger.Info("Documentação da API disponível", zap.String("path", BasePath+"/index.html"))
	return nil
}

func relaxContentSecurityPolicy(c *gin.Context) {
	c.Header("Content-Security-Policy", uiContentSecurityPolicy)
	c.Next()
}
