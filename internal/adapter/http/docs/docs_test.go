package docs_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/diillson/ponto-eletronico-go/internal/adapter/http/docs"
	"github.com/diillson/ponto-eletronico-go/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_DescribesEveryPunchRoute(t *testing.T) {
	data, err := docs.JSON()
	require.NoError(t, err)

	var doc struct {
		Info  map[string]interface{}            `json:"info"`
		Paths map[string]map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "API de Ponto Eletrônico", doc.Info["title"])

	routes := map[string]string{
		"/registrar_ponto":               "post",
		"/consultar_pontos":              "get",
		"/consultar_pontos/{id_usuario}": "get",
		"/atualizar_ponto/{ponto_id}":    "put",
		"/deletar_ponto/{ponto_id}":      "delete",
	}
	for path, method := range routes {
		require.Contains(t, doc.Paths, path)
		assert.Contains(t, doc.Paths[path], method, path)
	}
}

func TestRegister_ServesSwaggerUI(t *testing.T) {
	logger := testutils.TestLogger(t)

	// Registrar em dois routers não pode duplicar o documento no swag
	for i := 0; i < 2; i++ {
		router := testutils.SetupTestRouter(t)
		require.NoError(t, docs.Register(router, logger))

		resp := testutils.MakeRequest(t, router, http.MethodGet, "/swagger/doc.json", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)
		assert.Contains(t, resp.Body.String(), "/registrar_ponto")

		resp = testutils.MakeRequest(t, router, http.MethodGet, "/swagger/index.html", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)
		assert.Contains(t, resp.Header().Get("Content-Security-Policy"), "'unsafe-inline'")

		resp = testutils.MakeRequest(t, router, http.MethodGet, "/", nil, nil)
		assert.Equal(t, http.StatusMovedPermanently, resp.Code)
		assert.Equal(t, "/swagger/index.html", resp.Header().Get("Location"))
	}
}
