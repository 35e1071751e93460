package app_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diillson/ponto-eletronico-go/internal/app"
	"github.com/diillson/ponto-eletronico-go/internal/testutils"
	"github.com/diillson/ponto-eletronico-go/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.Database.DSN = filepath.Join(t.TempDir(), "pontos.db")
	cfg.Database.MaxOpenConns = 1
	cfg.Database.LogLevel = "silent"
	return cfg
}

func newRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	application, err := app.NewApp(ctx, testutils.TestLogger(t), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { application.Close(ctx) })

	gin.SetMode(gin.TestMode)
	router := gin.New()
	application.RegisterRoutes(router)
	return router
}

func TestApp_StaleReadsWithinTTL(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.TTL = 300 * time.Millisecond
	router := newRouter(t, cfg)

	body := map[string]string{
		"nome": "Ana", "email": "ana@x.com", "departamento": "TI", "cargo": "Dev", "id": "U1", "tipo": "Entrada",
	}

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/registrar_ponto", body, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/consultar_pontos", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	first := resp.Body.String()

	body["tipo"] = "saida"
	resp = testutils.MakeRequest(t, router, http.MethodPost, "/registrar_ponto", body, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/consultar_pontos", nil, nil)
	assert.Equal(t, first, resp.Body.String(), "a escrita não invalida o cache")

	time.Sleep(cfg.Cache.TTL + 200*time.Millisecond)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/consultar_pontos", nil, nil)
	var list struct {
		Pontos []map[string]interface{} `json:"pontos"`
	}
	testutils.ParseResponse(t, resp, &list)
	assert.Len(t, list.Pontos, 2)
}

func TestApp_CacheDisabledAndSeed(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Enabled = false

	seed := filepath.Join(t.TempDir(), "pontos.json")
	require.NoError(t, os.WriteFile(seed, []byte(`[
		{"nome":"Bia","email":"bia@x.com","departamento":"RH","cargo":"Analista","id":"U2","tipo":"checkin"}
	]`), 0o644))
	cfg.Database.SeedFile = seed

	router := newRouter(t, cfg)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/consultar_pontos/U2", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	resp = testutils.MakeRequest(t, router, http.MethodDelete, "/deletar_ponto/1", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	// Sem cache, a consulta reflete a exclusão imediatamente
	resp = testutils.MakeRequest(t, router, http.MethodGet, "/consultar_pontos/U2", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
}

func TestApp_OperationalEndpoints(t *testing.T) {
	router := newRouter(t, testConfig(t))

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/health/readiness", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/metrics", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Contains(t, resp.Body.String(), "ponto_requests_total")

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/favicon.ico", nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/swagger/doc.json", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Contains(t, resp.Body.String(), "/deletar_ponto/{ponto_id}")
}

func TestApp_APIDocsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Features.APIDocs = false
	router := newRouter(t, cfg)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/swagger/index.html", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestApp_RateLimiterWithoutRedis(t *testing.T) {
	cfg := testConfig(t)
	cfg.Features.RateLimiter = true
	cfg.Features.RateLimit = 1
	router := newRouter(t, cfg)

	// Sem Redis o limitador fica desligado
	for i := 0; i < 3; i++ {
		resp := testutils.MakeRequest(t, router, http.MethodPost, "/registrar_ponto", map[string]string{"tipo": "entrada"}, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	}
}

func TestApp_SeedImportedOnlyIntoEmptyTable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Enabled = false

	seed := filepath.Join(t.TempDir(), "pontos.json")
	require.NoError(t, os.WriteFile(seed, []byte(`[
		{"nome":"Bia","email":"bia@x.com","departamento":"RH","cargo":"Analista","id":"U2","tipo":"checkin"}
	]`), 0o644))
	cfg.Database.SeedFile = seed

	// Dois inícios sobre o mesmo arquivo de banco
	newRouter(t, cfg)
	router := newRouter(t, cfg)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/consultar_pontos/U2", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var list struct {
		Pontos []map[string]interface{} `json:"pontos"`
	}
	testutils.ParseResponse(t, resp, &list)
	require.Len(t, list.Pontos, 1)
	assert.EqualValues(t, 1, list.Pontos[0]["ponto_id"])
}
