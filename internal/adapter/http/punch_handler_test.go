package http_test

import (
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/diillson/ponto-eletronico-go/internal/adapter/database"
	apihttp "github.com/diillson/ponto-eletronico-go/internal/adapter/http"
	"github.com/diillson/ponto-eletronico-go/internal/app/punch"
	"github.com/diillson/ponto-eletronico-go/internal/domain/model"
	"github.com/diillson/ponto-eletronico-go/internal/infra/metrics"
	"github.com/diillson/ponto-eletronico-go/internal/mocks"
	"github.com/diillson/ponto-eletronico-go/internal/testutils"
	"github.com/diillson/ponto-eletronico-go/pkg/cache"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var horaPattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4} \d{2}:\d{2}:\d{2}$`)

type listResponse struct {
	Pontos []model.PunchView `json:"pontos"`
}

func setupRouter(t *testing.T) *gin.Engine {
	logger := testutils.TestLogger(t)
	db := testutils.TestDatabase(t)
	repo := database.NewPunchRepository(db.DB(), logger)
	noCache := &cache.NoOpCache{}
	service := punch.NewService(repo, noCache, time.Minute, logger)

	handler := apihttp.NewHandler(service, repo, db, noCache, logger)
	handler.SetMetrics(metrics.NewAPIMetrics(prometheus.NewRegistry()))

	router := testutils.SetupTestRouter(t)
	handler.RegisterRoutes(router)
	return router
}

func anaBody(tipo string) map[string]string {
	return map[string]string{
		"nome":         "Ana",
		"email":        "ana@x.com",
		"departamento": "TI",
		"cargo":        "Dev",
		"id":           "U1",
		"tipo":         tipo,
	}
}

func TestPunchHandler_RegisterAndQuery(t *testing.T) {
	router := setupRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/registrar_ponto", anaBody("Entrada"), nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	testutils.RequireJSONContentType(t, resp)

	var created map[string]interface{}
	testutils.ParseResponse(t, resp, &created)
	assert.Equal(t, "Ponto de entrada registrado com sucesso!", created["mensagem"])
	assert.NotZero(t, created["ponto_id"])

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/consultar_pontos/U1", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var list listResponse
	testutils.ParseResponse(t, resp, &list)
	require.Len(t, list.Pontos, 1)
	assert.Equal(t, "entrada", list.Pontos[0].Tipo)
	assert.Equal(t, model.UserView{Nome: "Ana", Email: "ana@x.com", Departamento: "TI", Cargo: "Dev", ID: "U1"}, list.Pontos[0].Usuario)
	assert.Regexp(t, horaPattern, list.Pontos[0].Hora)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/consultar_pontos", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	testutils.ParseResponse(t, resp, &list)
	assert.Len(t, list.Pontos, 1)
}

func TestPunchHandler_InvalidInput(t *testing.T) {
	router := setupRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/registrar_ponto", anaBody("lunch"), nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)

	var body map[string]string
	testutils.ParseResponse(t, resp, &body)
	assert.Equal(t, apihttp.MsgInvalidType, body["error"])

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/registrar_ponto", "não é json", nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	testutils.ParseResponse(t, resp, &body)
	assert.Equal(t, apihttp.MsgInvalidBody, body["error"])

	// Campos ausentes não são validados
	resp = testutils.MakeRequest(t, router, http.MethodPost, "/registrar_ponto", map[string]string{"tipo": "checkin"}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/consultar_pontos", nil, nil)
	var list listResponse
	testutils.ParseResponse(t, resp, &list)
	require.Len(t, list.Pontos, 1)
	assert.Equal(t, "", list.Pontos[0].Usuario.Nome)
}

func TestPunchHandler_EmptyStore(t *testing.T) {
	router := setupRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/consultar_pontos", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.JSONEq(t, `{"pontos":[]}`, resp.Body.String())
}

func TestPunchHandler_NotFound(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name    string
		method  string
		path    string
		body    interface{}
		message string
	}{
		{"unknown user", http.MethodGet, "/consultar_pontos/U404", nil, apihttp.MsgUserNotFound},
		{"delete missing", http.MethodDelete, "/deletar_ponto/999", nil, apihttp.MsgDeleteNotFound},
		{"update missing", http.MethodPut, "/atualizar_ponto/999", anaBody("saida"), apihttp.MsgUpdateNotFound},
		{"non integer id on delete", http.MethodDelete, "/deletar_ponto/abc", nil, apihttp.MsgDeleteNotFound},
		{"non integer id on update", http.MethodPut, "/atualizar_ponto/-1", anaBody("saida"), apihttp.MsgUpdateNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutils.MakeRequest(t, router, tt.method, tt.path, tt.body, nil)
			testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)

			var body map[string]string
			testutils.ParseResponse(t, resp, &body)
			assert.Equal(t, tt.message, body["mensagem"])
		})
	}
}

func TestPunchHandler_UpdateAndDelete(t *testing.T) {
	router := setupRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/registrar_ponto", anaBody("entrada"), nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/consultar_pontos/U1", nil, nil)
	var list listResponse
	testutils.ParseResponse(t, resp, &list)
	require.Len(t, list.Pontos, 1)
	id := list.Pontos[0].PontoID

	resp = testutils.MakeRequest(t, router, http.MethodPut, "/atualizar_ponto/"+itoa(id), anaBody("SAIDA"), nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.JSONEq(t, `{"mensagem":"Ponto atualizado com sucesso!"}`, resp.Body.String())

	resp = testutils.MakeRequest(t, router, http.MethodPut, "/atualizar_ponto/"+itoa(id), anaBody("almoco"), nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/consultar_pontos/U1", nil, nil)
	testutils.ParseResponse(t, resp, &list)
	require.Len(t, list.Pontos, 1)
	assert.Equal(t, "saida", list.Pontos[0].Tipo)

	resp = testutils.MakeRequest(t, router, http.MethodDelete, "/deletar_ponto/"+itoa(id), nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.JSONEq(t, `{"mensagem":"Ponto deletado com sucesso!"}`, resp.Body.String())

	resp = testutils.MakeRequest(t, router, http.MethodDelete, "/deletar_ponto/"+itoa(id), nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
}

func TestPunchHandler_StorageFailure(t *testing.T) {
	logger := testutils.TestLogger(t)
	mockRepo := new(mocks.MockPunchRepository)
	mockCache := new(mocks.MockCache)
	service := punch.NewService(mockRepo, mockCache, time.Minute, logger)

	mockCache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	mockRepo.On("List", mock.Anything).Return(nil, errors.New("no such table: pontos"))

	handler := apihttp.NewHandler(service, mockRepo, mockCache, mockCache, logger)
	router := testutils.SetupTestRouter(t)
	handler.RegisterRoutes(router)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/consultar_pontos", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusInternalServerError)
	assert.JSONEq(t, `{"error":"Erro interno do servidor"}`, resp.Body.String())
}
