package http_test

import (
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	apihttp "github.com/diillson/ponto-eletronico-go/internal/adapter/http"
	"github.com/diillson/ponto-eletronico-go/internal/app/punch"
	"github.com/diillson/ponto-eletronico-go/internal/mocks"
	"github.com/diillson/ponto-eletronico-go/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestHealthChecker(t *testing.T) {
	logger := testutils.TestLogger(t)

	t.Run("liveness", func(t *testing.T) {
		router := setupRouter(t)
		resp := testutils.MakeRequest(t, router, http.MethodGet, "/health/liveness", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	})

	t.Run("readiness with healthy dependencies", func(t *testing.T) {
		router := setupRouter(t)

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/registrar_ponto", anaBody("entrada"), nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

		resp = testutils.MakeRequest(t, router, http.MethodGet, "/health/readiness", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var body struct {
			Status string                            `json:"status"`
			Checks map[string]map[string]interface{} `json:"checks"`
		}
		testutils.ParseResponse(t, resp, &body)
		assert.Equal(t, "UP", body.Status)
		require.Contains(t, body.Checks, "pontos")
		assert.Equal(t, float64(1), body.Checks["pontos"]["count"])
		assert.Equal(t, "UP", body.Checks["database"]["status"])
	})

	t.Run("cache failure is not critical", func(t *testing.T) {
		mockRepo := new(mocks.MockPunchRepository)
		db := new(mocks.MockCache)
		cacheDown := new(mocks.MockCache)

		mockRepo.On("Count", mock.Anything).Return(int64(0), nil)
		db.On("Ping", mock.Anything).Return(nil)
		cacheDown.On("Ping", mock.Anything).Return(errors.New("connection refused"))

		service := punch.NewService(mockRepo, cacheDown, time.Minute, logger)
		handler := apihttp.NewHandler(service, mockRepo, db, cacheDown, logger)
		router := testutils.SetupTestRouter(t)
		handler.RegisterRoutes(router)

		resp := testutils.MakeRequest(t, router, http.MethodGet, "/health/readiness", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	})

	t.Run("database failure is critical", func(t *testing.T) {
		mockRepo := new(mocks.MockPunchRepository)
		dbDown := new(mocks.MockCache)
		healthyCache := new(mocks.MockCache)

		mockRepo.On("Count", mock.Anything).Return(int64(0), errors.New("database is closed"))
		dbDown.On("Ping", mock.Anything).Return(errors.New("database is closed"))
		healthyCache.On("Ping", mock.Anything).Return(nil)

		service := punch.NewService(mockRepo, healthyCache, time.Minute, logger)
		handler := apihttp.NewHandler(service, mockRepo, dbDown, healthyCache, logger)
		router := testutils.SetupTestRouter(t)
		handler.RegisterRoutes(router)

		resp := testutils.MakeRequest(t, router, http.MethodGet, "/health/readiness", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusServiceUnavailable)

		resp = testutils.MakeRequest(t, router, http.MethodGet, "/health/details", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusServiceUnavailable)
		assert.Contains(t, resp.Body.String(), "database is closed")
	})
}
