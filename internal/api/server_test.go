package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/selling"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func init() {
	log.SetupTestLogger()
}

func intPtr(v int) *int { return &v }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"
	cfg.Query = config.Query{DefaultLimit: 2, MaxLimit: 100, CacheSize: 16}
	cfg.RateLimit = config.RateLimit{Enabled: false, RPS: 10, Burst: 10}
	cfg.Cors.AllowedOrigins = []string{"*"}
	return cfg
}

func testRecords() []*domain.Transaction {
	day := func(d int) time.Time { return time.Date(2023, 1, d, 0, 0, 0, 0, time.UTC) }
	return []*domain.Transaction{
		{TransactionID: "T1", CustomerName: "Carla", CustomerRegion: "North", Quantity: 2, TotalAmount: 100, FinalAmount: 90, Age: intPtr(22), Date: day(1), Tags: []string{}},
		{TransactionID: "T2", CustomerName: "Ana", CustomerRegion: "South", Quantity: 1, TotalAmount: 50, FinalAmount: 50, Age: intPtr(40), Date: day(2), Tags: []string{}},
		{TransactionID: "T3", CustomerName: "Bruno", CustomerRegion: "North", Quantity: 3, TotalAmount: 30, FinalAmount: 27, Age: intPtr(31), Date: day(3), Tags: []string{}},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()

	repo := repository.NewMemorySalesRepository(repository.SourceMemory, testRecords())
	service, err := selling.NewSalesService(repo, selling.Options{CacheSize: cfg.Query.CacheSize})
	require.NoError(t, err)

	srv, err := New(cfg, service)
	require.NoError(t, err)
	return srv
}

func TestServer_GetSales(t *testing.T) {
	srv := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/sales?regions=North", nil)
	req.Header.Set("Origin", "http://dashboard.example")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://dashboard.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))

	var page domain.SalesPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))

	require.Len(t, page.Data, 2)
	assert.Equal(t, "Bruno", page.Data[0].CustomerName)
	assert.Equal(t, "Carla", page.Data[1].CustomerName)
	assert.Equal(t, domain.PageMeta{TotalItems: 2, TotalPages: 1, CurrentPage: 1, PageSize: 2}, page.Meta)
	assert.Equal(t, domain.SalesStats{TotalUnitsSold: 5, TotalAmount: 130, TotalDiscount: 13}, page.Stats)
}

func TestServer_LimitePadraoDaConfiguracao(t *testing.T) {
	srv := newTestServer(t, testConfig())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sales?page=9", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var page domain.SalesPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))

	// página além do fim é ajustada para a última
	assert.Equal(t, 2, page.Meta.CurrentPage)
	assert.Equal(t, 2, page.Meta.TotalPages)
	assert.True(t, page.Meta.HasPrevPage)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Carla", page.Data[0].CustomerName)
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t, testConfig())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var status domain.DataStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, selling.StatusOK, status.Status)
	assert.Equal(t, repository.SourceMemory, status.DataSource)
	assert.Equal(t, int64(3), status.RecordCount)
}

func TestServer_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimit{Enabled: true, RPS: 0.001, Burst: 1}
	srv := newTestServer(t, cfg)

	first := httptest.NewRecorder()
	srv.Handler().ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	srv.Handler().ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestServer_Metrics(t *testing.T) {
	srv := newTestServer(t, testConfig())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sales", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestQueryDefaults(t *testing.T) {
	defaults := QueryDefaults(config.Query{DefaultLimit: 25, MaxLimit: 50})

	assert.Equal(t, 25, defaults.Limit)
	assert.Equal(t, 50, defaults.MaxLimit)
	assert.Equal(t, domain.DefaultSortBy, defaults.SortBy)
}
