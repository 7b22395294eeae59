// Package metrics concentra os coletores Prometheus expostos em /metrics
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sales_api",
		Name:      "http_requests_total",
		Help:      "Total de requisições HTTP por rota e status.",
	}, []string{"method", "path", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sales_api",
		Name:      "http_request_duration_seconds",
		Help:      "Duração das requisições HTTP.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sales_api",
		Name:      "sales_query_duration_seconds",
		Help:      "Duração da execução de consultas de vendas por origem.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"source"})

	QueryCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sales_api",
		Name:      "sales_query_cache_total",
		Help:      "Acertos e faltas do cache de páginas.",
	}, []string{"result"})

	DatasetRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sales_api",
		Name:      "dataset_records",
		Help:      "Quantidade de registros carregados em memória.",
	})

	DatasetReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sales_api",
		Name:      "dataset_reloads_total",
		Help:      "Recargas do dataset CSV por resultado.",
	}, []string{"result"})
)

// Handler expõe o registro padrão no formato Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}
