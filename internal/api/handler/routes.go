package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/querying"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/selling"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Health(service selling.SalesService) []router.Route {
	return []router.Route{
		{
			Path:    "/health",
			Method:  http.MethodGet,
			Handler: GetHealth(service),
		},
	}
}

func Sales(service selling.SalesService, defaults querying.Defaults) []router.Route {
	return []router.Route{
		{
			Path:    "/api/sales",
			Method:  http.MethodGet,
			Handler: GetSales(service, defaults),
		},
		{
			Path:    "/api/sales/filters",
			Method:  http.MethodGet,
			Handler: GetFilterOptions(service),
		},
	}
}

// DatasetReload só é registrada quando a origem é o CSV em memória
func DatasetReload(provider ReloadStatusProvider) []router.Route {
	return []router.Route{
		{
			Path:    "/api/dataset/status",
			Method:  http.MethodGet,
			Handler: GetReloadStatus(provider),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}
