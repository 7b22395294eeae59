package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/usecases/querying"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/selling"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// GetSales responde GET /api/sales com a página filtrada, os metadados e as estatísticas
func GetSales(service selling.SalesService, defaults querying.Defaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := querying.ParseQuery(r.URL.Query(), defaults)

		log.ForContext(r.Context()).WithFields(log.Fields{
			"search": query.SearchTerm,
			"sortBy": query.SortBy,
			"page":   query.Page,
			"limit":  query.Limit,
		}).Debug("INIT - GetSales")

		page, err := service.GetSales(r.Context(), query)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, page)
	}
}

func GetFilterOptions(service selling.SalesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, err := service.FilterOptions(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, options)
	}
}
