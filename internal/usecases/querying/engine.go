package querying

import "github.com/vfg2006/sales-dashboard-api/internal/domain"

// Execute aplica a consulta sobre os registros na ordem fixa
// busca -> filtros -> estatísticas -> ordenação -> paginação.
// É total: qualquer SalesQuery produz um resultado, nunca erro.
func Execute(records []*domain.Transaction, q domain.SalesQuery) *domain.SalesPage {
	filtered := Search(records, q.SearchTerm)
	filtered = Filter(filtered, NewCriteria(q))

	stats := ComputeStats(filtered)
	sorted := Sort(filtered, q.SortBy, q.SortOrder)
	data, meta := Paginate(sorted, q.Page, q.Limit)

	return &domain.SalesPage{
		Data:  data,
		Meta:  meta,
		Stats: stats,
	}
}
