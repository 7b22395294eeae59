// Package querying implementa o motor de consulta de vendas: busca, filtros,
// estatísticas, ordenação e paginação sobre um conjunto de registros em memória.
// Nenhuma função do pacote altera os registros ou a ordem do slice recebido.
package querying

import (
	"strings"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Search mantém os registros cujo nome do cliente ou telefone contém o termo,
// sem diferenciar maiúsculas de minúsculas. Termo vazio devolve a entrada intacta.
func Search(records []*domain.Transaction, term string) []*domain.Transaction {
	if term == "" {
		return records
	}

	needle := strings.ToLower(term)
	result := make([]*domain.Transaction, 0, len(records))
	for _, r := range records {
		if containsFold(r.CustomerName, needle) || containsFold(r.PhoneNumber, needle) {
			result = append(result, r)
		}
	}

	return result
}

func containsFold(value, lowerNeedle string) bool {
	if value == "" {
		return false
	}
	return strings.Contains(strings.ToLower(value), lowerNeedle)
}
