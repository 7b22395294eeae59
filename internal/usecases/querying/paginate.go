package querying

import (
	"math"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// NewPageMeta calcula os metadados de paginação, limitando a página a
// [1, totalPages]. Com zero itens, totalPages é 1 e a página é 1.
func NewPageMeta(totalItems, page, pageSize int) domain.PageMeta {
	if pageSize < 1 {
		pageSize = 1
	}
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	currentPage := min(max(page, 1), totalPages)

	return domain.PageMeta{
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		PageSize:    pageSize,
		HasNextPage: currentPage < totalPages,
		HasPrevPage: currentPage > 1,
	}
}

// Offset é a posição do primeiro item da página atual
func Offset(meta domain.PageMeta) int {
	return (meta.CurrentPage - 1) * meta.PageSize
}

// Paginate devolve o recorte da página solicitada e seus metadados
func Paginate(records []*domain.Transaction, page, pageSize int) ([]*domain.Transaction, domain.PageMeta) {
	meta := NewPageMeta(len(records), page, pageSize)

	start := Offset(meta)
	end := min(start+meta.PageSize, len(records))
	if start >= end {
		return []*domain.Transaction{}, meta
	}

	data := make([]*domain.Transaction, end-start)
	copy(data, records[start:end])
	return data, meta
}

// PagePlan descreve a busca feita em paralelo à contagem nas origens persistentes
type PagePlan struct {
	Page     int
	PageSize int
	Offset   int
	// Speculative é falso quando (Page-1)*PageSize estouraria int. Nesse caso a
	// busca só acontece depois que o total limitar a página.
	Speculative bool
}

// PlanPage calcula o offset da página pedida sem overflow
func PlanPage(page, pageSize int) PagePlan {
	plan := PagePlan{
		Page:     max(page, 1),
		PageSize: max(pageSize, 1),
	}

	if plan.Page-1 > math.MaxInt/plan.PageSize {
		return plan
	}

	plan.Offset = (plan.Page - 1) * plan.PageSize
	plan.Speculative = true
	return plan
}

// NeedsFetch informa se a página precisa ser buscada (de novo) depois da contagem
func (p PagePlan) NeedsFetch(meta domain.PageMeta) bool {
	return !p.Speculative || meta.CurrentPage != p.Page
}
