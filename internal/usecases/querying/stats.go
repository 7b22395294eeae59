package querying

import (
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// ComputeStats soma unidades, valor total e desconto sobre o conjunto filtrado
// inteiro, antes da paginação.
func ComputeStats(records []*domain.Transaction) domain.SalesStats {
	var (
		units    int
		amount   float64
		discount float64
	)

	for _, r := range records {
		units += r.Quantity
		amount += r.TotalAmount
		discount += r.DiscountAmount()
	}

	return domain.SalesStats{
		TotalUnitsSold: units,
		TotalAmount:    utils.RoundWithTwoDecimalPlace(amount),
		TotalDiscount:  utils.RoundWithTwoDecimalPlace(discount),
	}
}
