package querying

import (
	"cmp"
	"slices"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
	kindDate
)

type sortField struct {
	kind fieldKind
	str  func(*domain.Transaction) string
	// num devolve false quando o valor está ausente
	num  func(*domain.Transaction) (float64, bool)
	date func(*domain.Transaction) time.Time
}

func stringField(get func(*domain.Transaction) string) sortField {
	return sortField{kind: kindString, str: get}
}

func numberField(get func(*domain.Transaction) float64) sortField {
	return sortField{kind: kindNumber, num: func(t *domain.Transaction) (float64, bool) { return get(t), true }}
}

var sortableFields = map[string]sortField{
	"transactionId":   stringField(func(t *domain.Transaction) string { return t.TransactionID }),
	"customerId":      stringField(func(t *domain.Transaction) string { return t.CustomerID }),
	"customerName":    stringField(func(t *domain.Transaction) string { return t.CustomerName }),
	"phoneNumber":     stringField(func(t *domain.Transaction) string { return t.PhoneNumber }),
	"gender":          stringField(func(t *domain.Transaction) string { return t.Gender }),
	"customerRegion":  stringField(func(t *domain.Transaction) string { return t.CustomerRegion }),
	"customerType":    stringField(func(t *domain.Transaction) string { return t.CustomerType }),
	"productId":       stringField(func(t *domain.Transaction) string { return t.ProductID }),
	"productName":     stringField(func(t *domain.Transaction) string { return t.ProductName }),
	"brand":           stringField(func(t *domain.Transaction) string { return t.Brand }),
	"productCategory": stringField(func(t *domain.Transaction) string { return t.ProductCategory }),
	"paymentMethod":   stringField(func(t *domain.Transaction) string { return t.PaymentMethod }),
	"orderStatus":     stringField(func(t *domain.Transaction) string { return t.OrderStatus }),
	"deliveryType":    stringField(func(t *domain.Transaction) string { return t.DeliveryType }),
	"storeId":         stringField(func(t *domain.Transaction) string { return t.StoreID }),
	"storeLocation":   stringField(func(t *domain.Transaction) string { return t.StoreLocation }),
	"salespersonId":   stringField(func(t *domain.Transaction) string { return t.SalespersonID }),
	"employeeName":    stringField(func(t *domain.Transaction) string { return t.EmployeeName }),

	"quantity":           numberField(func(t *domain.Transaction) float64 { return float64(t.Quantity) }),
	"pricePerUnit":       numberField(func(t *domain.Transaction) float64 { return t.PricePerUnit }),
	"discountPercentage": numberField(func(t *domain.Transaction) float64 { return t.DiscountPercentage }),
	"totalAmount":        numberField(func(t *domain.Transaction) float64 { return t.TotalAmount }),
	"finalAmount":        numberField(func(t *domain.Transaction) float64 { return t.FinalAmount }),
	"age": {
		kind: kindNumber,
		num: func(t *domain.Transaction) (float64, bool) {
			if !t.HasAge() {
				return 0, false
			}
			return float64(*t.Age), true
		},
	},

	"date": {kind: kindDate, date: func(t *domain.Transaction) time.Time { return t.Date }},
}

// IsSortable informa se o campo pode ser usado em sortBy
func IsSortable(field string) bool {
	_, ok := sortableFields[field]
	return ok
}

// SortableFields lista os campos aceitos em sortBy
func SortableFields() []string {
	fields := make([]string, 0, len(sortableFields))
	for name := range sortableFields {
		fields = append(fields, name)
	}
	slices.Sort(fields)
	return fields
}

// Sort devolve uma nova ordenação estável dos registros. Campo desconhecido
// devolve a ordem de entrada. Valores ausentes (idade, data) vão para o fim
// independentemente da direção.
func Sort(records []*domain.Transaction, field string, order domain.SortOrder) []*domain.Transaction {
	sorted := slices.Clone(records)

	sf, ok := sortableFields[field]
	if !ok || len(sorted) < 2 {
		return sorted
	}

	dir := 1
	if order == domain.SortDesc {
		dir = -1
	}

	var compare func(a, b *domain.Transaction) int

	switch sf.kind {
	case kindString:
		// collate.Collator não é seguro para uso concorrente; um por chamada
		collator := collate.New(language.English)
		compare = func(a, b *domain.Transaction) int {
			return collator.CompareString(sf.str(a), sf.str(b)) * dir
		}
	case kindNumber:
		compare = func(a, b *domain.Transaction) int {
			va, okA := sf.num(a)
			vb, okB := sf.num(b)
			if c, decided := compareAbsent(okA, okB); decided {
				return c
			}
			return cmp.Compare(va, vb) * dir
		}
	case kindDate:
		compare = func(a, b *domain.Transaction) int {
			va, vb := sf.date(a), sf.date(b)
			if c, decided := compareAbsent(!va.IsZero(), !vb.IsZero()); decided {
				return c
			}
			return va.Compare(vb) * dir
		}
	}

	slices.SortStableFunc(sorted, compare)
	return sorted
}

// compareAbsent posiciona ausentes depois dos presentes
func compareAbsent(presentA, presentB bool) (int, bool) {
	switch {
	case presentA && presentB:
		return 0, false
	case !presentA && !presentB:
		return 0, true
	case !presentA:
		return 1, true
	default:
		return -1, true
	}
}
