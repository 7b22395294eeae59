// Package dataset lê as vendas de arquivos CSV e normaliza cada linha para domain.Transaction
package dataset

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Colunas do CSV de vendas
const (
	ColTransactionID      = "Transaction ID"
	ColDate               = "Date"
	ColCustomerID         = "Customer ID"
	ColCustomerName       = "Customer Name"
	ColPhoneNumber        = "Phone Number"
	ColGender             = "Gender"
	ColAge                = "Age"
	ColCustomerRegion     = "Customer Region"
	ColCustomerType       = "Customer Type"
	ColProductID          = "Product ID"
	ColProductName        = "Product Name"
	ColBrand              = "Brand"
	ColProductCategory    = "Product Category"
	ColTags               = "Tags"
	ColQuantity           = "Quantity"
	ColPricePerUnit       = "Price per Unit"
	ColDiscountPercentage = "Discount Percentage"
	ColTotalAmount        = "Total Amount"
	ColFinalAmount        = "Final Amount"
	ColPaymentMethod      = "Payment Method"
	ColOrderStatus        = "Order Status"
	ColDeliveryType       = "Delivery Type"
	ColStoreID            = "Store ID"
	ColStoreLocation      = "Store Location"
	ColSalespersonID      = "Salesperson ID"
	ColEmployeeName       = "Employee Name"
)

// RawRow é uma linha do CSV indexada pelo nome da coluna
type RawRow map[string]string

func (r RawRow) get(col string) string {
	return strings.TrimSpace(r[col])
}

// Issue descreve um valor presente na origem que não pôde ser convertido.
// O campo recebe o valor neutro e a linha segue válida.
type Issue struct {
	Column string
	Value  string
}

var numberCleaner = strings.NewReplacer("₹", "", "$", "", ",", "", " ", "")

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"2006/01/02",
}

// Normalize converte uma linha crua em Transaction. Valores ausentes viram
// string vazia, zero ou slice vazio; a idade ausente fica nil. Zero presente
// na origem é mantido como zero.
func Normalize(raw RawRow) (*domain.Transaction, []Issue) {
	var issues []Issue
	report := func(col string, ok bool) {
		if !ok {
			issues = append(issues, Issue{Column: col, Value: raw.get(col)})
		}
	}

	t := &domain.Transaction{
		TransactionID:  raw.get(ColTransactionID),
		CustomerID:     raw.get(ColCustomerID),
		CustomerName:   raw.get(ColCustomerName),
		PhoneNumber:    raw.get(ColPhoneNumber),
		CustomerRegion: raw.get(ColCustomerRegion),
		CustomerType:   raw.get(ColCustomerType),

		ProductID:       raw.get(ColProductID),
		ProductName:     raw.get(ColProductName),
		Brand:           raw.get(ColBrand),
		ProductCategory: raw.get(ColProductCategory),
		Tags:            SplitTags(raw.get(ColTags)),

		PaymentMethod: raw.get(ColPaymentMethod),
		OrderStatus:   raw.get(ColOrderStatus),
		DeliveryType:  raw.get(ColDeliveryType),
		StoreID:       raw.get(ColStoreID),
		StoreLocation: raw.get(ColStoreLocation),
		SalespersonID: raw.get(ColSalespersonID),
		EmployeeName:  raw.get(ColEmployeeName),
	}

	var ok bool

	t.Gender, ok = NormalizeGender(raw.get(ColGender))
	report(ColGender, ok)

	t.Date, ok = ParseDay(raw.get(ColDate))
	report(ColDate, ok)

	t.Age, ok = ParseAge(raw.get(ColAge))
	report(ColAge, ok)

	t.Quantity, ok = ParseCount(raw.get(ColQuantity))
	report(ColQuantity, ok)

	t.PricePerUnit, ok = ParseAmount(raw.get(ColPricePerUnit))
	report(ColPricePerUnit, ok)

	t.DiscountPercentage, ok = ParsePercentage(raw.get(ColDiscountPercentage))
	report(ColDiscountPercentage, ok)

	t.TotalAmount, ok = ParseAmount(raw.get(ColTotalAmount))
	report(ColTotalAmount, ok)

	t.FinalAmount, ok = ParseAmount(raw.get(ColFinalAmount))
	report(ColFinalAmount, ok)

	return t, issues
}

// parseDecimal devolve (valor, presente, válido)
func parseDecimal(s string) (decimal.Decimal, bool, bool) {
	cleaned := numberCleaner.Replace(s)
	if cleaned == "" {
		return decimal.Zero, false, true
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, true, false
	}
	return d, true, true
}

// ParseAmount limpa símbolos de moeda e separadores de milhar.
// Valores negativos são inválidos e viram zero.
func ParseAmount(s string) (float64, bool) {
	d, present, ok := parseDecimal(s)
	if !present || !ok {
		return 0, ok
	}
	if d.IsNegative() {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// ParsePercentage aceita valores entre 0 e 100
func ParsePercentage(s string) (float64, bool) {
	d, present, ok := parseDecimal(strings.TrimSuffix(s, "%"))
	if !present || !ok {
		return 0, ok
	}
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// ParseCount aceita inteiros não negativos, inclusive no formato "3.0"
func ParseCount(s string) (int, bool) {
	d, present, ok := parseDecimal(s)
	if !present || !ok {
		return 0, ok
	}
	if d.IsNegative() || !d.Equal(d.Truncate(0)) {
		return 0, false
	}
	return int(d.IntPart()), true
}

// ParseAge devolve nil quando a idade não foi informada
func ParseAge(s string) (*int, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, true
	}

	age, ok := ParseCount(s)
	if !ok {
		return nil, false
	}
	return &age, true
}

// ParseDay converte a data para meia-noite UTC do dia informado
func ParseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// NormalizeGender aceita qualquer capitalização de Male/Female
func NormalizeGender(s string) (string, bool) {
	switch strings.ToLower(s) {
	case "":
		return "", true
	case "male", "m":
		return domain.GenderMale, true
	case "female", "f":
		return domain.GenderFemale, true
	}
	return "", false
}

// SplitTags separa por vírgula, remove espaços e descarta vazios. Nunca devolve nil.
func SplitTags(s string) []string {
	tags := make([]string, 0, 4)
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
