package domain

// PageMeta contém os metadados de paginação do resultado
type PageMeta struct {
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	CurrentPage int  `json:"currentPage"`
	PageSize    int  `json:"pageSize"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// SalesStats é calculado sobre o conjunto filtrado inteiro, não apenas sobre a página
type SalesStats struct {
	TotalUnitsSold int     `json:"totalUnitsSold"`
	TotalAmount    float64 `json:"totalAmount"`
	TotalDiscount  float64 `json:"totalDiscount"`
}

type SalesPage struct {
	Data  []*Transaction `json:"data"`
	Meta  PageMeta       `json:"meta"`
	Stats SalesStats     `json:"stats"`
}

// FilterOptions lista os valores distintos disponíveis para os filtros do dashboard
type FilterOptions struct {
	Regions        []string `json:"regions"`
	Genders        []string `json:"genders"`
	Categories     []string `json:"categories"`
	Tags           []string `json:"tags"`
	PaymentMethods []string `json:"paymentMethods"`
	AgeRanges      []string `json:"ageRanges"`
	MinDate        string   `json:"minDate,omitempty"`
	MaxDate        string   `json:"maxDate,omitempty"`
}

// DefaultAgeRanges são as faixas etárias oferecidas pelo dashboard
var DefaultAgeRanges = []string{"18-25", "26-35", "36-45", "46-55", "56-65", "65+"}

// DataStatus descreve a origem dos dados servidos pela API
type DataStatus struct {
	Status      string `json:"status"`
	DataSource  string `json:"dataSource"`
	RecordCount int64  `json:"recordCount"`
	Version     uint64 `json:"version,omitempty"`
	LoadedAt    string `json:"loadedAt,omitempty"`
	Timestamp   string `json:"timestamp"`
}
