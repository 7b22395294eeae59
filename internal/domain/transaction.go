// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

const (
	RegionNorth   = "North"
	RegionSouth   = "South"
	RegionEast    = "East"
	RegionWest    = "West"
	RegionCentral = "Central"
)

const (
	PaymentUPI        = "UPI"
	PaymentCreditCard = "Credit Card"
	PaymentDebitCard  = "Debit Card"
	PaymentCash       = "Cash"
	PaymentNetBanking = "Net Banking"
	PaymentWallet     = "Wallet"
)

// Transaction representa uma linha de venda já normalizada.
// Campos ausentes na origem chegam como string vazia, zero ou slice vazio,
// exceto Age, que é nil quando a idade não foi informada.
type Transaction struct {
	TransactionID string    `json:"transactionId" bson:"transactionId"`
	Date          time.Time `json:"date" bson:"date,omitempty"`

	CustomerID     string `json:"customerId" bson:"customerId"`
	CustomerName   string `json:"customerName" bson:"customerName"`
	PhoneNumber    string `json:"phoneNumber" bson:"phoneNumber"`
	Gender         string `json:"gender" bson:"gender"`
	Age            *int   `json:"age" bson:"age,omitempty"`
	CustomerRegion string `json:"customerRegion" bson:"customerRegion"`
	CustomerType   string `json:"customerType" bson:"customerType"`

	ProductID       string   `json:"productId" bson:"productId"`
	ProductName     string   `json:"productName" bson:"productName"`
	Brand           string   `json:"brand" bson:"brand"`
	ProductCategory string   `json:"productCategory" bson:"productCategory"`
	Tags            []string `json:"tags" bson:"tags"`

	Quantity           int     `json:"quantity" bson:"quantity"`
	PricePerUnit       float64 `json:"pricePerUnit" bson:"pricePerUnit"`
	DiscountPercentage float64 `json:"discountPercentage" bson:"discountPercentage"`
	TotalAmount        float64 `json:"totalAmount" bson:"totalAmount"`
	FinalAmount        float64 `json:"finalAmount" bson:"finalAmount"`

	PaymentMethod string `json:"paymentMethod" bson:"paymentMethod"`
	OrderStatus   string `json:"orderStatus" bson:"orderStatus"`
	DeliveryType  string `json:"deliveryType" bson:"deliveryType"`
	StoreID       string `json:"storeId" bson:"storeId"`
	StoreLocation string `json:"storeLocation" bson:"storeLocation"`
	SalespersonID string `json:"salespersonId" bson:"salespersonId"`
	EmployeeName  string `json:"employeeName" bson:"employeeName"`
}

// DiscountAmount é a diferença entre o valor total e o valor final da venda
func (t *Transaction) DiscountAmount() float64 {
	return t.TotalAmount - t.FinalAmount
}

// HasAge indica se a idade do cliente foi informada
func (t *Transaction) HasAge() bool {
	return t.Age != nil
}
