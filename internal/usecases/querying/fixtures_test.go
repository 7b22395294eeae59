package querying

import (
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func intPtr(i int) *int {
	return &i
}

func date(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func ids(records []*domain.Transaction) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.TransactionID)
	}
	return out
}

// sampleRecords devolve um conjunto pequeno e variado de vendas
func sampleRecords() []*domain.Transaction {
	return []*domain.Transaction{
		{
			TransactionID: "T1", Date: date("2023-01-05"), CustomerName: "Neha Sharma", PhoneNumber: "9876543210",
			Gender: domain.GenderFemale, Age: intPtr(22), CustomerRegion: domain.RegionNorth, ProductCategory: "Beauty",
			Tags: []string{"organic", "skincare"}, Quantity: 3, TotalAmount: 1500, FinalAmount: 1350, PaymentMethod: domain.PaymentUPI,
		},
		{
			TransactionID: "T2", Date: date("2023-02-10"), CustomerName: "Arjun Mehta", PhoneNumber: "9123456780",
			Gender: domain.GenderMale, Age: intPtr(30), CustomerRegion: domain.RegionNorth, ProductCategory: "Electronics",
			Tags: []string{"wireless", "gadgets"}, Quantity: 1, TotalAmount: 20000, FinalAmount: 18000, PaymentMethod: domain.PaymentCreditCard,
		},
		{
			TransactionID: "T3", Date: date("2023-03-15"), CustomerName: "priya nair", PhoneNumber: "9988776655",
			Gender: domain.GenderFemale, Age: intPtr(60), CustomerRegion: domain.RegionSouth, ProductCategory: "Clothing",
			Tags: []string{"cotton", "casual"}, Quantity: 2, TotalAmount: 2400, FinalAmount: 2400, PaymentMethod: domain.PaymentCash,
		},
		{
			TransactionID: "T4", Date: date("2023-03-15"), CustomerName: "Rahul Verma", PhoneNumber: "9000011111",
			Gender: domain.GenderMale, Age: intPtr(17), CustomerRegion: domain.RegionEast, ProductCategory: "Electronics",
			Tags: []string{"portable"}, Quantity: 5, TotalAmount: 5000, FinalAmount: 4500, PaymentMethod: domain.PaymentWallet,
		},
		{
			TransactionID: "T5", CustomerName: "Anita Rao", PhoneNumber: "9555512345",
			Age: nil, CustomerRegion: domain.RegionWest, ProductCategory: "Beauty",
			Tags: []string{}, Quantity: 4, TotalAmount: 800, FinalAmount: 800, PaymentMethod: domain.PaymentUPI,
		},
	}
}
