package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{name: "rupias com separador de milhar", input: "₹1,234.50", want: 1234.5, wantOK: true},
		{name: "dólar com espaço", input: "$ 99", want: 99, wantOK: true},
		{name: "ausente vira zero", input: "", want: 0, wantOK: true},
		{name: "zero presente", input: "0", want: 0, wantOK: true},
		{name: "texto inválido", input: "abc", want: 0, wantOK: false},
		{name: "negativo inválido", input: "-5", want: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePercentage(t *testing.T) {
	got, ok := ParsePercentage("15%")
	assert.True(t, ok)
	assert.Equal(t, 15.0, got)

	got, ok = ParsePercentage("0")
	assert.True(t, ok)
	assert.Equal(t, 0.0, got)

	_, ok = ParsePercentage("150")
	assert.False(t, ok)
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{input: "3", want: 3, wantOK: true},
		{input: "3.0", want: 3, wantOK: true},
		{input: "0", want: 0, wantOK: true},
		{input: "", want: 0, wantOK: true},
		{input: "2.5", want: 0, wantOK: false},
		{input: "-1", want: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseCount(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAge(t *testing.T) {
	age, ok := ParseAge("")
	assert.True(t, ok)
	assert.Nil(t, age)

	age, ok = ParseAge("0")
	assert.True(t, ok)
	require.NotNil(t, age)
	assert.Equal(t, 0, *age)

	age, ok = ParseAge("34")
	assert.True(t, ok)
	require.NotNil(t, age)
	assert.Equal(t, 34, *age)

	age, ok = ParseAge("thirty")
	assert.False(t, ok)
	assert.Nil(t, age)
}

func TestParseDay(t *testing.T) {
	want := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{"2023-03-15", "2023-03-15T18:30:00+05:30", "2023-03-15 08:00:00", "2023/03/15"} {
		got, ok := ParseDay(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	got, ok := ParseDay("")
	assert.True(t, ok)
	assert.True(t, got.IsZero())

	got, ok = ParseDay("15-03-2023")
	assert.False(t, ok)
	assert.True(t, got.IsZero())
}

func TestNormalizeGender(t *testing.T) {
	g, ok := NormalizeGender("male")
	assert.True(t, ok)
	assert.Equal(t, "Male", g)

	g, ok = NormalizeGender("FEMALE")
	assert.True(t, ok)
	assert.Equal(t, "Female", g)

	g, ok = NormalizeGender("")
	assert.True(t, ok)
	assert.Empty(t, g)

	_, ok = NormalizeGender("unknown")
	assert.False(t, ok)
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"organic", "premium"}, SplitTags(" organic, ,premium "))

	empty := SplitTags("")
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestNormalize(t *testing.T) {
	raw := RawRow{
		ColTransactionID:      "T-1",
		ColDate:               "2023-01-05",
		ColCustomerName:       "  Asha Rao ",
		ColPhoneNumber:        "9876543210",
		ColGender:             "female",
		ColAge:                "",
		ColCustomerRegion:     "North",
		ColTags:               "wireless, gadgets",
		ColQuantity:           "2",
		ColPricePerUnit:       "₹500",
		ColDiscountPercentage: "0",
		ColTotalAmount:        "₹1,000",
		ColFinalAmount:        "₹900",
		ColPaymentMethod:      "UPI",
	}

	tx, issues := Normalize(raw)

	assert.Empty(t, issues)
	assert.Equal(t, "T-1", tx.TransactionID)
	assert.Equal(t, "Asha Rao", tx.CustomerName)
	assert.Equal(t, "Female", tx.Gender)
	assert.Nil(t, tx.Age)
	assert.Equal(t, []string{"wireless", "gadgets"}, tx.Tags)
	assert.Equal(t, 2, tx.Quantity)
	assert.Equal(t, 1000.0, tx.TotalAmount)
	assert.Equal(t, 900.0, tx.FinalAmount)
	assert.Equal(t, 0.0, tx.DiscountPercentage)
	assert.Equal(t, 100.0, tx.DiscountAmount())
	assert.Equal(t, time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), tx.Date)

	// colunas ausentes viram valores neutros
	assert.Empty(t, tx.Brand)
	assert.NotNil(t, tx.Tags)
}

func TestNormalize_ReportsInvalidValues(t *testing.T) {
	tx, issues := Normalize(RawRow{
		ColAge:      "old",
		ColQuantity: "many",
		ColDate:     "yesterday",
	})

	require.Len(t, issues, 3)
	columns := []string{issues[0].Column, issues[1].Column, issues[2].Column}
	assert.ElementsMatch(t, []string{ColAge, ColQuantity, ColDate}, columns)
	assert.Nil(t, tx.Age)
	assert.Zero(t, tx.Quantity)
	assert.True(t, tx.Date.IsZero())
}
