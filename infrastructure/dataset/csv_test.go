package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

func init() {
	log.SetupTestLogger()
}

const sampleCSV = "\ufeffTransaction ID,Date,Customer Name,Phone Number,Gender,Age,Customer Region,Tags,Quantity,Total Amount,Final Amount\n" +
	"T1,2023-01-05,Asha Rao,9876543210,Female,28,North,\"wireless,gadgets\",2,\"₹1,000\",900\n" +
	"T2,2023-02-10,Ben Li,9123456780,Male,,South,,1,250,250\n" +
	"T3,2023-03-15,Chen Wu,9000000000,Male,45,East,organic,0,0,0\n"

func TestStream(t *testing.T) {
	var batches [][]*domain.Transaction

	summary, err := Stream(context.Background(), strings.NewReader(sampleCSV), 2, func(_ context.Context, batch []*domain.Transaction) error {
		batches = append(batches, batch)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Rows)
	assert.Zero(t, summary.Skipped)
	require.Len(t, batches, 2)
	assert.Len(t, batches[0], 2)
	assert.Len(t, batches[1], 1)

	first := batches[0][0]
	assert.Equal(t, "T1", first.TransactionID)
	assert.Equal(t, []string{"wireless", "gadgets"}, first.Tags)
	assert.Equal(t, 1000.0, first.TotalAmount)

	second := batches[0][1]
	assert.Nil(t, second.Age)
	assert.Empty(t, second.Tags)

	third := batches[1][0]
	require.NotNil(t, third.Age)
	assert.Equal(t, 45, *third.Age)
	assert.Zero(t, third.Quantity)
}

func TestStream_EmptyInput(t *testing.T) {
	called := false
	summary, err := Stream(context.Background(), strings.NewReader(""), 10, func(context.Context, []*domain.Transaction) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.False(t, called)
	assert.Zero(t, summary.Rows)
}

func TestStream_PropagatesBatchError(t *testing.T) {
	boom := errors.New("insert failed")

	_, err := Stream(context.Background(), strings.NewReader(sampleCSV), 1, func(context.Context, []*domain.Transaction) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	records, summary, err := LoadFile(context.Background(), path)

	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, []string{"T1", "T2", "T3"}, []string{records[0].TransactionID, records[1].TransactionID, records[2].TransactionID})
}

func TestLoadFile_Missing(t *testing.T) {
	_, _, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
