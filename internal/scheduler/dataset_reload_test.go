package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/dataset"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

type fakeReplacer struct {
	replaced [][]*domain.Transaction
}

func (f *fakeReplacer) Replace(records []*domain.Transaction) uint64 {
	f.replaced = append(f.replaced, records)
	return uint64(len(f.replaced) + 1)
}

func setupReload(t *testing.T) (*DatasetReloadService, *fakeReplacer, string) {
	t.Helper()
	log.SetupTestLogger()

	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte("Transaction ID\nT1\n"), 0o600))

	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, base, base))

	replacer := &fakeReplacer{}
	service := NewDatasetReloadService(replacer, config.Dataset{
		CSVPath:       path,
		ReloadCron:    "*/5 * * * *",
		ReloadEnabled: true,
	})
	service.load = func(context.Context, string) ([]*domain.Transaction, dataset.Summary, error) {
		return []*domain.Transaction{{TransactionID: "T1"}, {TransactionID: "T2"}}, dataset.Summary{Rows: 2}, nil
	}

	return service, replacer, path
}

func TestDatasetReloadService_SkipsUnchangedFile(t *testing.T) {
	service, replacer, _ := setupReload(t)

	reloaded, err := service.ReloadIfChanged(context.Background())

	require.NoError(t, err)
	assert.False(t, reloaded)
	assert.Empty(t, replacer.replaced)
	assert.False(t, service.GetStatus().LastCheckAt.IsZero())
}

func TestDatasetReloadService_ReloadsModifiedFile(t *testing.T) {
	service, replacer, path := setupReload(t)

	later := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, later, later))

	reloaded, err := service.ReloadIfChanged(context.Background())
	require.NoError(t, err)
	assert.True(t, reloaded)
	require.Len(t, replacer.replaced, 1)
	assert.Len(t, replacer.replaced[0], 2)

	status := service.GetStatus()
	assert.Equal(t, uint64(2), status.Version)
	assert.True(t, status.LastModifiedTime.Equal(later))
	assert.False(t, status.Running)

	// segunda verificação sem nova alteração não recarrega
	reloaded, err = service.ReloadIfChanged(context.Background())
	require.NoError(t, err)
	assert.False(t, reloaded)
	assert.Len(t, replacer.replaced, 1)
}

func TestDatasetReloadService_KeepsSnapshotOnError(t *testing.T) {
	service, replacer, path := setupReload(t)
	service.load = func(context.Context, string) ([]*domain.Transaction, dataset.Summary, error) {
		return nil, dataset.Summary{}, errors.New("arquivo corrompido")
	}

	later := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, later, later))

	reloaded, err := service.ReloadIfChanged(context.Background())
	assert.Error(t, err)
	assert.False(t, reloaded)
	assert.Empty(t, replacer.replaced)

	status := service.GetStatus()
	assert.Equal(t, "arquivo corrompido", status.LastError)
	assert.False(t, status.LastModifiedTime.Equal(later))
}

func TestDatasetReloadService_MissingFile(t *testing.T) {
	service, _, path := setupReload(t)
	require.NoError(t, os.Remove(path))

	_, err := service.ReloadIfChanged(context.Background())
	assert.Error(t, err)
}

func TestDatasetReloadService_StartDisabled(t *testing.T) {
	service, _, _ := setupReload(t)
	service.config.Enabled = false

	assert.NoError(t, service.Start(context.Background()))
}

func TestDatasetReloadService_StartInvalidCron(t *testing.T) {
	service, _, _ := setupReload(t)
	service.config.CronSchedule = "not a cron"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, service.Start(ctx))
}
