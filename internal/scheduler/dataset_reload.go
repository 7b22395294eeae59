// Package scheduler contém os serviços agendados da API
package scheduler

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/dataset"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

// SnapshotReplacer publica um novo conjunto de registros
type SnapshotReplacer interface {
	Replace(records []*domain.Transaction) uint64
}

type DatasetLoader func(ctx context.Context, path string) ([]*domain.Transaction, dataset.Summary, error)

type DatasetReloadConfig struct {
	CronSchedule string
	Enabled      bool
	CSVPath      string
}

type ReloadStatus struct {
	Running          bool      `json:"running"`
	LastCheckAt      time.Time `json:"lastCheckAt"`
	LastReloadAt     time.Time `json:"lastReloadAt"`
	LastModifiedTime time.Time `json:"lastModifiedTime"`
	Version          uint64    `json:"version"`
	LastError        string    `json:"lastError,omitempty"`
}

type DatasetReloadService struct {
	scheduler *gocron.Scheduler
	target    SnapshotReplacer
	load      DatasetLoader
	config    DatasetReloadConfig
	stat      func(string) (os.FileInfo, error)

	mu     sync.Mutex
	status ReloadStatus
}

func NewDatasetReloadService(target SnapshotReplacer, cfg config.Dataset) *DatasetReloadService {
	reloadConfig := DatasetReloadConfig{
		CronSchedule: cfg.ReloadCron,
		Enabled:      cfg.ReloadEnabled,
		CSVPath:      cfg.CSVPath,
	}

	s := &DatasetReloadService{
		scheduler: gocron.NewScheduler(time.Local),
		target:    target,
		load:      dataset.LoadFile,
		config:    reloadConfig,
		stat:      os.Stat,
	}

	// o arquivo acabou de ser carregado na inicialização
	if info, err := s.stat(reloadConfig.CSVPath); err == nil {
		s.status.LastModifiedTime = info.ModTime()
	}

	log.L.WithFields(log.Fields{
		"cron_schedule": reloadConfig.CronSchedule,
		"csv_path":      reloadConfig.CSVPath,
	}).Info("Configuração do agendador de recarga do CSV carregada")

	return s
}

func (s *DatasetReloadService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.L.Info("Recarga agendada do CSV desabilitada por configuração")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de recarga do CSV")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.ReloadIfChanged(ctx); err != nil {
			log.L.WithError(err).Error("Erro na recarga do CSV")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recarga do CSV: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Parando cron de recarga do CSV")
		s.scheduler.Stop()
	}()

	return nil
}

// ReloadIfChanged recarrega o CSV quando a data de modificação mudou.
// Em caso de erro o snapshot atual continua sendo servido.
func (s *DatasetReloadService) ReloadIfChanged(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.status.Running {
		s.mu.Unlock()
		log.L.Warn("Recarga do CSV já está em execução")
		return false, nil
	}
	s.status.Running = true
	s.status.LastCheckAt = time.Now()
	lastModified := s.status.LastModifiedTime
	s.mu.Unlock()

	reloaded, modTime, version, err := s.reload(ctx, lastModified)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Running = false
	if err != nil {
		s.status.LastError = err.Error()
		metrics.DatasetReloads.WithLabelValues("error").Inc()
		return false, err
	}
	s.status.LastError = ""
	if reloaded {
		s.status.LastModifiedTime = modTime
		s.status.LastReloadAt = time.Now()
		s.status.Version = version
		metrics.DatasetReloads.WithLabelValues("success").Inc()
	}

	return reloaded, nil
}

func (s *DatasetReloadService) reload(ctx context.Context, lastModified time.Time) (bool, time.Time, uint64, error) {
	info, err := s.stat(s.config.CSVPath)
	if err != nil {
		return false, time.Time{}, 0, fmt.Errorf("erro ao verificar o CSV: %w", err)
	}

	if !info.ModTime().After(lastModified) {
		log.L.Debug("CSV sem alterações desde a última carga")
		return false, time.Time{}, 0, nil
	}

	records, summary, err := s.load(ctx, s.config.CSVPath)
	if err != nil {
		return false, time.Time{}, 0, err
	}

	version := s.target.Replace(records)
	metrics.DatasetRecords.Set(float64(len(records)))

	log.L.WithFields(log.Fields{
		"records":     summary.Rows,
		"skipped":     summary.Skipped,
		"issues":      summary.Issues,
		"version":     version,
		"duration_ms": summary.Duration.Milliseconds(),
	}).Info("CSV recarregado")

	return true, info.ModTime(), version, nil
}

func (s *DatasetReloadService) GetStatus() ReloadStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
