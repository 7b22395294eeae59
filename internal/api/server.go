package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/querying"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/selling"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// New monta o router e a cadeia de middlewares. Rotas opcionais, como o
// status da recarga do CSV, entram por extraRoutes.
func New(
	config *config.Config,
	salesService selling.SalesService,
	extraRoutes ...router.ConfigRouter,
) (*Server, error) {
	configs := []router.ConfigRouter{
		router.WithInstrumentation(middleware.Metrics),
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Health(salesService)...),
		router.WithRoutes(handler.Sales(salesService, QueryDefaults(config.Query))...),
		router.WithRoutes(handler.Metrics()...),
	}
	rt := router.New(append(configs, extraRoutes...)...)
	log.L.WithField("routes", len(rt.Routes())).Debug("Rotas registradas")

	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Enabled:    config.RateLimit.Enabled,
		RPS:        config.RateLimit.RPS,
		Burst:      config.RateLimit.Burst,
		TrustProxy: config.RateLimit.TrustProxy,
	})

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Cors.AllowedOrigins),
		middleware.RateLimit(limiter),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}

	return srv, nil
}

// QueryDefaults converte a configuração de consulta nos padrões da normalização
func QueryDefaults(cfg config.Query) querying.Defaults {
	return querying.Defaults{
		Limit:    cfg.DefaultLimit,
		MaxLimit: cfg.MaxLimit,
		SortBy:   domain.DefaultSortBy,
	}
}

func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithFields(log.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		log.L.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		log.L.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.L.WithFields(log.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	log.L.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	log.L.Info("Servidor HTTP desligado com sucesso")
	return nil
}
