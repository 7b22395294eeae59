package handler

import (
	"context"
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	msgDataUnavailable = "Sales data unavailable"
	msgInternalServer  = "Internal server error"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Warn("error encoding response")
	}
}

// writeServiceError traduz erros do serviço para a resposta padronizada.
// Detalhes internos ficam apenas no log.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.ForContext(r.Context()).WithError(err)

	switch {
	case errors.Is(err, context.Canceled):
		// cliente desistiu da requisição, não há para quem responder
		logger.Debug("request canceled by client")
	case errors.Is(err, domain.ErrDataUnavailable):
		logger.Warn("sales data unavailable")
		apiErrors.WriteError(w, apiErrors.ErrDataUnavailable, msgDataUnavailable, nil)
	default:
		logger.Error("unexpected error handling request")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, msgInternalServer, nil)
	}
}
