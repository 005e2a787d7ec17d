package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"stockcast/internal/fetcher"
	"stockcast/internal/markets"
	"stockcast/internal/pipeline"
	"stockcast/internal/provider"
)

// MarketsResponse lists the selectable exchanges
type MarketsResponse struct {
	Markets []markets.Market `json:"markets"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MarketsResponse{Markets: s.catalog.Markets()})
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	m, err := s.catalog.Market(chi.URLParam(r, "exchange"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// handlePredict runs the pipeline for ?exchange=&symbol=&start=&end=
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With(zap.String("method", "Predict"))
	q := r.URL.Query()

	exchange := strings.TrimSpace(q.Get("exchange"))
	symbol := strings.TrimSpace(q.Get("symbol"))
	if exchange == "" || symbol == "" {
		writeError(w, http.StatusBadRequest, errors.New("exchange and symbol are required"))
		return
	}

	start, end, err := pipeline.ParseDates(q.Get("start"), q.Get("end"), s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := s.runner.Run(r.Context(), pipeline.Request{
		Exchange: exchange,
		Symbol:   symbol,
		Start:    start,
		End:      end,
	})
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			logger.Error("prediction failed", zap.Error(err),
				zap.String("exchange", exchange), zap.String("symbol", symbol))
		}
		writeError(w, status, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// statusFor maps pipeline errors to HTTP status codes
func statusFor(err error) int {
	var perr *provider.ProviderError
	switch {
	case errors.Is(err, markets.ErrUnknownExchange),
		errors.Is(err, markets.ErrUnknownSymbol),
		errors.Is(err, fetcher.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &perr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
