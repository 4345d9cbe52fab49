package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sharad-mishra/universal-price-tool/internal/model"
	"github.com/sharad-mishra/universal-price-tool/internal/pricing"
)

// handlePrices serves GET /api/prices?country=US&query=... .
func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	countryCode := r.URL.Query().Get("country")
	query := r.URL.Query().Get("query")
	requestID := requestIDFrom(r.Context())

	resp, err := s.pricing.GetPrices(r.Context(), countryCode, query)
	if err != nil {
		var verr *pricing.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
				Error:     "Invalid request parameters",
				Details:   verr.Details,
				RequestID: requestID,
			})
			return
		}

		s.log.Error().Err(err).Str("request_id", requestID).Msg("price lookup failed")
		body := model.ErrorResponse{Error: "Internal server error", RequestID: requestID}
		if !s.production {
			body.Details = []string{err.Error()}
		}
		writeJSON(w, http.StatusInternalServerError, body)
		return
	}

	resp.RequestID = requestID
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   Version,
	})
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cache.Stats(r.Context()))
}

func (s *Server) handleCacheFlush(w http.ResponseWriter, r *http.Request) {
	if err := s.cache.Flush(r.Context()); err != nil {
		s.log.Error().Err(err).Msg("cache flush failed")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
			Error:     "Cache flush failed",
			RequestID: requestIDFrom(r.Context()),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "flushed"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
