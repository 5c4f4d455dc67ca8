package rest

import (
	"context"
	"net/http"
	"time"

	"voyager-be/internal/logger"

	"go.uber.org/zap"
)

type healthResponse struct {
	Status   string `json:"status"`
	Requests uint64 `json:"requests"`
	Errors   uint64 `json:"errors"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	snap := h.metrics.Snapshot()
	resp := healthResponse{Status: "OK", Requests: snap.Requests, Errors: snap.Errors}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			logger.FromCtx(r.Context()).Error("health check: database unreachable", zap.Error(err))
			resp.Status = "DOWN"
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
