// internal/handler/health_handler.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/unclebandit/churn-predictor/internal/classifier"
)

// HealthHandler reports that the process is serving with a loaded model.
type HealthHandler struct {
	Classifier classifier.Classifier
}

// NewHealthHandler creates a new HealthHandler for the loaded classifier
func NewHealthHandler(c classifier.Classifier) *HealthHandler {
	return &HealthHandler{Classifier: c}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.Classifier == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
		return
	}

	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"model":  h.Classifier.Name(),
	})
}
