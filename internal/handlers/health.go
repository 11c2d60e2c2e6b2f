package handlers

import (
	"net/http"
	"time"

	"github.com/otcheredev/hms-backend/internal/database"
)

// HealthHandler exposes liveness and readiness endpoints
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// Health reports overall service health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Services:  make(map[string]string),
	}

	// Check database
	sqlDB, err := database.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		response.Services["database"] = "unhealthy"
		response.Status = "degraded"
	} else {
		response.Services["database"] = "healthy"
	}

	status := http.StatusOK
	if response.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, response)
}

// Ready reports whether the service can accept requests
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := database.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		http.Error(w, "Service not ready", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
