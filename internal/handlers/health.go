package handlers

import (
	"net/http"

	"bookinub-backend/internal/metrics"
	"bookinub-backend/internal/transport"
)

const (
	stateConnected    = "Connected"
	stateDisconnected = "Disconnected"

	isoMillis = "2006-01-02T15:04:05.000Z"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Backend   string `json:"backend"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// Health reports liveness and the store's last known connection state. It
// performs no store round-trip and always answers 200.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	connected := s.Store != nil && s.Store.Connected()
	metrics.SetStoreConnected(connected)

	database := stateDisconnected
	if connected {
		database = stateConnected
	}

	transport.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "OK",
		Backend:   stateConnected,
		Database:  database,
		Timestamp: s.clock().UTC().Format(isoMillis),
	})
}
