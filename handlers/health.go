package handlers

import (
	"context"
	"net/http"
	"time"

	"tarefas-producao/utilities"
)

// Pinger é satisfeito por *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler responde 200 se o banco responde ao ping em até 2s.
func HealthHandler(db Pinger, log utilities.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			log.Error(err, "HealthHandler: Banco de dados indisponível")
			writeJSON(w, log, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, log, http.StatusOK, map[string]string{"status": "ok"})
	}
}
