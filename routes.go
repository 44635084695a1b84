package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"tarefas-producao/config"
	"tarefas-producao/handlers"
	"tarefas-producao/utilities"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter monta o roteador com middlewares, rotas de tarefas e CORS.
func NewRouter(cfg *config.Config, db handlers.Pinger, tasks *handlers.TaskHandler, logger *utilities.StdLogger) http.Handler {
	r := mux.NewRouter()

	// Aplicar os middlewares globais em todas as rotas
	r.Use(handlers.RequestIDMiddleware)
	r.Use(handlers.LoggingMiddleware(logger))

	r.HandleFunc("/health", handlers.HealthHandler(db, logger)).Methods("GET")

	// --- Rotas de Tarefas ---
	tasks.Register(r.PathPrefix("/api/tasks").Subrouter())

	// Configuração do CORS
	headers := gorillahandlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization", handlers.RequestIDHeader})
	methods := gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	origins := gorillahandlers.AllowedOrigins(cfg.CORSAllowedOrigins)
	exposed := gorillahandlers.ExposedHeaders([]string{handlers.RequestIDHeader})
	utilities.LogInfo("Configurando CORS com origens permitidas: %v", cfg.CORSAllowedOrigins)

	recovery := gorillahandlers.RecoveryHandler(gorillahandlers.PrintRecoveryStack(true))
	return recovery(gorillahandlers.CORS(headers, methods, origins, exposed)(r))
}

// serve inicia o servidor HTTP e encerra de forma graciosa quando ctx é cancelado.
func serve(ctx context.Context, cfg *config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utilities.LogInfo("Servidor iniciado na porta %s", cfg.ServerPort)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		utilities.LogInfo("Encerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
