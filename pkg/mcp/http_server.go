package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// HTTPConfig extends Config with HTTP-specific settings.
type HTTPConfig struct {
	Config

	// Addr is the address to listen on (e.g., ":8080" or "localhost:8080").
	Addr string

	// EndpointPath is the path for the MCP endpoint (default: "/mcp").
	EndpointPath string

	// EnableCORS enables CORS headers for browser-based clients.
	EnableCORS bool

	// AllowedOrigins is a list of allowed CORS origins (if EnableCORS is true).
	// If empty, allows all origins.
	AllowedOrigins []string
}

// NewHTTPHandler returns the streamable HTTP handler for session, mounted at
// the configured endpoint path.
func NewHTTPHandler(session *Session, cfg HTTPConfig) (http.Handler, error) {
	mcpServer, err := NewServer(session, cfg.Config)
	if err != nil {
		return nil, err
	}

	endpointPath := cfg.EndpointPath
	if endpointPath == "" {
		endpointPath = "/mcp"
	}

	httpServer := mcpserver.NewStreamableHTTPServer(
		mcpServer,
		mcpserver.WithEndpointPath(endpointPath),
	)

	var handler http.Handler = httpServer
	if cfg.EnableCORS {
		handler = corsMiddleware(cfg.AllowedOrigins)(handler)
	}

	mux := http.NewServeMux()
	mux.Handle(endpointPath, handler)
	return mux, nil
}

// RunHTTPServer starts the MCP server over streamable HTTP transport. Every
// client shares one stack.
func RunHTTPServer(ctx context.Context, cfg HTTPConfig) error {
	handler, err := NewHTTPHandler(NewSession(), cfg)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // No timeout for SSE streaming
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("starting MCP HTTP server", "addr", cfg.Addr, "cors", cfg.EnableCORS)

	go func() {
		<-ctx.Done()
		slog.Info("shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("error shutting down server", "error", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// corsMiddleware adds CORS headers to responses.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowed := len(allowedOrigins) == 0
			for _, o := range allowedOrigins {
				if o == origin || o == "*" {
					allowed = true
					break
				}
			}

			if allowed && origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Mcp-Session-Id")
				w.Header().Set("Access-Control-Expose-Headers", "Mcp-Session-Id")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
