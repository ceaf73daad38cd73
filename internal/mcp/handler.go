package mcp

import (
	"net/http"

	"github.com/neboloop/fsgate/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler returns the HTTP surface: the streamable MCP endpoint at /mcp plus
// a health probe.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	stream := mcp.NewStreamableHTTPHandler(
		func(*http.Request) *mcp.Server { return s.server },
		&mcp.StreamableHTTPOptions{Stateless: true},
	)
	r.Handle("/mcp", s.sessionMiddleware(stream))

	return r
}

// sessionMiddleware mints a session ID for clients that did not send one, so
// requests can be correlated in stateless mode.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get("Mcp-Session-Id")
		if sessionID == "" {
			sessionID = uuid.New().String()
			r.Header.Set("Mcp-Session-Id", sessionID)
			w.Header().Set("Mcp-Session-Id", sessionID)
			logging.Infof("mcp: new session %s from %s", sessionID, r.RemoteAddr)
		}
		next.ServeHTTP(w, r)
	})
}
