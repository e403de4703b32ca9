package gateway

import (
	"net/http"

	"github.com/gobwas/ws"
	"go.uber.org/zap"

	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/auth"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/hub"
)

// Routes serves health, account and websocket endpoints. /ws requires HTTP
// basic auth against the credential store.
func Routes(h *hub.Hub, accounts *auth.Handler, logger *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/login", accounts.Login)
	mux.HandleFunc("/register", accounts.Register)
	mux.HandleFunc("/ws", accounts.RequireBasicAuth(func(w http.ResponseWriter, r *http.Request, user string) {
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			logger.Warn("Websocket upgrade failed", zap.Error(err))
			return
		}

		client := NewClient(conn, h, logger, user)
		if err := client.Start(); err != nil {
			return
		}
		logger.Info("Client connected", zap.String("user", user), zap.String("remote", client.ID()))
	}))
	return mux
}
