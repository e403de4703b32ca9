package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type credentials struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

type Handler struct {
	store  *Store
	logger *zap.Logger
}

func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Login answers 200 on a match and 401 otherwise.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	c, ok := h.decode(w, r)
	if !ok {
		return
	}
	err := h.store.Verify(c.ID, c.Password)
	switch {
	case err == nil:
		h.logger.Info("Login succeeded", zap.String("user", c.ID))
		writeJSON(w, http.StatusOK, map[string]string{"status": "success", "user": c.ID})
	case errors.Is(err, ErrInvalidCredentials):
		h.logger.Info("Login failed", zap.String("user", c.ID))
		writeJSON(w, http.StatusUnauthorized, map[string]string{"status": "error", "message": "invalid credentials"})
	default:
		h.logger.Error("Credential store error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": "internal error"})
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	c, ok := h.decode(w, r)
	if !ok {
		return
	}
	err := h.store.Register(c.ID, c.Password)
	switch {
	case err == nil:
		h.logger.Info("Account registered", zap.String("user", c.ID))
		writeJSON(w, http.StatusCreated, map[string]string{"status": "success", "user": c.ID})
	case errors.Is(err, ErrEmptyCredentials):
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": err.Error()})
	default:
		h.logger.Error("Credential store error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": "internal error"})
	}
}

// RequireBasicAuth lets a request through only with valid basic auth. The
// authenticated identifier is passed to next.
func (h *Handler) RequireBasicAuth(next func(w http.ResponseWriter, r *http.Request, user string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, secret, ok := r.BasicAuth()
		if ok {
			err := h.store.Verify(id, secret)
			if err == nil {
				next(w, r, id)
				return
			}
			if !errors.Is(err, ErrInvalidCredentials) {
				h.logger.Error("Credential store error", zap.Error(err))
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
		}
		w.Header().Set("WWW-Authenticate", `Basic realm="fx-terminal"`)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (credentials, bool) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return credentials{}, false
	}

	var c credentials
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "invalid JSON"})
			return credentials{}, false
		}
		return c, true
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "invalid form"})
		return credentials{}, false
	}
	return credentials{ID: r.PostFormValue("id"), Password: r.PostFormValue("password")}, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
