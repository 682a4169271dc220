package http

import (
	"log/slog"
	"net/http"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/identity"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/httputil"
)

// SessionHandler handles sign-in and sign-out transitions. The API gateway
// authenticates the user and injects X-User-ID; this handler only attaches or
// detaches that identity from the storefront session, which triggers the
// cart and wishlist migration.
type SessionHandler struct {
	identity *identity.Provider
	logger   *slog.Logger
}

// NewSessionHandler creates a new session HTTP handler.
func NewSessionHandler(provider *identity.Provider, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		identity: provider,
		logger:   logger,
	}
}

// SessionResponse reports the session's identity state.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id,omitempty"`
	SignedIn  bool   `json:"signed_in"`
}

// GetSession handles GET /api/v1/session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())
	userID := h.identity.CurrentUser(sessionID)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: SessionResponse{
		SessionID: sessionID,
		UserID:    userID,
		SignedIn:  userID != "",
	}})
}

// SignIn handles POST /api/v1/session/sign-in
func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "X-User-ID header is required"},
		})
		return
	}

	sessionID := sessionIDFromContext(r.Context())
	h.identity.SignIn(r.Context(), sessionID, userID)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: SessionResponse{
		SessionID: sessionID,
		UserID:    userID,
		SignedIn:  true,
	}})
}

// SignOut handles POST /api/v1/session/sign-out
func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())
	h.identity.SignOut(r.Context(), sessionID)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: SessionResponse{
		SessionID: sessionID,
		SignedIn:  false,
	}})
}
