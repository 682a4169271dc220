package identity

import (
	"context"
	"log/slog"
	"sync"
)

// Change describes an identity transition for one storefront session.
type Change struct {
	SessionID string
	// UserID is the signed-in user after the transition, empty on sign-out.
	UserID string
	// PreviousUserID is the signed-in user before the transition, empty when
	// the session was anonymous.
	PreviousUserID string
}

// SignedIn reports whether the session is signed in after the transition.
func (c Change) SignedIn() bool {
	return c.UserID != ""
}

// Listener receives identity change notifications. Listeners are invoked
// synchronously so state migration completes before the transition returns.
type Listener func(ctx context.Context, change Change)

// Provider tracks the signed-in user per storefront session and notifies
// subscribers on transitions. It is the narrow seam between the hosted
// authentication backend and the session stores: the stores only ever need
// "current user id, or none" plus a change subscription.
type Provider struct {
	mu        sync.RWMutex
	sessions  map[string]string // session id -> user id
	listeners []Listener
	logger    *slog.Logger
}

// NewProvider creates an identity provider.
func NewProvider(logger *slog.Logger) *Provider {
	return &Provider{
		sessions: make(map[string]string),
		logger:   logger,
	}
}

// Subscribe registers a listener for identity changes. Subscriptions are
// expected to happen during wiring, before traffic arrives.
func (p *Provider) Subscribe(l Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, l)
}

// CurrentUser returns the signed-in user for the session, or "" when the
// session is anonymous.
func (p *Provider) CurrentUser(sessionID string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sessions[sessionID]
}

// SignIn records the signed-in user for the session and notifies listeners.
// Signing in with the user already attached to the session is a no-op.
func (p *Provider) SignIn(ctx context.Context, sessionID, userID string) {
	p.mu.Lock()
	previous := p.sessions[sessionID]
	if previous == userID {
		p.mu.Unlock()
		return
	}
	p.sessions[sessionID] = userID
	listeners := append([]Listener(nil), p.listeners...)
	p.mu.Unlock()

	p.logger.InfoContext(ctx, "session signed in",
		slog.String("session_id", sessionID),
		slog.String("user_id", userID),
	)

	change := Change{SessionID: sessionID, UserID: userID, PreviousUserID: previous}
	for _, l := range listeners {
		l(ctx, change)
	}
}

// SignOut detaches the signed-in user from the session and notifies
// listeners. Signing out an anonymous session is a no-op.
func (p *Provider) SignOut(ctx context.Context, sessionID string) {
	p.mu.Lock()
	previous := p.sessions[sessionID]
	if previous == "" {
		p.mu.Unlock()
		return
	}
	delete(p.sessions, sessionID)
	listeners := append([]Listener(nil), p.listeners...)
	p.mu.Unlock()

	p.logger.InfoContext(ctx, "session signed out",
		slog.String("session_id", sessionID),
		slog.String("user_id", previous),
	)

	change := Change{SessionID: sessionID, PreviousUserID: previous}
	for _, l := range listeners {
		l(ctx, change)
	}
}
