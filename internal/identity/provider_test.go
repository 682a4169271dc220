package identity

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider() *Provider {
	return NewProvider(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func TestProvider_CurrentUser_AnonymousByDefault(t *testing.T) {
	p := newTestProvider()

	assert.Empty(t, p.CurrentUser("sess-1"))
}

func TestProvider_SignIn_NotifiesListeners(t *testing.T) {
	p := newTestProvider()

	var got []Change
	p.Subscribe(func(ctx context.Context, c Change) {
		got = append(got, c)
	})

	p.SignIn(context.Background(), "sess-1", "user-1")

	assert.Equal(t, "user-1", p.CurrentUser("sess-1"))
	require.Len(t, got, 1)
	assert.Equal(t, Change{SessionID: "sess-1", UserID: "user-1"}, got[0])
	assert.True(t, got[0].SignedIn())
}

func TestProvider_SignIn_StateVisibleToListener(t *testing.T) {
	p := newTestProvider()

	p.Subscribe(func(ctx context.Context, c Change) {
		// The session map is updated before listeners run.
		assert.Equal(t, "user-1", p.CurrentUser(c.SessionID))
	})

	p.SignIn(context.Background(), "sess-1", "user-1")
}

func TestProvider_SignIn_SameUserIsNoop(t *testing.T) {
	p := newTestProvider()

	calls := 0
	p.Subscribe(func(ctx context.Context, c Change) { calls++ })

	p.SignIn(context.Background(), "sess-1", "user-1")
	p.SignIn(context.Background(), "sess-1", "user-1")

	assert.Equal(t, 1, calls)
}

func TestProvider_SignIn_UserSwitch(t *testing.T) {
	p := newTestProvider()

	var last Change
	p.Subscribe(func(ctx context.Context, c Change) { last = c })

	p.SignIn(context.Background(), "sess-1", "user-1")
	p.SignIn(context.Background(), "sess-1", "user-2")

	assert.Equal(t, "user-2", p.CurrentUser("sess-1"))
	assert.Equal(t, "user-1", last.PreviousUserID)
	assert.Equal(t, "user-2", last.UserID)
}

func TestProvider_SignOut(t *testing.T) {
	p := newTestProvider()

	var last Change
	p.Subscribe(func(ctx context.Context, c Change) { last = c })

	p.SignIn(context.Background(), "sess-1", "user-1")
	p.SignOut(context.Background(), "sess-1")

	assert.Empty(t, p.CurrentUser("sess-1"))
	assert.Equal(t, "user-1", last.PreviousUserID)
	assert.Empty(t, last.UserID)
	assert.False(t, last.SignedIn())
}

func TestProvider_SignOut_AnonymousIsNoop(t *testing.T) {
	p := newTestProvider()

	calls := 0
	p.Subscribe(func(ctx context.Context, c Change) { calls++ })

	p.SignOut(context.Background(), "sess-1")

	assert.Zero(t, calls)
}

func TestProvider_SessionsAreIndependent(t *testing.T) {
	p := newTestProvider()

	p.SignIn(context.Background(), "sess-1", "user-1")

	assert.Equal(t, "user-1", p.CurrentUser("sess-1"))
	assert.Empty(t, p.CurrentUser("sess-2"))
}
