package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/frudas24/deskcontrol/internal/config"
	"github.com/frudas24/deskcontrol/internal/controller"
	"github.com/frudas24/deskcontrol/internal/event"
	"github.com/frudas24/deskcontrol/internal/metrics"
	"github.com/frudas24/deskcontrol/internal/session"
	"github.com/frudas24/deskcontrol/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newTestApp builds a started app writing to socket and registers teardown.
func newTestApp(t *testing.T, socket io.Writer) (*App, *session.Session, *http.ServeMux) {
	t.Helper()
	reg := prometheus.NewRegistry()
	ctrl, err := controller.New(socket, controller.WithMetrics(metrics.New(reg)))
	require.NoError(t, err)

	sess := session.New("pw", event.Size{Width: 1080, Height: 1920})
	a, err := New(config.Config{}, sess, ctrl, reg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, a.Start())
	t.Cleanup(func() {
		if err := a.Stop(); err != nil {
			t.Errorf("stop: %v", err)
		}
	})

	mux := http.NewServeMux()
	a.RegisterRoutes(mux)
	return a, sess, mux
}

// do runs a request against mux.
func do(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// TestNew_RequiresDependencies verifies constructor validation.
func TestNew_RequiresDependencies(t *testing.T) {
	if _, err := New(config.Config{}, nil, nil, nil, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for missing session")
	}
	sess := session.New("pw", event.Size{})
	if _, err := New(config.Config{}, sess, nil, nil, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for missing controller")
	}
}

// TestHandleLogin verifies login success, failure and method checks.
func TestHandleLogin(t *testing.T) {
	_, sess, mux := newTestApp(t, &testutil.Socket{})

	if rec := do(mux, http.MethodGet, "/login", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if rec := do(mux, http.MethodPost, "/login", `{"password":"bad"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec := do(mux, http.MethodPost, "/login", `not json`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec := do(mux, http.MethodPost, "/login", `{"password":"pw"}`); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !sess.IsAuthenticated() {
		t.Fatalf("expected authenticated session")
	}
	if rec := do(mux, http.MethodPost, "/logout", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if sess.IsAuthenticated() {
		t.Fatalf("expected logged out session")
	}
}

// TestHandleState_Unauthorized verifies /api/state requires authentication.
func TestHandleState_Unauthorized(t *testing.T) {
	_, _, mux := newTestApp(t, &testutil.Socket{})
	if rec := do(mux, http.MethodGet, "/api/state", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

// TestHandleState_UpdatesScreen verifies reading state and updating the screen size.
func TestHandleState_UpdatesScreen(t *testing.T) {
	_, sess, mux := newTestApp(t, &testutil.Socket{})
	require.True(t, sess.Authenticate("pw"))

	rec := do(mux, http.MethodPost, "/api/state", `{"width":720,"height":1280}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp stateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint16(720), resp.ScreenWidth)
	assert.Equal(t, uint16(1280), resp.ScreenHeight)
	assert.Equal(t, "running", resp.Channel)
	assert.Empty(t, resp.ChannelError)
	assert.Equal(t, event.Size{Width: 720, Height: 1280}, sess.ScreenSize())

	rec = do(mux, http.MethodPost, "/api/state", `{"width":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestHandleHealth_AfterWriteFailure verifies health flips once the channel dies.
func TestHandleHealth_AfterWriteFailure(t *testing.T) {
	a, sess, mux := newTestApp(t, &testutil.FailingSocket{})
	require.True(t, sess.Authenticate("pw"))

	if rec := do(mux, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	require.NoError(t, a.controller.Push(event.Command{}))
	select {
	case <-a.controller.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("worker did not exit after write failure")
	}

	if rec := do(mux, http.MethodGet, "/healthz", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var resp stateResponse
	rec := do(mux, http.MethodGet, "/api/state", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "stopped", resp.Channel)
	assert.Contains(t, resp.ChannelError, "socket closed")
}

// TestMetricsEndpoint verifies collectors are exposed.
func TestMetricsEndpoint(t *testing.T) {
	a, _, mux := newTestApp(t, &testutil.Socket{})
	require.NoError(t, a.controller.Push(event.Command{}))

	require.Eventually(t, func() bool {
		rec := do(mux, http.MethodGet, "/metrics", "")
		return strings.Contains(rec.Body.String(), `deskcontrol_events_written_total{kind="command"} 1`)
	}, 2*time.Second, 5*time.Millisecond)
}

// TestStop_Idempotent verifies stopping twice is harmless.
func TestStop_Idempotent(t *testing.T) {
	a, _, _ := newTestApp(t, &testutil.Socket{})
	require.NoError(t, a.Stop())
	require.NoError(t, a.Stop())
}
