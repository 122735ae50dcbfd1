package app

import (
	"encoding/json"
	"net/http"

	"github.com/frudas24/deskcontrol/internal/event"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires API, websocket and metrics handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/login", a.handleLogin)
	mux.HandleFunc("/logout", a.handleLogout)
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/healthz", a.handleHealth)
	mux.Handle("/ws/control", a.Control())
	if a.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(a.gatherer, promhttp.HandlerOpts{}))
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type stateResponse struct {
	Authenticated bool   `json:"authenticated"`
	InputEnabled  bool   `json:"inputEnabled"`
	ScreenWidth   uint16 `json:"screenWidth"`
	ScreenHeight  uint16 `json:"screenHeight"`
	Channel       string `json:"channel"`
	ChannelError  string `json:"channelError,omitempty"`
}

type screenRequest struct {
	Width  uint16 `json:"width"`
	Height uint16 `json:"height"`
}

// handleLogin authenticates the session.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !a.session.Authenticate(req.Password) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleLogout clears authentication state.
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.session.Logout()
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleState returns session and channel state; POST updates the remote screen size.
func (a *App) handleState(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		var req screenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Width == 0 || req.Height == 0 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		a.session.SetScreenSize(event.Size{Width: req.Width, Height: req.Height})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := a.session.Snapshot()
	resp := stateResponse{
		Authenticated: snap.Authenticated,
		InputEnabled:  snap.InputEnabled,
		ScreenWidth:   snap.ScreenSize.Width,
		ScreenHeight:  snap.ScreenSize.Height,
		Channel:       a.controller.State().String(),
	}
	if err := a.controller.Err(); err != nil {
		resp.ChannelError = err.Error()
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// handleHealth reports 200 while the channel delivers events and 503 afterwards.
func (a *App) handleHealth(w http.ResponseWriter, _ *http.Request) {
	select {
	case <-a.controller.Done():
		http.Error(w, "control channel closed", http.StatusServiceUnavailable)
	default:
		_, _ = w.Write([]byte("ok"))
	}
}

// requireAuth returns false and writes an error if the session is not authenticated.
func (a *App) requireAuth(w http.ResponseWriter) bool {
	if !a.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}
