package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/planwise/planwise/internal/auth"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userResponse is the transport shape of a user; the credential hash never
// appears here.
type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	u, err := s.authSvc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			respondError(w, http.StatusBadRequest, "username_taken", "Username already exists")
		case errors.Is(err, auth.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, "invalid_request", "Username and password are required")
		default:
			log.Printf("register failed: %v", err)
			respondError(w, http.StatusInternalServerError, "internal_error", "Failed to register user")
		}
		return
	}

	s.openSession(w, u)
	s.observeAuth("registered")
	respondJSON(w, http.StatusCreated, userResponse{ID: u.ID, Username: u.Username})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	u, err := s.authSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.observeAuth("login_rejected")
			respondError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password")
			return
		}
		log.Printf("login failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to login")
		return
	}

	s.openSession(w, u)
	s.observeAuth("login")
	respondJSON(w, http.StatusOK, userResponse{ID: u.ID, Username: u.Username})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.cfg.SessionCookieName); err == nil {
		s.sessions.Destroy(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.SessionCookieHTTPS,
		SameSite: http.SameSiteLaxMode,
	})
	s.observeAuth("logout")
	s.syncActiveSessions()
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	u, err := s.authSvc.GetUser(r.Context(), id.UserID)
	if err != nil {
		respondError(w, http.StatusNotFound, "user_not_found", "User not found")
		return
	}
	respondJSON(w, http.StatusOK, userResponse{ID: u.ID, Username: u.Username})
}

// openSession establishes a server-held session and hands the caller only
// the opaque token, as an HttpOnly cookie.
func (s *Server) openSession(w http.ResponseWriter, u auth.User) {
	sess := s.sessions.Create(u.ID, u.Username)
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SessionCookieHTTPS,
		SameSite: http.SameSiteLaxMode,
	})
	s.syncActiveSessions()
}

func (s *Server) observeAuth(event string) {
	if s.metrics != nil {
		s.metrics.AuthEvents.WithLabelValues(event).Inc()
	}
}

func (s *Server) syncActiveSessions() {
	if s.metrics != nil {
		s.metrics.ActiveSessions.Set(float64(s.sessions.ActiveCount()))
	}
}
