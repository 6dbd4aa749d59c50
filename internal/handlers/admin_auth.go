package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"bookinub-backend/internal/auth"
	"bookinub-backend/internal/httpx"
	"bookinub-backend/internal/transport"
)

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Status string `json:"status"`
}

func (s *Server) AdminLogin(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req AdminLoginRequest
	if err := httpx.DecodeJSONStrict(r.Body, &req); err != nil {
		log.Warn("admin login: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin login: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	if s.Admin == nil || s.Tokens == nil {
		log.Warn("admin login: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
		return
	}

	if !s.Admin.Check(req.Username, req.Password) {
		log.Warn("admin login: invalid credentials", slog.String("username", req.Username))
		transport.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	if !s.issueSession(w, log) {
		return
	}
	log.Info("admin login: ok", slog.String("username", req.Username))
	transport.WriteJSON(w, http.StatusOK, AdminLoginResponse{Status: "ok"})
}

func (s *Server) AdminRefresh(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	if s.Tokens == nil {
		log.Warn("admin refresh: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
		return
	}

	refreshCookie, err := r.Cookie(auth.RefreshCookie)
	if err != nil || refreshCookie.Value == "" {
		log.Warn("admin refresh: missing refresh token")
		transport.WriteError(w, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}

	claims, err := s.Tokens.Parse(refreshCookie.Value)
	if err != nil || claims.Role != auth.RoleAdmin || claims.Kind != auth.KindRefresh {
		log.Warn("admin refresh: invalid refresh token")
		transport.WriteError(w, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}

	if !s.issueSession(w, log) {
		return
	}
	log.Info("admin refresh: ok")
	transport.WriteJSON(w, http.StatusOK, AdminLoginResponse{Status: "ok"})
}

func (s *Server) AdminLogout(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	s.clearAuthCookies(w)
	log.Info("admin logout: ok")
	transport.WriteJSON(w, http.StatusOK, AdminLoginResponse{Status: "ok"})
}

func (s *Server) issueSession(w http.ResponseWriter, log *slog.Logger) bool {
	accessToken, err := s.Tokens.NewAccessToken(auth.RoleAdmin)
	if err != nil {
		log.Error("admin session: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return false
	}
	refreshToken, err := s.Tokens.NewRefreshToken(auth.RoleAdmin)
	if err != nil {
		log.Error("admin session: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessCookie,
		Value:    accessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.Tokens.AccessTTL.Seconds()),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     auth.RefreshCookie,
		Value:    refreshToken,
		Path:     s.adminCookiePath(),
		HttpOnly: true,
		Secure:   s.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.Tokens.RefreshTTL.Seconds()),
	})
	return true
}

func (s *Server) clearAuthCookies(w http.ResponseWriter) {
	expire := time.Now().Add(-1 * time.Hour)
	for _, c := range []struct{ name, path string }{
		{auth.AccessCookie, "/"},
		{auth.RefreshCookie, s.adminCookiePath()},
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     c.name,
			Value:    "",
			Path:     c.path,
			HttpOnly: true,
			Secure:   s.Cfg.CookieSecure,
			SameSite: http.SameSiteLaxMode,
			Expires:  expire,
			MaxAge:   -1,
		})
	}
}

func (s *Server) adminCookiePath() string {
	if s.Cfg.APIBasePath == "/" {
		return "/admin"
	}
	return s.Cfg.APIBasePath + "/admin"
}
