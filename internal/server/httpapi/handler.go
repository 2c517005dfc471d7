package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/authgate/authgate/internal/common"
)

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Secret      string `json:"secret"`
}

type registerResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type profileResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	ident, err := s.identity.Register(r.Context(), req.Email, req.DisplayName, req.Secret)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, common.ErrorAlreadyExists):
			writeJSON(w, http.StatusConflict, errorResponse{Error: "email already registered"})
		default:
			s.logger.Error(r.Context(), "registration failed",
				"request_id", RequestIDFromContext(r.Context()), "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		}
		return
	}

	s.logger.Info(r.Context(), "identity registered",
		"request_id", RequestIDFromContext(r.Context()), "id", ident.ID)

	writeJSON(w, http.StatusCreated, registerResponse{
		ID:          ident.ID,
		Email:       ident.Email,
		DisplayName: ident.DisplayName,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	token, err := s.identity.Login(r.Context(), req.Email, req.Secret)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeUnauthorized(w)
			return
		}
		s.logger.Error(r.Context(), "login failed",
			"request_id", RequestIDFromContext(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeUnauthorized(w)
		return
	}

	id, err := claims.SubjectID()
	if err != nil {
		writeUnauthorized(w)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		ID:        id,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}

// writeUnauthorized is the single rejection shape for every credential
// or token failure, so callers cannot tell the causes apart.
func writeUnauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
