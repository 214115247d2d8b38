package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"libraryManagement/internal/auth"
	"libraryManagement/models"
	"libraryManagement/repository"
)

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u := &models.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Mobile:   req.Mobile,
	}
	if _, err := s.Users.Create(r.Context(), u, req.Password); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "username, email, or mobile already exists")
			return
		}
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	IsAdmin bool   `json:"isAdmin"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := s.Users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		respondError(w, err)
		return
	}
	if u == nil || !s.Users.VerifyPassword(u, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := auth.IssueToken(s.JWTSecret, u.ID, u.Username, u.Admin, s.TokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not generate token")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Message: "Login successful", Token: token, IsAdmin: u.Admin})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.Users.List(r.Context(), queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		respondError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}
