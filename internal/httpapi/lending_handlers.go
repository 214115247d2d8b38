package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"libraryManagement/internal/auth"
	"libraryManagement/models"
)

type loanRequest struct {
	Username string `json:"username"`
	BookID   string `json:"bookid"`
}

func (s *Server) handleBorrow(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing principal")
		return
	}

	var req loanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.BookID == "" {
		writeError(w, http.StatusBadRequest, "username and bookid are required")
		return
	}

	loan, err := s.Lending.Borrow(r.Context(), p.Username, req.Username, req.BookID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Book borrowed successfully", "loan": loan})
}

func (s *Server) handleReturn(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing principal")
		return
	}

	var req loanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.BookID == "" {
		writeError(w, http.StatusBadRequest, "username and bookid are required")
		return
	}

	rec, err := s.Lending.Return(r.Context(), p.Username, req.Username, req.BookID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": fmt.Sprintf("Book returned successfully. Fine: %d", rec.Fine),
		"fine":    rec.Fine,
	})
}

// handleListLoans returns the caller's open loans.
func (s *Server) handleListLoans(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing principal")
		return
	}
	loans, err := s.Borrows.ListByUsername(r.Context(), p.Username)
	if err != nil {
		respondError(w, err)
		return
	}
	if loans == nil {
		loans = []models.Borrow{}
	}
	writeJSON(w, http.StatusOK, loans)
}

// handleListReturns exposes the completed-loan audit trail to admins.
func (s *Server) handleListReturns(w http.ResponseWriter, r *http.Request) {
	recs, err := s.Returns.List(r.Context(), queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		respondError(w, err)
		return
	}
	if recs == nil {
		recs = []models.Return{}
	}
	writeJSON(w, http.StatusOK, recs)
}
