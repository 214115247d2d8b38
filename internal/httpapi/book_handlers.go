package httpapi

import (
	"encoding/json"
	"net/http"

	"libraryManagement/models"
)

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.Books.List(r.Context(), queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		respondError(w, err)
		return
	}
	if books == nil {
		books = []models.Book{}
	}
	writeJSON(w, http.StatusOK, books)
}

type createBookRequest struct {
	Name   string `json:"name"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
	Type   string `json:"type"`
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	book, err := s.Books.Create(r.Context(), &models.Book{
		Name:   req.Name,
		Author: req.Author,
		Genre:  req.Genre,
		Type:   req.Type,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Book created successfully", "book": book})
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "book id is required")
		return
	}

	var patch models.BookPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	book, err := s.Books.Update(r.Context(), id, patch)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}
