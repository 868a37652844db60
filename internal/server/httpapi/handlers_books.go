package httpapi

import "net/http"

type bookRequest struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request, actorID string) {
	var req bookRequest
	if err := parseJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	book, err := s.books.Create(r.Context(), actorID, req.Name, req.Path)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request, actorID string) {
	book, err := s.books.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request, actorID string) {
	books, err := s.books.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request, actorID string) {
	if err := s.books.Delete(r.Context(), actorID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
