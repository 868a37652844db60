package httpapi

import (
	"net/http"

	"github.com/azarubkin/classnotes/internal/server/models"
)

type classRequest struct {
	Name string `json:"name"`
}

type memberRoleRequest struct {
	Permission models.Permission `json:"permission"`
}

func (s *Server) handleCreateClass(w http.ResponseWriter, r *http.Request, actorID string) {
	var req classRequest
	if err := parseJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	class, err := s.classes.Create(r.Context(), actorID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, class)
}

func (s *Server) handleGetClass(w http.ResponseWriter, r *http.Request, actorID string) {
	class, err := s.classes.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, class)
}

func (s *Server) handleRenameClass(w http.ResponseWriter, r *http.Request, actorID string) {
	var req classRequest
	if err := parseJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := s.classes.Rename(r.Context(), actorID, r.PathValue("id"), req.Name); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDeleteClass(w http.ResponseWriter, r *http.Request, actorID string) {
	if err := s.classes.Delete(r.Context(), actorID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request, actorID string) {
	err := s.memberships.AddMember(r.Context(), actorID, r.PathValue("classID"), r.PathValue("userID"))
	if err != nil {
		writeError(w, err)
		return
	}

	class, err := s.classes.Get(r.Context(), r.PathValue("classID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, class)
}

func (s *Server) handleSetMemberRole(w http.ResponseWriter, r *http.Request, actorID string) {
	var req memberRoleRequest
	if err := parseJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	err := s.memberships.SetRole(r.Context(), actorID, r.PathValue("classID"), r.PathValue("userID"), req.Permission)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request, actorID string) {
	err := s.memberships.RemoveMember(r.Context(), actorID, r.PathValue("classID"), r.PathValue("userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
