package httpapi

import "net/http"

type noteRequest struct {
	CfiRange string `json:"cfiRange"`
	Text     string `json:"text"`
}

type updateNoteRequest struct {
	CfiRange *string `json:"cfiRange"`
	Text     *string `json:"text"`
}

// annotationsOwner resolves whose annotation set the request addresses: the
// optional ?user= parameter, defaulting to the acting user. The services
// gate cross-user access on class-teacher permission.
func annotationsOwner(r *http.Request, actorID string) string {
	if user := r.URL.Query().Get("user"); user != "" {
		return user
	}
	return actorID
}

func (s *Server) handleGetAnnotations(w http.ResponseWriter, r *http.Request, actorID string) {
	set, err := s.annotations.GetSet(r.Context(), actorID,
		r.PathValue("classID"), annotationsOwner(r, actorID), r.PathValue("bookID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleAttachBook(w http.ResponseWriter, r *http.Request, actorID string) {
	set, err := s.annotations.AttachBook(r.Context(), actorID,
		r.PathValue("classID"), annotationsOwner(r, actorID), r.PathValue("bookID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

func (s *Server) handleDetachBook(w http.ResponseWriter, r *http.Request, actorID string) {
	err := s.annotations.DetachBook(r.Context(), actorID,
		r.PathValue("classID"), annotationsOwner(r, actorID), r.PathValue("bookID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request, actorID string) {
	var req noteRequest
	if err := parseJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	note, err := s.annotations.AddNote(r.Context(), actorID, r.PathValue("setID"), req.CfiRange, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (s *Server) handleEditNote(w http.ResponseWriter, r *http.Request, actorID string) {
	var req updateNoteRequest
	if err := parseJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	err := s.annotations.EditNote(r.Context(), actorID, r.PathValue("noteID"), toUpdateNoteParams(req))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request, actorID string) {
	if err := s.annotations.DeleteNote(r.Context(), actorID, r.PathValue("noteID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
