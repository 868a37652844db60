package httpapi

import "net/http"

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := parseJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	token, user, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	session, _ := s.sessions.Get(r, sessionName)
	session.Values["user_id"] = user.ID
	if err := session.Save(r, w); err != nil {
		s.logger.Error(r.Context(), "saving session", "error", err)
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := s.sessions.Get(r, sessionName)
	delete(session.Values, "user_id")
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		s.logger.Error(r.Context(), "saving session", "error", err)
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := parseJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.users.Register(r.Context(), req.Username, req.Password, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// targetUserID returns the path id, or the actor itself when the route was
// called without one (the original app's "default to self" behavior).
func targetUserID(r *http.Request, actorID string) string {
	if id := r.PathValue("id"); id != "" {
		return id
	}
	return actorID
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request, actorID string) {
	user, err := s.users.Get(r.Context(), targetUserID(r, actorID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request, actorID string) {
	var req updateUserRequest
	if err := parseJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	err := s.users.Update(r.Context(), actorID, targetUserID(r, actorID), toUpdateUserParams(req))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request, actorID string) {
	if err := s.users.Delete(r.Context(), actorID, targetUserID(r, actorID)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
