// Package httpapi implements the HTTP JSON transport over the services
// layer. It owns session/token handling and status-code mapping; all
// authorization decisions live in the services.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/azarubkin/classnotes/internal/logging"
	"github.com/azarubkin/classnotes/internal/server/config"
	"github.com/azarubkin/classnotes/internal/server/services"
	"github.com/gorilla/sessions"
)

type Server struct {
	addr        string
	logger      logging.Logger
	sessions    *sessions.CookieStore
	jwtSecret   []byte
	users       *services.UserService
	classes     *services.ClassService
	memberships *services.MembershipService
	books       *services.BookService
	annotations *services.AnnotationService
}

func NewServer(
	cfg *config.Config,
	l logging.Logger,
	us *services.UserService,
	cs *services.ClassService,
	ms *services.MembershipService,
	bs *services.BookService,
	as *services.AnnotationService,
) *Server {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options.HttpOnly = true

	return &Server{
		addr:        cfg.Addr,
		logger:      l.With("module", "httpapi"),
		sessions:    store,
		jwtSecret:   []byte(cfg.JWTSecret),
		users:       us,
		classes:     cs,
		memberships: ms,
		books:       bs,
		annotations: as,
	}
}

// Handler builds the route table. Kept separate from Run so tests can drive
// the mux through httptest without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)

	mux.HandleFunc("POST /user", s.handleRegister)
	mux.HandleFunc("GET /user", s.withAuth(s.handleGetUser))
	mux.HandleFunc("GET /user/{id}", s.withAuth(s.handleGetUser))
	mux.HandleFunc("PUT /user", s.withAuth(s.handleUpdateUser))
	mux.HandleFunc("PUT /user/{id}", s.withAuth(s.handleUpdateUser))
	mux.HandleFunc("DELETE /user", s.withAuth(s.handleDeleteUser))
	mux.HandleFunc("DELETE /user/{id}", s.withAuth(s.handleDeleteUser))

	mux.HandleFunc("POST /class", s.withAuth(s.handleCreateClass))
	mux.HandleFunc("GET /class/{id}", s.withAuth(s.handleGetClass))
	mux.HandleFunc("PUT /class/{id}", s.withAuth(s.handleRenameClass))
	mux.HandleFunc("DELETE /class/{id}", s.withAuth(s.handleDeleteClass))

	mux.HandleFunc("POST /class/{classID}/member/{userID}", s.withAuth(s.handleAddMember))
	mux.HandleFunc("PUT /class/{classID}/member/{userID}", s.withAuth(s.handleSetMemberRole))
	mux.HandleFunc("DELETE /class/{classID}/member/{userID}", s.withAuth(s.handleRemoveMember))

	mux.HandleFunc("GET /books", s.withAuth(s.handleListBooks))
	mux.HandleFunc("POST /book", s.withAuth(s.handleCreateBook))
	mux.HandleFunc("GET /book/{id}", s.withAuth(s.handleGetBook))
	mux.HandleFunc("DELETE /book/{id}", s.withAuth(s.handleDeleteBook))

	mux.HandleFunc("GET /class/{classID}/book/{bookID}/annotations", s.withAuth(s.handleGetAnnotations))
	mux.HandleFunc("POST /class/{classID}/book/{bookID}/annotations", s.withAuth(s.handleAttachBook))
	mux.HandleFunc("DELETE /class/{classID}/book/{bookID}/annotations", s.withAuth(s.handleDetachBook))

	mux.HandleFunc("POST /annotations/{setID}/note", s.withAuth(s.handleAddNote))
	mux.HandleFunc("PUT /note/{noteID}", s.withAuth(s.handleEditNote))
	mux.HandleFunc("DELETE /note/{noteID}", s.withAuth(s.handleDeleteNote))

	return s.withLogging(mux)
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "stopping HTTP server...")
		_ = srv.Shutdown(context.Background())
	}()

	s.logger.Info(ctx, "starting HTTP server", "address", s.addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
