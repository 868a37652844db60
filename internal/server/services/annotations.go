package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/azarubkin/classnotes/internal/common"
	"github.com/azarubkin/classnotes/internal/server/models"
	"github.com/azarubkin/classnotes/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AnnotationService manages annotation sets (one per membership-book pair)
// and the notes inside them. Reading or mutating another member's set is
// reserved for class teachers; notes are strictly owner-only.
type AnnotationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	authz       *Authz
}

func NewAnnotationService(db *sql.DB, m repomanager.RepositoryManager, authz *Authz) *AnnotationService {
	return &AnnotationService{db: db, repomanager: m, authz: authz}
}

// AttachBook creates the annotation set linking userID's membership in the
// class to the book. Attaching an already-attached book is ErrorConflict;
// the store's unique pair constraint decides under concurrent attaches.
func (s *AnnotationService) AttachBook(ctx context.Context, actorID, classID, userID, bookID string) (*AnnotationSetView, error) {
	cu, err := s.requireSetAccess(ctx, actorID, classID, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repomanager.Books(s.db).GetByID(ctx, bookID); err != nil {
		return nil, err
	}

	set := &models.AnnotationSet{ID: uuid.NewString(), ClassUserID: cu.ID, BookID: bookID}
	created, err := s.repomanager.AnnotationSets(s.db).Create(ctx, set)
	if err != nil {
		return nil, err
	}

	return &AnnotationSetView{ID: created.ID, Notes: []NoteView{}}, nil
}

// GetSet returns the annotation set for (membership, book) with its notes.
func (s *AnnotationService) GetSet(ctx context.Context, actorID, classID, userID, bookID string) (*AnnotationSetView, error) {
	cu, err := s.requireSetAccess(ctx, actorID, classID, userID)
	if err != nil {
		return nil, err
	}

	set, err := s.repomanager.AnnotationSets(s.db).Get(ctx, cu.ID, bookID)
	if err != nil {
		return nil, err
	}

	notes, err := s.repomanager.Notes(s.db).ListBySet(ctx, set.ID)
	if err != nil {
		return nil, err
	}

	view := &AnnotationSetView{ID: set.ID, Notes: make([]NoteView, 0, len(notes))}
	for _, n := range notes {
		view.Notes = append(view.Notes, noteView(n))
	}
	return view, nil
}

// DetachBook deletes the annotation set and, through the store's cascade,
// every note in it.
func (s *AnnotationService) DetachBook(ctx context.Context, actorID, classID, userID, bookID string) error {
	cu, err := s.requireSetAccess(ctx, actorID, classID, userID)
	if err != nil {
		return err
	}

	set, err := s.repomanager.AnnotationSets(s.db).Get(ctx, cu.ID, bookID)
	if err != nil {
		return err
	}

	return s.repomanager.AnnotationSets(s.db).Delete(ctx, set.ID)
}

// AddNote creates a note in the set. Only the owner of the set may add
// notes; a missing cfi range is ErrorValidation.
func (s *AnnotationService) AddNote(ctx context.Context, actorID, setID, cfiRange, text string) (*NoteView, error) {
	if cfiRange == "" {
		return nil, fmt.Errorf("%w: cfiRange is required", common.ErrorValidation)
	}

	if err := s.requireNoteOwnership(ctx, actorID, setID); err != nil {
		return nil, err
	}

	note := &models.Note{ID: uuid.NewString(), AnnotationSetID: setID, CfiRange: cfiRange, Text: text}
	created, err := s.repomanager.Notes(s.db).Create(ctx, note)
	if err != nil {
		return nil, err
	}

	v := noteView(created)
	return &v, nil
}

// UpdateNoteParams carries the optional fields of a note edit; nil means
// leave unchanged.
type UpdateNoteParams struct {
	CfiRange *string
	Text     *string
}

// EditNote updates a note; owner-of-set only.
func (s *AnnotationService) EditNote(ctx context.Context, actorID, noteID string, params UpdateNoteParams) error {
	note, err := s.repomanager.Notes(s.db).GetByID(ctx, noteID)
	if err != nil {
		return err
	}

	if err := s.requireNoteOwnership(ctx, actorID, note.AnnotationSetID); err != nil {
		return err
	}

	if params.CfiRange != nil {
		if *params.CfiRange == "" {
			return fmt.Errorf("%w: cfiRange must not be empty", common.ErrorValidation)
		}
		note.CfiRange = *params.CfiRange
	}
	if params.Text != nil {
		note.Text = *params.Text
	}

	return s.repomanager.Notes(s.db).Update(ctx, note)
}

// DeleteNote removes a note; owner-of-set only.
func (s *AnnotationService) DeleteNote(ctx context.Context, actorID, noteID string) error {
	note, err := s.repomanager.Notes(s.db).GetByID(ctx, noteID)
	if err != nil {
		return err
	}

	if err := s.requireNoteOwnership(ctx, actorID, note.AnnotationSetID); err != nil {
		return err
	}

	return s.repomanager.Notes(s.db).Delete(ctx, noteID)
}

// requireSetAccess resolves userID's membership in the class and checks the
// actor may touch that membership's annotation sets: the owner themselves,
// or an actor with effective class permission of teacher or higher.
func (s *AnnotationService) requireSetAccess(ctx context.Context, actorID, classID, userID string) (*models.ClassUser, error) {
	cu, err := s.repomanager.Memberships(s.db).Get(ctx, classID, userID)
	if err != nil {
		return nil, err
	}

	if actorID == userID {
		return cu, nil
	}

	level, err := s.authz.EffectivePermissionInClass(ctx, actorID, classID)
	if err != nil {
		return nil, err
	}
	if level < models.PermissionTeacher {
		return nil, common.ErrorForbidden
	}
	return cu, nil
}

// requireNoteOwnership checks that the actor owns the membership behind the
// annotation set. Notes are a private layer, so even class teachers cannot
// write into someone else's set.
func (s *AnnotationService) requireNoteOwnership(ctx context.Context, actorID, setID string) error {
	set, err := s.repomanager.AnnotationSets(s.db).GetByID(ctx, setID)
	if err != nil {
		return err
	}

	cu, err := s.repomanager.Memberships(s.db).GetByID(ctx, set.ClassUserID)
	if err != nil {
		return err
	}

	if cu.UserID != actorID {
		return common.ErrorForbidden
	}
	return nil
}
