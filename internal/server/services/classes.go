package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/azarubkin/classnotes/internal/common"
	"github.com/azarubkin/classnotes/internal/dbx"
	"github.com/azarubkin/classnotes/internal/server/models"
	"github.com/azarubkin/classnotes/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ClassService handles class lifecycle. Mutations are gated on the actor's
// effective permission in the class (teacher or higher).
type ClassService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	authz       *Authz
}

func NewClassService(db *sql.DB, m repomanager.RepositoryManager, authz *Authz) *ClassService {
	return &ClassService{db: db, repomanager: m, authz: authz}
}

// Create makes a new class and enrolls the creator as its teacher in one
// transaction, so a class can never exist without at least one teacher.
func (s *ClassService) Create(ctx context.Context, actorID, name string) (*ClassView, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}

	// Any authenticated user may create a class, but the actor must exist.
	if _, err := s.authz.EffectivePermission(ctx, actorID); err != nil {
		return nil, err
	}

	class := &models.Class{ID: uuid.NewString(), Name: name}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Classes(tx).Create(ctx, class); err != nil {
			return err
		}
		cu := &models.ClassUser{
			ID:         uuid.NewString(),
			ClassID:    class.ID,
			UserID:     actorID,
			Permission: models.PermissionTeacher,
		}
		_, err := s.repomanager.Memberships(tx).Create(ctx, cu)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error creating class: %w", err)
	}

	return s.Get(ctx, class.ID)
}

// Get returns the class with its member roster.
func (s *ClassService) Get(ctx context.Context, classID string) (*ClassView, error) {
	class, err := s.repomanager.Classes(s.db).GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	members, err := s.repomanager.Memberships(s.db).ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	view := &ClassView{ID: class.ID, Name: class.Name, Members: make([]ClassMemberView, 0, len(members))}
	for _, m := range members {
		view.Members = append(view.Members, ClassMemberView{
			ID:              m.UserID,
			Name:            m.Name,
			Permission:      m.Permission,
			ClassPermission: m.ClassPermission,
		})
	}
	return view, nil
}

// Rename changes the class name; requires effective class permission of
// teacher or higher.
func (s *ClassService) Rename(ctx context.Context, actorID, classID, name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}

	class, err := s.repomanager.Classes(s.db).GetByID(ctx, classID)
	if err != nil {
		return err
	}

	if err := s.requireClassTeacher(ctx, actorID, classID); err != nil {
		return err
	}

	class.Name = name
	return s.repomanager.Classes(s.db).Update(ctx, class)
}

// Delete removes the class; requires effective class permission of teacher
// or higher. Memberships, annotation sets and notes cascade in the store.
func (s *ClassService) Delete(ctx context.Context, actorID, classID string) error {
	if _, err := s.repomanager.Classes(s.db).GetByID(ctx, classID); err != nil {
		return err
	}

	if err := s.requireClassTeacher(ctx, actorID, classID); err != nil {
		return err
	}

	return s.repomanager.Classes(s.db).Delete(ctx, classID)
}

func (s *ClassService) requireClassTeacher(ctx context.Context, actorID, classID string) error {
	level, err := s.authz.EffectivePermissionInClass(ctx, actorID, classID)
	if err != nil {
		return err
	}
	if level < models.PermissionTeacher {
		return common.ErrorForbidden
	}
	return nil
}
