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

// MembershipService manages who belongs to a class and with which role.
type MembershipService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	authz       *Authz
}

func NewMembershipService(db *sql.DB, m repomanager.RepositoryManager, authz *Authz) *MembershipService {
	return &MembershipService{db: db, repomanager: m, authz: authz}
}

// AddMember enrolls targetUserID into the class as a student. The actor
// needs effective class permission of teacher or higher. A duplicate
// membership is ErrorConflict; the store's unique pair constraint decides
// under concurrent joins.
func (s *MembershipService) AddMember(ctx context.Context, actorID, classID, targetUserID string) error {
	if _, err := s.repomanager.Classes(s.db).GetByID(ctx, classID); err != nil {
		return err
	}

	if err := s.requireClassTeacher(ctx, actorID, classID); err != nil {
		return err
	}

	if _, err := s.repomanager.Users(s.db).GetByID(ctx, targetUserID); err != nil {
		return err
	}

	cu := &models.ClassUser{
		ID:         uuid.NewString(),
		ClassID:    classID,
		UserID:     targetUserID,
		Permission: models.PermissionStudent,
	}
	_, err := s.repomanager.Memberships(s.db).Create(ctx, cu)
	return err
}

// SetRole changes a member's per-class permission. Teacher-gated; absent
// membership is ErrorNotFound.
func (s *MembershipService) SetRole(ctx context.Context, actorID, classID, targetUserID string, role models.Permission) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown permission level", common.ErrorValidation)
	}

	if err := s.requireClassTeacher(ctx, actorID, classID); err != nil {
		return err
	}

	cu, err := s.repomanager.Memberships(s.db).Get(ctx, classID, targetUserID)
	if err != nil {
		return err
	}

	return s.repomanager.Memberships(s.db).UpdatePermission(ctx, cu.ID, role)
}

// RemoveMember takes a member out of the class. Self-removal is always
// allowed; removing someone else is teacher-gated. The member's annotation
// sets and notes cascade in the store.
func (s *MembershipService) RemoveMember(ctx context.Context, actorID, classID, targetUserID string) error {
	if actorID != targetUserID {
		if err := s.requireClassTeacher(ctx, actorID, classID); err != nil {
			return err
		}
	}

	cu, err := s.repomanager.Memberships(s.db).Get(ctx, classID, targetUserID)
	if err != nil {
		return err
	}

	return s.repomanager.Memberships(s.db).Delete(ctx, cu.ID)
}

func (s *MembershipService) requireClassTeacher(ctx context.Context, actorID, classID string) error {
	level, err := s.authz.EffectivePermissionInClass(ctx, actorID, classID)
	if err != nil {
		return err
	}
	if level < models.PermissionTeacher {
		return common.ErrorForbidden
	}
	return nil
}
