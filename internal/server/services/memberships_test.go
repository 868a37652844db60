package services

import (
	"context"
	"testing"

	"github.com/azarubkin/classnotes/internal/common"
	"github.com/azarubkin/classnotes/internal/server/models"
	"github.com/stretchr/testify/require"
)

func TestAddMember_DuplicateJoinConflicts(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	teacher := e.addUser(t, "teacher", models.PermissionStudent)
	student := e.addUser(t, "student", models.PermissionStudent)

	e.expectTx()
	class, err := e.classes.Create(ctx, teacher.ID, "Biology")
	require.NoError(t, err)

	require.NoError(t, e.memberships.AddMember(ctx, teacher.ID, class.ID, student.ID))
	require.ErrorIs(t,
		e.memberships.AddMember(ctx, teacher.ID, class.ID, student.ID),
		common.ErrorConflict)

	// exactly one membership row
	got, err := e.classes.Get(ctx, class.ID)
	require.NoError(t, err)
	require.Len(t, got.Members, 2)
}

func TestAddMember_RequiresClassTeacher(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	teacher := e.addUser(t, "teacher", models.PermissionStudent)
	student := e.addUser(t, "student", models.PermissionStudent)
	outsider := e.addUser(t, "outsider", models.PermissionStudent)

	e.expectTx()
	class, err := e.classes.Create(ctx, teacher.ID, "Biology")
	require.NoError(t, err)

	require.ErrorIs(t,
		e.memberships.AddMember(ctx, outsider.ID, class.ID, student.ID),
		common.ErrorForbidden)
}

func TestAddMember_GlobalAdminWithoutMembership(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	teacher := e.addUser(t, "teacher", models.PermissionStudent)
	student := e.addUser(t, "student", models.PermissionStudent)
	root := e.addUser(t, "root", models.PermissionAdmin)

	e.expectTx()
	class, err := e.classes.Create(ctx, teacher.ID, "Biology")
	require.NoError(t, err)

	// admin's global level carries into every class
	require.NoError(t, e.memberships.AddMember(ctx, root.ID, class.ID, student.ID))
}

func TestAddMember_UnknownTargets(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	teacher := e.addUser(t, "teacher", models.PermissionStudent)

	e.expectTx()
	class, err := e.classes.Create(ctx, teacher.ID, "Biology")
	require.NoError(t, err)

	require.ErrorIs(t, e.memberships.AddMember(ctx, teacher.ID, "missing", "u"), common.ErrorNotFound)
	require.ErrorIs(t, e.memberships.AddMember(ctx, teacher.ID, class.ID, "missing"), common.ErrorNotFound)
}

func TestSetRole_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	teacher := e.addUser(t, "teacher", models.PermissionStudent)

	e.expectTx()
	class, err := e.classes.Create(ctx, teacher.ID, "Biology")
	require.NoError(t, err)

	err = e.memberships.SetRole(ctx, teacher.ID, class.ID, teacher.ID, models.Permission(42))
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestSetRole_MissingMembership(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	teacher := e.addUser(t, "teacher", models.PermissionStudent)
	outsider := e.addUser(t, "outsider", models.PermissionStudent)

	e.expectTx()
	class, err := e.classes.Create(ctx, teacher.ID, "Biology")
	require.NoError(t, err)

	err = e.memberships.SetRole(ctx, teacher.ID, class.ID, outsider.ID, models.PermissionTeacher)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRemoveMember_SelfLeaveAlwaysAllowed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	teacher := e.addUser(t, "teacher", models.PermissionStudent)
	student := e.addUser(t, "student", models.PermissionStudent)

	e.expectTx()
	class, err := e.classes.Create(ctx, teacher.ID, "Biology")
	require.NoError(t, err)
	require.NoError(t, e.memberships.AddMember(ctx, teacher.ID, class.ID, student.ID))

	require.NoError(t, e.memberships.RemoveMember(ctx, student.ID, class.ID, student.ID))

	got, err := e.classes.Get(ctx, class.ID)
	require.NoError(t, err)
	require.Len(t, got.Members, 1)
}

func TestRemoveMember_OtherRequiresTeacher(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	teacher := e.addUser(t, "teacher", models.PermissionStudent)
	s1 := e.addUser(t, "s1", models.PermissionStudent)
	s2 := e.addUser(t, "s2", models.PermissionStudent)

	e.expectTx()
	class, err := e.classes.Create(ctx, teacher.ID, "Biology")
	require.NoError(t, err)
	require.NoError(t, e.memberships.AddMember(ctx, teacher.ID, class.ID, s1.ID))
	require.NoError(t, e.memberships.AddMember(ctx, teacher.ID, class.ID, s2.ID))

	require.ErrorIs(t, e.memberships.RemoveMember(ctx, s1.ID, class.ID, s2.ID), common.ErrorForbidden)
	require.NoError(t, e.memberships.RemoveMember(ctx, teacher.ID, class.ID, s2.ID))
}

func TestRemoveMember_MissingMembership(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	teacher := e.addUser(t, "teacher", models.PermissionStudent)

	e.expectTx()
	class, err := e.classes.Create(ctx, teacher.ID, "Biology")
	require.NoError(t, err)

	outsider := e.addUser(t, "outsider", models.PermissionStudent)
	require.ErrorIs(t,
		e.memberships.RemoveMember(ctx, outsider.ID, class.ID, outsider.ID),
		common.ErrorNotFound)
}
